// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical day format used when a date is rendered as a value.
const DateLayout = "2006-01-02"

// Event is one recognition record: a sender awarding points to a receiver.
// Fields mirror the columns of the source file.
type Event struct {
	SenderID   string    // sender_id
	ReceiverID string    // receiver_id
	Company    string    // company_names
	Country    string    // country
	Points     float64   // points awarded
	Date       time.Time // calendar day of the event, UTC midnight
	RawDate    string    // date as it appeared in the source
	FeedType   string    // Feed_type, e.g. "Award"
}

// Column names one field of an Event.
type Column int

const (
	ColumnInvalid Column = iota
	ColumnSender
	ColumnReceiver
	ColumnCompany
	ColumnCountry
	ColumnPoints
	ColumnDate
	ColumnFeedType
)

// Columns lists every valid column in source-file order.
var Columns = []Column{
	ColumnSender,
	ColumnReceiver,
	ColumnCompany,
	ColumnCountry,
	ColumnPoints,
	ColumnDate,
	ColumnFeedType,
}

var columnNames = map[Column]string{
	ColumnSender:   "sender_id",
	ColumnReceiver: "receiver_id",
	ColumnCompany:  "company_names",
	ColumnCountry:  "country",
	ColumnPoints:   "points",
	ColumnDate:     "date",
	ColumnFeedType: "Feed_type",
}

// String returns the header name of the column.
func (c Column) String() string {
	if n, ok := columnNames[c]; ok {
		return n
	}
	return "invalid"
}

// Numeric reports whether the column holds a number.
func (c Column) Numeric() bool {
	return c == ColumnPoints
}

// Temporal reports whether the column holds a date.
func (c Column) Temporal() bool {
	return c == ColumnDate
}

// ParseColumn resolves a header name, case-insensitively.
func ParseColumn(name string) (Column, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Columns {
		if strings.EqualFold(columnNames[c], name) {
			return c, true
		}
	}
	return ColumnInvalid, false
}

// Value returns the string form of a column. Dates use DateLayout and
// points are printed without trailing zeros.
func (e Event) Value(c Column) string {
	switch c {
	case ColumnSender:
		return e.SenderID
	case ColumnReceiver:
		return e.ReceiverID
	case ColumnCompany:
		return e.Company
	case ColumnCountry:
		return e.Country
	case ColumnPoints:
		return strconv.FormatFloat(e.Points, 'f', -1, 64)
	case ColumnDate:
		if e.Date.IsZero() {
			return e.RawDate
		}
		return e.Date.Format(DateLayout)
	case ColumnFeedType:
		return e.FeedType
	default:
		return ""
	}
}

// Number returns the numeric value of a numeric column.
func (e Event) Number(c Column) (float64, bool) {
	if c == ColumnPoints {
		return e.Points, true
	}
	return 0, false
}

// Day returns the event date truncated to a calendar day.
func (e Event) Day() time.Time {
	y, m, d := e.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
