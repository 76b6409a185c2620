package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

// LoadCSV reads delimited text with a header row. Columns are matched by
// name, case-insensitively; extra columns are ignored.
func LoadCSV(ctx context.Context, r io.Reader, opts ...Option) (*dataset.Dataset, error) {
	return newLoader(opts).csv(ctx, r)
}

func (l *loader) csv(ctx context.Context, r io.Reader) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = !unicode.IsSpace(l.delimiter)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadError(l.source, 0, "empty file", ErrMalformed, nil)
	}
	if err != nil {
		return nil, loadError(l.source, lineOf(err), "bad header", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idx, err := l.columnIndex(header)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0)
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadError(l.source, lineOf(err), "bad record", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		values := make(map[model.Column]string, len(idx))
		for col, i := range idx {
			if i < len(rec) {
				values[col] = rec[i]
			}
		}
		e, err := l.event(values, line)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return dataset.New(events), nil
}

// columnIndex maps every required column to its header position.
func (l *loader) columnIndex(header []string) (map[model.Column]int, error) {
	idx := make(map[model.Column]int, len(model.Columns))
	for i, name := range header {
		if col, ok := model.ParseColumn(name); ok {
			if _, dup := idx[col]; !dup {
				idx[col] = i
			}
		}
	}
	if missing := missingColumns(idx); len(missing) > 0 {
		return nil, loadError(l.source, 1, "missing required columns",
			ErrMissingColumns, fmt.Errorf("%s", strings.Join(missing, ", ")))
	}
	return idx, nil
}

func missingColumns[V any](found map[model.Column]V) []string {
	var missing []string
	for _, col := range model.Columns {
		if _, ok := found[col]; !ok {
			missing = append(missing, col.String())
		}
	}
	return missing
}

// event builds one Event from raw column values.
func (l *loader) event(values map[model.Column]string, line int) (model.Event, error) {
	e := model.Event{
		SenderID:   strings.TrimSpace(values[model.ColumnSender]),
		ReceiverID: strings.TrimSpace(values[model.ColumnReceiver]),
		Company:    strings.TrimSpace(values[model.ColumnCompany]),
		Country:    strings.TrimSpace(values[model.ColumnCountry]),
		RawDate:    strings.TrimSpace(values[model.ColumnDate]),
		FeedType:   strings.TrimSpace(values[model.ColumnFeedType]),
	}

	if p := strings.TrimSpace(values[model.ColumnPoints]); p != "" {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return e, loadError(l.source, line, "bad points "+strconv.Quote(p), ErrMalformed, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return e, loadError(l.source, line, "bad points "+strconv.Quote(p), ErrMalformed, nil)
		}
		e.Points = v
	}

	d, ok := parseDate(e.RawDate, l.dateLayouts)
	if !ok {
		return e, loadError(l.source, line, "unparseable date "+strconv.Quote(e.RawDate), ErrMalformed, nil)
	}
	e.Date = d
	return e, nil
}

// parseDate tries each layout and keeps the calendar day.
func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func lineOf(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
