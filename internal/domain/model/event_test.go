package model_test

import (
	"testing"
	"time"

	model "github.com/okian/rrdash/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestEvent(t *testing.T) {
	convey.Convey("Given an Event", t, func() {
		day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		event := model.Event{
			SenderID:   "s1",
			ReceiverID: "r1",
			Company:    "Acme",
			Country:    "NL",
			Points:     12.50,
			Date:       day,
			RawDate:    "05/03/2024",
			FeedType:   "Award",
		}

		convey.Convey("Then Value returns each column as text", func() {
			convey.So(event.Value(model.ColumnSender), convey.ShouldEqual, "s1")
			convey.So(event.Value(model.ColumnReceiver), convey.ShouldEqual, "r1")
			convey.So(event.Value(model.ColumnCompany), convey.ShouldEqual, "Acme")
			convey.So(event.Value(model.ColumnCountry), convey.ShouldEqual, "NL")
			convey.So(event.Value(model.ColumnPoints), convey.ShouldEqual, "12.5")
			convey.So(event.Value(model.ColumnDate), convey.ShouldEqual, "2024-03-05")
			convey.So(event.Value(model.ColumnFeedType), convey.ShouldEqual, "Award")
			convey.So(event.Value(model.ColumnInvalid), convey.ShouldEqual, "")
		})

		convey.Convey("Then Number only answers for points", func() {
			v, ok := event.Number(model.ColumnPoints)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 12.5)

			_, ok = event.Number(model.ColumnCompany)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then Day drops the clock", func() {
			e := event
			e.Date = time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)
			convey.So(e.Day().Equal(day), convey.ShouldBeTrue)
		})

		convey.Convey("When the date was not parsed", func() {
			e := event
			e.Date = time.Time{}
			convey.So(e.Value(model.ColumnDate), convey.ShouldEqual, "05/03/2024")
		})
	})
}

func TestParseColumn(t *testing.T) {
	convey.Convey("Given header names", t, func() {
		convey.Convey("When names match case-insensitively", func() {
			c, ok := model.ParseColumn("feed_type")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, model.ColumnFeedType)

			c, ok = model.ParseColumn(" Company_Names ")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, model.ColumnCompany)
		})

		convey.Convey("When the name is unknown", func() {
			c, ok := model.ParseColumn("amount")
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(c, convey.ShouldEqual, model.ColumnInvalid)
		})

		convey.Convey("Then every column round-trips through its name", func() {
			for _, col := range model.Columns {
				got, ok := model.ParseColumn(col.String())
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldEqual, col)
			}
		})

		convey.Convey("Then only points is numeric and only date is temporal", func() {
			convey.So(model.ColumnPoints.Numeric(), convey.ShouldBeTrue)
			convey.So(model.ColumnSender.Numeric(), convey.ShouldBeFalse)
			convey.So(model.ColumnDate.Temporal(), convey.ShouldBeTrue)
			convey.So(model.ColumnPoints.Temporal(), convey.ShouldBeFalse)
		})
	})
}
