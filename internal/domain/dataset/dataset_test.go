package dataset_test

import (
	"testing"
	"time"

	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func sample() []model.Event {
	return []model.Event{
		{SenderID: "s1", ReceiverID: "r1", Company: "Beta", Country: "DE", Points: 10, Date: day(2), FeedType: "Award"},
		{SenderID: "s2", ReceiverID: "r1", Company: "Acme", Country: "NL", Points: 5, Date: day(1), FeedType: "Award"},
		{SenderID: "s1", ReceiverID: "r2", Company: "Beta", Country: "DE", Points: 7, Date: day(2), FeedType: "Kudos"},
	}
}

func TestDataset(t *testing.T) {
	Convey("Given a dataset built from a slice", t, func() {
		events := sample()
		ds := dataset.New(events)

		Convey("Then it keeps source order", func() {
			So(ds.Len(), ShouldEqual, 3)
			So(ds.At(0).Company, ShouldEqual, "Beta")
			So(ds.At(1).Company, ShouldEqual, "Acme")
		})

		Convey("When the caller mutates its slice", func() {
			events[0].Company = "Changed"

			Convey("Then the dataset is unaffected", func() {
				So(ds.At(0).Company, ShouldEqual, "Beta")
			})
		})

		Convey("Then UniqueValues is first-seen order", func() {
			So(ds.UniqueValues(model.ColumnCompany), ShouldResemble, []string{"Beta", "Acme"})
			So(ds.UniqueValues(model.ColumnDate), ShouldResemble, []string{"2024-01-02", "2024-01-01"})
		})

		Convey("Then All can stop early", func() {
			n := 0
			for range ds.All() {
				n++
				break
			}
			So(n, ShouldEqual, 1)
		})

		Convey("When filtering", func() {
			award := ds.Filter(dataset.Equals(model.ColumnFeedType, "Award"))
			So(award.Len(), ShouldEqual, 2)

			both := ds.Filter(dataset.And(
				dataset.Equals(model.ColumnCompany, "Beta"),
				dataset.OnDay(day(2).Add(13*time.Hour)),
			))
			So(both.Len(), ShouldEqual, 2)

			none := ds.Filter(dataset.Equals(model.ColumnCountry, "FR"))
			So(none.Len(), ShouldEqual, 0)
			So(none.UniqueValues(model.ColumnCountry), ShouldResemble, []string{})

			So(ds.Filter(nil).Len(), ShouldEqual, 3)
			So(ds.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given a nil or empty dataset", t, func() {
		var nilDS *dataset.Dataset
		So(nilDS.Len(), ShouldEqual, 0)
		So(dataset.New(nil).Len(), ShouldEqual, 0)
		So(dataset.New(nil).Filter(dataset.Everything).Len(), ShouldEqual, 0)
	})

	Convey("Given undated rows", t, func() {
		ds := dataset.New([]model.Event{{RawDate: "bad"}})
		So(ds.Filter(dataset.OnDay(time.Time{})).Len(), ShouldEqual, 0)
	})
}
