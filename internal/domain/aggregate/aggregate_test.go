package aggregate_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/okian/rrdash/internal/domain/aggregate"
	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
	"github.com/okian/rrdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func day(d int) time.Time {
	return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC)
}

func companyPoints() *dataset.Dataset {
	return dataset.New([]model.Event{
		{Company: "A", Points: 100},
		{Company: "A", Points: 50},
		{Company: "B", Points: 200},
	})
}

func awards() *dataset.Dataset {
	return dataset.New([]model.Event{
		{SenderID: "s1", ReceiverID: "r1", Company: "X", Country: "NL", Points: 10, Date: day(3), FeedType: "Award"},
		{SenderID: "s9", ReceiverID: "r2", Company: "Y", Country: "DE", Points: 4, Date: day(1), FeedType: "Kudos"},
		{SenderID: "s1", ReceiverID: "r2", Company: "X", Country: "NL", Points: 0.1, Date: day(1), FeedType: "Award"},
		{SenderID: "s8", ReceiverID: "r1", Company: "Y", Country: "FR", Points: 0.2, Date: day(3), FeedType: "Kudos"},
		{SenderID: "s2", ReceiverID: "r3", Company: "Y", Country: "DE", Points: 6, Date: day(2).Add(9 * time.Hour), FeedType: "Award"},
	})
}

func TestTopNBySum(t *testing.T) {
	Convey("Given rows (A,100),(A,50),(B,200)", t, func() {
		ds := companyPoints()

		Convey("When n is 1", func() {
			got, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnPoints, 1)
			So(err, ShouldBeNil)

			Convey("Then the largest sum wins", func() {
				So(got, ShouldResemble, []types.Entry{{Rank: 1, Key: "B", Value: 200}})
			})
		})

		Convey("When n is 2", func() {
			got, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnPoints, 2)
			So(err, ShouldBeNil)

			Convey("Then A sums to 150", func() {
				So(got, ShouldResemble, []types.Entry{
					{Rank: 1, Key: "B", Value: 200},
					{Rank: 2, Key: "A", Value: 150},
				})
			})
		})

		Convey("When n exceeds the number of groups", func() {
			got, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnPoints, 5)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
		})

		Convey("When the value column is not numeric", func() {
			got, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnCountry, 1)
			So(got, ShouldBeNil)
			So(errors.Is(err, aggregate.ErrNotNumeric), ShouldBeTrue)
		})

		Convey("Then sums are exact for decimal fractions", func() {
			got, err := aggregate.TopNBySum(awards(), model.ColumnCompany, model.ColumnPoints, 2)
			So(err, ShouldBeNil)
			So(got[0], ShouldResemble, types.Entry{Rank: 1, Key: "Y", Value: 10.2})
			So(got[1], ShouldResemble, types.Entry{Rank: 2, Key: "X", Value: 10.1})
		})
	})

	Convey("Given seeded random datasets", t, func() {
		r := rand.New(rand.NewPCG(7, 11))
		for round := 0; round < 20; round++ {
			events := make([]model.Event, r.IntN(200))
			var total float64
			for i := range events {
				events[i] = model.Event{
					Company: fmt.Sprintf("c%02d", r.IntN(15)),
					Points:  float64(r.IntN(500)),
				}
				total += events[i].Points
			}
			ds := dataset.New(events)
			distinct := len(ds.UniqueValues(model.ColumnCompany))

			for _, n := range []int{0, 1, 3, 10, 50} {
				top, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnPoints, n)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, min(n, distinct))

				var sumTop float64
				for i, e := range top {
					sumTop += e.Value
					if i > 0 {
						So(e.Value, ShouldBeLessThanOrEqualTo, top[i-1].Value)
					}
				}
				So(sumTop, ShouldBeLessThanOrEqualTo, total)
			}
		}
	})

	Convey("Given an empty dataset", t, func() {
		got, err := aggregate.TopNBySum(dataset.New(nil), model.ColumnCompany, model.ColumnPoints, 3)
		So(err, ShouldBeNil)
		So(got, ShouldNotBeNil)
		So(got, ShouldBeEmpty)
	})
}

func TestTopNByCount(t *testing.T) {
	Convey("Given Award rows for senders s1,s1,s2 and two other rows", t, func() {
		ds := awards()
		isAward := dataset.Equals(model.ColumnFeedType, "Award")

		Convey("When counting the top 2 senders", func() {
			got := aggregate.TopNByCount(ds, isAward, model.ColumnSender, 2)

			Convey("Then s1 leads with 2 and s2 follows with 1", func() {
				So(got, ShouldResemble, []types.Entry{
					{Rank: 1, Key: "s1", Value: 2},
					{Rank: 2, Key: "s2", Value: 1},
				})
			})
		})

		Convey("When receivers tie", func() {
			got := aggregate.TopNByCount(ds, dataset.Everything, model.ColumnReceiver, 3)

			Convey("Then keys break the tie ascending", func() {
				So(got, ShouldResemble, []types.Entry{
					{Rank: 1, Key: "r1", Value: 2},
					{Rank: 1, Key: "r2", Value: 2},
					{Rank: 2, Key: "r3", Value: 1},
				})
			})
		})

		Convey("When no rows match", func() {
			got := aggregate.TopNByCount(ds, dataset.Equals(model.ColumnFeedType, "None"), model.ColumnSender, 3)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("Then calling twice gives the same answer", func() {
			a := aggregate.TopNByCount(ds, isAward, model.ColumnSender, 5)
			b := aggregate.TopNByCount(ds, isAward, model.ColumnSender, 5)
			So(a, ShouldResemble, b)
			So(ds.Len(), ShouldEqual, 5)
		})
	})
}

func TestTotalUnique(t *testing.T) {
	Convey("Given senders and receivers that overlap", t, func() {
		ds := dataset.New([]model.Event{
			{SenderID: "u1", ReceiverID: "u2"},
			{SenderID: "u2", ReceiverID: "u3"},
			{SenderID: "u1", ReceiverID: "u3"},
		})

		Convey("Then users are the size of the union", func() {
			So(aggregate.TotalUnique(ds, model.ColumnSender, model.ColumnReceiver), ShouldEqual, 3)
			So(aggregate.TotalUnique(ds, model.ColumnSender), ShouldEqual, 2)
		})

		Convey("Then an empty dataset has none", func() {
			So(aggregate.TotalUnique(dataset.New(nil), model.ColumnCompany), ShouldEqual, 0)
		})
	})
}

func TestUniqueCountPerGroup(t *testing.T) {
	Convey("Given awards across countries", t, func() {
		rows := aggregate.UniqueCountPerGroup(awards(), model.ColumnCountry, model.ColumnSender, model.ColumnReceiver)

		Convey("Then groups are sorted by key with per-key counts", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Key, ShouldEqual, "DE")
			So(rows[0].Counts, ShouldResemble, map[string]int{"sender_id": 2, "receiver_id": 2})
			So(rows[0].Total, ShouldEqual, 4)
			So(rows[1].Key, ShouldEqual, "FR")
			So(rows[1].Total, ShouldEqual, 2)
			So(rows[2].Key, ShouldEqual, "NL")
			So(rows[2].Counts, ShouldResemble, map[string]int{"sender_id": 1, "receiver_id": 2})
			So(rows[2].Total, ShouldEqual, 3)
		})

		Convey("When ranking by total", func() {
			top := aggregate.TopGroupCounts(rows, 2)
			So(top, ShouldResemble, []types.Entry{
				{Rank: 1, Key: "DE", Value: 4},
				{Rank: 2, Key: "NL", Value: 3},
			})
		})

		Convey("When the dataset is empty", func() {
			empty := aggregate.UniqueCountPerGroup(dataset.New(nil), model.ColumnCountry, model.ColumnSender)
			So(empty, ShouldNotBeNil)
			So(empty, ShouldBeEmpty)
			So(aggregate.TopGroupCounts(empty, 3), ShouldBeEmpty)
		})
	})
}

func TestTimeSeriesSum(t *testing.T) {
	Convey("Given dated rows", t, func() {
		ds := awards()

		Convey("When summing every row per day", func() {
			got, err := aggregate.TimeSeriesSum(ds, dataset.Everything, model.ColumnDate, model.ColumnPoints)
			So(err, ShouldBeNil)

			Convey("Then days are strictly increasing with one point each", func() {
				So(got, ShouldResemble, []types.Point{
					{Date: day(1), Value: 4.1},
					{Date: day(2), Value: 6},
					{Date: day(3), Value: 10.2},
				})
				for i := 1; i < len(got); i++ {
					So(got[i].Date.After(got[i-1].Date), ShouldBeTrue)
				}
			})
		})

		Convey("When filtering by company", func() {
			got, err := aggregate.TimeSeriesSum(ds, dataset.Equals(model.ColumnCompany, "X"), model.ColumnDate, model.ColumnPoints)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []types.Point{
				{Date: day(1), Value: 0.1},
				{Date: day(3), Value: 10},
			})
		})

		Convey("When the columns have the wrong type", func() {
			_, err := aggregate.TimeSeriesSum(ds, nil, model.ColumnCompany, model.ColumnPoints)
			So(errors.Is(err, aggregate.ErrNotDate), ShouldBeTrue)

			_, err = aggregate.TimeSeriesSum(ds, nil, model.ColumnDate, model.ColumnSender)
			So(errors.Is(err, aggregate.ErrNotNumeric), ShouldBeTrue)
		})

		Convey("When nothing matches", func() {
			got, err := aggregate.TimeSeriesSum(ds, dataset.Equals(model.ColumnCompany, "Z"), model.ColumnDate, model.ColumnPoints)
			So(err, ShouldBeNil)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestCountBy(t *testing.T) {
	Convey("Given rows per country", t, func() {
		got := aggregate.CountBy(awards(), model.ColumnCountry)

		Convey("Then counts follow first-seen order", func() {
			So(got, ShouldResemble, []types.Entry{
				{Key: "NL", Value: 2},
				{Key: "DE", Value: 2},
				{Key: "FR", Value: 1},
			})
		})

		Convey("Then an empty dataset gives an empty slice", func() {
			So(aggregate.CountBy(dataset.New(nil), model.ColumnCountry), ShouldResemble, []types.Entry{})
		})
	})
}
