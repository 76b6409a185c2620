package render

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/rrdash/internal/domain/view"
)

func TestRendererSVG(t *testing.T) {
	r := New(WithSize(640, 400))

	Convey("Given chart specs of every kind", t, func() {
		specs := []view.ChartSpec{
			{ID: "receivers", Kind: view.KindBar, Title: "Top receivers of Acme by points",
				Labels: []string{"r1", "r2"}, Values: []float64{300, 120}, Colors: []string{"#FA1004"}, Accent: "#8A2BE2", YTitle: "Points"},
			{ID: "geo", Kind: view.KindScatterGeo, Title: "Geographical Distribution",
				Labels: []string{"India", "Peru"}, Values: []float64{4, 1}},
			{ID: "companies", Kind: view.KindPie, Title: "Top companies by points",
				Labels: []string{"Acme", "Globex", "Zero"}, Values: []float64{70, 30, 0}, Colors: []string{"#FD3216", "#00FE35"}},
			{ID: "trend", Kind: view.KindLine, Title: "Time series trend of points for Acme",
				Labels: []string{"2023-06-01", "2023-06-02"}, Values: []float64{10, 25}, Colors: []string{"#04FCF5"}},
		}

		for _, spec := range specs {
			Convey("When drawing "+spec.ID, func() {
				var buf bytes.Buffer
				err := r.SVG(&buf, spec)

				Convey("Then an SVG document is written", func() {
					So(err, ShouldBeNil)
					So(buf.String(), ShouldStartWith, "<svg")
					So(buf.String(), ShouldContainSubstring, "</svg>")
				})
			})
		}
	})

	Convey("Given edge cases", t, func() {
		Convey("When a line has a single day", func() {
			var buf bytes.Buffer
			err := r.SVG(&buf, view.ChartSpec{ID: "trend", Kind: view.KindLine, Labels: []string{"2023-06-01"}, Values: []float64{5}})
			So(err, ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 0)
		})

		Convey("When every bar is zero", func() {
			var buf bytes.Buffer
			err := r.SVG(&buf, view.ChartSpec{ID: "receivers", Kind: view.KindBar, Labels: []string{"r1"}, Values: []float64{0}})
			So(err, ShouldBeNil)
		})

		Convey("When the chart has no values", func() {
			for _, kind := range []view.ChartKind{view.KindBar, view.KindPie, view.KindLine, view.KindScatterGeo} {
				var buf bytes.Buffer
				err := r.SVG(&buf, view.ChartSpec{ID: "x", Kind: kind})
				So(errors.Is(err, ErrEmptyChart), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			}
		})

		Convey("When a pie has only zero slices", func() {
			err := r.SVG(&bytes.Buffer{}, view.ChartSpec{ID: "companies", Kind: view.KindPie, Labels: []string{"a"}, Values: []float64{0}})
			So(errors.Is(err, ErrEmptyChart), ShouldBeTrue)
		})

		Convey("When the kind is unknown", func() {
			err := r.SVG(&bytes.Buffer{}, view.ChartSpec{ID: "x", Kind: "radar", Values: []float64{1}})
			So(errors.Is(err, ErrUnsupportedKind), ShouldBeTrue)
		})

		Convey("When line labels are not dates", func() {
			err := r.SVG(&bytes.Buffer{}, view.ChartSpec{ID: "x", Kind: view.KindLine, Labels: []string{"a", "b"}, Values: []float64{1, 2}})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValueRange(t *testing.T) {
	Convey("Given value sets", t, func() {
		So(valueRange(nil).Max, ShouldEqual, 1.0)
		So(valueRange([]float64{0, 0}).Max, ShouldEqual, 1.0)
		rng := valueRange([]float64{10, 100})
		So(rng.Min, ShouldEqual, 0.0)
		So(rng.Max, ShouldAlmostEqual, 110.0)
		So(valueRange([]float64{-5, 5}).Min, ShouldEqual, -5.0)
	})
}
