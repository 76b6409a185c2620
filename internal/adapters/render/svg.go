// Package render draws chart specifications as SVG.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/rrdash/internal/domain/model"
	"github.com/okian/rrdash/internal/domain/view"
	"github.com/okian/rrdash/pkg/metrics"
)

// ContentType is the media type of rendered charts.
const ContentType = "image/svg+xml"

// Renderer turns ChartSpecs into SVG documents. It is stateless and safe for
// concurrent use.
type Renderer struct {
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// New returns a Renderer with an 800x480 canvas unless configured otherwise.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: 800, height: 480}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SVG writes spec to w. Nothing is written when an error is returned.
// Scatter-geo charts have no map projection here and are drawn as a bar
// chart of the per-country values.
func (r *Renderer) SVG(w io.Writer, spec view.ChartSpec) error {
	var buf bytes.Buffer
	err := r.draw(&buf, spec)
	if err != nil {
		reason := "render"
		switch {
		case errors.Is(err, ErrEmptyChart):
			reason = "empty"
		case errors.Is(err, ErrUnsupportedKind):
			reason = "unsupported"
		}
		metrics.RecordChartError(string(spec.Kind), reason)
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write chart %s: %w", spec.ID, err)
	}
	metrics.RecordChartRendered(string(spec.Kind))
	return nil
}

func (r *Renderer) draw(w io.Writer, spec view.ChartSpec) error {
	switch spec.Kind {
	case view.KindBar, view.KindScatterGeo:
		if spec.Empty() {
			return fmt.Errorf("chart %s: %w", spec.ID, ErrEmptyChart)
		}
		return r.bar(w, spec)
	case view.KindPie:
		return r.pie(w, spec)
	case view.KindLine:
		if spec.Empty() {
			return fmt.Errorf("chart %s: %w", spec.ID, ErrEmptyChart)
		}
		return r.line(w, spec)
	default:
		return fmt.Errorf("chart %s kind %q: %w", spec.ID, spec.Kind, ErrUnsupportedKind)
	}
}

func (r *Renderer) titleStyle(spec view.ChartSpec) chart.Style {
	st := chart.Style{FontSize: 14}
	if spec.Accent != "" {
		st.FontColor = color(spec.Accent)
	}
	return st
}

func (r *Renderer) bar(w io.Writer, spec view.ChartSpec) error {
	bars := make([]chart.Value, len(spec.Values))
	for i, v := range spec.Values {
		bars[i] = chart.Value{Label: label(spec.Labels, i), Value: v}
		if c := pick(spec.Colors, i); c != "" {
			bars[i].Style = chart.Style{FillColor: color(c), StrokeColor: color(c)}
		}
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: r.titleStyle(spec),
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  spec.YTitle,
			Range: valueRange(spec.Values),
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart %s: %w", spec.ID, err)
	}
	return nil
}

func (r *Renderer) pie(w io.Writer, spec view.ChartSpec) error {
	values := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		if v <= 0 || math.IsNaN(v) {
			continue
		}
		val := chart.Value{Label: label(spec.Labels, i), Value: v}
		if c := pick(spec.Colors, i); c != "" {
			val.Style = chart.Style{FillColor: color(c), StrokeColor: drawing.ColorWhite, StrokeWidth: 2}
		}
		values = append(values, val)
	}
	if len(values) == 0 {
		return fmt.Errorf("chart %s: %w", spec.ID, ErrEmptyChart)
	}

	pc := chart.PieChart{
		Title:      spec.Title,
		TitleStyle: r.titleStyle(spec),
		Width:      r.width,
		Height:     r.height,
		Values:     values,
	}
	if err := pc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render pie chart %s: %w", spec.ID, err)
	}
	return nil
}

func (r *Renderer) line(w io.Writer, spec view.ChartSpec) error {
	times := make([]time.Time, len(spec.Values))
	for i := range spec.Values {
		t, err := time.Parse(model.DateLayout, label(spec.Labels, i))
		if err != nil {
			return fmt.Errorf("chart %s: label %q is not a date: %w", spec.ID, label(spec.Labels, i), err)
		}
		times[i] = t
	}
	ys := append([]float64(nil), spec.Values...)
	// go-chart needs two distinct X values to build a range.
	if len(times) == 1 {
		times = append(times, times[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	st := chart.Style{StrokeWidth: 2, DotWidth: 3}
	if c := pick(spec.Colors, 0); c != "" {
		st.StrokeColor = color(c)
		st.DotColor = color(c)
	}

	ch := chart.Chart{
		Title:      spec.Title,
		TitleStyle: r.titleStyle(spec),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           spec.XTitle,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  spec.YTitle,
			Range: valueRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: spec.YTitle, XValues: times, YValues: ys, Style: st},
		},
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render line chart %s: %w", spec.ID, err)
	}
	return nil
}

// valueRange spans zero to the largest value with some headroom. An all-zero
// series still gets a non-empty range.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	} else {
		hi += (hi - lo) * 0.1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}
	return max(8, min(60, (width-120)/(n*2)))
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func pick(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}
