package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/okian/rrdash/internal/adapters/render"
	"github.com/okian/rrdash/internal/domain/view"
)

const chartsPrefix = "/api/charts/"

var knownCharts = map[string]bool{
	view.ChartGeo:       true,
	view.ChartCompanies: true,
	view.ChartReceivers: true,
	view.ChartTrend:     true,
}

// ChartDependencies defines the interface for drawing charts.
type ChartDependencies interface {
	Render(ctx context.Context, sel view.Selection) (view.Display, error)
	Draw(ctx context.Context, w io.Writer, spec view.ChartSpec) error
}

// ChartHandler handles chart image requests.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// HandleGetChart handles GET /api/charts/{id}.svg requests. The chart is
// taken from the display of the selection in the query string. An unknown
// chart is 404; a chart the selection leaves without data is 422.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, chartsPrefix), ".svg")
	if !ok || !knownCharts[id] {
		writeKindError(w, NewKind(op, ErrNotFound))
		return
	}

	d, err := h.deps.Render(r.Context(), view.ParseSelection(r.URL.Query()))
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	spec, ok := d.Chart(id)
	if !ok || spec.Empty() {
		writeKindError(w, NewKind(op, ErrUnprocessable))
		return
	}

	var buf bytes.Buffer
	if err := h.deps.Draw(r.Context(), &buf, spec); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			writeKindError(w, WrapKind(op, ErrUnprocessable, err))
			return
		}
		writeKindError(w, WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
