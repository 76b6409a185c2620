// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/rrdash/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Render builds the dashboard display for a selection.
	Render(ctx context.Context, sel view.Selection) (view.Display, error)

	// Choices lists the values a selection can take.
	Choices(ctx context.Context) (view.Choices, error)

	// Draw writes a chart as SVG. Nothing is written on error.
	Draw(ctx context.Context, w io.Writer, spec view.ChartSpec) error
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	viewHandler    *ViewHandler
	choicesHandler *ChoicesHandler
	chartHandler   *ChartHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		viewHandler:    NewViewHandler(deps),
		choicesHandler: NewChoicesHandler(deps),
		chartHandler:   NewChartHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/view", MetricsMiddleware(s.viewHandler.HandleGetView, "view"))
	mux.HandleFunc("/api/choices", MetricsMiddleware(s.choicesHandler.HandleGetChoices, "choices"))
	mux.HandleFunc(chartsPrefix, MetricsMiddleware(s.chartHandler.HandleGetChart, "chart"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeKindError picks the status and code from the error kind.
func writeKindError(w http.ResponseWriter, err error) {
	st, code := status(err)
	writeError(w, st, code, err)
}
