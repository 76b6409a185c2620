// Package service owns the loaded dataset and answers the dashboard queries
// the HTTP API needs.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/rrdash/internal/adapters/render"
	repository "github.com/okian/rrdash/internal/adapters/repository"
	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/view"
	"github.com/okian/rrdash/pkg/logger"
	"github.com/okian/rrdash/pkg/metrics"
)

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	binder   *view.Binder
	renderer *render.Renderer

	// Configuration
	dataPath    string
	loadOpts    []repository.Option
	viewOpts    []view.Option
	renderOpts  []render.Option
	preloaded   *dataset.Dataset
	loadTimeout time.Duration

	// State
	started  bool
	loadedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPath sets the CSV or SQLite file loaded on Start.
func WithDataPath(path string) Option {
	return func(s *Service) {
		s.dataPath = path
	}
}

// WithDataset serves ds instead of loading a file.
func WithDataset(ds *dataset.Dataset) Option {
	return func(s *Service) {
		s.preloaded = ds
	}
}

// WithLoadOptions passes options to the dataset loader.
func WithLoadOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.loadOpts = append(s.loadOpts, opts...)
	}
}

// WithViewOptions passes options to the view binder.
func WithViewOptions(opts ...view.Option) Option {
	return func(s *Service) {
		s.viewOpts = append(s.viewOpts, opts...)
	}
}

// WithRenderOptions passes options to the chart renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(s *Service) {
		s.renderOpts = append(s.renderOpts, opts...)
	}
}

// WithLoadTimeout bounds how long Start may spend loading the dataset.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loadTimeout: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and builds the view binder. A load failure is
// returned as a *repository.LoadError and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	ds := s.preloaded
	if ds == nil {
		s.logger.Info(ctx, "loading dataset", logger.String("path", s.dataPath))
		loadCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
		opts := append([]repository.Option{repository.WithLogger(s.logger)}, s.loadOpts...)
		loaded, err := repository.LoadFile(loadCtx, s.dataPath, opts...)
		if err != nil {
			return fmt.Errorf("start dashboard service: %w", err)
		}
		ds = loaded
	}

	s.binder = view.New(ds, s.viewOpts...)
	s.renderer = render.New(s.renderOpts...)
	s.loadedAt = time.Now()
	s.started = true

	s.logger.Info(ctx, "dashboard service started", logger.Int("rows", ds.Len()))
	return nil
}

// Stop releases the dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.binder = nil
	s.renderer = nil
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) components() (*view.Binder, *render.Renderer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.binder, s.renderer, nil
}

// Render builds the display for sel.
func (s *Service) Render(ctx context.Context, sel view.Selection) (view.Display, error) {
	b, _, err := s.components()
	if err != nil {
		return view.Display{}, err
	}

	start := time.Now()
	d := b.Render(sel)
	mode := string(d.Mode)
	metrics.RecordViewLatency(mode, float64(time.Since(start).Microseconds())/1000)
	metrics.RecordViewRendered(mode)
	if d.Notice != "" {
		metrics.RecordViewEmpty(mode)
	}

	s.logger.Debug(ctx, "view rendered",
		logger.String("mode", mode),
		logger.String("date", sel.Date),
		logger.String("company", sel.Company),
		logger.String("insight", string(sel.Insight)),
		logger.Int("sections", len(d.Sections)),
	)
	return d, nil
}

// Chart returns the chart id of the display for sel.
func (s *Service) Chart(ctx context.Context, sel view.Selection, id string) (view.ChartSpec, error) {
	d, err := s.Render(ctx, sel)
	if err != nil {
		return view.ChartSpec{}, err
	}
	spec, ok := d.Chart(id)
	if !ok {
		return view.ChartSpec{}, fmt.Errorf("chart %q: %w", id, ErrUnknownChart)
	}
	return spec, nil
}

// ChartSVG writes chart id of the display for sel as SVG to w.
func (s *Service) ChartSVG(ctx context.Context, w io.Writer, sel view.Selection, id string) error {
	spec, err := s.Chart(ctx, sel, id)
	if err != nil {
		return err
	}
	return s.Draw(ctx, w, spec)
}

// Draw writes spec as SVG to w. Nothing is written on error.
func (s *Service) Draw(_ context.Context, w io.Writer, spec view.ChartSpec) error {
	_, r, err := s.components()
	if err != nil {
		return err
	}
	return r.SVG(w, spec)
}

// Choices returns the selectable values of the loaded dataset.
func (s *Service) Choices(_ context.Context) (view.Choices, error) {
	b, _, err := s.components()
	if err != nil {
		return view.Choices{}, err
	}
	return b.Choices(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":  s.started,
		"dataPath": s.dataPath,
	}
	if s.started {
		ds := s.binder.Dataset()
		stats["rows"] = ds.Len()
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		c := s.binder.Choices()
		stats["companies"] = len(c.Companies)
		stats["countries"] = len(c.Countries)
		stats["days"] = len(c.Dates)
	}
	return stats
}
