package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/pkg/logger"
	"github.com/okian/rrdash/pkg/metrics"
)

// Source kinds used as metric labels.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// SourceKind returns the loader LoadFile uses for path.
func SourceKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return SourceCSV
	}
}

// LoadFile loads the dataset at path. SQLite files (.db, .sqlite, .sqlite3)
// are read from the configured table; anything else is delimited text.
// A .tsv file defaults to tab separators.
func LoadFile(ctx context.Context, path string, opts ...Option) (*dataset.Dataset, error) {
	kind := SourceKind(path)
	defaults := []Option{WithSource(path)}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		defaults = append(defaults, WithDelimiter('\t'))
	}
	l := newLoader(append(defaults, opts...))

	start := time.Now()
	ds, err := l.file(ctx, kind, path)
	elapsed := time.Since(start)

	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			metrics.RecordDatasetLoadError(kind, le.Kind())
		}
		if l.log != nil {
			l.log.Error(ctx, "dataset load failed", logger.String("path", path), logger.Error(err))
		}
		return nil, err
	}

	metrics.RecordDatasetLoadDuration(kind, float64(elapsed.Milliseconds()))
	metrics.UpdateDatasetRows(kind, ds.Len())
	if l.log != nil {
		l.log.Info(ctx, "dataset loaded",
			logger.String("path", path),
			logger.String("kind", kind),
			logger.Int("rows", ds.Len()),
			logger.Duration("took", elapsed),
		)
	}
	return ds, nil
}

func (l *loader) file(ctx context.Context, kind, path string) (*dataset.Dataset, error) {
	if kind == SourceSQLite {
		return l.sqlite(ctx, path, l.table)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, loadError(l.source, 0, "source missing", ErrSourceMissing, err)
	}
	defer func() { _ = f.Close() }()
	return l.csv(ctx, f)
}
