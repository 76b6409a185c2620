// Package repository loads recognition events from files into a dataset.
package repository

import (
	"slices"

	"github.com/okian/rrdash/pkg/logger"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "events"

// DefaultDateLayouts are tried in order for the date column.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

type loader struct {
	source      string
	delimiter   rune
	table       string
	dateLayouts []string
	log         logger.Logger
}

func newLoader(opts []Option) *loader {
	l := &loader{
		source:      "reader",
		delimiter:   ',',
		table:       DefaultTable,
		dateLayouts: DefaultDateLayouts,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Option applies a configuration option to a load.
type Option func(*loader)

// WithSource names the source in errors and metrics.
func WithSource(name string) Option {
	return func(l *loader) {
		if name != "" {
			l.source = name
		}
	}
}

// WithDelimiter sets the field separator of delimited text.
func WithDelimiter(r rune) Option {
	return func(l *loader) {
		if r != 0 {
			l.delimiter = r
		}
	}
}

// WithTable sets the SQLite table LoadFile reads.
func WithTable(name string) Option {
	return func(l *loader) {
		if name != "" {
			l.table = name
		}
	}
}

// WithDateLayouts replaces the layouts tried for the date column.
func WithDateLayouts(layouts ...string) Option {
	return func(l *loader) {
		if len(layouts) > 0 {
			l.dateLayouts = slices.Clone(layouts)
		}
	}
}

// WithLogger logs load progress to log.
func WithLogger(log logger.Logger) Option {
	return func(l *loader) {
		l.log = log
	}
}
