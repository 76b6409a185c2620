// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath is the CSV, TSV or SQLite file loaded at startup.
	DataPath string `koanf:"data_path"`

	// DataTable is the SQLite table holding the events.
	DataTable string `koanf:"data_table"`

	// CSVDelimiter is the field separator of CSV files. "tab" and "\t" mean a tab.
	CSVDelimiter string `koanf:"csv_delimiter"`

	// DateLayouts are the Go time layouts tried for the date column.
	DateLayouts []string `koanf:"date_layouts"`

	// AwardFeedType is the Feed_type value counted as an award.
	AwardFeedType string `koanf:"award_feed_type"`

	TopCompanies int `koanf:"top_companies"`
	TopReceivers int `koanf:"top_receivers"`
	InsightLimit int `koanf:"insight_limit"`

	// ChartWidth and ChartHeight size the SVG charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// defaultDateLayouts matches the layouts the dataset loader accepts when
// none are configured.
var defaultDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		DataPath:      "data/events.csv",
		DataTable:     "events",
		CSVDelimiter:  ",",
		DateLayouts:   slices.Clone(defaultDateLayouts),
		AwardFeedType: "Award",
		TopCompanies:  5,
		TopReceivers:  5,
		InsightLimit:  3,
		ChartWidth:    800,
		ChartHeight:   480,
	}
}

// Delimiter returns the CSV field separator as a rune.
func (c *Config) Delimiter() rune {
	switch strings.ToLower(c.CSVDelimiter) {
	case "tab", `\t`, "\t":
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// Validate reports the first invalid setting as an ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.Delimiter() == utf8.RuneError || c.Delimiter() == '"' || c.Delimiter() == '\n' || c.Delimiter() == '\r':
		return fmt.Errorf("%w: csv_delimiter %q is not a usable separator", ErrInvalidConfig, c.CSVDelimiter)
	case utf8.RuneCountInString(c.CSVDelimiter) != 1 && c.Delimiter() != '\t':
		return fmt.Errorf("%w: csv_delimiter must be a single character, got %q", ErrInvalidConfig, c.CSVDelimiter)
	case len(c.DateLayouts) == 0:
		return fmt.Errorf("%w: date_layouts must not be empty", ErrInvalidConfig)
	case c.TopCompanies < 1, c.TopReceivers < 1, c.InsightLimit < 1:
		return fmt.Errorf("%w: top_companies, top_receivers and insight_limit must be positive", ErrInvalidConfig)
	case c.ChartWidth < 1 || c.ChartHeight < 1:
		return fmt.Errorf("%w: chart_width and chart_height must be positive", ErrInvalidConfig)
	}
	return nil
}
