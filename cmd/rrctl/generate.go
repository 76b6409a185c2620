package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	repository "github.com/okian/rrdash/internal/adapters/repository"
	"github.com/okian/rrdash/internal/domain/model"
	"github.com/okian/rrdash/internal/sampledata"
	"github.com/okian/rrdash/pkg/logger"
)

func newGenerateCmd() *cobra.Command {
	cfg := sampledata.DefaultConfig()
	var (
		out   string
		start string
		table string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a deterministic sample dataset",
		Long: `Generate writes synthetic recognition events. The output format follows
the file extension: .db, .sqlite and .sqlite3 produce a SQLite database,
anything else CSV. With no --out the CSV goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := time.Parse(model.DateLayout, start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			cfg.Start = t

			g, err := sampledata.New(cfg)
			if err != nil {
				return err
			}
			events, err := g.Events(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case out == "" || out == "-":
				return sampledata.WriteCSV(cmd.OutOrStdout(), events)
			case repository.SourceKind(out) == repository.SourceSQLite:
				err = sampledata.WriteSQLite(cmd.Context(), out, table, events)
			default:
				err = writeCSVFile(out, events)
			}
			if err != nil {
				return err
			}
			logger.Get().Info(cmd.Context(), "sample written",
				logger.String("path", out),
				logger.Int("rows", len(events)),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of events")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	f.IntVar(&cfg.Days, "days", cfg.Days, "number of days the events span")
	f.IntVar(&cfg.Users, "users", cfg.Users, "number of distinct users")
	f.StringVar(&start, "start", cfg.Start.Format(model.DateLayout), "first day, YYYY-MM-DD")
	f.StringSliceVar(&cfg.Companies, "companies", cfg.Companies, "company names")
	f.StringSliceVar(&cfg.Countries, "countries", cfg.Countries, "country names")
	f.StringVar(&table, "table", repository.DefaultTable, "SQLite table name")
	f.StringVarP(&out, "out", "o", "", "output file, - for stdout")
	return cmd
}

func writeCSVFile(path string, events []model.Event) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return sampledata.WriteCSV(f, events)
}
