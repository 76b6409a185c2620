package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/okian/rrdash/internal/app"
	"github.com/okian/rrdash/internal/config"
	"github.com/okian/rrdash/internal/domain/view"
	"github.com/okian/rrdash/pkg/logger"
)

func newReportCmd() *cobra.Command {
	var (
		data     string
		mode     string
		date     string
		company  string
		insight  string
		asJSON   bool
		chartDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a dashboard view of a dataset",
		Long: `Report loads a dataset and prints the view the dashboard would show for
the given selection. Settings not given as flags come from the same
configuration the server reads (RRDASH_* variables, .env, RRDASH_CONFIG).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if data != "" {
				cfg.DataPath = data
			}

			svc := app.New(append(app.OptionsFromConfig(cfg), app.WithLogger(logger.Get()))...)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			sel := view.Selection{
				Mode:    view.ParseMode(mode),
				Date:    strings.TrimSpace(date),
				Company: strings.TrimSpace(company),
				Insight: view.ParseInsight(insight),
			}
			d, err := svc.Render(ctx, sel)
			if err != nil {
				return err
			}

			if chartDir != "" {
				if err := writeCharts(cmd, svc, sel, d, chartDir); err != nil {
					return err
				}
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			return printDisplay(cmd.OutOrStdout(), d)
		},
	}

	f := cmd.Flags()
	f.StringVar(&data, "data", "", "dataset file (default from config data_path)")
	f.StringVar(&mode, "mode", string(view.ModeOverview), "overview or insights")
	f.StringVar(&date, "date", "", "restrict to one day")
	f.StringVar(&company, "company", "", "company for the receivers and trend charts")
	f.StringVar(&insight, "insight", "", "country, company, sender or receiver")
	f.BoolVar(&asJSON, "json", false, "print the display as JSON")
	f.StringVar(&chartDir, "charts", "", "also write every chart as SVG into this directory")
	return cmd
}

func writeCharts(cmd *cobra.Command, svc *app.Service, sel view.Selection, d view.Display, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	for _, sec := range d.Sections {
		for _, c := range sec.Charts {
			if c.Empty() {
				continue
			}
			path := filepath.Join(dir, c.ID+".svg")
			if err := writeChart(cmd, svc, sel, c.ID, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChart(cmd *cobra.Command, svc *app.Service, sel view.Selection, id, path string) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return svc.ChartSVG(cmd.Context(), f, sel, id)
}

// printDisplay writes d as plain text.
func printDisplay(w io.Writer, d view.Display) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\n", d.Title, d.Mode)
	if d.Notice != "" {
		fmt.Fprintf(tw, "%s\n", d.Notice)
	}
	for _, sec := range d.Sections {
		fmt.Fprintf(tw, "\n== %s ==\n", sec.Title)
		for _, ch := range sec.Choices {
			if ch.Selected != "" {
				fmt.Fprintf(tw, "%s:\t%s\n", ch.Label, ch.Selected)
			}
		}
		if sec.Notice != "" {
			fmt.Fprintf(tw, "%s\n", sec.Notice)
		}
		for _, s := range sec.Stats {
			fmt.Fprintf(tw, "%s\t%s\n", s.Label, s.Value)
		}
		for _, c := range sec.Charts {
			fmt.Fprintf(tw, "\n-- %s --\n", c.Title)
			for i, v := range c.Values {
				label := ""
				if i < len(c.Labels) {
					label = c.Labels[i]
				}
				fmt.Fprintf(tw, "%s\t%g\n", label, v)
			}
		}
		for _, l := range sec.Lists {
			fmt.Fprintf(tw, "\n-- %s --\n", l.Title)
			if l.Notice != "" {
				fmt.Fprintf(tw, "%s\n", l.Notice)
			}
			for i, item := range l.Items {
				fmt.Fprintf(tw, "%d.\t%s\n", i+1, item)
			}
		}
	}
	return tw.Flush()
}
