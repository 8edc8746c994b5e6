package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ademuri/listening-report/internal/analysis"
	"github.com/ademuri/listening-report/internal/config"
	"github.com/ademuri/listening-report/internal/history"
	"github.com/ademuri/listening-report/internal/log"
	"github.com/ademuri/listening-report/internal/render"
	"github.com/ademuri/listening-report/internal/store"
)

const reportYAML = "report.yaml"

var reportCmd = &cobra.Command{
	Use:   "report [from] [to]",
	Short: "Generates the listening history reports",
	Long: `Loads the history files matching --input and writes the text reports and
report.yaml to --output.

With one argument, only that year, month (yyyy-mm) or day (yyyy-mm-dd) is
reported, or everything since a relative date such as 30d, 12w, 6m or 1y.
With two, the range from the first date up to but excluding the second.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}

		start, end, err := parseDateRangeFromArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}

		if err := generateReports(cmd.Context(), afero.NewOsFs(), cfg, start, end); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// generateReports runs the whole pipeline. Nothing is written unless every
// event loads and the report builds.
func generateReports(ctx context.Context, fs afero.Fs, cfg config.Config, start, end time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}

	events, err := history.Load(fs, cfg.Input)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if !start.IsZero() || !end.IsZero() {
		events = history.Between(events, start, end)
		log.S().Infof("%d events in the requested range", len(events))
		if len(events) == 0 {
			return fmt.Errorf("%w: no events in the requested range", history.ErrNoInput)
		}
	}

	report, err := analysis.GenerateReport(ctx, events, cfg.Options())
	if err != nil {
		return fmt.Errorf("analyzing history: %w", err)
	}

	out, err := store.New(fs, cfg.Output)
	if err != nil {
		return fmt.Errorf("preparing output: %w", err)
	}

	files := render.Files(report, render.Options{Hyperlinks: cfg.Hyperlinks})
	if cfg.Clean {
		if err := out.Remove(reportNames(files)...); err != nil {
			return fmt.Errorf("cleaning %s: %w", out.Dir(), err)
		}
	}

	for _, f := range files {
		if err := out.Write(f.Name, f.Render); err != nil {
			return err
		}
		log.S().Debugf("Wrote %s", f.Name)
	}
	if err := out.WriteYAML(reportYAML, report); err != nil {
		return err
	}

	written, err := out.Files()
	if err != nil {
		return err
	}
	log.S().Debugf("%s now holds %v", out.Dir(), written)
	log.S().Infof("Reports written to %s", out.Dir())
	return nil
}

// reportNames lists every file a run writes. Only these are removed when
// cleaning, since the output directory may also hold the history export.
func reportNames(files []render.File) []string {
	names := make([]string, 0, len(files)+1)
	for _, f := range files {
		names = append(names, f.Name)
	}
	return append(names, reportYAML)
}
