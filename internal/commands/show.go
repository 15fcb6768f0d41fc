package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccheatmap/internal/aggregator"
	"github.com/sdpower/ccheatmap/internal/heatmap"
	"github.com/sdpower/ccheatmap/internal/interactive"
	"github.com/sdpower/ccheatmap/internal/output"
	"github.com/sdpower/ccheatmap/internal/types"
	"github.com/spf13/cobra"
)

func NewShowCommand() *cobra.Command {
	var (
		year            int
		startMonth      int
		format          string
		dataDir         string
		outputPath      string
		timezone        string
		noColor         bool
		interactiveMode bool
		debug           bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a calendar heatmap of Claude Code token usage",
		Long:  `Render a GitHub-style contribution heatmap of daily token usage, either in the terminal or as an SVG file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := parseTimezone(timezone)
			if err != nil {
				return err
			}

			if year == 0 {
				year = time.Now().In(loc).Year()
			}
			if startMonth < 1 || startMonth > 12 {
				return fmt.Errorf("%w: start month must be 1-12, got %d", types.ErrInvalidRange, startMonth)
			}
			if format != "terminal" && format != "svg" {
				return fmt.Errorf("%w: unknown format %q (want terminal or svg)", types.ErrInvalidFormat, format)
			}

			entries, found, err := loadEntries(cmd.Context(), dataDir, loc, debug)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("No usage data found.")
				return nil
			}

			agg := aggregator.New(nil)
			days := agg.DailyUsage(entries, "", "")

			if interactiveMode {
				viewer := interactive.New(interactive.Options{
					Days:       days,
					Year:       year,
					StartMonth: startMonth,
					NoColor:    noColor,
				})
				return viewer.Start(cmd.Context())
			}

			var grid types.ContributionGrid
			if startMonth == 1 {
				grid = heatmap.BuildYearGrid(year, days)
			} else {
				grid = heatmap.BuildRollingGrid(year, startMonth, days)
			}

			if format == "svg" {
				path := outputPath
				if path == "" {
					path = output.DefaultFileName(year, startMonth)
				}
				renderer := output.NewSVGRenderer()
				if err := renderer.WriteFile(path, grid); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", path)
				return nil
			}

			renderer := output.NewHeatmapRenderer(noColor)
			fmt.Print(renderer.Render(grid))
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year to render (defaults to current year)")
	cmd.Flags().IntVarP(&startMonth, "start-month", "m", 1, "First month of a rolling 12-month window (1-12)")
	cmd.Flags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, svg)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Path to Claude data directory")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file for SVG format (defaults to claude-usage-<year>.svg)")
	cmd.Flags().StringVarP(&timezone, "timezone", "z", "", "Timezone for date grouping (e.g. UTC, Asia/Tokyo). Default: system timezone")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&interactiveMode, "interactive", "i", false, "Browse years in a full-screen view")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show debug information")

	return cmd
}
