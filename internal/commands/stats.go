package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccheatmap/internal/aggregator"
	"github.com/sdpower/ccheatmap/internal/output"
	"github.com/sdpower/ccheatmap/internal/types"
	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	var (
		from         string
		to           string
		dataDir      string
		jsonOut      bool
		excludeCache bool
		timezone     string
		noColor      bool
		debug        bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate usage statistics",
		Long:  `Print total token usage, per-model breakdown, and daily peak/average for Claude Code usage data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := parseTimezone(timezone)
			if err != nil {
				return err
			}

			for _, date := range []string{from, to} {
				if date == "" {
					continue
				}
				if _, err := time.Parse("2006-01-02", date); err != nil {
					return fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD", types.ErrInvalidRange, date)
				}
			}
			if from != "" && to != "" && from > to {
				return fmt.Errorf("%w: from %s is after to %s", types.ErrInvalidRange, from, to)
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
			report := agg.Stats(entries, from, to, excludeCache)

			formatter := output.NewStatsFormatter(noColor)
			if jsonOut {
				text, err := formatter.FormatJSON(report)
				if err != nil {
					return err
				}
				fmt.Print(text)
				return nil
			}

			fmt.Print(formatter.Format(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Path to Claude data directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&excludeCache, "exclude-cache", false, "Omit cache-creation/read tokens from totals")
	cmd.Flags().StringVarP(&timezone, "timezone", "z", "", "Timezone for date grouping (e.g. UTC, Asia/Tokyo). Default: system timezone")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show debug information")

	return cmd
}
