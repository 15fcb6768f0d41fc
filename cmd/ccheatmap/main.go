package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sdpower/ccheatmap/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:   "ccheatmap",
		Short: "Claude Code usage heatmap",
		Long:  `A CLI tool that renders Claude Code token usage from local JSONL logs as a calendar heatmap, with summary statistics.`,
	}

	rootCmd.AddCommand(
		commands.NewShowCommand(),
		commands.NewStatsCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
