package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sdpower/ccheatmap/internal/aggregator"
	"github.com/sdpower/ccheatmap/internal/loader"
	"github.com/sdpower/ccheatmap/internal/pricing"
	"github.com/sdpower/ccheatmap/internal/types"
)

func getDefaultDataPath() string {
	if claudeConfigDir := os.Getenv("CLAUDE_CONFIG_DIR"); claudeConfigDir != "" {
		return claudeConfigDir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	claudePath := filepath.Join(homeDir, ".claude", "projects")
	if _, err := os.Stat(claudePath); err == nil {
		return claudePath
	}

	configPath := filepath.Join(homeDir, ".config", "claude", "projects")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return claudePath
}

func parseTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", name, err)
	}
	return loc, nil
}

// loadEntries runs the ingest half of the pipeline: discover and parse
// files, merge in discovery order, deduplicate, estimate costs. The
// second return is false when the data directory held no usable data,
// which callers report and treat as a clean exit.
func loadEntries(ctx context.Context, dataDir string, loc *time.Location, debug bool) ([]types.UsageEntry, bool, error) {
	if dataDir == "" {
		dataDir = getDefaultDataPath()
	}

	dataLoader := loader.New()
	dataLoader.SetDebug(debug)
	dataLoader.SetTimezone(loc)

	result, err := dataLoader.LoadFromPath(ctx, dataDir)
	if err != nil {
		if errors.Is(err, types.ErrDataNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if result.SkippedLines > 0 && debug {
		fmt.Fprintf(os.Stderr, "Debug: skipped %d malformed lines\n", result.SkippedLines)
	}

	entries := aggregator.Deduplicate(result.Entries)
	if len(entries) == 0 {
		return nil, false, nil
	}

	agg := aggregator.New(pricing.NewService())
	entries = agg.EstimateCosts(entries)

	return entries, true, nil
}
