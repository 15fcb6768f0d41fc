// Package loader discovers Claude Code JSONL log files and parses them
// into validated usage entries. Malformed lines are skipped, never fatal.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sdpower/ccheatmap/internal/types"
)

type Loader struct {
	maxWorkers int
	debug      bool
	timezone   *time.Location
}

// Result carries the merged entries plus skip accounting for one load.
// Entries appear in file-discovery order, which fixes the first-seen
// tie-break used by deduplication downstream.
type Result struct {
	Entries      []types.UsageEntry
	SkippedLines int
	SkippedFiles int
}

func New() *Loader {
	return &Loader{
		maxWorkers: 10,
		timezone:   time.Local,
	}
}

func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// SetTimezone fixes the location used to derive each entry's date key.
// Must be called before loading.
func (l *Loader) SetTimezone(loc *time.Location) {
	if loc != nil {
		l.timezone = loc
	}
}

// LoadFromPath recursively finds .jsonl files under path and parses them.
// A missing or unlistable root yields types.ErrDataNotFound, which callers
// treat as an empty dataset rather than a failure.
func (l *Loader) LoadFromPath(ctx context.Context, path string) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		if l.debug {
			fmt.Fprintf(os.Stderr, "Debug: data path not accessible: %s\n", path)
		}
		return Result{}, types.ErrDataNotFound
	}

	// Claude Code keeps session logs under a projects subdirectory.
	projectsPath := filepath.Join(path, "projects")
	if _, err := os.Stat(projectsPath); err == nil {
		path = projectsPath
	}

	paths, err := l.findJSONLFiles(path)
	if err != nil {
		return Result{}, types.ErrDataNotFound
	}

	if l.debug {
		fmt.Fprintf(os.Stderr, "Debug: found %d JSONL files in %s\n", len(paths), path)
	}

	if len(paths) == 0 {
		return Result{}, types.ErrDataNotFound
	}

	return l.loadParallel(ctx, paths)
}

type fileResult struct {
	entries []types.UsageEntry
	skipped int
	err     error
}

// loadParallel parses each file on a worker pool but reassembles results
// in discovery order, so the merged sequence is stable across runs.
func (l *Loader) loadParallel(ctx context.Context, paths []string) (Result, error) {
	results := make([]fileResult, len(paths))

	jobs := make(chan int, len(paths))

	workers := l.maxWorkers
	if workers > len(paths) {
		workers = len(paths)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					entries, skipped, err := l.loadFile(paths[idx])
					results[idx] = fileResult{entries: entries, skipped: skipped, err: err}
				}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out Result
	for i, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", paths[i], res.err)
			out.SkippedFiles++
			continue
		}
		out.Entries = append(out.Entries, res.entries...)
		out.SkippedLines += res.skipped
	}

	if l.debug {
		fmt.Fprintf(os.Stderr, "Debug: loaded %d entries, skipped %d lines, %d files\n",
			len(out.Entries), out.SkippedLines, out.SkippedFiles)
	}

	return out, nil
}

func (l *Loader) loadFile(path string) ([]types.UsageEntry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, types.LoaderError{Path: path, Err: err}
	}
	defer file.Close()

	var entries []types.UsageEntry
	skipped := 0

	scanner := bufio.NewScanner(file)
	// Assistant turns with large tool results can produce very long lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, ok := l.ParseLine(line)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, types.LoaderError{Path: path, Err: err}
	}

	return entries, skipped, nil
}

// rawRecord mirrors the JSONL schema. Required: timestamp plus
// message.usage with input_tokens and output_tokens. Everything else
// is optional.
type rawRecord struct {
	Timestamp string      `json:"timestamp"`
	Type      string      `json:"type"`
	RequestID string      `json:"requestId"`
	SessionID string      `json:"sessionId"`
	CostUSD   *float64    `json:"costUSD"`
	Message   *rawMessage `json:"message"`
}

type rawMessage struct {
	ID    string    `json:"id"`
	Model string    `json:"model"`
	Usage *rawUsage `json:"usage"`
}

type rawUsage struct {
	InputTokens         *int `json:"input_tokens"`
	OutputTokens        *int `json:"output_tokens"`
	CacheCreationTokens *int `json:"cache_creation_input_tokens"`
	CacheReadTokens     *int `json:"cache_read_input_tokens"`
}

// ParseLine validates a single JSONL line. The second return reports
// whether the line produced a usable entry; invalid lines are the
// caller's skip count, never an error.
func (l *Loader) ParseLine(line string) (types.UsageEntry, bool) {
	var raw rawRecord
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return types.UsageEntry{}, false
	}

	ts, ok := parseTimestamp(raw.Timestamp)
	if !ok {
		return types.UsageEntry{}, false
	}

	if raw.Message == nil || raw.Message.Usage == nil {
		return types.UsageEntry{}, false
	}
	usage := raw.Message.Usage
	if usage.InputTokens == nil || usage.OutputTokens == nil {
		return types.UsageEntry{}, false
	}
	if *usage.InputTokens < 0 || *usage.OutputTokens < 0 {
		return types.UsageEntry{}, false
	}
	if usage.CacheCreationTokens != nil && *usage.CacheCreationTokens < 0 {
		return types.UsageEntry{}, false
	}
	if usage.CacheReadTokens != nil && *usage.CacheReadTokens < 0 {
		return types.UsageEntry{}, false
	}

	// Synthetic entries are placeholders emitted by the client, not usage.
	if raw.Message.Model == "<synthetic>" {
		return types.UsageEntry{}, false
	}

	entry := types.UsageEntry{
		Timestamp:    ts,
		DateKey:      ts.In(l.timezone).Format("2006-01-02"),
		RequestID:    raw.RequestID,
		MessageID:    raw.Message.ID,
		SessionID:    raw.SessionID,
		Model:        raw.Message.Model,
		InputTokens:  *usage.InputTokens,
		OutputTokens: *usage.OutputTokens,
	}
	if usage.CacheCreationTokens != nil {
		entry.CacheCreationTokens = *usage.CacheCreationTokens
	}
	if usage.CacheReadTokens != nil {
		entry.CacheReadTokens = *usage.CacheReadTokens
	}
	if raw.CostUSD != nil {
		entry.Cost = *raw.CostUSD
	}

	return entry, true
}

var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999Z",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range timestampFormats {
		if ts, err := time.Parse(format, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// findJSONLFiles walks basePath collecting .jsonl files. filepath.Walk
// visits entries in lexical order, so discovery order is stable.
func (l *Loader) findJSONLFiles(basePath string) ([]string, error) {
	var files []string

	err := filepath.Walk(basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // ignore unreadable subtrees
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
