package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sdpower/ccheatmap/internal/heatmap"
	"github.com/sdpower/ccheatmap/internal/types"
)

func TestShortenModelName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"claude-opus-4-1-20250805", "Opus-4.1"},
		{"claude-sonnet-4-5-20250929", "Sonnet-4.5"},
		{"claude-haiku-4-5-20251001", "Haiku-4.5"},
		{"claude-opus-4-20250514", "Opus-4"},
		{"claude-sonnet-4-20250514", "Sonnet-4"},
		{"claude-haiku-3-20240307", "Haiku-3"},
		{"", "(unknown)"},
		{"short-model", "short-model"},
		{"very-long-model-name-that-exceeds-the-limit", "very-long-model-name"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := ShortenModelName(tc.input)
			if result != tc.expected {
				t.Errorf("ShortenModelName(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tc := range testCases {
		if got := FormatNumber(tc.input); got != tc.expected {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDefaultFileName(t *testing.T) {
	if got := DefaultFileName(2024, 1); got != "claude-usage-2024.svg" {
		t.Errorf("DefaultFileName(2024, 1) = %q", got)
	}
	if got := DefaultFileName(2024, 7); got != "claude-usage-2024-07.svg" {
		t.Errorf("DefaultFileName(2024, 7) = %q", got)
	}
}

func TestLevelColors(t *testing.T) {
	colors := LevelColors()
	if colors[0] != emptyColor {
		t.Errorf("level 0 = %q, want %q", colors[0], emptyColor)
	}
	if colors[1] != lowColor {
		t.Errorf("level 1 = %q, want %q", colors[1], lowColor)
	}
	if colors[4] != highColor {
		t.Errorf("level 4 = %q, want %q", colors[4], highColor)
	}
	for i, c := range colors {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("level %d color %q is not a hex color", i, c)
		}
	}
}

func TestHeatmapRender(t *testing.T) {
	days := []types.DailyUsage{
		{Date: "2024-06-01", TotalTokens: 100},
		{Date: "2024-06-02", TotalTokens: 400},
	}
	grid := heatmap.BuildYearGrid(2024, days)

	renderer := NewHeatmapRenderer(true)
	out := renderer.Render(grid)

	for _, want := range []string{"Mon", "Wed", "Fri", "Less", "More", "500 tokens in 2024", "Jan"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered heatmap missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n"); lines < 10 {
		t.Errorf("expected at least 10 lines, got %d", lines)
	}
}

func TestSVGRender(t *testing.T) {
	days := []types.DailyUsage{
		{Date: "2024-06-02", TotalTokens: 400},
	}
	grid := heatmap.BuildYearGrid(2024, days)

	svg := NewSVGRenderer().Render(grid)

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("output is not a complete SVG document")
	}

	// One rect per day cell plus five legend swatches.
	wantRects := len(grid.Weeks)*7 + 5
	if got := strings.Count(svg, "<rect"); got != wantRects {
		t.Errorf("rect count = %d, want %d", got, wantRects)
	}
	if !strings.Contains(svg, highColor) {
		t.Errorf("peak day should use the darkest color %s", highColor)
	}
	if !strings.Contains(svg, "2024-06-02: 400 tokens") {
		t.Error("missing tooltip for the peak day")
	}
}

func TestStatsFormat(t *testing.T) {
	report := types.StatsReport{
		Days:          2,
		EntryCount:    3,
		InputTokens:   1200,
		OutputTokens:  800,
		TotalTokens:   2000,
		TotalCost:     1.5,
		PeakDay:       "2024-06-02",
		PeakTokens:    1500,
		AverageTokens: 1000,
		Models: []types.ModelUsage{
			{Model: "claude-sonnet-4-20250514", InputTokens: 1200, OutputTokens: 800, TotalTokens: 2000, EntryCount: 3, Cost: 1.5},
		},
	}

	out := NewStatsFormatter(true).Format(report)

	for _, want := range []string{"Sonnet-4", "2,000", "$1.50", "2024-06-02", "Active days:  2"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}

func TestStatsFormat_Empty(t *testing.T) {
	out := NewStatsFormatter(true).Format(types.StatsReport{})
	if !strings.Contains(out, "No usage data found") {
		t.Error("empty report should say no data was found")
	}
}

func TestStatsFormatJSON(t *testing.T) {
	report := types.StatsReport{TotalTokens: 42, Days: 1}

	text, err := NewStatsFormatter(true).FormatJSON(report)
	if err != nil {
		t.Fatal(err)
	}

	var decoded types.StatsReport
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalTokens != 42 {
		t.Errorf("TotalTokens = %d, want 42", decoded.TotalTokens)
	}
}
