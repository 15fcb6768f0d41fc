package aggregator

import (
	"testing"
	"time"

	"github.com/sdpower/ccheatmap/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(ts, requestID, messageID string, input, output int) types.UsageEntry {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return types.UsageEntry{
		Timestamp:    parsed,
		DateKey:      parsed.UTC().Format("2006-01-02"),
		RequestID:    requestID,
		MessageID:    messageID,
		InputTokens:  input,
		OutputTokens: output,
	}
}

func TestDeduplicate_FirstWins(t *testing.T) {
	entries := []types.UsageEntry{
		entry("2024-06-01T10:00:00Z", "r1", "m1", 100, 50),
		entry("2024-06-01T10:00:00Z", "r1", "m1", 999, 999),
		entry("2024-06-01T11:00:00Z", "r2", "m2", 10, 20),
	}

	out := Deduplicate(entries)

	require.Len(t, out, 2)
	assert.Equal(t, 100, out[0].InputTokens, "first occurrence must be kept")
	assert.Equal(t, "r2", out[1].RequestID)
}

func TestDeduplicate_NoSharedKeys(t *testing.T) {
	entries := []types.UsageEntry{
		entry("2024-06-01T10:00:00Z", "r1", "m1", 1, 1),
		entry("2024-06-01T10:00:00Z", "r1", "m2", 1, 1),
		entry("2024-06-01T10:00:00Z", "r2", "m1", 1, 1),
		entry("2024-06-02T10:00:00Z", "r1", "m1", 1, 1),
	}

	out := Deduplicate(entries)

	assert.LessOrEqual(t, len(out), len(entries))
	seen := make(map[string]bool)
	for _, e := range out {
		assert.False(t, seen[e.DedupKey()], "duplicate key %s in output", e.DedupKey())
		seen[e.DedupKey()] = true
	}
	assert.Len(t, out, 4, "all keys differ, nothing should be dropped")
}

func TestDeduplicate_MissingIDsUseEmptyStrings(t *testing.T) {
	// Two ID-less entries with the same timestamp share a key.
	entries := []types.UsageEntry{
		entry("2024-06-01T10:00:00Z", "", "", 5, 5),
		entry("2024-06-01T10:00:00Z", "", "", 7, 7),
		entry("2024-06-01T10:00:01Z", "", "", 9, 9),
	}

	out := Deduplicate(entries)

	require.Len(t, out, 2)
	assert.Equal(t, 5, out[0].InputTokens)
}

func TestDailyUsage_SumsPerDay(t *testing.T) {
	agg := New(nil)
	entries := []types.UsageEntry{
		entry("2024-06-01T08:00:00Z", "r1", "m1", 100, 50),
		entry("2024-06-01T20:00:00Z", "r2", "m2", 30, 20),
		entry("2024-06-02T10:00:00Z", "r3", "m3", 400, 0),
	}

	days := agg.DailyUsage(entries, "", "")

	require.Len(t, days, 2)
	assert.Equal(t, "2024-06-01", days[0].Date)
	assert.Equal(t, 130, days[0].InputTokens)
	assert.Equal(t, 70, days[0].OutputTokens)
	assert.Equal(t, 200, days[0].TotalTokens, "total = input + output for cache-free entries")
	assert.Equal(t, 2, days[0].EntryCount)
	assert.Equal(t, "2024-06-02", days[1].Date)
	assert.Equal(t, 400, days[1].TotalTokens)
}

func TestDailyUsage_TotalIncludesCache(t *testing.T) {
	agg := New(nil)
	e := entry("2024-06-01T08:00:00Z", "r1", "m1", 100, 50)
	e.CacheCreationTokens = 30
	e.CacheReadTokens = 20

	days := agg.DailyUsage([]types.UsageEntry{e}, "", "")

	require.Len(t, days, 1)
	assert.Equal(t, 200, days[0].TotalTokens)
	assert.Equal(t, 30, days[0].CacheCreationTokens)
	assert.Equal(t, 20, days[0].CacheReadTokens)
}

func TestDailyUsage_RangeFilterInclusive(t *testing.T) {
	agg := New(nil)
	entries := []types.UsageEntry{
		entry("2024-05-31T10:00:00Z", "r1", "m1", 1, 0),
		entry("2024-06-01T10:00:00Z", "r2", "m2", 2, 0),
		entry("2024-06-15T10:00:00Z", "r3", "m3", 3, 0),
		entry("2024-06-30T10:00:00Z", "r4", "m4", 4, 0),
		entry("2024-07-01T10:00:00Z", "r5", "m5", 5, 0),
	}

	days := agg.DailyUsage(entries, "2024-06-01", "2024-06-30")

	require.Len(t, days, 3)
	assert.Equal(t, "2024-06-01", days[0].Date)
	assert.Equal(t, "2024-06-30", days[2].Date)
}

func TestDailyUsage_SortedAscending(t *testing.T) {
	agg := New(nil)
	entries := []types.UsageEntry{
		entry("2024-06-03T10:00:00Z", "r1", "m1", 1, 0),
		entry("2024-06-01T10:00:00Z", "r2", "m2", 1, 0),
		entry("2024-06-02T10:00:00Z", "r3", "m3", 1, 0),
	}

	days := agg.DailyUsage(entries, "", "")

	require.Len(t, days, 3)
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].Date, days[i].Date)
	}
}

func TestStats_Basics(t *testing.T) {
	agg := New(nil)
	e1 := entry("2024-06-01T10:00:00Z", "r1", "m1", 100, 0)
	e2 := entry("2024-06-02T10:00:00Z", "r2", "m2", 300, 100)
	e1.Model = "claude-sonnet-4-20250514"
	e2.Model = "claude-opus-4-20250514"

	report := agg.Stats([]types.UsageEntry{e1, e2}, "", "", false)

	assert.Equal(t, 2, report.EntryCount)
	assert.Equal(t, 2, report.Days)
	assert.Equal(t, 500, report.TotalTokens)
	assert.Equal(t, "2024-06-02", report.PeakDay)
	assert.Equal(t, 400, report.PeakTokens)
	assert.InDelta(t, 250.0, report.AverageTokens, 1e-9)
	require.Len(t, report.Models, 2)
	assert.Equal(t, "claude-opus-4-20250514", report.Models[0].Model, "models sorted by tokens desc")
}

func TestStats_ExcludeCache(t *testing.T) {
	agg := New(nil)
	e := entry("2024-06-01T10:00:00Z", "r1", "m1", 100, 50)
	e.CacheCreationTokens = 1000
	e.CacheReadTokens = 2000

	with := agg.Stats([]types.UsageEntry{e}, "", "", false)
	without := agg.Stats([]types.UsageEntry{e}, "", "", true)

	assert.Equal(t, 3150, with.TotalTokens)
	assert.Equal(t, 3000, with.CacheTokens)
	assert.Equal(t, 150, without.TotalTokens)
	assert.Equal(t, 0, without.CacheTokens)
}

func TestEstimateCosts(t *testing.T) {
	agg := New(stubPricing{})
	e1 := entry("2024-06-01T10:00:00Z", "r1", "m1", 1000, 1000)
	e2 := entry("2024-06-01T11:00:00Z", "r2", "m2", 1000, 1000)
	e2.Cost = 9.99 // explicit cost must not be overwritten

	out := agg.EstimateCosts([]types.UsageEntry{e1, e2})

	assert.InDelta(t, 0.5, out[0].Cost, 1e-9)
	assert.InDelta(t, 9.99, out[1].Cost, 1e-9)
}

type stubPricing struct{}

func (stubPricing) EstimateCost(model string, input, output, cacheCreation, cacheRead int) (float64, bool) {
	return 0.5, true
}
