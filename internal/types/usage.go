package types

import (
	"time"
)

// UsageEntry is one validated usage record from a JSONL log line.
// Entries are transient: they exist between parsing and aggregation
// and are never retained afterwards.
type UsageEntry struct {
	Timestamp           time.Time `json:"timestamp"`
	DateKey             string    `json:"date_key"`
	RequestID           string    `json:"request_id,omitempty"`
	MessageID           string    `json:"message_id,omitempty"`
	SessionID           string    `json:"session_id,omitempty"`
	Model               string    `json:"model,omitempty"`
	InputTokens         int       `json:"input_tokens"`
	OutputTokens        int       `json:"output_tokens"`
	CacheCreationTokens int       `json:"cache_creation_input_tokens,omitempty"`
	CacheReadTokens     int       `json:"cache_read_input_tokens,omitempty"`
	Cost                float64   `json:"cost,omitempty"`
}

// TotalTokens returns the full token count for the entry, cache included.
func (e UsageEntry) TotalTokens() int {
	return e.InputTokens + e.OutputTokens + e.CacheCreationTokens + e.CacheReadTokens
}

// DedupKey builds the composite identity used for deduplication.
// Missing IDs contribute empty strings, so two ID-less entries with the
// same timestamp collapse into one event.
func (e UsageEntry) DedupKey() string {
	return e.RequestID + "|" + e.MessageID + "|" + e.Timestamp.Format(time.RFC3339Nano)
}

// DailyUsage aggregates all entries whose timestamps fall on one calendar day.
// Immutable once returned by the aggregator.
type DailyUsage struct {
	Date                string  `json:"date"`
	InputTokens         int     `json:"input_tokens"`
	OutputTokens        int     `json:"output_tokens"`
	CacheCreationTokens int     `json:"cache_creation_input_tokens"`
	CacheReadTokens     int     `json:"cache_read_input_tokens"`
	TotalTokens         int     `json:"total_tokens"`
	Cost                float64 `json:"cost"`
	EntryCount          int     `json:"entry_count"`
}

// ModelUsage is the per-model slice of a stats report.
type ModelUsage struct {
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	Cost         float64 `json:"cost"`
	EntryCount   int     `json:"entry_count"`
}

// StatsReport is the structured output of the stats command.
type StatsReport struct {
	From          string       `json:"from,omitempty"`
	To            string       `json:"to,omitempty"`
	Days          int          `json:"days"`
	EntryCount    int          `json:"entry_count"`
	InputTokens   int          `json:"input_tokens"`
	OutputTokens  int          `json:"output_tokens"`
	CacheTokens   int          `json:"cache_tokens"`
	TotalTokens   int          `json:"total_tokens"`
	TotalCost     float64      `json:"total_cost"`
	PeakDay       string       `json:"peak_day,omitempty"`
	PeakTokens    int          `json:"peak_tokens"`
	AverageTokens float64      `json:"average_tokens_per_day"`
	Models        []ModelUsage `json:"models"`
}
