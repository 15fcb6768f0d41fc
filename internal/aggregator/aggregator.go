// Package aggregator turns validated usage entries into per-day buckets
// and summary statistics.
package aggregator

import (
	"sort"

	"github.com/sdpower/ccheatmap/internal/types"
)

type Aggregator struct {
	pricing PricingService
}

// PricingService estimates the cost of an entry's token counts.
// Returns false if the model is unknown.
type PricingService interface {
	EstimateCost(model string, input, output, cacheCreation, cacheRead int) (float64, bool)
}

func New(pricing PricingService) *Aggregator {
	return &Aggregator{pricing: pricing}
}

// Deduplicate removes entries sharing a composite (requestId, messageId,
// timestamp) key, keeping the first occurrence in encounter order. The
// same event can legitimately appear in multiple overlapping log files.
func Deduplicate(entries []types.UsageEntry) []types.UsageEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]types.UsageEntry, 0, len(entries))

	for _, entry := range entries {
		key := entry.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}

	return out
}

// EstimateCosts fills in Cost for entries that did not carry an explicit
// costUSD field. Unknown models are left at zero.
func (a *Aggregator) EstimateCosts(entries []types.UsageEntry) []types.UsageEntry {
	if a.pricing == nil {
		return entries
	}
	for i := range entries {
		if entries[i].Cost != 0 {
			continue
		}
		cost, ok := a.pricing.EstimateCost(
			entries[i].Model,
			entries[i].InputTokens,
			entries[i].OutputTokens,
			entries[i].CacheCreationTokens,
			entries[i].CacheReadTokens,
		)
		if ok {
			entries[i].Cost = cost
		}
	}
	return entries
}

// DailyUsage folds entries into one bucket per calendar date. The optional
// from/to bounds are inclusive YYYY-MM-DD strings compared against each
// entry's date key. Output is sorted ascending by date, which for this
// format equals chronological order.
func (a *Aggregator) DailyUsage(entries []types.UsageEntry, from, to string) []types.DailyUsage {
	buckets := make(map[string]*types.DailyUsage)

	for _, entry := range entries {
		date := entry.DateKey
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}

		day, ok := buckets[date]
		if !ok {
			day = &types.DailyUsage{Date: date}
			buckets[date] = day
		}

		day.InputTokens += entry.InputTokens
		day.OutputTokens += entry.OutputTokens
		day.CacheCreationTokens += entry.CacheCreationTokens
		day.CacheReadTokens += entry.CacheReadTokens
		day.TotalTokens += entry.TotalTokens()
		day.Cost += entry.Cost
		day.EntryCount++
	}

	days := make([]types.DailyUsage, 0, len(buckets))
	for _, day := range buckets {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}

// Stats builds the full report for the stats command: overall totals,
// per-model breakdown, and daily peak/average. When excludeCache is set,
// cache-creation and cache-read tokens are omitted from every total.
func (a *Aggregator) Stats(entries []types.UsageEntry, from, to string, excludeCache bool) types.StatsReport {
	report := types.StatsReport{From: from, To: to}

	modelMap := make(map[string]*types.ModelUsage)
	dayTotals := make(map[string]int)

	for _, entry := range entries {
		date := entry.DateKey
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}

		total := entry.TotalTokens()
		cache := entry.CacheCreationTokens + entry.CacheReadTokens
		if excludeCache {
			total -= cache
			cache = 0
		}

		report.EntryCount++
		report.InputTokens += entry.InputTokens
		report.OutputTokens += entry.OutputTokens
		report.CacheTokens += cache
		report.TotalTokens += total
		report.TotalCost += entry.Cost
		dayTotals[date] += total

		model, ok := modelMap[entry.Model]
		if !ok {
			model = &types.ModelUsage{Model: entry.Model}
			modelMap[entry.Model] = model
		}
		model.InputTokens += entry.InputTokens
		model.OutputTokens += entry.OutputTokens
		model.TotalTokens += total
		model.Cost += entry.Cost
		model.EntryCount++
	}

	report.Days = len(dayTotals)
	for date, tokens := range dayTotals {
		if tokens > report.PeakTokens || (tokens == report.PeakTokens && date < report.PeakDay) {
			report.PeakTokens = tokens
			report.PeakDay = date
		}
	}
	if report.Days > 0 {
		report.AverageTokens = float64(report.TotalTokens) / float64(report.Days)
	}

	for _, model := range modelMap {
		report.Models = append(report.Models, *model)
	}
	sort.Slice(report.Models, func(i, j int) bool {
		return report.Models[i].TotalTokens > report.Models[j].TotalTokens
	})

	return report
}
