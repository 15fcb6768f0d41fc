// Package pricing provides offline cost estimation for known models.
package pricing

import "strings"

// ModelPricing holds USD prices per million tokens.
type ModelPricing struct {
	InputPerMTok         float64
	OutputPerMTok        float64
	CacheCreationPerMTok float64
	CacheReadPerMTok     float64
}

type Service struct {
	table map[string]ModelPricing
}

// The table is keyed by model family prefix so dated snapshots
// (claude-sonnet-4-5-20250929) resolve without an exact match.
var defaultTable = map[string]ModelPricing{
	"claude-opus-4":     {InputPerMTok: 15.0, OutputPerMTok: 75.0, CacheCreationPerMTok: 18.75, CacheReadPerMTok: 1.50},
	"claude-sonnet-4":   {InputPerMTok: 3.0, OutputPerMTok: 15.0, CacheCreationPerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-haiku-4":    {InputPerMTok: 1.0, OutputPerMTok: 5.0, CacheCreationPerMTok: 1.25, CacheReadPerMTok: 0.10},
	"claude-3-7-sonnet": {InputPerMTok: 3.0, OutputPerMTok: 15.0, CacheCreationPerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-3-5-sonnet": {InputPerMTok: 3.0, OutputPerMTok: 15.0, CacheCreationPerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-3-5-haiku":  {InputPerMTok: 0.80, OutputPerMTok: 4.0, CacheCreationPerMTok: 1.0, CacheReadPerMTok: 0.08},
	"claude-3-opus":     {InputPerMTok: 15.0, OutputPerMTok: 75.0, CacheCreationPerMTok: 18.75, CacheReadPerMTok: 1.50},
	"claude-3-haiku":    {InputPerMTok: 0.25, OutputPerMTok: 1.25, CacheCreationPerMTok: 0.30, CacheReadPerMTok: 0.03},
}

func NewService() *Service {
	return &Service{table: defaultTable}
}

// EstimateCost returns the estimated USD cost for the given token counts.
// The second return is false when the model is not in the table.
func (s *Service) EstimateCost(model string, input, output, cacheCreation, cacheRead int) (float64, bool) {
	pricing, ok := s.lookup(model)
	if !ok {
		return 0, false
	}

	cost := float64(input)*pricing.InputPerMTok/1e6 +
		float64(output)*pricing.OutputPerMTok/1e6 +
		float64(cacheCreation)*pricing.CacheCreationPerMTok/1e6 +
		float64(cacheRead)*pricing.CacheReadPerMTok/1e6

	return cost, true
}

func (s *Service) lookup(model string) (ModelPricing, bool) {
	if pricing, ok := s.table[model]; ok {
		return pricing, true
	}
	for prefix, pricing := range s.table {
		if strings.HasPrefix(model, prefix) {
			return pricing, true
		}
	}
	return ModelPricing{}, false
}
