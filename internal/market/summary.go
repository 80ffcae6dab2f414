// Package market computes portfolio-wide summary statistics over a scan's
// full listing set and its final agent list.
package market

import (
	"sort"

	"leadpulse/internal/listing"
)

// HighPotentialThreshold is the wholesale score at or above which an agent
// counts as a high-potential wholesale contact.
const HighPotentialThreshold = 70.0

// ListingStats summarizes the full, unfiltered listing set. Each average is
// nil when the underlying column is absent or entirely null.
type ListingStats struct {
	TotalProperties int      `json:"total_properties"`
	AvgPrice        *float64 `json:"avg_price"`
	MedianPrice     *float64 `json:"median_price"`
	AvgPricePerSqft *float64 `json:"avg_price_per_sqft"`
	AvgDaysOnMarket *float64 `json:"avg_days_on_market"`
}

// AgentStats summarizes the final agent list. AvgWholesaleScore is exactly 0
// for an empty list: an empty portfolio is a valid "no activity" state, not
// missing data.
type AgentStats struct {
	TotalAgents         int     `json:"total_agents"`
	AvgWholesaleScore   float64 `json:"avg_wholesale_score"`
	HighPotentialAgents int     `json:"high_potential_agents"`
}

// Stats is the elite-mode market_stats payload.
type Stats struct {
	ListingStats
	AgentStats
}

// SummarizeListings computes price and days-on-market statistics over the
// full listing set.
func SummarizeListings(listings []listing.Listing) ListingStats {
	prices := make([]float64, 0, len(listings))
	perSqft := make([]float64, 0, len(listings))
	dom := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.ListPrice != nil {
			prices = append(prices, *l.ListPrice)
		}
		if l.PricePerSqft != nil {
			perSqft = append(perSqft, *l.PricePerSqft)
		}
		if l.DaysOnMarket != nil {
			dom = append(dom, float64(*l.DaysOnMarket))
		}
	}

	return ListingStats{
		TotalProperties: len(listings),
		AvgPrice:        mean(prices),
		MedianPrice:     median(prices),
		AvgPricePerSqft: mean(perSqft),
		AvgDaysOnMarket: mean(dom),
	}
}

// SummarizeAgents computes score statistics over the final agent list's
// wholesale scores.
func SummarizeAgents(scores []float64) AgentStats {
	stats := AgentStats{TotalAgents: len(scores)}
	if len(scores) == 0 {
		return stats
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
		if s >= HighPotentialThreshold {
			stats.HighPotentialAgents++
		}
	}
	stats.AvgWholesaleScore = sum / float64(len(scores))
	return stats
}

// mean returns nil for an empty sample: an absent column is missing data,
// not a zero.
func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))
	return &m
}

// median returns nil for an empty sample. Even-length samples average the two
// middle values.
func median(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}
