package agents

import (
	"math"
	"sort"

	"leadpulse/internal/listing"
)

// StaleDaysThreshold is the minimum days-on-market for a listing to count as
// stale inventory.
const StaleDaysThreshold = 90

// Frustration score weights: 10 points per stale listing and 0.25 points per
// average day on market, each capped at 50, for a 0-100 scale.
const (
	maxListingScore    = 50.0
	maxDOMScore        = 50.0
	pointsPerListing   = 10.0
	pointsPerAvgDOMDay = 0.25
)

// ScoreFrustration computes a frustration profile for each bucket and returns
// them sorted by score descending. Ties keep first-encountered bucket order.
// Buckets with no stale listings are dropped entirely, never emitted with a
// zero score.
func ScoreFrustration(buckets []*AgentBucket) []AgentProfile {
	profiles := make([]AgentProfile, 0, len(buckets))
	for _, b := range buckets {
		p, ok := scoreBucket(b)
		if !ok {
			continue
		}
		profiles = append(profiles, p)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].FrustrationScore > profiles[j].FrustrationScore
	})
	return profiles
}

// scoreBucket builds one agent's frustration profile. ok is false when the
// bucket has no stale listings.
func scoreBucket(b *AgentBucket) (AgentProfile, bool) {
	stale := make([]listing.Listing, 0, len(b.Listings))
	totalDOM := 0
	for _, l := range b.Listings {
		if l.IsStale(StaleDaysThreshold) {
			stale = append(stale, l)
			totalDOM += *l.DaysOnMarket
		}
	}
	if len(stale) == 0 {
		return AgentProfile{}, false
	}

	avgDOM := float64(totalDOM) / float64(len(stale))

	listingScore := math.Min(maxListingScore, float64(len(stale))*pointsPerListing)
	domScore := math.Min(maxDOMScore, avgDOM*pointsPerAvgDOMDay)
	// Integer truncation, not rounding: 32.5 scores 32.
	frustration := int(math.Floor(listingScore + domScore))

	return AgentProfile{
		AgentName:         textOr(b.AgentName, "Unknown"),
		AgentEmail:        textOr(b.AgentEmail, ""),
		AgentPhone:        textOr(b.AgentPhone, "N/A"),
		BrokerName:        textOr(b.BrokerName, "N/A"),
		OfficeName:        textOr(b.OfficeName, "N/A"),
		OfficePhone:       textOr(b.OfficePhone, "N/A"),
		StaleListingCount: len(stale),
		AvgDaysOnMarket:   math.RoundToEven(avgDOM*10) / 10, // ties round to even
		FrustrationScore:  frustration,
		Listings:          stale,
	}, true
}

func textOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
