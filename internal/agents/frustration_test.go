package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/internal/listing"
)

// staleListings builds n stale listings all carrying the given days-on-market.
func staleListings(n, dom int) []listing.Listing {
	out := make([]listing.Listing, n)
	for i := range out {
		out[i] = listing.Listing{DaysOnMarket: intPtr(dom)}
	}
	return out
}

func TestScoreFrustrationFormula(t *testing.T) {
	tests := []struct {
		name      string
		listings  []listing.Listing
		wantScore int
		wantDOM   float64
	}{
		{
			name:      "six listings at 120 days caps listing score",
			listings:  staleListings(6, 120),
			wantScore: 80, // min(50, 60) + min(50, 30)
			wantDOM:   120,
		},
		{
			name:      "single listing at threshold truncates half point",
			listings:  staleListings(1, 90),
			wantScore: 32, // 10 + 22.5 truncated
			wantDOM:   90,
		},
		{
			name:      "both components capped",
			listings:  staleListings(10, 400),
			wantScore: 100,
			wantDOM:   400,
		},
		{
			name:      "five listings exactly fill listing component",
			listings:  staleListings(5, 100),
			wantScore: 75, // 50 + 25
			wantDOM:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := &AgentBucket{Key: "a@x.com", Listings: tt.listings}
			profiles := ScoreFrustration([]*AgentBucket{bucket})

			require.Len(t, profiles, 1)
			p := profiles[0]
			assert.Equal(t, tt.wantScore, p.FrustrationScore)
			assert.Equal(t, tt.wantDOM, p.AvgDaysOnMarket)
			assert.Equal(t, len(tt.listings), p.StaleListingCount)
			assert.Len(t, p.Listings, len(tt.listings))
		})
	}
}

func TestScoreFrustrationBounds(t *testing.T) {
	// The score can never leave [0, 100] no matter how extreme the inputs.
	extremes := []*AgentBucket{
		{Key: "a", Listings: staleListings(1000, 10000)},
		{Key: "b", Listings: staleListings(1, 90)},
	}

	for _, p := range ScoreFrustration(extremes) {
		assert.GreaterOrEqual(t, p.FrustrationScore, 0)
		assert.LessOrEqual(t, p.FrustrationScore, 100)
	}
}

func TestScoreFrustrationDropsZeroStale(t *testing.T) {
	buckets := []*AgentBucket{
		{Key: "fresh", Listings: []listing.Listing{
			{DaysOnMarket: intPtr(10)},
			{DaysOnMarket: nil},
		}},
		{Key: "stale", Listings: staleListings(2, 100)},
	}

	profiles := ScoreFrustration(buckets)

	// The fresh agent is dropped entirely, not emitted with a zero score.
	require.Len(t, profiles, 1)
	assert.Equal(t, 2, profiles[0].StaleListingCount)
}

func TestScoreFrustrationFiltersFreshWithinBucket(t *testing.T) {
	bucket := &AgentBucket{Key: "a", Listings: []listing.Listing{
		{DaysOnMarket: intPtr(100)},
		{DaysOnMarket: intPtr(10)},
		{DaysOnMarket: intPtr(140)},
	}}

	profiles := ScoreFrustration([]*AgentBucket{bucket})

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, 2, p.StaleListingCount)
	assert.Equal(t, 120.0, p.AvgDaysOnMarket, "fresh listings excluded from the average")
	assert.Len(t, p.Listings, 2)
}

func TestScoreFrustrationSortAndTies(t *testing.T) {
	buckets := []*AgentBucket{
		{Key: "low", Listings: staleListings(1, 90)},
		{Key: "tie1", AgentEmail: strPtr("tie1@x.com"), Listings: staleListings(2, 120)},
		{Key: "tie2", AgentEmail: strPtr("tie2@x.com"), Listings: staleListings(2, 120)},
		{Key: "high", Listings: staleListings(6, 200)},
	}

	profiles := ScoreFrustration(buckets)

	require.Len(t, profiles, 4)
	assert.Equal(t, 100, profiles[0].FrustrationScore)
	// tied scores keep first-encountered bucket order
	assert.Equal(t, profiles[1].FrustrationScore, profiles[2].FrustrationScore)
	assert.Equal(t, "tie1@x.com", profiles[1].AgentEmail)
	assert.Equal(t, "tie2@x.com", profiles[2].AgentEmail)
	assert.Equal(t, 32, profiles[3].FrustrationScore)
}

func TestScoreFrustrationAvgDOMRounding(t *testing.T) {
	tests := []struct {
		name string
		doms []int
		want float64
	}{
		{name: "one decimal", doms: []int{91, 92, 94}, want: 92.3},
		// halfway cases round to even
		{name: "quarter rounds down", doms: []int{120, 120, 120, 121}, want: 120.2},
		{name: "three quarters rounds up", doms: []int{120, 121, 121, 121}, want: 120.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := &AgentBucket{Key: "a"}
			for _, d := range tt.doms {
				bucket.Listings = append(bucket.Listings, listing.Listing{DaysOnMarket: intPtr(d)})
			}

			profiles := ScoreFrustration([]*AgentBucket{bucket})

			require.Len(t, profiles, 1)
			assert.Equal(t, tt.want, profiles[0].AvgDaysOnMarket)
		})
	}
}

func TestScoreFrustrationContactFallbacks(t *testing.T) {
	bucket := &AgentBucket{
		Key:      "a@x.com",
		Listings: staleListings(1, 100),
	}

	profiles := ScoreFrustration([]*AgentBucket{bucket})

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "Unknown", p.AgentName)
	assert.Equal(t, "", p.AgentEmail)
	assert.Equal(t, "N/A", p.AgentPhone)
	assert.Equal(t, "N/A", p.BrokerName)
	assert.Equal(t, "N/A", p.OfficeName)
	assert.Equal(t, "N/A", p.OfficePhone)
}

func TestScoreFrustrationUsesBucketMetadata(t *testing.T) {
	bucket := &AgentBucket{
		Key:         "a@x.com",
		AgentName:   strPtr("Jane"),
		AgentEmail:  strPtr("a@x.com"),
		AgentPhone:  strPtr("555-0100"),
		BrokerName:  strPtr("Oak Realty"),
		OfficeName:  strPtr("Oak Tampa"),
		OfficePhone: strPtr("555-0101"),
		Listings:    staleListings(1, 95),
	}

	profiles := ScoreFrustration([]*AgentBucket{bucket})

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "Jane", p.AgentName)
	assert.Equal(t, "a@x.com", p.AgentEmail)
	assert.Equal(t, "Oak Realty", p.BrokerName)
}
