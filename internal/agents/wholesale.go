package agents

import (
	"fmt"
	"log/slog"

	"leadpulse/internal/harvest"
	"leadpulse/internal/listing"
)

// WholesaleInputs are the three externally computed tables the elite pipeline
// merges: per-agent wholesale metrics, per-agent specialization metrics, and
// the investment-ranked listing table.
type WholesaleInputs struct {
	WholesaleRows      []harvest.Row
	SpecializationRows []harvest.Row
	RankedListings     []harvest.Row
}

// Aggregator merges the provider's elite-mode tables into agent profiles.
// It holds no per-call state, so one instance serves concurrent requests.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a wholesale/investment aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	return &Aggregator{logger: logger.With(slog.String("component", "wholesale_aggregator"))}
}

// Aggregate builds one profile per wholesale-metrics row, in table order.
// A malformed row never aborts the run: the offending agent is skipped with a
// logged cause and processing continues. The output array never contains a
// partial entry; skipped reports how many rows were dropped.
func (a *Aggregator) Aggregate(in WholesaleInputs) (profiles []WholesaleProfile, skipped int) {
	profiles = make([]WholesaleProfile, 0, len(in.WholesaleRows))
	for i, row := range in.WholesaleRows {
		p, err := a.buildProfile(row, in)
		if err != nil {
			skipped++
			a.logger.Warn("skipping agent row",
				slog.Int("row", i),
				slog.String("cause", err.Error()),
			)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, skipped
}

// buildProfile assembles one agent profile. A recover guard backs the
// coercion layer so an unexpected row shape degrades to a skipped agent, not
// a failed request.
func (a *Aggregator) buildProfile(row harvest.Row, in WholesaleInputs) (p WholesaleProfile, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while building profile: %v", r)
		}
	}()

	name := listing.String(row, "agent_name")
	if name == nil {
		return p, fmt.Errorf("missing agent_name")
	}
	score := listing.Float(row, "wholesale_score")
	if score == nil || *score < 0 {
		return p, fmt.Errorf("agent %q has no usable wholesale_score", *name)
	}

	p = WholesaleProfile{
		AgentName:      *name,
		AgentEmail:     listing.String(row, "agent_email"),
		PrimaryPhone:   listing.String(row, "primary_phone"),
		BrokerName:     listing.String(row, "broker_name"),
		OfficeName:     listing.String(row, "office_name"),
		WholesaleScore: *score,
		ListingCount:   listing.Int(row, "listing_count"),
		AvgPrice:       listing.Float(row, "avg_price"),
		MinPrice:       listing.Float(row, "min_price"),
		MaxPrice:       listing.Float(row, "max_price"),
	}

	applySpecialization(&p, in.SpecializationRows)
	p.Listings = selectRankedListings(*name, in.RankedListings)
	p.BestDeal = bestDeal(p.Listings)
	p.AvgInvestmentScore = avgInvestmentScore(p.Listings)

	return p, nil
}

// applySpecialization copies the four specialization fields from the first
// row matching the agent name. No match leaves all four nil; an empty table
// is not an error.
func applySpecialization(p *WholesaleProfile, rows []harvest.Row) {
	for _, row := range rows {
		name := listing.String(row, "agent_name")
		if name == nil || *name != p.AgentName {
			continue
		}
		p.PriceCategory = listing.String(row, "price_category")
		p.AvgSqft = listing.Float(row, "avg_sqft")
		p.AvgBeds = listing.Float(row, "avg_beds")
		p.AvgBaths = listing.Float(row, "avg_baths")
		return
	}
}

// selectRankedListings re-selects the agent's listings from the ranked table
// by agent name, preserving table order.
func selectRankedListings(agentName string, rows []harvest.Row) []RankedListing {
	out := []RankedListing{}
	for _, row := range rows {
		name := listing.String(row, "agent_name")
		if name == nil || *name != agentName {
			continue
		}
		l := listing.Normalize(row)
		out = append(out, RankedListing{
			Address:         l.Address,
			ListPrice:       l.ListPrice,
			InvestmentScore: l.InvestmentScore,
			PricePerSqft:    l.PricePerSqft,
			Beds:            l.Beds,
			Baths:           l.Baths,
			Sqft:            l.Sqft,
			YearBuilt:       l.YearBuilt,
			DaysOnMarket:    l.DaysOnMarket,
			PropertyURL:     l.PropertyURL,
		})
	}
	return out
}

// bestDeal picks the listing with the maximum non-null investment score using
// a strict-greater-than left-to-right scan, so the first of tied maxima wins
// and selection is deterministic under re-ordering of equal scores.
func bestDeal(listings []RankedListing) *RankedListing {
	var best *RankedListing
	for i := range listings {
		l := &listings[i]
		if l.InvestmentScore == nil {
			continue
		}
		if best == nil || *l.InvestmentScore > *best.InvestmentScore {
			best = l
		}
	}
	if best == nil {
		return nil
	}
	deal := *best
	return &deal
}

// avgInvestmentScore averages the non-null scores, nil when none are scored.
func avgInvestmentScore(listings []RankedListing) *float64 {
	sum, n := 0.0, 0
	for _, l := range listings {
		if l.InvestmentScore == nil {
			continue
		}
		sum += *l.InvestmentScore
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
