package harvest

import "context"

// Provider is the external scraping/analytics collaborator. Every method is
// synchronous and may return an empty table; a returned error fails the whole
// request (there is no retry at this boundary).
type Provider interface {
	// FetchListings returns the raw listing table for one location/query.
	FetchListings(ctx context.Context, q ListingQuery) ([]Row, error)

	// AgentActivity extracts per-agent activity rows from a listing set.
	AgentActivity(ctx context.Context, listings []Row) ([]Row, error)

	// WholesaleAgents filters agents by wholesale friendliness, keeping only
	// those with at least minListings listings. Rows carry wholesale_score,
	// listing_count, price aggregates and contact fields.
	WholesaleAgents(ctx context.Context, listings []Row, minListings int) ([]Row, error)

	// Specialization analyzes per-agent specialization (price_category,
	// avg_sqft, avg_beds, avg_baths).
	Specialization(ctx context.Context, listings []Row) ([]Row, error)

	// RankInvestment ranks listings by investment potential, annotating each
	// row with investment_score and price_per_sqft.
	RankInvestment(ctx context.Context, listings []Row) ([]Row, error)
}
