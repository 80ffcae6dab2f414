package agents

import (
	"leadpulse/internal/listing"
)

// AgentBucket is the transient per-request aggregate of one agent's listings.
// Metadata fields are sticky: they come from the first listing seen for the
// key and later listings never overwrite them.
type AgentBucket struct {
	Key         string
	AgentName   *string
	AgentEmail  *string
	AgentPhone  *string
	BrokerName  *string
	OfficeName  *string
	OfficePhone *string

	// Listings in input scan order.
	Listings []listing.Listing
}

// AgentProfile is the simple-mode output entity: one agent with a staleness
// driven frustration score. Contact fields fall back to "N/A" so the payload
// never carries nulls for them.
type AgentProfile struct {
	AgentName         string            `json:"agent_name"`
	AgentEmail        string            `json:"agent_email"`
	AgentPhone        string            `json:"agent_phone"`
	BrokerName        string            `json:"broker_name"`
	OfficeName        string            `json:"office_name"`
	OfficePhone       string            `json:"office_phone"`
	StaleListingCount int               `json:"stale_listing_count"`
	AvgDaysOnMarket   float64           `json:"avg_days_on_market"`
	FrustrationScore  int               `json:"frustration_score"`
	Listings          []listing.Listing `json:"listings"`
}

// RankedListing is one listing inside an elite-mode agent profile, carrying
// the externally computed investment metrics.
type RankedListing struct {
	Address         string   `json:"address"`
	ListPrice       *float64 `json:"list_price"`
	InvestmentScore *float64 `json:"investment_score"`
	PricePerSqft    *float64 `json:"price_per_sqft"`
	Beds            *float64 `json:"beds"`
	Baths           *float64 `json:"baths"`
	Sqft            *float64 `json:"sqft"`
	YearBuilt       *int     `json:"year_built"`
	DaysOnMarket    *int     `json:"days_on_market"`
	PropertyURL     *string  `json:"property_url"`
}

// WholesaleProfile is the elite-mode output entity: externally supplied
// wholesale and specialization metrics merged with the agent's ranked
// listings. The wholesale score is pass-through, never recomputed here.
type WholesaleProfile struct {
	AgentName      string   `json:"agent_name"`
	AgentEmail     *string  `json:"agent_email"`
	PrimaryPhone   *string  `json:"primary_phone"`
	BrokerName     *string  `json:"broker_name"`
	OfficeName     *string  `json:"office_name"`
	WholesaleScore float64  `json:"wholesale_score"`
	ListingCount   *int     `json:"listing_count"`
	AvgPrice       *float64 `json:"avg_price"`
	MinPrice       *float64 `json:"min_price"`
	MaxPrice       *float64 `json:"max_price"`

	// Specialization, first matching row by agent name
	PriceCategory *string  `json:"price_category"`
	AvgSqft       *float64 `json:"avg_sqft"`
	AvgBeds       *float64 `json:"avg_beds"`
	AvgBaths      *float64 `json:"avg_baths"`

	AvgInvestmentScore *float64        `json:"avg_investment_score"`
	Listings           []RankedListing `json:"listings"`
	BestDeal           *RankedListing  `json:"best_deal"`
}
