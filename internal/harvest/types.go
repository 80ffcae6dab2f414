package harvest

// Row is one record as returned by the analytics provider. Field sets vary
// by endpoint and by listing source, so rows stay untyped until they are
// normalized or coerced downstream.
type Row map[string]any

// ListingQuery describes one bulk listing fetch.
type ListingQuery struct {
	Location     string   `json:"location"`
	ListingType  string   `json:"listing_type"`
	PastDays     int      `json:"past_days"`
	MLSOnly      bool     `json:"mls_only"`
	Limit        int      `json:"limit,omitempty"`
	Preset       string   `json:"preset,omitempty"`
	RequireEmail bool     `json:"require_agent_email"`

	// Tag filtering
	TagFilters   []string `json:"tag_filters,omitempty"`
	TagExclude   []string `json:"tag_exclude,omitempty"`
	TagMatchType string   `json:"tag_match_type,omitempty"`

	// Structured filters (elite mode only)
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
	BedsMin    *int     `json:"beds_min,omitempty"`
	BathsMin   *int     `json:"baths_min,omitempty"`
	SqftMin    *int     `json:"sqft_min,omitempty"`
	HOAFeeMax  *float64 `json:"hoa_fee_max,omitempty"`
	HasPool    *bool    `json:"has_pool,omitempty"`
	HasGarage  *bool    `json:"has_garage,omitempty"`
	Waterfront *bool    `json:"waterfront,omitempty"`
	GarageMin  *int     `json:"garage_min,omitempty"`
}

// ListingTypeForSale is the only listing type this service requests.
const ListingTypeForSale = "for_sale"
