package listing

// Listing is one normalized property record. Every optional field resolves to
// either a typed value or an explicit nil; downstream code never sees a raw
// provider row.
type Listing struct {
	Address      string   `json:"address"`
	ListPrice    *float64 `json:"list_price"`
	DaysOnMarket *int     `json:"days_on_market"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	Sqft         *float64 `json:"sqft"`
	LotSqft      *float64 `json:"lot_sqft"`
	YearBuilt    *int     `json:"year_built"`
	PropertyURL  *string  `json:"property_url"`
	Tags         []string `json:"tags"`

	// Agent identity and contact fields
	AgentName   *string `json:"agent_name,omitempty"`
	AgentEmail  *string `json:"agent_email,omitempty"`
	AgentPhone  *string `json:"agent_phone,omitempty"`
	BrokerName  *string `json:"broker_name,omitempty"`
	OfficeName  *string `json:"office_name,omitempty"`
	OfficePhone *string `json:"office_phone,omitempty"`

	// Externally computed, elite mode only
	InvestmentScore *float64 `json:"investment_score,omitempty"`
	PricePerSqft    *float64 `json:"price_per_sqft,omitempty"`
}

// HasAgentEmail reports whether the listing carries a usable agent email.
// Simple-mode grouping requires it as the contact key.
func (l Listing) HasAgentEmail() bool {
	return l.AgentEmail != nil && *l.AgentEmail != ""
}

// IsStale reports whether the listing has been on market at least threshold
// days. Listings with unknown days-on-market are never stale.
func (l Listing) IsStale(threshold int) bool {
	return l.DaysOnMarket != nil && *l.DaysOnMarket >= threshold
}
