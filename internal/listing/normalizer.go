package listing

import (
	"fmt"
	"strings"

	"leadpulse/internal/harvest"
)

// Normalize converts one raw provider row into a Listing. It never fails:
// missing or type-mismatched fields resolve to nil through the coercion
// helpers in this package.
func Normalize(row harvest.Row) Listing {
	return Listing{
		Address:      BuildAddress(row),
		ListPrice:    Float(row, "list_price"),
		DaysOnMarket: daysOnMarket(row),
		Beds:         Float(row, "beds"),
		Baths:        baths(row),
		Sqft:         Float(row, "sqft"),
		LotSqft:      Float(row, "lot_sqft"),
		YearBuilt:    Int(row, "year_built"),
		PropertyURL:  String(row, "property_url"),
		Tags:         Strings(row, "tags"),

		AgentName:   String(row, "agent_name"),
		AgentEmail:  String(row, "agent_email"),
		AgentPhone:  String(row, "agent_phone"),
		BrokerName:  String(row, "broker_name"),
		OfficeName:  String(row, "office_name"),
		OfficePhone: String(row, "office_phone"),

		InvestmentScore: Float(row, "investment_score"),
		PricePerSqft:    Float(row, "price_per_sqft"),
	}
}

// NormalizeAll normalizes a full listing table, preserving input order.
func NormalizeAll(rows []harvest.Row) []Listing {
	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, Normalize(row))
	}
	return out
}

// BuildAddress assembles "street, city, state zip" from the row's address
// parts. Missing parts become empty substrings; the result is trimmed but the
// separators are kept so partial addresses stay recognizable.
func BuildAddress(row harvest.Row) string {
	part := func(key string) string {
		if s := String(row, key); s != nil {
			return *s
		}
		return ""
	}
	addr := fmt.Sprintf("%s, %s, %s %s",
		part("street"), part("city"), part("state"), part("zip_code"))
	return strings.TrimSpace(addr)
}

// daysOnMarket reads the DOM column. MLS sources report it as days_on_mls,
// pre-normalized feeds as days_on_market.
func daysOnMarket(row harvest.Row) *int {
	if n := NonNegativeInt(row, "days_on_mls"); n != nil {
		return n
	}
	return NonNegativeInt(row, "days_on_market")
}

// baths prefers the full_baths column MLS sources use, falling back to a
// combined baths value.
func baths(row harvest.Row) *float64 {
	if f := Float(row, "full_baths"); f != nil {
		return f
	}
	return Float(row, "baths")
}
