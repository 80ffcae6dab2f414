package agents

import (
	"leadpulse/internal/listing"
)

// KeyFunc extracts the grouping key from a listing. An empty key means the
// listing cannot be attributed to an agent under this strategy and is skipped.
type KeyFunc func(listing.Listing) string

// KeyByEmail keys buckets on agent email, the contact key of the simple
// (frustration) pipeline.
func KeyByEmail(l listing.Listing) string {
	if l.AgentEmail == nil {
		return ""
	}
	return *l.AgentEmail
}

// KeyByName keys buckets on agent name, the key of the elite pipeline. The
// two strategies deliberately differ: merging them would change
// de-duplication when one agent has multiple emails or one office email
// serves several names.
func KeyByName(l listing.Listing) string {
	if l.AgentName == nil {
		return ""
	}
	return *l.AgentName
}

// Grouping is an immutable mapping from agent key to bucket, remembering
// first-seen key order.
type Grouping struct {
	order   []string
	buckets map[string]*AgentBucket
}

// GroupListings folds a listing sequence into per-agent buckets. The first
// listing seen for a key seeds the bucket's metadata; later listings only
// append to the bucket's listing list.
func GroupListings(listings []listing.Listing, key KeyFunc) *Grouping {
	g := &Grouping{buckets: make(map[string]*AgentBucket)}
	for _, l := range listings {
		k := key(l)
		if k == "" {
			continue
		}
		b, ok := g.buckets[k]
		if !ok {
			b = &AgentBucket{
				Key:         k,
				AgentName:   l.AgentName,
				AgentEmail:  l.AgentEmail,
				AgentPhone:  l.AgentPhone,
				BrokerName:  l.BrokerName,
				OfficeName:  l.OfficeName,
				OfficePhone: l.OfficePhone,
			}
			g.buckets[k] = b
			g.order = append(g.order, k)
		}
		b.Listings = append(b.Listings, l)
	}
	return g
}

// Buckets returns the non-empty buckets in first-seen order.
func (g *Grouping) Buckets() []*AgentBucket {
	out := make([]*AgentBucket, 0, len(g.order))
	for _, k := range g.order {
		b := g.buckets[k]
		if len(b.Listings) == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Len returns the number of buckets.
func (g *Grouping) Len() int {
	return len(g.order)
}
