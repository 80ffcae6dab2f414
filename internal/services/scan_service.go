package services

import (
	"context"
	"log/slog"
	"time"

	"leadpulse/internal/agents"
	"leadpulse/internal/config"
	"leadpulse/internal/harvest"
	"leadpulse/internal/listing"
	"leadpulse/internal/market"
)

// ScanRequest is the simple-mode request body.
type ScanRequest struct {
	ZipCode      string   `json:"zipCode" validate:"required,len=5,numeric"`
	TagFilters   []string `json:"tagFilters"`
	TagExclude   []string `json:"tagExclude"`
	TagMatchType string   `json:"tagMatchType" validate:"omitempty,oneof=any all"`
}

// EliteScanRequest is the elite-mode request body. All structured filters are
// optional and forwarded to the provider as-is.
type EliteScanRequest struct {
	ScanRequest

	Preset      string   `json:"preset"`
	PriceMin    *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax    *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	BedsMin     *int     `json:"bedsMin" validate:"omitempty,gte=0"`
	BathsMin    *int     `json:"bathsMin" validate:"omitempty,gte=0"`
	SqftMin     *int     `json:"sqftMin" validate:"omitempty,gte=0"`
	HOAFeeMax   *float64 `json:"hoaFeeMax" validate:"omitempty,gte=0"`
	HasPool     *bool    `json:"hasPool"`
	HasGarage   *bool    `json:"hasGarage"`
	Waterfront  *bool    `json:"waterfront"`
	GarageMin   *int     `json:"garageMin" validate:"omitempty,gte=0"`
	MinListings *int     `json:"minListings" validate:"omitempty,gte=1"`
}

// ScanResult is the simple-mode response payload.
type ScanResult struct {
	Success         bool                  `json:"success"`
	ZipCode         string                `json:"zip_code"`
	TotalProperties int                   `json:"total_properties"`
	StaleProperties int                   `json:"stale_properties"`
	AgentCount      int                   `json:"agent_count"`
	Agents          []agents.AgentProfile `json:"agents"`
	MarketStats     market.ListingStats   `json:"market_stats"`
	ScrapedAt       time.Time             `json:"scraped_at"`
}

// EliteScanResult is the elite-mode response payload.
type EliteScanResult struct {
	Success         bool                      `json:"success"`
	ZipCode         string                    `json:"zip_code"`
	TotalProperties int                       `json:"total_properties"`
	AgentCount      int                       `json:"agent_count"`
	Agents          []agents.WholesaleProfile `json:"agents"`
	MarketStats     market.Stats              `json:"market_stats"`
	ScrapedAt       time.Time                 `json:"scraped_at"`
}

// ScanService runs the aggregation-and-scoring pipeline: one provider round
// trip, then purely in-memory grouping, scoring and summarizing. All state is
// request-scoped.
type ScanService struct {
	provider   harvest.Provider
	cfg        config.HarvestConfig
	aggregator *agents.Aggregator
	logger     *slog.Logger
}

// NewScanService creates a scan service backed by the given provider.
func NewScanService(provider harvest.Provider, cfg config.HarvestConfig, logger *slog.Logger) *ScanService {
	return &ScanService{
		provider:   provider,
		cfg:        cfg,
		aggregator: agents.NewAggregator(logger),
		logger:     logger.With(slog.String("component", "scan_service")),
	}
}

// ScanSimple runs the frustration pipeline: fetch, normalize, keep stale
// listings, group by agent email, score, summarize.
func (s *ScanService) ScanSimple(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if req.ZipCode == "" {
		return nil, ErrZipCodeRequired
	}

	q := harvest.ListingQuery{
		Location:     req.ZipCode,
		ListingType:  harvest.ListingTypeForSale,
		PastDays:     s.cfg.PastDays,
		MLSOnly:      true, // only MLS listings carry agent contact info
		Limit:        s.cfg.Limit,
		TagFilters:   req.TagFilters,
		TagExclude:   req.TagExclude,
		TagMatchType: tagMatchType(req.TagMatchType),
	}

	rows, err := s.provider.FetchListings(ctx, q)
	if err != nil {
		scansTotal.WithLabelValues("simple", "error").Inc()
		return nil, collaborator("listing fetch", err)
	}
	listingsFetched.WithLabelValues("simple").Add(float64(len(rows)))

	all := listing.NormalizeAll(rows)

	stale := make([]listing.Listing, 0, len(all))
	for _, l := range all {
		if l.IsStale(agents.StaleDaysThreshold) {
			stale = append(stale, l)
		}
	}

	grouping := agents.GroupListings(stale, agents.KeyByEmail)
	profiles := agents.ScoreFrustration(grouping.Buckets())

	s.logger.InfoContext(ctx, "simple scan completed",
		slog.String("zip_code", req.ZipCode),
		slog.Int("total_properties", len(all)),
		slog.Int("stale_properties", len(stale)),
		slog.Int("agents", len(profiles)),
	)
	scansTotal.WithLabelValues("simple", "success").Inc()
	agentsEmitted.WithLabelValues("simple").Add(float64(len(profiles)))

	return &ScanResult{
		Success:         true,
		ZipCode:         req.ZipCode,
		TotalProperties: len(all),
		StaleProperties: len(stale),
		AgentCount:      len(profiles),
		Agents:          profiles,
		MarketStats:     market.SummarizeListings(all),
		ScrapedAt:       time.Now().UTC(),
	}, nil
}

// ScanElite runs the wholesale/investment pipeline: fetch, then merge the
// provider's wholesale, specialization and investment-ranking tables into
// agent profiles.
func (s *ScanService) ScanElite(ctx context.Context, req EliteScanRequest) (*EliteScanResult, error) {
	if req.ZipCode == "" {
		return nil, ErrZipCodeRequired
	}

	preset := req.Preset
	if preset == "" {
		preset = s.cfg.Preset
	}
	minListings := s.cfg.MinListings
	if req.MinListings != nil {
		minListings = *req.MinListings
	}

	q := harvest.ListingQuery{
		Location:     req.ZipCode,
		ListingType:  harvest.ListingTypeForSale,
		PastDays:     s.cfg.PastDays,
		MLSOnly:      true,
		Limit:        s.cfg.Limit,
		Preset:       preset,
		RequireEmail: s.cfg.RequireAgentEmail,
		TagFilters:   req.TagFilters,
		TagExclude:   req.TagExclude,
		TagMatchType: tagMatchType(req.TagMatchType),
		PriceMin:     req.PriceMin,
		PriceMax:     req.PriceMax,
		BedsMin:      req.BedsMin,
		BathsMin:     req.BathsMin,
		SqftMin:      req.SqftMin,
		HOAFeeMax:    req.HOAFeeMax,
		HasPool:      req.HasPool,
		HasGarage:    req.HasGarage,
		Waterfront:   req.Waterfront,
		GarageMin:    req.GarageMin,
	}

	rows, err := s.provider.FetchListings(ctx, q)
	if err != nil {
		scansTotal.WithLabelValues("elite", "error").Inc()
		return nil, collaborator("listing fetch", err)
	}
	listingsFetched.WithLabelValues("elite").Add(float64(len(rows)))

	wholesale, err := s.provider.WholesaleAgents(ctx, rows, minListings)
	if err != nil {
		scansTotal.WithLabelValues("elite", "error").Inc()
		return nil, collaborator("wholesale analysis", err)
	}
	specialization, err := s.provider.Specialization(ctx, rows)
	if err != nil {
		scansTotal.WithLabelValues("elite", "error").Inc()
		return nil, collaborator("specialization analysis", err)
	}
	ranked, err := s.provider.RankInvestment(ctx, rows)
	if err != nil {
		scansTotal.WithLabelValues("elite", "error").Inc()
		return nil, collaborator("investment ranking", err)
	}

	profiles, skipped := s.aggregator.Aggregate(agents.WholesaleInputs{
		WholesaleRows:      wholesale,
		SpecializationRows: specialization,
		RankedListings:     ranked,
	})
	if skipped > 0 {
		agentsSkipped.Add(float64(skipped))
	}

	// The ranked table is the full listing set annotated with investment
	// metrics, so listing stats come from it rather than the raw rows.
	allListings := listing.NormalizeAll(ranked)
	scores := make([]float64, 0, len(profiles))
	for _, p := range profiles {
		scores = append(scores, p.WholesaleScore)
	}

	s.logger.InfoContext(ctx, "elite scan completed",
		slog.String("zip_code", req.ZipCode),
		slog.Int("total_properties", len(rows)),
		slog.Int("agents", len(profiles)),
		slog.Int("skipped_agents", skipped),
	)
	scansTotal.WithLabelValues("elite", "success").Inc()
	agentsEmitted.WithLabelValues("elite").Add(float64(len(profiles)))

	return &EliteScanResult{
		Success:         true,
		ZipCode:         req.ZipCode,
		TotalProperties: len(rows),
		AgentCount:      len(profiles),
		Agents:          profiles,
		MarketStats: market.Stats{
			ListingStats: market.SummarizeListings(allListings),
			AgentStats:   market.SummarizeAgents(scores),
		},
		ScrapedAt: time.Now().UTC(),
	}, nil
}

// AgentActivity exposes the provider's raw agent-activity extractor for one
// location. Diagnostic surface; no scoring involved.
func (s *ScanService) AgentActivity(ctx context.Context, zipCode string) ([]harvest.Row, error) {
	if zipCode == "" {
		return nil, ErrZipCodeRequired
	}

	rows, err := s.provider.FetchListings(ctx, harvest.ListingQuery{
		Location:    zipCode,
		ListingType: harvest.ListingTypeForSale,
		PastDays:    s.cfg.PastDays,
		MLSOnly:     true,
		Limit:       s.cfg.Limit,
	})
	if err != nil {
		return nil, collaborator("listing fetch", err)
	}

	activity, err := s.provider.AgentActivity(ctx, rows)
	if err != nil {
		return nil, collaborator("agent activity", err)
	}
	return activity, nil
}

func tagMatchType(t string) string {
	if t == "" {
		return "any"
	}
	return t
}
