package harvest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client implements Provider against the analytics provider's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a provider client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "harvest_client")),
	}
}

// FetchListings returns the raw listing table for one query.
func (c *Client) FetchListings(ctx context.Context, q ListingQuery) ([]Row, error) {
	return c.postRows(ctx, "/v1/listings", q)
}

// AgentActivity extracts per-agent activity rows from a listing set.
func (c *Client) AgentActivity(ctx context.Context, listings []Row) ([]Row, error) {
	return c.postRows(ctx, "/v1/agents/activity", map[string]any{
		"listings": listings,
	})
}

// WholesaleAgents filters agents by wholesale friendliness.
func (c *Client) WholesaleAgents(ctx context.Context, listings []Row, minListings int) ([]Row, error) {
	return c.postRows(ctx, "/v1/agents/wholesale", map[string]any{
		"listings":     listings,
		"min_listings": minListings,
	})
}

// Specialization analyzes per-agent specialization.
func (c *Client) Specialization(ctx context.Context, listings []Row) ([]Row, error) {
	return c.postRows(ctx, "/v1/agents/specialization", map[string]any{
		"listings": listings,
	})
}

// RankInvestment ranks listings by investment potential.
func (c *Client) RankInvestment(ctx context.Context, listings []Row) ([]Row, error) {
	return c.postRows(ctx, "/v1/listings/rank", map[string]any{
		"listings": listings,
	})
}

// rowsEnvelope is the provider's standard response wrapper.
type rowsEnvelope struct {
	Rows  []Row  `json:"rows"`
	Error string `json:"error,omitempty"`
}

// postRows POSTs a JSON body and decodes the provider's row table.
func (c *Client) postRows(ctx context.Context, path string, body any) ([]Row, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call provider %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read provider %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var env rowsEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return nil, fmt.Errorf("provider %s returned %d: %s", path, resp.StatusCode, env.Error)
		}
		return nil, fmt.Errorf("provider %s returned %d", path, resp.StatusCode)
	}

	var env rowsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode provider %s response: %w", path, err)
	}

	c.logger.DebugContext(ctx, "provider call completed",
		slog.String("path", path),
		slog.Int("rows", len(env.Rows)),
		slog.String("duration", time.Since(start).String()),
	)

	return env.Rows, nil
}
