package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadpulse_scans_total",
		Help: "Completed scan requests by mode and outcome.",
	}, []string{"mode", "outcome"})

	agentsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadpulse_agents_emitted_total",
		Help: "Agent profiles emitted in scan responses, by mode.",
	}, []string{"mode"})

	agentsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadpulse_agents_skipped_total",
		Help: "Agents dropped by the elite aggregator's partial-failure contract.",
	})

	listingsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadpulse_listings_fetched_total",
		Help: "Raw listings returned by the analytics provider, by mode.",
	}, []string{"mode"})
)
