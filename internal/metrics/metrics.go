package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casino",
		Name:      "bets_settled_total",
		Help:      "Settled bets by game and result.",
	}, []string{"game", "result"})

	BetsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casino",
		Name:      "bets_rejected_total",
		Help:      "Rejected bets by game and error kind.",
	}, []string{"game", "kind"})

	SettlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "casino",
		Name:      "settlement_duration_seconds",
		Help:      "End-to-end settlement transaction latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"game"})

	SettlementRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "casino",
		Name:      "settlement_retries_total",
		Help:      "Placements retried after a lost nonce race.",
	})

	OracleRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casino",
		Name:      "oracle_requests_total",
		Help:      "Price oracle lookups by outcome.",
	}, []string{"outcome"})

	SeedRotations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "casino",
		Name:      "seed_rotations_total",
		Help:      "Seed pair rotations performed.",
	})
)
