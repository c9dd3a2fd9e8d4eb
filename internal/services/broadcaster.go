package services

import (
	"solana-casino-backend/internal/models"
)

// Feed publishes settled bets to live subscribers (the websocket hub).
// Publication is fire-and-forget: a slow subscriber never blocks
// settlement.
type Feed interface {
	PublishSettled(bet models.BetRecord)
}

// NopFeed drops everything. Used in tests and when the hub is disabled.
type NopFeed struct{}

func (NopFeed) PublishSettled(models.BetRecord) {}
