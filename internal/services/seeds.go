package services

import (
	"context"

	"go.uber.org/zap"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/metrics"
	"solana-casino-backend/internal/models"
)

// Seeds returns the wallet's current pair (hash only) and the
// commitment hash of the next one.
func (e *Engine) Seeds(ctx context.Context, wallet string) (current, next models.SeedPair, err error) {
	return e.store.Seeds(ctx, wallet)
}

func (e *Engine) PreviousSeeds(ctx context.Context, wallet string, limit int) ([]models.SeedPair, error) {
	return e.store.PreviousSeeds(ctx, wallet, limit)
}

// SetClientSeed replaces the client seed on the current pair. Open
// rounds are unaffected: bets snapshot the seeds they settle under.
func (e *Engine) SetClientSeed(ctx context.Context, wallet, clientSeed string) (models.SeedPair, error) {
	if len(clientSeed) < 8 || len(clientSeed) > 64 {
		return models.SeedPair{}, errs.New(errs.KindValidationFailed, "client seed must be 8..64 characters")
	}
	for _, r := range clientSeed {
		if !isSeedRune(r) {
			return models.SeedPair{}, errs.New(errs.KindValidationFailed, "client seed may only contain letters, digits and dashes")
		}
	}
	return e.store.SetClientSeed(ctx, wallet, clientSeed)
}

// RotateSeeds reveals the current server seed and promotes the
// committed next pair.
func (e *Engine) RotateSeeds(ctx context.Context, wallet string) (revealed, current models.SeedPair, err error) {
	revealed, current, err = e.store.RotateSeeds(ctx, wallet)
	if err != nil {
		return models.SeedPair{}, models.SeedPair{}, err
	}
	metrics.SeedRotations.Inc()
	e.log.Info("seed pair rotated",
		zap.String("wallet", wallet),
		zap.Int64("revealed_pair", revealed.ID),
		zap.Uint64("bets_played", revealed.Nonce))
	return revealed, current, nil
}

func isSeedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		return true
	}
	return false
}
