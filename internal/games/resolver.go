// Package games holds one pure outcome resolver per game behind a common
// strategy interface, so the settlement engine is written once instead of
// per game.
package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

// Resolver maps draws plus a player selection to a settled outcome.
// Implementations are pure: no I/O, no clock, no randomness of their own.
type Resolver interface {
	Game() models.GameType
	// Validate rejects out-of-bounds selections before any state is
	// touched. Resolve assumes Validate passed.
	Validate(sel models.Selection) error
	// FloatsNeeded is the number of draws Resolve consumes for this
	// selection.
	FloatsNeeded(sel models.Selection) int
	Resolve(floats []float64, sel models.Selection) (models.Outcome, error)
}

// Config carries the house parameters shared by the resolvers. The
// coin-flip thresholds are deliberately asymmetric: strikes in
// (TailsMax, HeadsOver] lose for both sides, which is where that game's
// edge lives.
type Config struct {
	HouseEdge     float64
	CoinHeadsOver int
	CoinTailsMax  int
	OptionsPayout float64
}

func DefaultConfig() Config {
	return Config{
		HouseEdge:     0.01,
		CoinHeadsOver: 51,
		CoinTailsMax:  49,
		OptionsPayout: 1.9,
	}
}

// Registry resolves game types to their resolver.
type Registry struct {
	cfg       Config
	resolvers map[models.GameType]Resolver
}

func NewRegistry(cfg Config) *Registry {
	r := &Registry{cfg: cfg, resolvers: make(map[models.GameType]Resolver)}
	for _, res := range []Resolver{
		&CoinFlip{cfg: cfg},
		&Dice{cfg: cfg},
		&Keno{cfg: cfg},
		&Wheel{cfg: cfg},
		&Mines{cfg: cfg},
	} {
		r.resolvers[res.Game()] = res
	}
	return r
}

func (r *Registry) Get(game models.GameType) (Resolver, error) {
	res, ok := r.resolvers[game]
	if !ok {
		return nil, errs.Newf(errs.KindValidationFailed, "no resolver for game %q", game)
	}
	return res, nil
}

func (r *Registry) Config() Config { return r.cfg }

// edgeFactor is (1 - houseEdge) as a decimal multiplier.
func edgeFactor(edge float64) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(decimal.NewFromFloat(edge))
}

func hasDuplicates(nums []int) bool {
	seen := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}
