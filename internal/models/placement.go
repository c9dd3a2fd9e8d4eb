package models

import (
	"github.com/shopspring/decimal"
)

// PlaceParams carries everything a placement transaction needs besides
// the resolution callback.
type PlaceParams struct {
	BetID     string
	Wallet    string
	Game      GameType
	TokenMint string
	Amount    decimal.Decimal
	Selection Selection
	// Tax is the house-edge slice booked into the accounting aggregate;
	// informational, not part of the balance math.
	Tax decimal.Decimal
	// State is server-private pending state supplied directly by the
	// caller for games that need no draw at placement (binary options).
	// Games with a draw provide a DeriveFn instead.
	State []byte
}

// ResolveFn runs inside the placement transaction once the current seed
// pair row is locked. It receives the pair and the nonce reserved for
// this bet and returns the settled outcome. It must be pure: the store
// may rerun the transaction after a lost race.
type ResolveFn func(pair SeedPair, nonce uint64) (Outcome, error)

// DeriveFn is the pending-game counterpart of ResolveFn: it derives the
// server-private state (mine positions, option strike) persisted with a
// pending bet. A nil DeriveFn means the game needs no draw at placement
// and no nonce is consumed (binary options).
type DeriveFn func(pair SeedPair, nonce uint64) (state []byte, err error)

// Settlement is the outcome applied to a pending bet.
type Settlement struct {
	Result     BetResult
	Strike     Strike
	Multiplier decimal.Decimal
	Payout     decimal.Decimal
	Tax        decimal.Decimal
}
