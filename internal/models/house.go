package models

import (
	"github.com/shopspring/decimal"
)

// HouseStats is the running per-game accounting aggregate, incremented in
// the same transaction as each settlement so it stays consistent with the
// sum of bet records.
type HouseStats struct {
	Game         GameType        `db:"game" json:"game"`
	TokenMint    string          `db:"token_mint" json:"token_mint"`
	BetCount     int64           `db:"bet_count" json:"bet_count"`
	Volume       decimal.Decimal `db:"volume" json:"volume"`
	AmountWon    decimal.Decimal `db:"amount_won" json:"amount_won"`
	AmountLost   decimal.Decimal `db:"amount_lost" json:"amount_lost"`
	TaxCollected decimal.Decimal `db:"tax_collected" json:"tax_collected"`
	UpdatedAt    int64           `db:"updated_at" json:"updated_at"`
}
