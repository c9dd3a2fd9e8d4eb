package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BetRecord is the append-only audit row for a bet. Instant games are
// inserted already settled; mines and options are inserted pending and
// flip to won/lost exactly once.
type BetRecord struct {
	ID         string          `db:"id" json:"id"`
	Wallet     string          `db:"wallet" json:"wallet"`
	Game       GameType        `db:"game" json:"game"`
	TokenMint  string          `db:"token_mint" json:"token_mint"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Selection  []byte          `db:"selection" json:"-"`
	StrikeJSON []byte          `db:"strike" json:"-"`
	Multiplier decimal.Decimal `db:"multiplier" json:"multiplier"`
	Result     BetResult       `db:"result" json:"result"`
	AmountWon  decimal.Decimal `db:"amount_won" json:"amount_won"`
	AmountLost decimal.Decimal `db:"amount_lost" json:"amount_lost"`
	Nonce      uint64          `db:"nonce" json:"nonce"`
	SeedPairID int64           `db:"seed_pair_id" json:"seed_pair_id"`
	// Seed snapshot taken at placement, so the bet stays verifiable even
	// after the player changes their client seed or rotates the pair.
	ClientSeed     string `db:"client_seed" json:"client_seed,omitempty"`
	ServerSeedHash string `db:"server_seed_hash" json:"server_seed_hash,omitempty"`
	// State holds server-private progress for pending games (mine
	// positions, option strike price). Never exposed before settlement.
	State     []byte `db:"state" json:"-"`
	OpenedAt  int64  `db:"opened_at" json:"opened_at"`
	SettledAt int64  `db:"settled_at" json:"settled_at,omitempty"`
}

func (b *BetRecord) SetSelection(sel Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	b.Selection = raw
	return nil
}

func (b *BetRecord) GetSelection() (Selection, error) {
	var sel Selection
	if len(b.Selection) == 0 {
		return sel, nil
	}
	err := json.Unmarshal(b.Selection, &sel)
	return sel, err
}

func (b *BetRecord) SetStrike(s Strike) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.StrikeJSON = raw
	return nil
}

func (b *BetRecord) GetStrike() (Strike, error) {
	var s Strike
	if len(b.StrikeJSON) == 0 {
		return s, nil
	}
	err := json.Unmarshal(b.StrikeJSON, &s)
	return s, err
}

// MinesState is the server-private state of an open mines round.
type MinesState struct {
	MinesCount int   `json:"mines_count"`
	Mines      []int `json:"mines"`
	Revealed   []int `json:"revealed"`
}

// OptionsState is the server-private state of an open binary option.
type OptionsState struct {
	Direction   OptionDirection `json:"direction"`
	StrikePrice string          `json:"strike_price"`
	TimeFrame   int             `json:"time_frame"`
	ExpiresAt   int64           `json:"expires_at"` // unix millis
}
