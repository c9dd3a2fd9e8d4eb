package models

import (
	"github.com/shopspring/decimal"
)

// AccountBalance is one row per (wallet, token mint). The amount is only
// ever mutated through the store's guarded UPDATE, so it can never go
// negative.
type AccountBalance struct {
	ID        int64           `db:"id" json:"-"`
	Wallet    string          `db:"wallet" json:"wallet"`
	TokenMint string          `db:"token_mint" json:"token_mint"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt int64           `db:"created_at" json:"created_at"`
	UpdatedAt int64           `db:"updated_at" json:"updated_at"`
}

// JournalEntry is an append-only movement against a balance, with the
// before/after snapshot so the books can be audited independently of the
// balance row. biz_type: bet|payout|deposit.
type JournalEntry struct {
	ID           int64           `db:"id" json:"id"`
	Wallet       string          `db:"wallet" json:"wallet"`
	TokenMint    string          `db:"token_mint" json:"token_mint"`
	BizType      string          `db:"biz_type" json:"biz_type"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	BeforeAmount decimal.Decimal `db:"before_amount" json:"before_amount"`
	AfterAmount  decimal.Decimal `db:"after_amount" json:"after_amount"`
	BetID        string          `db:"bet_id" json:"bet_id,omitempty"`
	Remark       string          `db:"remark" json:"remark,omitempty"`
	CreatedAt    int64           `db:"created_at" json:"created_at"`
}

const (
	BizBet     = "bet"
	BizPayout  = "payout"
	BizDeposit = "deposit"
)
