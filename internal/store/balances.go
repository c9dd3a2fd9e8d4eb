package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

const balanceColumns = "id, wallet, token_mint, amount, created_at, updated_at"

// Balance returns the balance row, or a zero-amount balance when the
// wallet never held this token.
func (s *Store) Balance(ctx context.Context, wallet, tokenMint string) (models.AccountBalance, error) {
	var b models.AccountBalance
	err := s.db.GetContext(ctx, &b,
		"SELECT "+balanceColumns+" FROM account_balances WHERE wallet = ? AND token_mint = ?",
		wallet, tokenMint)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccountBalance{Wallet: wallet, TokenMint: tokenMint, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return models.AccountBalance{}, errs.Wrap(errs.KindInternal, "load balance", err)
	}
	return b, nil
}

// Credit adds funds (faucet / deposit callback), creating the balance
// row on first use.
func (s *Store) Credit(ctx context.Context, wallet, tokenMint string, amount decimal.Decimal, remark string) (models.AccountBalance, error) {
	var out models.AccountBalance
	err := s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		now := models.NowMillis()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO account_balances (wallet, token_mint, amount, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON DUPLICATE KEY UPDATE amount = amount + VALUES(amount), updated_at = VALUES(updated_at)`,
			wallet, tokenMint, amount, now, now)
		if err != nil {
			return errs.Wrap(errs.KindInternal, "credit balance", err)
		}
		after, err := balanceAmountTx(ctx, tx, wallet, tokenMint)
		if err != nil {
			return err
		}
		if err := insertJournalTx(ctx, tx, models.JournalEntry{
			Wallet:       wallet,
			TokenMint:    tokenMint,
			BizType:      models.BizDeposit,
			Amount:       amount,
			BeforeAmount: after.Sub(amount),
			AfterAmount:  after,
			Remark:       remark,
		}); err != nil {
			return err
		}
		out, err = balanceTx(ctx, tx, wallet, tokenMint)
		return err
	})
	return out, err
}

// applyBalanceDeltaTx is the only write path for bet money movement:
// one statement, guarded so the debit can never overdraw. Returns
// InsufficientBalance without touching anything when the guard fails.
func applyBalanceDeltaTx(ctx context.Context, tx *sqlx.Tx, wallet, tokenMint string, net, stakeGuard decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE account_balances
		 SET amount = amount + ?, updated_at = ?
		 WHERE wallet = ? AND token_mint = ? AND amount >= ?`,
		net, models.NowMillis(), wallet, tokenMint, stakeGuard)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "apply balance delta", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.KindInternal, "apply balance delta", err)
	}
	if rows == 0 {
		return errs.New(errs.KindInsufficientBalance, "insufficient balance for stake")
	}
	return nil
}

func balanceTx(ctx context.Context, tx *sqlx.Tx, wallet, tokenMint string) (models.AccountBalance, error) {
	var b models.AccountBalance
	err := tx.GetContext(ctx, &b,
		"SELECT "+balanceColumns+" FROM account_balances WHERE wallet = ? AND token_mint = ?",
		wallet, tokenMint)
	if err != nil {
		return models.AccountBalance{}, errs.Wrap(errs.KindInternal, "load balance in tx", err)
	}
	return b, nil
}

func balanceAmountTx(ctx context.Context, tx *sqlx.Tx, wallet, tokenMint string) (decimal.Decimal, error) {
	b, err := balanceTx(ctx, tx, wallet, tokenMint)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Amount, nil
}

func insertJournalTx(ctx context.Context, tx *sqlx.Tx, e models.JournalEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_journal (wallet, token_mint, biz_type, amount, before_amount, after_amount, bet_id, remark, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Wallet, e.TokenMint, e.BizType, e.Amount, e.BeforeAmount, e.AfterAmount, e.BetID, e.Remark, models.NowMillis())
	if err != nil {
		return errs.Wrap(errs.KindInternal, "insert journal entry", err)
	}
	return nil
}

// Journal returns recent journal entries for a wallet, newest first.
func (s *Store) Journal(ctx context.Context, wallet string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.JournalEntry
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, wallet, token_mint, biz_type, amount, before_amount, after_amount, bet_id, remark, created_at
		 FROM wallet_journal WHERE wallet = ? ORDER BY id DESC LIMIT ?`,
		wallet, limit)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load journal", err)
	}
	return entries, nil
}
