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

// seed_pair_id is NULL for bets that consume no nonce (binary options),
// so the unique (seed_pair_id, nonce) key ignores them.
const betColumns = `id, wallet, game, token_mint, amount, selection, strike, multiplier, result,
	amount_won, amount_lost, nonce, COALESCE(seed_pair_id, 0) AS seed_pair_id,
	client_seed, server_seed_hash, state, opened_at, settled_at`

// PlaceInstantBet runs the whole lifecycle of a single-draw bet in one
// transaction: lock the current seed pair, resolve the outcome at the
// reserved nonce, move the money with the overdraw guard, consume the
// nonce, and persist the settled record with its journal rows. Any
// failure rolls the lot back, so a rejected bet burns no nonce.
func (s *Store) PlaceInstantBet(ctx context.Context, p models.PlaceParams, resolve models.ResolveFn) (models.BetRecord, models.AccountBalance, error) {
	var (
		bet     models.BetRecord
		balance models.AccountBalance
	)
	err := s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		pair, err := currentPairTx(ctx, tx, p.Wallet, true)
		if err != nil {
			return err
		}
		nonce := pair.Nonce

		outcome, err := resolve(pair, nonce)
		if err != nil {
			return err
		}

		payout := decimal.Zero
		if outcome.Result == models.BetWon {
			payout = p.Amount.Mul(outcome.Multiplier)
		}
		net := payout.Sub(p.Amount)

		if err := applyBalanceDeltaTx(ctx, tx, p.Wallet, p.TokenMint, net, p.Amount); err != nil {
			return err
		}
		if err := consumeNonceTx(ctx, tx, pair); err != nil {
			return err
		}

		bet = models.BetRecord{
			ID:             p.BetID,
			Wallet:         p.Wallet,
			Game:           p.Game,
			TokenMint:      p.TokenMint,
			Amount:         p.Amount,
			Multiplier:     outcome.Multiplier,
			Result:         outcome.Result,
			Nonce:          nonce,
			SeedPairID:     pair.ID,
			ClientSeed:     pair.ClientSeed,
			ServerSeedHash: pair.ServerSeedHash,
			OpenedAt:       models.NowMillis(),
		}
		bet.SettledAt = bet.OpenedAt
		// amount_won is the gross payout (stake x multiplier), not the
		// net gain.
		if outcome.Result == models.BetWon {
			bet.AmountWon = payout
		} else {
			bet.AmountLost = p.Amount
		}
		if err := bet.SetSelection(p.Selection); err != nil {
			return errs.Wrap(errs.KindInternal, "encode selection", err)
		}
		if err := bet.SetStrike(outcome.Strike); err != nil {
			return errs.Wrap(errs.KindInternal, "encode strike", err)
		}
		if err := insertBetTx(ctx, tx, bet); err != nil {
			return err
		}

		after, err := balanceAmountTx(ctx, tx, p.Wallet, p.TokenMint)
		if err != nil {
			return err
		}
		if err := journalBetMovementTx(ctx, tx, p, after, net, payout); err != nil {
			return err
		}
		if err := upsertHouseStatsTx(ctx, tx, p.Game, p.TokenMint, p.Amount, bet.AmountWon, bet.AmountLost, p.Tax); err != nil {
			return err
		}

		balance, err = balanceTx(ctx, tx, p.Wallet, p.TokenMint)
		return err
	})
	if err != nil {
		return models.BetRecord{}, models.AccountBalance{}, err
	}
	return bet, balance, nil
}

// OpenPendingBet debits the stake and inserts a pending record for a
// multi-step game. At most one pending bet per (wallet, game) may exist;
// a second attempt fails with BetAlreadyActive. A non-nil derive runs
// under the pair lock, consumes a nonce, and its output is stored as the
// server-private state; with a nil derive the caller-provided state is
// stored and no nonce moves.
func (s *Store) OpenPendingBet(ctx context.Context, p models.PlaceParams, derive models.DeriveFn) (models.BetRecord, models.AccountBalance, error) {
	var (
		bet     models.BetRecord
		balance models.AccountBalance
	)
	err := s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var existing string
		err := tx.GetContext(ctx, &existing,
			"SELECT id FROM bet_records WHERE wallet = ? AND game = ? AND result = ? FOR UPDATE",
			p.Wallet, p.Game, models.BetPending)
		if err == nil {
			return errs.Newf(errs.KindBetAlreadyActive, "wallet already has an open %s bet", p.Game)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return errs.Wrap(errs.KindInternal, "check pending bet", err)
		}

		bet = models.BetRecord{
			ID:        p.BetID,
			Wallet:    p.Wallet,
			Game:      p.Game,
			TokenMint: p.TokenMint,
			Amount:    p.Amount,
			Result:    models.BetPending,
			State:     p.State,
			OpenedAt:  models.NowMillis(),
		}
		if derive != nil {
			pair, err := currentPairTx(ctx, tx, p.Wallet, true)
			if err != nil {
				return err
			}
			state, err := derive(pair, pair.Nonce)
			if err != nil {
				return err
			}
			if err := consumeNonceTx(ctx, tx, pair); err != nil {
				return err
			}
			bet.State = state
			bet.Nonce = pair.Nonce
			bet.SeedPairID = pair.ID
			bet.ClientSeed = pair.ClientSeed
			bet.ServerSeedHash = pair.ServerSeedHash
		}
		if err := bet.SetSelection(p.Selection); err != nil {
			return errs.Wrap(errs.KindInternal, "encode selection", err)
		}

		if err := applyBalanceDeltaTx(ctx, tx, p.Wallet, p.TokenMint, p.Amount.Neg(), p.Amount); err != nil {
			return err
		}
		if err := insertBetTx(ctx, tx, bet); err != nil {
			return err
		}

		after, err := balanceAmountTx(ctx, tx, p.Wallet, p.TokenMint)
		if err != nil {
			return err
		}
		if err := insertJournalTx(ctx, tx, models.JournalEntry{
			Wallet:       p.Wallet,
			TokenMint:    p.TokenMint,
			BizType:      models.BizBet,
			Amount:       p.Amount.Neg(),
			BeforeAmount: after.Add(p.Amount),
			AfterAmount:  after,
			BetID:        p.BetID,
			Remark:       models.NewJournalRemark(p.Game, "open"),
		}); err != nil {
			return err
		}
		if err := upsertHouseStatsTx(ctx, tx, p.Game, p.TokenMint, p.Amount, decimal.Zero, decimal.Zero, decimal.Zero); err != nil {
			return err
		}

		balance, err = balanceTx(ctx, tx, p.Wallet, p.TokenMint)
		return err
	})
	if err != nil {
		return models.BetRecord{}, models.AccountBalance{}, err
	}
	return bet, balance, nil
}

// FindPendingBet loads a wallet's open bet for a game.
func (s *Store) FindPendingBet(ctx context.Context, wallet string, game models.GameType) (models.BetRecord, error) {
	var bet models.BetRecord
	err := s.db.GetContext(ctx, &bet,
		"SELECT "+betColumns+" FROM bet_records WHERE wallet = ? AND game = ? AND result = ?",
		wallet, game, models.BetPending)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BetRecord{}, errs.Newf(errs.KindNotFound, "no open %s bet", game)
	}
	if err != nil {
		return models.BetRecord{}, errs.Wrap(errs.KindInternal, "load pending bet", err)
	}
	return bet, nil
}

// Bet loads a single record by id. Used by the verifier.
func (s *Store) Bet(ctx context.Context, betID string) (models.BetRecord, error) {
	var bet models.BetRecord
	err := s.db.GetContext(ctx, &bet,
		"SELECT "+betColumns+" FROM bet_records WHERE id = ?", betID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BetRecord{}, errs.Newf(errs.KindNotFound, "bet %s not found", betID)
	}
	if err != nil {
		return models.BetRecord{}, errs.Wrap(errs.KindInternal, "load bet", err)
	}
	return bet, nil
}

// UpdatePendingState persists mid-round progress (revealed tiles, the
// running multiplier) on a still-pending bet. The write only lands if
// the stored state still equals prev, so two concurrent updates derived
// from the same snapshot cannot overwrite each other; the loser gets a
// StorageConflict.
func (s *Store) UpdatePendingState(ctx context.Context, betID string, prev, state []byte, multiplier decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bet_records SET state = ?, multiplier = ? WHERE id = ? AND result = ? AND state = CAST(? AS JSON)",
		state, multiplier, betID, models.BetPending, prev)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "update pending state", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.KindInternal, "update pending state", err)
	}
	if rows == 0 {
		return errs.Newf(errs.KindStorageConflict, "bet %s is no longer pending or changed underfoot", betID)
	}
	return nil
}

// SettlePendingBet flips a pending bet to its final result exactly once,
// crediting the payout in the same transaction. Settling a bet that is
// no longer pending fails with StorageConflict, which makes concurrent
// cashout/reveal races and double expiry sweeps harmless.
func (s *Store) SettlePendingBet(ctx context.Context, betID string, st models.Settlement) (models.BetRecord, models.AccountBalance, error) {
	var (
		bet     models.BetRecord
		balance models.AccountBalance
	)
	err := s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &bet,
			"SELECT "+betColumns+" FROM bet_records WHERE id = ? FOR UPDATE", betID)
		if errors.Is(err, sql.ErrNoRows) {
			return errs.Newf(errs.KindNotFound, "bet %s not found", betID)
		}
		if err != nil {
			return errs.Wrap(errs.KindInternal, "load bet for settlement", err)
		}
		if bet.Result != models.BetPending {
			return errs.Newf(errs.KindStorageConflict, "bet %s already settled", betID)
		}

		bet.Result = st.Result
		bet.Multiplier = st.Multiplier
		bet.SettledAt = models.NowMillis()
		if st.Result == models.BetWon {
			bet.AmountWon = st.Payout
		} else {
			bet.AmountLost = bet.Amount
		}
		if err := bet.SetStrike(st.Strike); err != nil {
			return errs.Wrap(errs.KindInternal, "encode strike", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE bet_records
			 SET result = ?, strike = ?, multiplier = ?, amount_won = ?, amount_lost = ?, state = NULL, settled_at = ?
			 WHERE id = ? AND result = ?`,
			bet.Result, bet.StrikeJSON, bet.Multiplier, bet.AmountWon, bet.AmountLost, bet.SettledAt,
			betID, models.BetPending)
		if err != nil {
			return errs.Wrap(errs.KindInternal, "settle bet", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return errs.Wrap(errs.KindInternal, "settle bet", err)
		}
		if rows == 0 {
			return errs.Newf(errs.KindStorageConflict, "bet %s already settled", betID)
		}
		bet.State = nil

		if st.Result == models.BetWon && st.Payout.IsPositive() {
			if err := applyBalanceDeltaTx(ctx, tx, bet.Wallet, bet.TokenMint, st.Payout, decimal.Zero); err != nil {
				return err
			}
			after, err := balanceAmountTx(ctx, tx, bet.Wallet, bet.TokenMint)
			if err != nil {
				return err
			}
			if err := insertJournalTx(ctx, tx, models.JournalEntry{
				Wallet:       bet.Wallet,
				TokenMint:    bet.TokenMint,
				BizType:      models.BizPayout,
				Amount:       st.Payout,
				BeforeAmount: after.Sub(st.Payout),
				AfterAmount:  after,
				BetID:        bet.ID,
				Remark:       models.NewJournalRemark(bet.Game, "settle"),
			}); err != nil {
				return err
			}
		}
		if err := upsertHouseStatsTx(ctx, tx, bet.Game, bet.TokenMint, decimal.Zero, bet.AmountWon, bet.AmountLost, st.Tax); err != nil {
			return err
		}

		balance, err = balanceTx(ctx, tx, bet.Wallet, bet.TokenMint)
		return err
	})
	if err != nil {
		return models.BetRecord{}, models.AccountBalance{}, err
	}
	return bet, balance, nil
}

// History returns a wallet's settled bets, newest first.
func (s *Store) History(ctx context.Context, wallet string, limit int) ([]models.BetRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var bets []models.BetRecord
	err := s.db.SelectContext(ctx, &bets,
		"SELECT "+betColumns+" FROM bet_records WHERE wallet = ? AND result <> ? ORDER BY opened_at DESC LIMIT ?",
		wallet, models.BetPending, limit)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load bet history", err)
	}
	return bets, nil
}

// ActiveBets returns a wallet's open pending bets across all games.
func (s *Store) ActiveBets(ctx context.Context, wallet string) ([]models.BetRecord, error) {
	var bets []models.BetRecord
	err := s.db.SelectContext(ctx, &bets,
		"SELECT "+betColumns+" FROM bet_records WHERE wallet = ? AND result = ? ORDER BY opened_at",
		wallet, models.BetPending)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load active bets", err)
	}
	return bets, nil
}

// ExpiredOptionBets lists pending option bets whose time frame has
// elapsed, for the settlement sweep.
func (s *Store) ExpiredOptionBets(ctx context.Context, now int64, limit int) ([]models.BetRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var bets []models.BetRecord
	err := s.db.SelectContext(ctx, &bets,
		`SELECT `+betColumns+` FROM bet_records
		 WHERE game = ? AND result = ?
		   AND CAST(JSON_EXTRACT(state, '$.expires_at') AS SIGNED) <= ?
		 ORDER BY opened_at LIMIT ?`,
		models.GameOptions, models.BetPending, now, limit)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load expired option bets", err)
	}
	return bets, nil
}

// HouseStats returns the per-game accounting aggregates.
func (s *Store) HouseStats(ctx context.Context) ([]models.HouseStats, error) {
	var stats []models.HouseStats
	err := s.db.SelectContext(ctx, &stats,
		`SELECT game, token_mint, bet_count, volume, amount_won, amount_lost, tax_collected, updated_at
		 FROM house_stats ORDER BY game, token_mint`)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load house stats", err)
	}
	return stats, nil
}

func insertBetTx(ctx context.Context, tx *sqlx.Tx, b models.BetRecord) error {
	var pairID any
	if b.SeedPairID != 0 {
		pairID = b.SeedPairID
	}
	var state any
	if len(b.State) > 0 {
		state = b.State
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO bet_records
		 (id, wallet, game, token_mint, amount, selection, strike, multiplier, result,
		  amount_won, amount_lost, nonce, seed_pair_id, client_seed, server_seed_hash, state, opened_at, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Wallet, b.Game, b.TokenMint, b.Amount, b.Selection, nullableJSON(b.StrikeJSON),
		b.Multiplier, b.Result, b.AmountWon, b.AmountLost, b.Nonce, pairID,
		b.ClientSeed, b.ServerSeedHash, state, b.OpenedAt, b.SettledAt)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "insert bet record", err)
	}
	return nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// journalBetMovementTx books an instant bet as two journal rows, stake
// out then payout in, reconstructing the intermediate balance from the
// final amount.
func journalBetMovementTx(ctx context.Context, tx *sqlx.Tx, p models.PlaceParams, after, net, payout decimal.Decimal) error {
	before := after.Sub(net)
	afterStake := before.Sub(p.Amount)
	if err := insertJournalTx(ctx, tx, models.JournalEntry{
		Wallet:       p.Wallet,
		TokenMint:    p.TokenMint,
		BizType:      models.BizBet,
		Amount:       p.Amount.Neg(),
		BeforeAmount: before,
		AfterAmount:  afterStake,
		BetID:        p.BetID,
		Remark:       models.NewJournalRemark(p.Game, "bet"),
	}); err != nil {
		return err
	}
	if payout.IsPositive() {
		if err := insertJournalTx(ctx, tx, models.JournalEntry{
			Wallet:       p.Wallet,
			TokenMint:    p.TokenMint,
			BizType:      models.BizPayout,
			Amount:       payout,
			BeforeAmount: afterStake,
			AfterAmount:  after,
			BetID:        p.BetID,
			Remark:       models.NewJournalRemark(p.Game, "payout"),
		}); err != nil {
			return err
		}
	}
	return nil
}

func upsertHouseStatsTx(ctx context.Context, tx *sqlx.Tx, game models.GameType, tokenMint string, volume, won, lost, tax decimal.Decimal) error {
	betCount := 0
	if volume.IsPositive() {
		betCount = 1
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO house_stats (game, token_mint, bet_count, volume, amount_won, amount_lost, tax_collected, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   bet_count = bet_count + VALUES(bet_count),
		   volume = volume + VALUES(volume),
		   amount_won = amount_won + VALUES(amount_won),
		   amount_lost = amount_lost + VALUES(amount_lost),
		   tax_collected = tax_collected + VALUES(tax_collected),
		   updated_at = VALUES(updated_at)`,
		game, tokenMint, betCount, volume, won, lost, tax, models.NowMillis())
	if err != nil {
		return errs.Wrap(errs.KindInternal, "update house stats", err)
	}
	return nil
}
