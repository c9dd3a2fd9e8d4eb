package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/fair"
	"solana-casino-backend/internal/models"
)

const seedColumns = "id, wallet, client_seed, server_seed, server_seed_hash, nonce, status, created_at, rotated_at"

// Seeds returns the wallet's current and next pair, creating both on
// first contact.
func (s *Store) Seeds(ctx context.Context, wallet string) (current, next models.SeedPair, err error) {
	err = s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var e error
		current, e = currentPairTx(ctx, tx, wallet, false)
		if e != nil {
			return e
		}
		next, e = pairByStatusTx(ctx, tx, wallet, models.SeedNext)
		return e
	})
	return current, next, err
}

// PreviousSeeds lists rotated pairs, server seeds included: those are
// public once revealed.
func (s *Store) PreviousSeeds(ctx context.Context, wallet string, limit int) ([]models.SeedPair, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var pairs []models.SeedPair
	err := s.db.SelectContext(ctx, &pairs,
		"SELECT "+seedColumns+" FROM seed_pairs WHERE wallet = ? AND status = ? ORDER BY rotated_at DESC LIMIT ?",
		wallet, models.SeedPrevious, limit)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load previous seeds", err)
	}
	return pairs, nil
}

// SetClientSeed replaces the client seed on the current pair. Bet
// records snapshot the seed they were settled with, so history stays
// verifiable across changes.
func (s *Store) SetClientSeed(ctx context.Context, wallet, clientSeed string) (models.SeedPair, error) {
	var out models.SeedPair
	err := s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		pair, err := currentPairTx(ctx, tx, wallet, true)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE seed_pairs SET client_seed = ? WHERE id = ?",
			clientSeed, pair.ID); err != nil {
			return errs.Wrap(errs.KindInternal, "set client seed", err)
		}
		pair.ClientSeed = clientSeed
		out = pair
		return nil
	})
	return out, err
}

// RotateSeeds demotes current to previous (revealing its server seed),
// promotes next to current, and mints a fresh next pair.
func (s *Store) RotateSeeds(ctx context.Context, wallet string) (revealed, current models.SeedPair, err error) {
	err = s.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		old, e := currentPairTx(ctx, tx, wallet, true)
		if e != nil {
			return e
		}
		next, e := pairByStatusTx(ctx, tx, wallet, models.SeedNext)
		if e != nil {
			return e
		}

		now := models.NowMillis()
		if _, e = tx.ExecContext(ctx,
			"UPDATE seed_pairs SET status = ?, rotated_at = ? WHERE id = ? AND status = ?",
			models.SeedPrevious, now, old.ID, models.SeedCurrent); e != nil {
			return errs.Wrap(errs.KindInternal, "demote current pair", e)
		}
		// The new current keeps the client seed the player was using.
		if _, e = tx.ExecContext(ctx,
			"UPDATE seed_pairs SET status = ?, client_seed = ? WHERE id = ? AND status = ?",
			models.SeedCurrent, old.ClientSeed, next.ID, models.SeedNext); e != nil {
			return errs.Wrap(errs.KindInternal, "promote next pair", e)
		}
		if e = insertPairTx(ctx, tx, wallet, old.ClientSeed, models.SeedNext); e != nil {
			return e
		}

		old.Status = models.SeedPrevious
		old.RotatedAt = now
		revealed = old
		next.Status = models.SeedCurrent
		next.ClientSeed = old.ClientSeed
		current = next
		return nil
	})
	return revealed, current, err
}

// currentPairTx loads (and optionally locks) the wallet's current pair,
// creating the current+next pairs on first use.
func currentPairTx(ctx context.Context, tx *sqlx.Tx, wallet string, forUpdate bool) (models.SeedPair, error) {
	query := "SELECT " + seedColumns + " FROM seed_pairs WHERE wallet = ? AND status = ?"
	if forUpdate {
		query += " FOR UPDATE"
	}
	var pair models.SeedPair
	err := tx.GetContext(ctx, &pair, query, wallet, models.SeedCurrent)
	if errors.Is(err, sql.ErrNoRows) {
		clientSeed := fair.NewClientSeed()
		if err := insertPairTx(ctx, tx, wallet, clientSeed, models.SeedCurrent); err != nil {
			return models.SeedPair{}, err
		}
		if err := insertPairTx(ctx, tx, wallet, clientSeed, models.SeedNext); err != nil {
			return models.SeedPair{}, err
		}
		if err := tx.GetContext(ctx, &pair, query, wallet, models.SeedCurrent); err != nil {
			return models.SeedPair{}, errs.Wrap(errs.KindInternal, "reload created seed pair", err)
		}
		return pair, nil
	}
	if err != nil {
		return models.SeedPair{}, errs.Wrap(errs.KindInternal, "load current seed pair", err)
	}
	return pair, nil
}

func pairByStatusTx(ctx context.Context, tx *sqlx.Tx, wallet string, status models.SeedStatus) (models.SeedPair, error) {
	var pair models.SeedPair
	err := tx.GetContext(ctx, &pair,
		"SELECT "+seedColumns+" FROM seed_pairs WHERE wallet = ? AND status = ?",
		wallet, status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SeedPair{}, errs.Newf(errs.KindInvalidSeedState, "wallet has no %s seed pair", status)
	}
	if err != nil {
		return models.SeedPair{}, errs.Wrap(errs.KindInternal, "load seed pair", err)
	}
	return pair, nil
}

func insertPairTx(ctx context.Context, tx *sqlx.Tx, wallet, clientSeed string, status models.SeedStatus) error {
	serverSeed := fair.NewServerSeed()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO seed_pairs (wallet, client_seed, server_seed, server_seed_hash, nonce, status, created_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		wallet, clientSeed, serverSeed, fair.HashSeed(serverSeed), status, models.NowMillis())
	if err != nil {
		return errs.Wrap(errs.KindInternal, "insert seed pair", err)
	}
	return nil
}

// consumeNonceTx reserves the pair's current nonce for a bet. The
// guarded UPDATE fails if a concurrent bet on the same pair won the
// race, which callers surface as a retryable StorageConflict.
func consumeNonceTx(ctx context.Context, tx *sqlx.Tx, pair models.SeedPair) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE seed_pairs SET nonce = nonce + 1 WHERE id = ? AND nonce = ?",
		pair.ID, pair.Nonce)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "consume nonce", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.KindInternal, "consume nonce", err)
	}
	if rows == 0 {
		return errs.Newf(errs.KindStorageConflict, "nonce %d already consumed on pair %d", pair.Nonce, pair.ID)
	}
	return nil
}
