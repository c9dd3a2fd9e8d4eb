// Package store is the MySQL persistence layer. Every balance mutation
// is a single guarded UPDATE (amount >= stake) inside a transaction, so
// two concurrent bets can never both pass the balance check against a
// stale read.
package store

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Default transaction timeout, so a slow settlement cannot hold row
// locks indefinitely. An upstream deadline takes precedence.
const defaultTxTimeout = 3 * time.Second

type Store struct {
	db *sqlx.DB
}

func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	txCtx := ctx
	if _, has := ctx.Deadline(); !has {
		c, cancel := context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
		txCtx = c
	}
	tx, err := s.db.BeginTxx(txCtx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(txCtx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS account_balances (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		wallet VARCHAR(64) NOT NULL,
		token_mint VARCHAR(64) NOT NULL,
		amount DECIMAL(30,9) NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		UNIQUE KEY uk_wallet_token (wallet, token_mint)
	)`,
	`CREATE TABLE IF NOT EXISTS seed_pairs (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		wallet VARCHAR(64) NOT NULL,
		client_seed VARCHAR(64) NOT NULL,
		server_seed VARCHAR(64) NOT NULL,
		server_seed_hash VARCHAR(64) NOT NULL,
		nonce BIGINT UNSIGNED NOT NULL DEFAULT 0,
		status VARCHAR(10) NOT NULL,
		created_at BIGINT NOT NULL,
		rotated_at BIGINT NOT NULL DEFAULT 0,
		KEY idx_wallet_status (wallet, status)
	)`,
	`CREATE TABLE IF NOT EXISTS bet_records (
		id CHAR(36) NOT NULL PRIMARY KEY,
		wallet VARCHAR(64) NOT NULL,
		game VARCHAR(16) NOT NULL,
		token_mint VARCHAR(64) NOT NULL,
		amount DECIMAL(30,9) NOT NULL,
		selection JSON NOT NULL,
		strike JSON NULL,
		multiplier DECIMAL(20,8) NOT NULL DEFAULT 0,
		result VARCHAR(10) NOT NULL,
		amount_won DECIMAL(30,9) NOT NULL DEFAULT 0,
		amount_lost DECIMAL(30,9) NOT NULL DEFAULT 0,
		nonce BIGINT UNSIGNED NOT NULL DEFAULT 0,
		seed_pair_id BIGINT NULL,
		client_seed VARCHAR(64) NOT NULL DEFAULT '',
		server_seed_hash VARCHAR(64) NOT NULL DEFAULT '',
		state JSON NULL,
		opened_at BIGINT NOT NULL,
		settled_at BIGINT NOT NULL DEFAULT 0,
		UNIQUE KEY uk_pair_nonce (seed_pair_id, nonce),
		KEY idx_wallet_result (wallet, result),
		KEY idx_wallet_opened (wallet, opened_at)
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_journal (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		wallet VARCHAR(64) NOT NULL,
		token_mint VARCHAR(64) NOT NULL,
		biz_type VARCHAR(16) NOT NULL,
		amount DECIMAL(30,9) NOT NULL,
		before_amount DECIMAL(30,9) NOT NULL,
		after_amount DECIMAL(30,9) NOT NULL,
		bet_id CHAR(36) NOT NULL DEFAULT '',
		remark VARCHAR(128) NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL,
		KEY idx_wallet (wallet, created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS house_stats (
		game VARCHAR(16) NOT NULL,
		token_mint VARCHAR(64) NOT NULL,
		bet_count BIGINT NOT NULL DEFAULT 0,
		volume DECIMAL(30,9) NOT NULL DEFAULT 0,
		amount_won DECIMAL(30,9) NOT NULL DEFAULT 0,
		amount_lost DECIMAL(30,9) NOT NULL DEFAULT 0,
		tax_collected DECIMAL(30,9) NOT NULL DEFAULT 0,
		updated_at BIGINT NOT NULL,
		PRIMARY KEY (game, token_mint)
	)`,
}

// EnsureSchema creates the tables on startup. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
