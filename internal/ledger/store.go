// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite schema for the transaction ledger.
const schema = `
-- Usage transactions written by the billing subsystem
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    conversation_id TEXT,
    token_type TEXT NOT NULL,
    raw_amount INTEGER NOT NULL,
    input_tokens INTEGER NOT NULL DEFAULT 0,
    write_tokens INTEGER NOT NULL DEFAULT 0,
    read_tokens INTEGER NOT NULL DEFAULT 0,
    token_value REAL NOT NULL DEFAULT 0,
    rate REAL NOT NULL DEFAULT 0,
    model TEXT,
    context TEXT,
    created_at INTEGER NOT NULL, -- Unix milliseconds, UTC
    updated_at INTEGER NOT NULL  -- Unix milliseconds, UTC
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_conversation ON transactions(conversation_id);
CREATE INDEX IF NOT EXISTS idx_transactions_model ON transactions(model);
`

// Store is the SQLite-backed transaction ledger.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the ledger database at path and prepares
// the schema. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY churn between the API server and the billing writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	log.WithField("path", path).Debug("ledger store opened")

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// WRITE PATH (billing subsystem interface)
// =============================================================================

// Insert appends one transaction. A missing ID is assigned a fresh UUID and
// zero timestamps are filled with the current time; everything else is
// stored as given.
func (s *Store) Insert(ctx context.Context, tx *Transaction) error {
	if s.db == nil {
		return ErrClosed
	}
	if err := validate(tx); err != nil {
		return err
	}
	fill(tx)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, user_id, conversation_id, token_type, raw_amount,
			 input_tokens, write_tokens, read_tokens, token_value, rate,
			 model, context, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, insertArgs(tx)...)
	if err != nil {
		return queryError("insert", err)
	}
	return nil
}

// InsertBatch appends transactions atomically; either all rows land or none.
func (s *Store) InsertBatch(ctx context.Context, txs []*Transaction) error {
	if s.db == nil {
		return ErrClosed
	}
	for _, tx := range txs {
		if err := validate(tx); err != nil {
			return err
		}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return queryError("insert batch", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions
			(id, user_id, conversation_id, token_type, raw_amount,
			 input_tokens, write_tokens, read_tokens, token_value, rate,
			 model, context, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return queryError("insert batch", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		fill(tx)
		if _, err := stmt.ExecContext(ctx, insertArgs(tx)...); err != nil {
			return queryError("insert batch", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return queryError("insert batch", err)
	}
	return nil
}

// validate rejects transactions the reporting layer could not account for.
func validate(tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", ErrInvalidTransaction)
	}
	if tx.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidTransaction)
	}
	if !tx.TokenType.Valid() {
		return fmt.Errorf("%w: unknown token type %q", ErrInvalidTransaction, tx.TokenType)
	}
	return nil
}

// fill assigns the ID and timestamps the writer left zero.
func fill(tx *Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = tx.CreatedAt
	}
}

func insertArgs(tx *Transaction) []any {
	return []any{
		tx.ID,
		tx.UserID,
		nullIfEmpty(tx.ConversationID),
		string(tx.TokenType),
		tx.RawAmount,
		tx.InputTokens,
		tx.WriteTokens,
		tx.ReadTokens,
		tx.TokenValue,
		tx.Rate,
		nullIfEmpty(tx.Model),
		nullIfEmpty(tx.Context),
		tx.CreatedAt.UTC().UnixMilli(),
		tx.UpdatedAt.UTC().UnixMilli(),
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
