// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import (
	"context"
	"database/sql"
	"time"
)

const (
	// DefaultListLimit applies when a caller does not specify a page size.
	DefaultListLimit = 100
	// MaxListLimit caps a single page.
	MaxListLimit = 1000
)

// Filter holds conjunctive query constraints. Zero values mean
// unconstrained. Date bounds are inclusive on both ends.
type Filter struct {
	UserID         string
	StartDate      time.Time
	EndDate        time.Time
	Model          string
	ConversationID string
}

// whereClause builds the WHERE fragment and its arguments. List and Scan
// share it so pagination and aggregation always agree on what matches.
func (f Filter) whereClause() (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if f.UserID != "" {
		canonical, legacy := UserKeys(f.UserID)
		if legacy != canonical {
			where += " AND user_id IN (?, ?)"
			args = append(args, canonical, legacy)
		} else {
			where += " AND user_id = ?"
			args = append(args, canonical)
		}
	}
	if !f.StartDate.IsZero() {
		where += " AND created_at >= ?"
		args = append(args, f.StartDate.UTC().UnixMilli())
	}
	if !f.EndDate.IsZero() {
		where += " AND created_at <= ?"
		args = append(args, f.EndDate.UTC().UnixMilli())
	}
	if f.Model != "" {
		where += " AND model = ?"
		args = append(args, f.Model)
	}
	if f.ConversationID != "" {
		where += " AND conversation_id = ?"
		args = append(args, f.ConversationID)
	}

	return where, args
}

// ClampLimit normalizes a requested page size: unset (0) becomes
// DefaultListLimit, anything outside [1, MaxListLimit] moves to the nearest
// bound.
func ClampLimit(limit int) int {
	if limit == 0 {
		return DefaultListLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// ClampOffset normalizes a requested offset to be non-negative.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// =============================================================================
// READ PATH
// =============================================================================

const selectColumns = `
	SELECT id, user_id, conversation_id, token_type, raw_amount,
	       input_tokens, write_tokens, read_tokens, token_value, rate,
	       model, context, created_at, updated_at
	FROM transactions`

// List returns one page of matching transactions, newest first, along with
// the total match count regardless of pagination. Ordering is
// created_at descending with insertion order (rowid) breaking ties, so
// repeated calls against an unchanged ledger return identical pages.
func (s *Store) List(ctx context.Context, f Filter, limit, offset int) ([]*Transaction, int64, error) {
	if s.db == nil {
		return nil, 0, ErrClosed
	}

	limit = ClampLimit(limit)
	offset = ClampOffset(offset)

	where, args := f.whereClause()

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, queryError("count", err)
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	rows, err := s.db.QueryContext(ctx,
		selectColumns+where+" ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		pageArgs...)
	if err != nil {
		return nil, 0, queryError("list", err)
	}
	defer rows.Close()

	out := make([]*Transaction, 0, limit)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, queryError("list scan", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, queryError("list rows", err)
	}

	return out, total, nil
}

// Count returns the number of matching transactions.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}

	where, args := f.whereClause()
	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return 0, queryError("count", err)
	}
	return total, nil
}

// Scan walks every matching transaction in ascending created_at order
// (insertion order breaking ties) and hands each row to fn. The aggregator
// uses this to group without loading the whole match set; fn returning an
// error aborts the walk.
func (s *Store) Scan(ctx context.Context, f Filter, fn func(*Transaction) error) error {
	if s.db == nil {
		return ErrClosed
	}

	where, args := f.whereClause()
	rows, err := s.db.QueryContext(ctx,
		selectColumns+where+" ORDER BY created_at ASC, rowid ASC",
		args...)
	if err != nil {
		return queryError("scan", err)
	}
	defer rows.Close()

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return queryError("scan row", err)
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return queryError("scan rows", err)
	}
	return nil
}

// scanTransaction reads one row into a Transaction, mapping NULL optional
// columns to zero values.
func scanTransaction(rows *sql.Rows) (*Transaction, error) {
	var (
		tx           Transaction
		conversation sql.NullString
		model        sql.NullString
		contextNote  sql.NullString
		tokenType    string
		createdMs    int64
		updatedMs    int64
	)

	err := rows.Scan(
		&tx.ID,
		&tx.UserID,
		&conversation,
		&tokenType,
		&tx.RawAmount,
		&tx.InputTokens,
		&tx.WriteTokens,
		&tx.ReadTokens,
		&tx.TokenValue,
		&tx.Rate,
		&model,
		&contextNote,
		&createdMs,
		&updatedMs,
	)
	if err != nil {
		return nil, err
	}

	tx.ConversationID = conversation.String
	tx.TokenType = TokenType(tokenType)
	tx.Model = model.String
	tx.Context = contextNote.String
	tx.CreatedAt = time.UnixMilli(createdMs).UTC()
	tx.UpdatedAt = time.UnixMilli(updatedMs).UTC()

	return &tx, nil
}
