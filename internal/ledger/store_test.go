// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err, "Open should succeed on a fresh path")
	t.Cleanup(func() { s.Close() })
	return s
}

// at returns a deterministic timestamp n minutes after a fixed epoch.
func at(n int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(n) * time.Minute)
}

func usageTx(user string, tt TokenType, raw int64, created time.Time) *Transaction {
	return &Transaction{
		UserID:    user,
		TokenType: tt,
		RawAmount: raw,
		CreatedAt: created,
	}
}

// =============================================================================
// WRITE PATH TESTS
// =============================================================================

func TestInsert_FillsIdentityAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx := &Transaction{UserID: "u1", TokenType: TokenTypePrompt, RawAmount: -120}
	require.NoError(t, s.Insert(ctx, tx))

	require.NotEmpty(t, tx.ID, "Insert should assign an ID")
	require.False(t, tx.CreatedAt.IsZero(), "Insert should assign CreatedAt")
	require.Equal(t, tx.CreatedAt, tx.UpdatedAt)

	got, total, err := s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, tx.ID, got[0].ID)
	require.EqualValues(t, -120, got[0].RawAmount)
}

func TestInsert_RejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Insert(ctx, &Transaction{TokenType: TokenTypePrompt})
	require.ErrorIs(t, err, ErrInvalidTransaction, "missing user id")

	err = s.Insert(ctx, &Transaction{UserID: "u1", TokenType: TokenType("bogus")})
	require.ErrorIs(t, err, ErrInvalidTransaction, "unknown token type")
}

func TestInsertBatch_AllRowsLand(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*Transaction{
		usageTx("u1", TokenTypePrompt, -100, at(0)),
		usageTx("u1", TokenTypeCompletion, -50, at(1)),
		usageTx("u1", TokenTypeCredits, 1000, at(2)),
	}
	require.NoError(t, s.InsertBatch(ctx, batch))

	_, total, err := s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
}

func TestInsertBatch_ValidatesBeforeWriting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*Transaction{
		usageTx("u1", TokenTypePrompt, -100, at(0)),
		{UserID: "", TokenType: TokenTypePrompt},
	}
	require.ErrorIs(t, s.InsertBatch(ctx, batch), ErrInvalidTransaction)

	_, total, err := s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, total, "invalid batch must not write anything")
}

// =============================================================================
// LIST / PAGINATION TESTS
// =============================================================================

func TestList_PaginationWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// 12 matching records, createdAt ascending with insertion.
	for i := 0; i < 12; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypeCompletion, int64(-(i+1)), at(i))))
	}

	page, total, err := s.List(ctx, Filter{UserID: "u1"}, 5, 5)
	require.NoError(t, err)
	require.EqualValues(t, 12, total, "total counts all matches regardless of pagination")
	require.Len(t, page, 5)

	// Newest-first ordering: offset 5 skips records 12..8, page holds 7..3.
	require.Equal(t, at(6), page[0].CreatedAt)
	require.Equal(t, at(2), page[4].CreatedAt)
}

func TestList_LimitClamping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypePrompt, -1, at(i))))
	}

	page, _, err := s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, DefaultListLimit, "limit 0 falls back to the default")

	page, _, err = s.List(ctx, Filter{UserID: "u1"}, -7, 0)
	require.NoError(t, err)
	require.Len(t, page, 1, "negative limit clamps to 1")

	page, _, err = s.List(ctx, Filter{UserID: "u1"}, 5000, -3)
	require.NoError(t, err)
	require.Len(t, page, 150, "oversized limit clamps to the cap, negative offset to 0")
}

func TestList_OrderIsDeterministic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Same createdAt for every row: insertion order must break ties.
	ts := at(0)
	for i := 0; i < 6; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypePrompt, int64(-i), ts)))
	}

	first, _, err := s.List(ctx, Filter{UserID: "u1"}, 10, 0)
	require.NoError(t, err)
	second, _, err := s.List(ctx, Filter{UserID: "u1"}, 10, 0)
	require.NoError(t, err)

	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID, "repeated calls must return identical order")
	}
	// Later insertions come first on equal timestamps.
	require.EqualValues(t, -5, first[0].RawAmount)
}

func TestList_ConjunctiveFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mk := func(user, conv, model string, created time.Time) *Transaction {
		tx := usageTx(user, TokenTypePrompt, -10, created)
		tx.ConversationID = conv
		tx.Model = model
		return tx
	}
	require.NoError(t, s.Insert(ctx, mk("u1", "c1", "gpt-4o", at(0))))
	require.NoError(t, s.Insert(ctx, mk("u1", "c1", "claude-3-5-sonnet", at(1))))
	require.NoError(t, s.Insert(ctx, mk("u1", "c2", "gpt-4o", at(2))))
	require.NoError(t, s.Insert(ctx, mk("u2", "c1", "gpt-4o", at(3))))

	page, total, err := s.List(ctx, Filter{UserID: "u1", ConversationID: "c1", Model: "gpt-4o"}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "c1", page[0].ConversationID)
	require.Equal(t, "gpt-4o", page[0].Model)
}

func TestList_DateBoundsInclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypePrompt, -1, at(i))))
	}

	_, total, err := s.List(ctx, Filter{UserID: "u1", StartDate: at(1), EndDate: at(3)}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total, "both bounds are inclusive")
}

func TestList_DualUserIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	canonical := "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09"
	_, legacy := UserKeys(canonical)
	require.NotEqual(t, canonical, legacy)

	// One row written under each historical representation.
	require.NoError(t, s.Insert(ctx, usageTx(canonical, TokenTypePrompt, -10, at(0))))
	require.NoError(t, s.Insert(ctx, usageTx(legacy, TokenTypeCompletion, -20, at(1))))

	// Either representation in the filter matches both rows.
	_, total, err := s.List(ctx, Filter{UserID: canonical}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	_, total, err = s.List(ctx, Filter{UserID: legacy}, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestList_OptionalColumnsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	full := &Transaction{
		UserID:         "u1",
		ConversationID: "c9",
		TokenType:      TokenTypePrompt,
		RawAmount:      -500,
		InputTokens:    300,
		WriteTokens:    120,
		ReadTokens:     80,
		TokenValue:     -42.5,
		Rate:           0.15,
		Model:          "gpt-4o-mini",
		Context:        "message",
		CreatedAt:      at(0),
	}
	bare := usageTx("u1", TokenTypeCompletion, -60, at(1))

	require.NoError(t, s.Insert(ctx, full))
	require.NoError(t, s.Insert(ctx, bare))

	page, _, err := s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	// Newest first: bare then full.
	require.Empty(t, page[0].Model)
	require.Empty(t, page[0].ConversationID)
	require.Equal(t, "gpt-4o-mini", page[1].Model)
	require.EqualValues(t, 300, page[1].InputTokens)
	require.Equal(t, -42.5, page[1].TokenValue)
	require.Equal(t, at(0), page[1].CreatedAt)
}

// =============================================================================
// SCAN TESTS
// =============================================================================

func TestScan_AscendingOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypePrompt, int64(-i), at(3-i))))
	}

	var seen []time.Time
	err := s.Scan(ctx, Filter{UserID: "u1"}, func(tx *Transaction) error {
		seen = append(seen, tx.CreatedAt)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 4)
	for i := 1; i < len(seen); i++ {
		require.False(t, seen[i].Before(seen[i-1]), "scan order must ascend")
	}
}

func TestScan_AbortsOnCallbackError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, usageTx("u1", TokenTypePrompt, -1, at(i))))
	}

	boom := errors.New("boom")
	count := 0
	err := s.Scan(ctx, Filter{UserID: "u1"}, func(tx *Transaction) error {
		count++
		if count == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, count)
}

// =============================================================================
// ERROR SURFACE TESTS
// =============================================================================

func TestQueryFailure_Surfaced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Break the schema out from under the store.
	_, err := s.db.Exec("DROP TABLE transactions")
	require.NoError(t, err)

	_, _, err = s.List(ctx, Filter{UserID: "u1"}, 0, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrQueryFailure, "storage failures must match ErrQueryFailure")

	err = s.Scan(ctx, Filter{}, func(*Transaction) error { return nil })
	require.ErrorIs(t, err, ErrQueryFailure)
}

func TestClosedStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, _, err := s.List(context.Background(), Filter{}, 0, 0)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Insert(context.Background(), usageTx("u", TokenTypePrompt, -1, at(0))), ErrClosed)
}
