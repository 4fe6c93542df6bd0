// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/OmarMoust/LibreChat/internal/ledger"
)

// =============================================================================
// TRANSACTION TABLE ADAPTER TESTS
// =============================================================================

func testTransaction() *ledger.Transaction {
	return &ledger.Transaction{
		ID:             "tx-1",
		UserID:         "user-a",
		ConversationID: "conv-1234",
		TokenType:      ledger.TokenTypePrompt,
		RawAmount:      -1500,
		TokenValue:     12.5,
		Model:          "gpt-4o",
		CreatedAt:      time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestTransactionColumnsByWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		wantCols int
	}{
		{"narrow", 50, 3},
		{"medium boundary", 60, 4},
		{"medium", 90, 4},
		{"wide boundary", 100, 6},
		{"wide", 140, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cols := TransactionColumns(tc.width)
			if len(cols) != tc.wantCols {
				t.Errorf("TransactionColumns(%d) = %d columns, want %d",
					tc.width, len(cols), tc.wantCols)
			}
		})
	}
}

func TestTransactionColumnsWideStretch(t *testing.T) {
	cols := TransactionColumns(140)

	last := cols[len(cols)-1]
	if last.Title != "CONVERSATION" {
		t.Errorf("last wide column = %q, want CONVERSATION", last.Title)
	}
	if last.Width != 58 {
		t.Errorf("conversation column width = %d, want 58", last.Width)
	}
}

func TestTransactionRowsMatchColumns(t *testing.T) {
	txs := []*ledger.Transaction{testTransaction()}

	for _, width := range []int{50, 80, 120} {
		cols := TransactionColumns(width)
		rows := TransactionRows(txs, width)

		if len(rows) != 1 {
			t.Fatalf("TransactionRows() = %d rows, want 1", len(rows))
		}
		if len(rows[0]) != len(cols) {
			t.Errorf("width %d: row has %d cells, columns %d", width, len(rows[0]), len(cols))
		}
	}
}

func TestTransactionRowWide(t *testing.T) {
	rows := TransactionRows([]*ledger.Transaction{testTransaction()}, 120)
	row := rows[0]

	if row[0] != "2025-06-01 14:30" {
		t.Errorf("time cell = %q, want %q", row[0], "2025-06-01 14:30")
	}
	if row[1] != "prompt" {
		t.Errorf("type cell = %q, want %q", row[1], "prompt")
	}
	if row[2] != "gpt-4o" {
		t.Errorf("model cell = %q, want %q", row[2], "gpt-4o")
	}
	if row[3] != "-1,500" {
		t.Errorf("tokens cell = %q, want %q", row[3], "-1,500")
	}
	if row[4] != "12.50" {
		t.Errorf("value cell = %q, want %q", row[4], "12.50")
	}
	if row[5] != "conv-1234" {
		t.Errorf("conversation cell = %q, want %q", row[5], "conv-1234")
	}
}

func TestTransactionRowNarrowTimeFormat(t *testing.T) {
	rows := TransactionRows([]*ledger.Transaction{testTransaction()}, 50)
	row := rows[0]

	if row[0] != "06-01 14:30" {
		t.Errorf("narrow time cell = %q, want %q", row[0], "06-01 14:30")
	}
}

func TestTransactionRowCreditSign(t *testing.T) {
	tx := testTransaction()
	tx.TokenType = ledger.TokenTypeCredits
	tx.RawAmount = 10000

	rows := TransactionRows([]*ledger.Transaction{tx}, 120)
	if rows[0][3] != "+10,000" {
		t.Errorf("credit tokens cell = %q, want %q", rows[0][3], "+10,000")
	}
}

func TestTransactionRowMissingFields(t *testing.T) {
	tx := testTransaction()
	tx.Model = ""
	tx.ConversationID = ""

	rows := TransactionRows([]*ledger.Transaction{tx}, 120)
	if rows[0][2] != "-" {
		t.Errorf("empty model cell = %q, want %q", rows[0][2], "-")
	}
	if rows[0][5] != "-" {
		t.Errorf("empty conversation cell = %q, want %q", rows[0][5], "-")
	}
}

func TestTransactionRowTimeNormalizedToUTC(t *testing.T) {
	tx := testTransaction()
	est := time.FixedZone("EST", -5*60*60)
	tx.CreatedAt = time.Date(2025, 6, 1, 9, 30, 0, 0, est) // 14:30 UTC

	rows := TransactionRows([]*ledger.Transaction{tx}, 120)
	if rows[0][0] != "2025-06-01 14:30" {
		t.Errorf("time cell = %q, want UTC rendering", rows[0][0])
	}
}

func TestTransactionRowLongModelTruncated(t *testing.T) {
	tx := testTransaction()
	tx.Model = "an-extremely-long-model-identifier-v2025-preview"

	rows := TransactionRows([]*ledger.Transaction{tx}, 120)
	if !strings.HasSuffix(rows[0][2], "...") {
		t.Errorf("model cell = %q, want truncation with ellipsis", rows[0][2])
	}
	if len(rows[0][2]) > 20 {
		t.Errorf("model cell %q exceeds column width", rows[0][2])
	}
}

func TestTransactionRowsEmpty(t *testing.T) {
	rows := TransactionRows(nil, 120)
	if len(rows) != 0 {
		t.Errorf("TransactionRows(nil) = %d rows, want 0", len(rows))
	}
}
