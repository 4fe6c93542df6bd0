// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// TRANSACTION TABLE ADAPTERS - Shape ledger rows for bubbles/table
// =============================================================================

// Column widths are fixed per layout; only the trailing conversation
// column stretches. TransactionColumns and TransactionRows must be called
// with the same width so cells line up with headers.

// TransactionColumns returns the ledger table layout for the given width.
func TransactionColumns(width int) []table.Column {
	switch {
	case width < 60:
		return []table.Column{
			{Title: "TIME", Width: 11},
			{Title: "TYPE", Width: 10},
			{Title: "TOKENS", Width: 10},
		}
	case width < 100:
		return []table.Column{
			{Title: "TIME", Width: 16},
			{Title: "TYPE", Width: 10},
			{Title: "MODEL", Width: 18},
			{Title: "TOKENS", Width: 12},
		}
	default:
		// Fixed columns plus cell padding take 80 cells; the
		// conversation column absorbs the rest.
		conv := width - 82
		if conv < 12 {
			conv = 12
		}
		return []table.Column{
			{Title: "TIME", Width: 16},
			{Title: "TYPE", Width: 10},
			{Title: "MODEL", Width: 20},
			{Title: "TOKENS", Width: 12},
			{Title: "VALUE", Width: 10},
			{Title: "CONVERSATION", Width: conv},
		}
	}
}

// TransactionRows shapes transactions into rows matching
// TransactionColumns for the same width.
func TransactionRows(txs []*ledger.Transaction, width int) []table.Row {
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, transactionRow(tx, width))
	}
	return rows
}

func transactionRow(tx *ledger.Transaction, width int) table.Row {
	model := tx.Model
	if model == "" {
		model = "-"
	}

	conversation := tx.ConversationID
	if conversation == "" {
		conversation = "-"
	}

	switch {
	case width < 60:
		return table.Row{
			tx.CreatedAt.UTC().Format("01-02 15:04"),
			string(tx.TokenType),
			fmtSigned(tx.RawAmount),
		}
	case width < 100:
		return table.Row{
			tx.CreatedAt.UTC().Format("2006-01-02 15:04"),
			string(tx.TokenType),
			util.TruncateWidth(model, 18),
			fmtSigned(tx.RawAmount),
		}
	default:
		conv := width - 82
		if conv < 12 {
			conv = 12
		}
		return table.Row{
			tx.CreatedAt.UTC().Format("2006-01-02 15:04"),
			string(tx.TokenType),
			util.TruncateWidth(model, 20),
			fmtSigned(tx.RawAmount),
			fmtCost(tx.TokenValue),
			util.TruncateWidth(conversation, conv),
		}
	}
}

// fmtSigned renders a raw token amount with an explicit sign on credits.
func fmtSigned(n int64) string {
	if n > 0 {
		return "+" + fmtNumber(int(n))
	}
	return fmtNumber(int(n))
}
