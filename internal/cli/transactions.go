// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transactions.go - Transactions command implementation for librechat.
//
// Command: transactions
// Short:   List ledger transactions
// Aliases: tx, ledger
//
// Flags:
//   --limit N           Page size (default 25, max 1000)
//   --offset N          Page start
//   --model NAME        Filter by model
//   --conversation ID   Filter by conversation
//   --start DATE        Inclusive lower bound (YYYY-MM-DD, RFC3339, or 24h/7d)
//   --end DATE          Inclusive upper bound
//   --user ID           Scope to one user
//   --json              Machine-readable output
//
// Examples:
//   librechat transactions              First page of recent transactions
//   librechat tx --limit 50             Last 50 transactions
//   librechat tx --model gpt-4o         Model-filtered listing
//   librechat tx --start 7d --json      Last week as JSON
package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/OmarMoust/LibreChat/internal/ledger"
)

// defaultTransactionsLimit is the CLI page size when --limit is omitted. It
// matches the dashboard's page size so both surfaces paginate alike.
const defaultTransactionsLimit = 25

// HandleTransactions handles the "transactions" command.
func HandleTransactions(args Args) {
	if err := handleTransactionsCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// handleTransactionsCommand lists one page of the filtered ledger.
func handleTransactionsCommand(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	filter, err := buildTransactionFilter(args)
	if err != nil {
		return err
	}

	limit := args.Limit
	if limit == 0 {
		limit = defaultTransactionsLimit
	}
	limit = ledger.ClampLimit(limit)
	offset := ledger.ClampOffset(args.Offset)

	txs, total, err := store.List(context.Background(), filter, limit, offset)
	if err != nil {
		return WrapError(err, "failed to list ledger")
	}

	if args.JSON {
		return printTransactionsJSON(txs, total, limit, offset)
	}

	if len(txs) == 0 {
		fmt.Println(DimStyle.Render("No transactions recorded"))
		return nil
	}

	fmt.Print(renderTransactionsTable(txs))
	fmt.Println(DimStyle.Render(transactionsStatusLine(len(txs), total, limit, offset)))
	return nil
}

// buildTransactionFilter assembles the ledger filter from CLI flags.
func buildTransactionFilter(args Args) (ledger.Filter, error) {
	filter := ledger.Filter{
		UserID:         resolveUserID(args),
		Model:          args.Model,
		ConversationID: args.Conversation,
	}

	start, err := parseDateArg(args.Start, false)
	if err != nil {
		return ledger.Filter{}, NewValidationErrorWithExample("start", args.Start,
			"unparseable date", "--start 2025-06-01 or --start 7d")
	}
	end, err := parseDateArg(args.End, true)
	if err != nil {
		return ledger.Filter{}, NewValidationErrorWithExample("end", args.End,
			"unparseable date", "--end 2025-06-30")
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}

// renderTransactionsTable renders one page of transactions as a bordered
// table. Kept pure so tests can assert on the content directly.
func renderTransactionsTable(txs []*ledger.Transaction) string {
	var buf bytes.Buffer

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Date", "User", "Type", "Model", "Tokens", "Conversation"})

	var pageTotal int64
	for _, tx := range txs {
		pageTotal += tx.AbsRawAmount()
		conversation := tx.ConversationID
		if conversation == "" {
			conversation = "-"
		}
		table.Append([]string{
			tx.CreatedAt.UTC().Format("2006-01-02 15:04"),
			truncateString(tx.UserID, 20),
			tx.TokenType.String(),
			truncateString(transactionModelLabel(tx), 24),
			formatTokens(tx.AbsRawAmount()),
			truncateString(conversation, 28),
		})
	}

	table.Footer([]string{"", "", "", "Page total", formatTokens(pageTotal), ""})
	table.Render()

	return buf.String()
}

// transactionsStatusLine summarizes pagination under the table.
func transactionsStatusLine(shown int, total int64, limit, offset int) string {
	if total == 0 {
		return "no transactions"
	}
	page := offset/limit + 1
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	noun := "transactions"
	if total == 1 {
		noun = "transaction"
	}
	return fmt.Sprintf("page %d/%d of %d %s", page, pages, total, noun)
}

// printTransactionsJSON emits the page envelope, syntax highlighted when
// stdout is a terminal so interactive use stays readable.
func printTransactionsJSON(txs []*ledger.Transaction, total int64, limit, offset int) error {
	if txs == nil {
		txs = []*ledger.Transaction{}
	}
	resp := NewJSONResponse("transactions", TransactionsData{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})

	if !IsStdoutTTY() {
		return resp.Print()
	}

	fmt.Println(highlightJSON(resp.String()))
	return nil
}

// highlightJSON applies JSON syntax highlighting using the chroma library.
// Returns the input unmodified when highlighting fails.
func highlightJSON(source string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return source
	}
	return b.String()
}
