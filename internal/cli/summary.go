// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// summary.go - Summary command implementation for librechat.
//
// Command: summary [period]
// Short:   Aggregated usage report
// Aliases: usage
//
// Flags:
//   --period PERIOD   day, week, month, or all (default: month)
//   --user ID         Scope to one user (default: all users)
//   --json            Machine-readable output
//
// Examples:
//   librechat summary                   Monthly report across all users
//   librechat summary week              Report for the last 7 days
//   librechat summary day --user alice  Today's usage for alice
//   librechat summary --json            Envelope with the raw summary
//
// The report renders as markdown through glamour when stdout is a
// terminal; piped output gets the plain markdown.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/OmarMoust/LibreChat/internal/usage"
)

// markdownRenderer is the shared glamour renderer for report output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HandleSummary handles the "summary" command.
func HandleSummary(args Args) {
	if err := handleSummaryCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// handleSummaryCommand aggregates the requested window and prints the report.
func handleSummaryCommand(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	userID := resolveUserID(args)
	period := resolvePeriod(args.Period)

	agg := usage.NewAggregator(store)
	summary, err := agg.Summarize(context.Background(), userID, period, time.Now())
	if err != nil {
		return WrapError(err, "failed to aggregate usage")
	}

	if args.JSON {
		resp := NewJSONResponse("summary", summary)
		return resp.Print()
	}

	report := buildSummaryMarkdown(summary, userID)
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(report))
	} else {
		fmt.Print(report)
	}
	return nil
}

// buildSummaryMarkdown turns a usage summary into the markdown report.
// Kept pure so tests can assert on the content directly.
func buildSummaryMarkdown(s *usage.UsageSummary, userID string) string {
	var b strings.Builder

	scope := "all users"
	if userID != "" {
		scope = userID
	}

	b.WriteString("# Usage Summary\n\n")
	fmt.Fprintf(&b, "**Period:** %s | **User:** %s\n\n", s.Period.String(), scope)

	if s.TransactionCount == 0 {
		b.WriteString("No usage recorded for this period.\n")
		return b.String()
	}

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|---:|\n")
	fmt.Fprintf(&b, "| Total tokens | %s |\n", formatTokens(s.TotalTokens))
	fmt.Fprintf(&b, "| Prompt tokens | %s |\n", formatTokens(s.PromptTokens))
	fmt.Fprintf(&b, "| Completion tokens | %s |\n", formatTokens(s.CompletionTokens))
	fmt.Fprintf(&b, "| Transactions | %s |\n", formatTokens(s.TransactionCount))
	fmt.Fprintf(&b, "| Credits spent | %s |\n", formatCost(s.TotalCost))
	b.WriteString("\n")

	if len(s.ModelBreakdown) > 0 {
		b.WriteString("## Model Breakdown\n\n")
		b.WriteString("| Model | Tokens | Share | Count |\n")
		b.WriteString("|---|---:|---:|---:|\n")
		for _, mu := range s.ModelBreakdown {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				modelUsageLabel(mu),
				formatTokens(mu.Tokens),
				formatShare(mu.Tokens, s.TotalTokens),
				formatTokens(mu.Count))
		}
		b.WriteString("\n")
	}

	if len(s.DailyUsage) > 0 {
		b.WriteString("## Daily Usage\n\n")
		b.WriteString("| Date | Tokens | Credits |\n")
		b.WriteString("|---|---:|---:|\n")
		for _, day := range s.DailyUsage {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				day.Date,
				formatTokens(day.Tokens),
				formatCost(day.Cost))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// formatShare renders a model's fraction of the total token volume.
func formatShare(part, total int64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
