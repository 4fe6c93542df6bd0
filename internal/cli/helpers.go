// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared helper functions used across multiple CLI commands.
package cli

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/OmarMoust/LibreChat/internal/config"
	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// noModelLabel is shown for transactions recorded without a model name.
const noModelLabel = "(no model)"

// numberPrinter renders token counts with locale-aware thousand separators.
var numberPrinter = message.NewPrinter(language.English)

// formatTokens renders a token count for report output: 15480 -> "15,480".
func formatTokens(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatCost renders a credit amount with two decimal places.
func formatCost(v float64) string {
	return numberPrinter.Sprintf("%.2f", v)
}

// resolveUserID decides the user scope for a query: the --user flag wins,
// then LIBRECHAT_USER_ID, then empty (all users).
func resolveUserID(args Args) string {
	if args.User != "" {
		return args.User
	}
	return os.Getenv("LIBRECHAT_USER_ID")
}

// resolvePeriod normalizes the requested period, falling back to the
// aggregation default for unknown input.
func resolvePeriod(raw string) usage.Period {
	return usage.ParsePeriod(raw)
}

// relativeDatePattern matches shorthand offsets like "30m", "24h", "7d".
var relativeDatePattern = regexp.MustCompile(`^(\d+)([mhd])$`)

// parseDateArg parses a date bound for transaction filters. Accepts RFC3339
// timestamps, plain dates (YYYY-MM-DD), and relative offsets (30m, 24h, 7d)
// measured back from now. Plain dates used as end bounds extend to the last
// instant of the day so inclusive ranges behave as expected.
func parseDateArg(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if m := relativeDatePattern.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", raw)
		}
		var unit time.Duration
		switch m[2] {
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		}
		return time.Now().UTC().Add(-time.Duration(n) * unit), nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD, RFC3339, or 24h/7d)", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t.UTC(), nil
}

// truncateString shortens a string to max runes, appending an ellipsis when
// it had to cut.
func truncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// modelUsageLabel names a model group for display.
func modelUsageLabel(mu usage.ModelUsage) string {
	if mu.ModelID != nil {
		return *mu.ModelID
	}
	return noModelLabel
}

// transactionModelLabel names a transaction's model for display.
func transactionModelLabel(tx *ledger.Transaction) string {
	if tx.Model == "" {
		return noModelLabel
	}
	return tx.Model
}

// loadConfig loads the service configuration for CLI commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapError(err, "failed to load configuration")
	}
	return cfg, nil
}

// openLedger opens the transaction store configured in cfg.
func openLedger(cfg *config.Config) (*ledger.Store, error) {
	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, WrapError(err, "failed to open ledger")
	}
	return store, nil
}
