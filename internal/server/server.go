// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/OmarMoust/LibreChat/internal/config"
	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// ============================================================================
// SERVER
// ============================================================================

// Server serves the usage telemetry API over HTTP.
type Server struct {
	cfg     config.ServerConfig
	store   *ledger.Store
	agg     *usage.Aggregator
	auth    *AuthConfig
	limiter *IPRateLimiter

	httpServer *http.Server
	startTime  time.Time
	requests   atomic.Uint64
}

// New creates a server that answers from the given ledger.
func New(cfg config.ServerConfig, store *ledger.Store) *Server {
	return &Server{
		cfg:       cfg,
		store:     store,
		agg:       usage.NewAggregator(store),
		auth:      &AuthConfig{Tokens: cfg.AuthTokens, AllowedIPs: cfg.AllowedIPs},
		limiter:   NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		startTime: time.Now(),
	}
}

// Handler returns the fully assembled handler with the middleware chain
// applied. Exposed so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	middleware := Chain(
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(),
		RateLimitMiddleware(s.limiter),
		AuthMiddleware(s.auth),
	)
	return middleware(s.routes())
}

// routes wires the endpoint handlers.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/user/transactions", s.handleTransactions)
	mux.HandleFunc("GET /api/user/transactions/summary", s.handleSummary)

	return mux
}

// Start begins listening. It blocks until the server stops; a clean
// Shutdown surfaces as http.ErrServerClosed.
func (s *Server) Start() error {
	if len(s.cfg.AuthTokens) == 0 {
		log.Warn("no auth tokens configured, every API request will be rejected")
	}

	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
	}

	log.WithField("addr", s.cfg.Addr()).Info("usage API listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Info("usage API shutting down")
	return s.httpServer.Shutdown(ctx)
}

// ============================================================================
// HANDLERS
// ============================================================================

// transactionsResponse is the page envelope for the transaction listing.
type transactionsResponse struct {
	Transactions []*ledger.Transaction `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Requests uint64 `json:"requests"`
}

// handleHealth reports liveness. Not authenticated.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Requests: s.requests.Load(),
	})
}

// handleTransactions lists the authenticated user's transactions, newest
// first, with pagination and optional date, model, and conversation
// filters. The response echoes the effective limit and offset after
// clamping so clients can page reliably.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, err := parseQueryInt(r, "limit", ledger.DefaultListLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := parseQueryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}
	limit = ledger.ClampLimit(limit)
	offset = ledger.ClampOffset(offset)

	startDate, err := parseDateParam(r.URL.Query().Get("startDate"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be RFC3339 or YYYY-MM-DD")
		return
	}
	endDate, err := parseDateParam(r.URL.Query().Get("endDate"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be RFC3339 or YYYY-MM-DD")
		return
	}

	filter := ledger.Filter{
		UserID:         userID,
		StartDate:      startDate,
		EndDate:        endDate,
		Model:          r.URL.Query().Get("model"),
		ConversationID: r.URL.Query().Get("conversationId"),
	}

	transactions, total, err := s.store.List(r.Context(), filter, limit, offset)
	if err != nil {
		log.WithError(err).Error("transaction listing failed")
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, transactionsResponse{
		Transactions: transactions,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

// handleSummary computes the authenticated user's usage summary for the
// requested period. Unknown period values fall back to the monthly window
// rather than erroring.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	period := usage.ParsePeriod(r.URL.Query().Get("period"))
	summary, err := s.agg.Summarize(r.Context(), userID, period, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("usage summary failed")
		writeError(w, http.StatusInternalServerError, "failed to compute usage summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ============================================================================
// RESPONSE HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseDateParam parses a date query parameter. Full RFC3339 timestamps
// are taken as given; bare YYYY-MM-DD dates are taken as UTC days, with
// endOfDay selecting the last instant of the day so inclusive ranges work
// for end bounds. Empty input yields the zero time, meaning unbounded.
func parseDateParam(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t.UTC(), nil
}
