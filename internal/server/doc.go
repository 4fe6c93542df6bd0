// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the usage telemetry HTTP API.
//
// # Endpoints
//
//   - GET /api/user/transactions          - Filtered, paginated transaction list
//   - GET /api/user/transactions/summary  - Period-bounded usage summary
//   - GET /health                         - Health check (no auth)
//
// # Security Features
//
//   - Bearer token authentication with constant-time comparison; each token
//     resolves to the user whose data the request may read
//   - Optional IP allowlist
//   - Per-client token bucket rate limiting
//   - Security headers (X-Content-Type-Options, X-Frame-Options, etc.)
//   - Panic recovery returning 500 instead of dropping the connection
//
// # Key Types
//
//   - Server: HTTP server with router and middleware
//   - AuthConfig: token→user map plus IP restrictions
//
// # Usage
//
//	srv := server.New(cfg.Server, store)
//	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
//		log.Fatal(err)
//	}
package server
