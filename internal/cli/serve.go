// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Serve command implementation for librechat.
//
// Command: serve
// Short:   Run the usage HTTP API
// Aliases: server
//
// Flags:
//   --host ADDR   Override the configured listen host
//   --port N      Override the configured listen port
//
// Examples:
//   librechat serve                Listen on the configured address
//   librechat serve --port 8090    Override the listen port
//
// The server runs until SIGINT or SIGTERM, then drains in-flight requests
// for the configured shutdown timeout before exiting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/OmarMoust/LibreChat/internal/logging"
	"github.com/OmarMoust/LibreChat/internal/server"
)

// HandleServe handles the "serve" command.
func HandleServe(args Args) {
	if err := handleServeCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// handleServeCommand runs the usage API until a shutdown signal arrives.
func handleServeCommand(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// CLI flags override the configured listen address
	if args.Host != "" {
		cfg.Server.Host = args.Host
	}
	if args.Port != 0 {
		cfg.Server.Port = args.Port
	}

	if err := logging.Setup(cfg.Logging); err != nil {
		return WrapError(err, "failed to configure logging")
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(cfg.Server, store)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if !args.Quiet {
		fmt.Printf("%s usage API listening on %s\n",
			SuccessStyle.Render("[OK]"), HighlightStyle.Render(cfg.Server.Addr()))
		fmt.Println(DimStyle.Render("press Ctrl+C to stop"))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return WrapError(err, "usage API failed")
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return WrapError(err, "graceful shutdown failed")
	}

	if !args.Quiet {
		fmt.Println(DimStyle.Render("usage API stopped"))
	}
	return nil
}
