// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide logrus logger: level,
// format, and an optional rotated file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/OmarMoust/LibreChat/internal/config"
)

// Setup configures the global logger from cfg. With a file configured,
// records go to both stderr and the rotated file.
func Setup(cfg config.LoggingConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if cfg.File != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, fileWriter(cfg)))
	} else {
		log.SetOutput(os.Stderr)
	}

	return nil
}

// SilenceTerminal routes logging away from the terminal while a TUI owns
// it. A configured file keeps receiving records; otherwise output is
// dropped.
func SilenceTerminal(cfg config.LoggingConfig) {
	if cfg.File != "" {
		log.SetOutput(fileWriter(cfg))
		return
	}
	log.SetOutput(io.Discard)
}

// fileWriter returns the rotating file sink.
func fileWriter(cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
