// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting and SIEM ingest.
//
// Provides a standardized JSON output format for all CLI commands so
// reports can be piped into jq, dashboards, or log pipelines.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/OmarMoust/LibreChat/internal/ledger"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// PrintCompact outputs the JSON response without indentation.
// Useful for piping to other tools or log aggregation.
func (r *JSONResponse) PrintCompact() error {
	return json.NewEncoder(os.Stdout).Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// StderrPrintln prints a line to stderr (for human-readable output in JSON mode).
func StderrPrintln(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// TransactionsData is the page envelope for the transactions command. The
// field names match the HTTP API so both surfaces parse identically.
type TransactionsData struct {
	Transactions []*ledger.Transaction `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ConfigData represents the data returned by the config show command.
type ConfigData struct {
	Server    ConfigServerInfo    `json:"server"`
	Ledger    ConfigLedgerInfo    `json:"ledger"`
	Telemetry ConfigTelemetryInfo `json:"telemetry"`
	Logging   ConfigLoggingInfo   `json:"logging"`
	Path      string              `json:"config_path"`
}

// ConfigServerInfo contains the HTTP API configuration.
type ConfigServerInfo struct {
	Host               string  `json:"host"`
	Port               int     `json:"port"`
	AuthTokensSet      int     `json:"auth_tokens_configured"`
	RateLimitPerSecond float64 `json:"rate_limit_per_second"`
	RateLimitBurst     int     `json:"rate_limit_burst"`
}

// ConfigLedgerInfo contains the transaction store configuration.
type ConfigLedgerInfo struct {
	Path string `json:"path"`
}

// ConfigTelemetryInfo contains the dashboard telemetry configuration.
type ConfigTelemetryInfo struct {
	PrefsPath           string `json:"prefs_path"`
	RefreshIntervalSecs int    `json:"refresh_interval_secs"`
}

// ConfigLoggingInfo contains the logging configuration.
type ConfigLoggingInfo struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
