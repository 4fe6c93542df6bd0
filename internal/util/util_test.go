// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the telemetry subsystem.
package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "prefs.json")
	data := []byte(`{"show_token_telemetry":true}`)

	err := AtomicWriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "state", "deep", "prefs.json")

	err := AtomicWriteFile(path, []byte("x"), 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "prefs.json")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", string(content))
	}
}

func TestAtomicWriteFileWithDir_DirPermissions(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "private", "prefs.json")

	err := AtomicWriteFileWithDir(path, []byte("secret"), 0600, 0700)
	if err != nil {
		t.Fatalf("AtomicWriteFileWithDir failed: %v", err)
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Dir not created: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("Dir permissions: got %o, want 0700", info.Mode().Perm())
	}

	finfo, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File not created: %v", err)
	}
	if finfo.Mode().Perm() != 0600 {
		t.Errorf("File permissions: got %o, want 0600", finfo.Mode().Perm())
	}
}

func TestAtomicWriteFile_NoTempLeftovers(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "prefs.json")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// STRING WIDTH TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "gpt-4o", 10, "gpt-4o"},
		{"exact", "gpt-4o", 6, "gpt-4o"},
		{"truncated", "claude-3-5-sonnet-20241022", 12, "claude-3-..."},
		{"zero", "anything", 0, ""},
		{"tiny", "abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth_DoubleWidth(t *testing.T) {
	// Each CJK rune occupies two columns.
	got := TruncateWidth("日本語のテスト", 6)
	if StringWidth(got) > 6 {
		t.Errorf("Truncated width %d exceeds max 6: %q", StringWidth(got), got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello world", 8); got != "hello..." {
		t.Errorf("TruncateRunes = %q, want %q", got, "hello...")
	}
	if got := TruncateRunes("short", 10); got != "short" {
		t.Errorf("TruncateRunes should not modify short strings: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("abc", 6); got != "abc   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight should not truncate: %q", got)
	}
	// Double-width input pads to the same display width as ASCII.
	if w := StringWidth(PadRight("日本", 8)); w != 8 {
		t.Errorf("PadRight CJK width = %d, want 8", w)
	}
}

func TestPadLeft(t *testing.T) {
	if got := PadLeft("42", 5); got != "   42" {
		t.Errorf("PadLeft = %q", got)
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{12345, "12.3K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{4567890, "4.6M"},
		{-12345, "-12.3K"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDurationSecs(t *testing.T) {
	if got := FormatDurationSecs(0.85); got != "850ms" {
		t.Errorf("FormatDurationSecs(0.85) = %q, want 850ms", got)
	}
	if got := FormatDurationSecs(2.5); got != "2.5s" {
		t.Errorf("FormatDurationSecs(2.5) = %q, want 2.5s", got)
	}
	if got := FormatDurationSecs(-1); got != "0ms" {
		t.Errorf("FormatDurationSecs(-1) = %q, want 0ms", got)
	}
}
