// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs holds durable display preferences and broadcasts changes.
package prefs

import (
	"encoding/json"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/OmarMoust/LibreChat/internal/util"
)

// Preferences are the durable display settings.
type Preferences struct {
	// ShowTokenTelemetry controls the live rate badge and token counters.
	ShowTokenTelemetry bool `json:"show_token_telemetry"`
}

// Default returns the out-of-the-box preferences. Telemetry displays are
// enabled until the user turns them off.
func Default() Preferences {
	return Preferences{
		ShowTokenTelemetry: true,
	}
}

// =============================================================================
// OBSERVABLE STORE
// =============================================================================

// Store is the observable preference cell. Reads are cheap; Set persists
// atomically and then notifies every subscriber.
type Store struct {
	mu          sync.RWMutex
	path        string
	current     Preferences
	subscribers []chan Preferences
}

// Open loads preferences from path. A missing file yields defaults without
// creating anything; an unreadable or corrupt file logs a warning and also
// falls back to defaults, favoring availability over strictness.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		current: Default(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("failed to read preferences, using defaults")
		}
		return s, nil
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		log.WithError(err).WithField("path", path).Warn("malformed preferences file, using defaults")
		return s, nil
	}
	s.current = p

	return s, nil
}

// Path returns the preference file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns a copy of the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ShowTokenTelemetry reports whether telemetry displays are enabled.
func (s *Store) ShowTokenTelemetry() bool {
	return s.Get().ShowTokenTelemetry
}

// Set persists p and broadcasts it to all subscribers. The broadcast
// happens even when nothing changed; subscribers render idempotently.
func (s *Store) Set(p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFileWithDir(s.path, append(data, '\n'), 0600, 0700); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	s.broadcast(p)
	return nil
}

// SetShowTokenTelemetry persists the telemetry display toggle.
func (s *Store) SetShowTokenTelemetry(enabled bool) error {
	p := s.Get()
	p.ShowTokenTelemetry = enabled
	return s.Set(p)
}

// ToggleTelemetry flips the telemetry display toggle and returns the new
// value.
func (s *Store) ToggleTelemetry() (bool, error) {
	p := s.Get()
	p.ShowTokenTelemetry = !p.ShowTokenTelemetry
	if err := s.Set(p); err != nil {
		return p.ShowTokenTelemetry, err
	}
	return p.ShowTokenTelemetry, nil
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers a new observer and returns its channel. Every
// preference change is delivered as a full Preferences value. Callers must
// Unsubscribe when done.
func (s *Store) Subscribe() chan Preferences {
	ch := make(chan Preferences, 8)

	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()

	return ch
}

// Unsubscribe removes an observer and closes its channel.
func (s *Store) Unsubscribe(ch chan Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close drops all subscribers, closing their channels so waiting observers
// unblock.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subscribers
	s.subscribers = nil
	s.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}

// broadcast delivers p to every subscriber without blocking; a subscriber
// that has fallen behind its buffer is skipped.
func (s *Store) broadcast(p Preferences) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscribers {
		select {
		case sub <- p:
		default:
		}
	}
}

// adopt installs preferences loaded from disk and broadcasts them when they
// differ from the current value. The watcher uses it to fold external edits
// into the normal notification path.
func (s *Store) adopt(p Preferences) {
	s.mu.Lock()
	changed := p != s.current
	s.current = p
	s.mu.Unlock()

	if changed {
		s.broadcast(p)
	}
}
