// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs holds durable display preferences and broadcasts changes.
package prefs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reloads the preference file when something outside this process
// writes it, feeding the result through the store's broadcast path.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu         sync.Mutex
	lastChange time.Time
	pending    bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the store's preference file. Changes are
// coalesced over the debounce interval so editors that write in several
// steps trigger a single reload.
func NewWatcher(store *Store, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching. The parent directory is watched rather than the
// file itself; atomic writers replace the file by rename, which would
// silently detach a watch on the old inode.
func (w *Watcher) Watch() error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents marks the preference file pending on relevant events.
func (w *Watcher) processEvents() {
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			w.lastChange = time.Now()
			w.pending = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Debug("preference watcher error")
		}
	}
}

// processPending reloads once the debounce interval has passed without
// further changes.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			due := w.pending && time.Since(w.lastChange) >= w.debounce
			if due {
				w.pending = false
			}
			w.mu.Unlock()

			if due {
				w.reload()
			}
		}
	}
}

// reload reads the preference file and adopts its contents. Unreadable or
// malformed content is ignored; the last good preferences stay in effect.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.store.Path())
	if err != nil {
		return
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		log.WithField("path", w.store.Path()).Debug("ignoring malformed preference update")
		return
	}

	w.store.adopt(p)
}
