// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs holds durable display preferences and broadcasts changes.
//
// Preferences live in a small JSON file written atomically. The Store is an
// observable cell rather than an ambient global: displays call Subscribe at
// mount, react to every Preferences value delivered on their channel, and
// call Unsubscribe at teardown. Toggling a preference reaches every live
// subscriber immediately; nothing needs a restart or remount.
//
// An optional file watcher picks up edits made outside the process (another
// instance, or a user editing the JSON directly) and feeds them through the
// same broadcast path.
package prefs
