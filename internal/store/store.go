// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kestrelworks/parley/internal/model"
	"github.com/kestrelworks/parley/internal/util"
)

// The store keeps two named entries, mirroring the two top-level collections:
// the chat directory and the per-chat message ledgers. Both are written as a
// unit on every mutation and loaded once at startup.
const (
	chatsFile    = "chats.json"
	messagesFile = "messages.json"
)

// =============================================================================
// SNAPSHOT TYPE
// =============================================================================

// Snapshot is the full persisted state: every chat plus every chat's ledger,
// keyed by chat ID.
type Snapshot struct {
	Chats    []*model.Chat               `json:"chats"`
	Messages map[string][]*model.Message `json:"messages"`
}

// Empty returns a snapshot with initialized, empty collections.
func Empty() Snapshot {
	return Snapshot{
		Chats:    []*model.Chat{},
		Messages: map[string][]*model.Message{},
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store handles snapshot persistence. Writes are full-snapshot overwrites
// with last-writer-wins semantics; there is no versioning or migration.
type Store struct {
	// Dir is the directory holding the snapshot files.
	Dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the last-saved snapshot. A missing or malformed entry is treated
// as absent, not fatal: the corresponding collection comes back empty and the
// client starts fresh. Startup never fails on bad data.
func (s *Store) Load() Snapshot {
	snap := Empty()

	if data, err := os.ReadFile(filepath.Join(s.Dir, chatsFile)); err == nil {
		var chats []*model.Chat
		if json.Unmarshal(data, &chats) == nil && chats != nil {
			snap.Chats = chats
		}
	}

	if data, err := os.ReadFile(filepath.Join(s.Dir, messagesFile)); err == nil {
		var messages map[string][]*model.Message
		if json.Unmarshal(data, &messages) == nil && messages != nil {
			snap.Messages = messages
		}
	}

	// No AI call survives a restart, so a typing indicator persisted
	// mid-flight must not come back stuck on.
	for _, c := range snap.Chats {
		c.IsTyping = false
	}

	return snap
}

// =============================================================================
// SAVE
// =============================================================================

// Save overwrites both entries with the given snapshot. Each file is written
// atomically so a crash leaves either the old or the new complete entry.
func (s *Store) Save(snap Snapshot) error {
	chats, err := json.MarshalIndent(snap.Chats, "", "  ")
	if err != nil {
		return err
	}
	messages, err := json.MarshalIndent(snap.Messages, "", "  ")
	if err != nil {
		return err
	}

	if err := util.AtomicWriteFile(filepath.Join(s.Dir, chatsFile), chats, 0644); err != nil {
		return err
	}
	return util.AtomicWriteFile(filepath.Join(s.Dir, messagesFile), messages, 0644)
}
