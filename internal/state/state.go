// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kestrelworks/parley/internal/model"
	"github.com/kestrelworks/parley/internal/store"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrChatNotFound is returned when an operation names a chat that does
	// not exist (for example, deleted while an AI reply was in flight).
	// Async callers drop the operation silently.
	ErrChatNotFound = errors.New("chat not found")

	// ErrEmptyName is returned by CreateChat for a blank name. No state is
	// mutated; the caller is expected to validate before calling.
	ErrEmptyName = errors.New("chat name must not be empty")
)

// =============================================================================
// STATE
// =============================================================================

// State holds the chat directory and message ledgers behind one mutex.
//
// Every mutation runs to completion under the lock and is then persisted
// synchronously as a full snapshot, so concurrent appends from the UI loop
// and assistant goroutines interleave safely. Persistence failures are
// reported to stderr and never propagate; the in-memory state stays usable.
type State struct {
	mu       sync.Mutex
	chats    []*model.Chat
	messages map[string][]*model.Message

	// typing counts in-flight AI calls per chat. The boolean shown to the
	// UI is count > 0, so two overlapping replies to the same chat only
	// clear the indicator when the last one finishes.
	typing map[string]int

	// store is nil for in-memory state (tests).
	store *store.Store
}

// New creates an empty in-memory state.
func New() *State {
	return &State{
		messages: make(map[string][]*model.Message),
		typing:   make(map[string]int),
	}
}

// Open creates a state backed by the given store, loading the last-saved
// snapshot.
func Open(s *store.Store) *State {
	st := New()
	st.store = s

	snap := s.Load()
	st.chats = snap.Chats
	for id, msgs := range snap.Messages {
		st.messages[id] = msgs
	}
	return st
}

// persist writes the full snapshot. Caller holds the lock.
func (s *State) persist() {
	if s.store == nil {
		return
	}

	snap := store.Snapshot{
		Chats:    s.chats,
		Messages: s.messages,
	}
	if err := s.store.Save(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist state: %v\n", err)
	}
}

// find returns the chat with the given ID. Caller holds the lock.
func (s *State) find(id string) *model.Chat {
	for _, c := range s.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// =============================================================================
// CHAT DIRECTORY
// =============================================================================

// CreateChat adds a new chat of the given kind. The aiPrompt is only carried
// for AI chats. Returns ErrEmptyName without mutating anything when the name
// is blank.
func (s *State) CreateChat(kind model.ChatKind, name, aiPrompt string) (model.Chat, error) {
	if strings.TrimSpace(name) == "" {
		return model.Chat{}, ErrEmptyName
	}

	var c *model.Chat
	if kind == model.ChatAI {
		c = model.NewAIChat(name, aiPrompt)
	} else {
		c = model.NewPersonChat(name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, c)
	s.persist()
	return *c, nil
}

// DeleteChat removes a chat and its ledger. In-flight AI replies for the chat
// are orphaned; their later appends and typing updates are dropped.
func (s *State) DeleteChat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.chats {
		if c.ID == id {
			s.chats = append(s.chats[:i], s.chats[i+1:]...)
			delete(s.messages, id)
			delete(s.typing, id)
			s.persist()
			return nil
		}
	}
	return ErrChatNotFound
}

// Chat returns a copy of the chat with the given ID.
func (s *State) Chat(id string) (model.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.find(id); c != nil {
		return *c, true
	}
	return model.Chat{}, false
}

// Chats returns the directory filtered by a case-insensitive substring match
// on the name, ordered by last-message time descending. Chats without
// messages sort last. The sort is stable, so ties keep creation order.
func (s *State) Chats(filter string) []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter = strings.ToLower(filter)
	out := make([]model.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		if filter == "" || strings.Contains(strings.ToLower(c.Name), filter) {
			out = append(out, *c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lastActivity(&out[i]).After(lastActivity(&out[j]))
	})
	return out
}

// lastActivity is the sort key for the directory: the last message's
// timestamp, or the zero time for chats with no messages yet.
func lastActivity(c *model.Chat) time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return c.LastMessage.Timestamp
}

// MarkRead resets the unread counter. Idempotent; called when a chat becomes
// the active one.
func (s *State) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil || c.UnreadCount == 0 {
		return
	}
	c.UnreadCount = 0
	s.persist()
}

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// BeginTyping records the start of an AI call for the chat. No-op when the
// chat no longer exists.
func (s *State) BeginTyping(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}
	s.typing[id]++
	c.IsTyping = true
	s.persist()
}

// EndTyping records the end of an AI call. The indicator only clears once
// every outstanding call for the chat has ended. No-op when the chat no
// longer exists.
func (s *State) EndTyping(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}
	if s.typing[id] > 0 {
		s.typing[id]--
	}
	if s.typing[id] == 0 {
		delete(s.typing, id)
		c.IsTyping = false
	}
	s.persist()
}

// =============================================================================
// MESSAGE LEDGER
// =============================================================================

// Append is the single write path for all messages, user- and
// system-authored. It assigns identity and timestamp, appends to the chat's
// ledger, updates the chat summary (last message, unread counter), and
// persists.
//
// needsReply reports whether the caller should request an AI response: true
// only for user-authored messages in AI chats.
//
// Returns ErrChatNotFound when the chat was deleted; nothing is written.
func (s *State) Append(chatID string, d model.Draft) (msg model.Message, needsReply bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(chatID)
	if c == nil {
		return model.Message{}, false, ErrChatNotFound
	}

	m := model.NewMessage(chatID, d)

	// Timestamps are assigned at insertion and never move backwards within
	// one ledger, even if the clock does.
	ledger := s.messages[chatID]
	if n := len(ledger); n > 0 && m.Timestamp.Before(ledger[n-1].Timestamp) {
		m.Timestamp = ledger[n-1].Timestamp
	}
	s.messages[chatID] = append(ledger, m)

	c.LastMessage = m
	if m.Inbound() {
		c.UnreadCount++
	}
	s.persist()

	return *m, c.NeedsReply(m), nil
}

// Messages returns a copy of the chat's ledger in append order.
func (s *State) Messages(chatID string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := s.messages[chatID]
	out := make([]model.Message, len(ledger))
	for i, m := range ledger {
		out[i] = *m
	}
	return out
}
