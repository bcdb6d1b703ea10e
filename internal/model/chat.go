// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/google/uuid"
)

// =============================================================================
// CHAT KIND
// =============================================================================

// ChatKind distinguishes person-to-person chats from AI-backed chats.
// Immutable after creation.
type ChatKind string

const (
	ChatPerson ChatKind = "person"
	ChatAI     ChatKind = "ai"
)

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is a conversation summary as shown in the sidebar.
//
// Some fields are only meaningful for one kind: IsOnline for person chats,
// IsTyping and AIPrompt for AI chats. Construction goes through NewPersonChat
// and NewAIChat so the kind-specific fields are always consistent; mutators in
// the state package guard on Kind.
type Chat struct {
	ID   string   `json:"id"`
	Kind ChatKind `json:"kind"`
	Name string   `json:"name"`

	// LastMessage is a denormalized copy of the most recently appended
	// message, nil until the first append.
	LastMessage *Message `json:"last_message,omitempty"`

	// UnreadCount is incremented on every inbound message and reset to zero
	// when the chat becomes the active one. Never negative.
	UnreadCount int `json:"unread_count"`

	// IsOnline is presence for person chats. The core never transitions it.
	IsOnline bool `json:"is_online,omitempty"`

	// IsTyping is true exactly while at least one AI response is in flight
	// for this chat. Derived from the in-flight counter, persisted only so a
	// loaded snapshot round-trips; cleared on load.
	IsTyping bool `json:"is_typing,omitempty"`

	// AIPrompt is the optional persona preamble seeding every AI prompt for
	// this chat. Immutable after creation.
	AIPrompt string `json:"ai_prompt,omitempty"`
}

// NewPersonChat creates a person chat. Presence starts online, matching the
// behavior of the sidebar indicator.
func NewPersonChat(name string) *Chat {
	return &Chat{
		ID:       uuid.New().String(),
		Kind:     ChatPerson,
		Name:     name,
		IsOnline: true,
	}
}

// NewAIChat creates an AI-backed chat with an optional persona prompt.
func NewAIChat(name, aiPrompt string) *Chat {
	return &Chat{
		ID:       uuid.New().String(),
		Kind:     ChatAI,
		Name:     name,
		AIPrompt: aiPrompt,
	}
}

// NeedsReply reports whether appending the given message to this chat should
// trigger an AI response: only user-authored messages in AI chats do.
func (c *Chat) NeedsReply(m *Message) bool {
	return c.Kind == ChatAI && m.Sender == SenderMe
}
