// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/parley/internal/util"
)

// =============================================================================
// SENDER / KIND / STATUS TYPES
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderMe        Sender = "me"
	SenderOther     Sender = "other"
	SenderAssistant Sender = "ai"
)

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderMe:
		return "You"
	case SenderAssistant:
		return "AI"
	case SenderOther:
		return "Them"
	default:
		return string(s)
	}
}

// MessageKind determines how Content is interpreted: a text payload for
// KindText, a resource URL for KindImage and KindFile.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindFile  MessageKind = "file"
)

// Status is the delivery state of a message. The core only ever assigns
// StatusSent; delivered/read transitions belong to a presentation layer.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a chat's ledger. A message is immutable after
// creation except for Status.
type Message struct {
	ID        string      `json:"id"`
	ChatID    string      `json:"chat_id"`
	Sender    Sender      `json:"sender"`
	Kind      MessageKind `json:"kind"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Status    Status      `json:"status,omitempty"`
}

// Draft is the caller-supplied portion of a message. Identity, timestamp and
// status are assigned by the ledger at append time.
type Draft struct {
	Sender  Sender
	Kind    MessageKind
	Content string
}

// NewMessage materializes a draft into a message owned by the given chat.
func NewMessage(chatID string, d Draft) *Message {
	return &Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Sender:    d.Sender,
		Kind:      d.Kind,
		Content:   d.Content,
		Timestamp: time.Now(),
		Status:    StatusSent,
	}
}

// Inbound reports whether the message was authored by someone other than the
// local user. Inbound messages bump the owning chat's unread counter.
func (m *Message) Inbound() bool {
	return m.Sender != SenderMe
}

// Preview returns a single-line truncated preview of the content.
func (m *Message) Preview(maxLen int) string {
	return util.Truncate(util.CollapseNewlines(m.Content), maxLen)
}
