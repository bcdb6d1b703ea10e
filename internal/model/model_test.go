// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

func TestNewPersonChat(t *testing.T) {
	c := NewPersonChat("Alice")

	if c.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if c.Kind != ChatPerson {
		t.Errorf("Kind = %q, want %q", c.Kind, ChatPerson)
	}
	if !c.IsOnline {
		t.Error("Person chat should start online")
	}
	if c.IsTyping {
		t.Error("Person chat should never be typing")
	}
	if c.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", c.UnreadCount)
	}
	if c.AIPrompt != "" {
		t.Errorf("Person chat should have no AI prompt, got %q", c.AIPrompt)
	}
}

func TestNewAIChat(t *testing.T) {
	c := NewAIChat("Muse", "You are a poet.")

	if c.Kind != ChatAI {
		t.Errorf("Kind = %q, want %q", c.Kind, ChatAI)
	}
	if c.AIPrompt != "You are a poet." {
		t.Errorf("AIPrompt = %q", c.AIPrompt)
	}
	if c.IsOnline {
		t.Error("AI chat should not carry presence")
	}
}

func TestChat_NeedsReply(t *testing.T) {
	ai := NewAIChat("Muse", "")
	person := NewPersonChat("Alice")

	tests := []struct {
		name   string
		chat   *Chat
		sender Sender
		want   bool
	}{
		{"user message to AI chat", ai, SenderMe, true},
		{"assistant message to AI chat", ai, SenderAssistant, false},
		{"other message to AI chat", ai, SenderOther, false},
		{"user message to person chat", person, SenderMe, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMessage(tc.chat.ID, Draft{Sender: tc.sender, Kind: KindText, Content: "hi"})
			if got := tc.chat.NeedsReply(m); got != tc.want {
				t.Errorf("NeedsReply = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	m := NewMessage("chat-1", Draft{Sender: SenderMe, Kind: KindText, Content: "hello"})

	if m.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if m.ChatID != "chat-1" {
		t.Errorf("ChatID = %q, want %q", m.ChatID, "chat-1")
	}
	if m.Status != StatusSent {
		t.Errorf("Status = %q, want %q", m.Status, StatusSent)
	}
	if m.Timestamp.IsZero() {
		t.Error("Timestamp should be assigned at creation")
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := NewMessage("chat-1", Draft{Sender: SenderMe, Kind: KindText, Content: "x"})
		if seen[m.ID] {
			t.Fatalf("Duplicate message ID %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestMessage_Inbound(t *testing.T) {
	if NewMessage("c", Draft{Sender: SenderMe}).Inbound() {
		t.Error("Own messages are not inbound")
	}
	if !NewMessage("c", Draft{Sender: SenderOther}).Inbound() {
		t.Error("Messages from others are inbound")
	}
	if !NewMessage("c", Draft{Sender: SenderAssistant}).Inbound() {
		t.Error("Assistant messages are inbound")
	}
}

func TestMessage_Preview(t *testing.T) {
	m := NewMessage("c", Draft{Sender: SenderMe, Kind: KindText, Content: "line one\nline two that is fairly long"})
	got := m.Preview(15)
	if got != "line one lin..." {
		t.Errorf("Preview = %q", got)
	}
}
