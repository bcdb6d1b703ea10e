// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelworks/parley/internal/model"
)

func TestStore_LoadEmpty(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	snap := s.Load()
	if len(snap.Chats) != 0 {
		t.Errorf("Expected no chats, got %d", len(snap.Chats))
	}
	if snap.Messages == nil {
		t.Error("Messages map should be initialized")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	chat := model.NewAIChat("Muse", "You are a poet.")
	msg := model.NewMessage(chat.ID, model.Draft{
		Sender:  model.SenderMe,
		Kind:    model.KindText,
		Content: "write me a haiku",
	})
	chat.LastMessage = msg
	chat.UnreadCount = 2

	snap := Empty()
	snap.Chats = append(snap.Chats, chat)
	snap.Messages[chat.ID] = []*model.Message{msg}

	if err := s.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := s.Load()
	if len(loaded.Chats) != 1 {
		t.Fatalf("Expected 1 chat, got %d", len(loaded.Chats))
	}
	got := loaded.Chats[0]
	if got.ID != chat.ID || got.Name != "Muse" || got.AIPrompt != "You are a poet." {
		t.Errorf("Chat did not round-trip: %+v", got)
	}
	if got.UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", got.UnreadCount)
	}
	if got.LastMessage == nil || got.LastMessage.ID != msg.ID {
		t.Error("LastMessage did not round-trip")
	}

	msgs := loaded.Messages[chat.ID]
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Content != "write me a haiku" {
		t.Errorf("Content = %q", msgs[0].Content)
	}
	if !msgs[0].Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp did not round-trip: %v != %v", msgs[0].Timestamp, msg.Timestamp)
	}
}

func TestStore_LoadClearsTyping(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	chat := model.NewAIChat("Muse", "")
	chat.IsTyping = true

	snap := Empty()
	snap.Chats = append(snap.Chats, chat)
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := s.Load()
	if loaded.Chats[0].IsTyping {
		t.Error("Typing indicator must be cleared on load")
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// Corrupt both entries; load must degrade to empty, not fail.
	os.WriteFile(filepath.Join(dir, "chats.json"), []byte("{not json"), 0644)
	os.WriteFile(filepath.Join(dir, "messages.json"), []byte("]["), 0644)

	snap := s.Load()
	if len(snap.Chats) != 0 {
		t.Errorf("Malformed chats entry should load as empty, got %d", len(snap.Chats))
	}
	if len(snap.Messages) != 0 {
		t.Errorf("Malformed messages entry should load as empty, got %d", len(snap.Messages))
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	first := Empty()
	first.Chats = append(first.Chats, model.NewPersonChat("Alice"), model.NewPersonChat("Bob"))
	if err := s.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := Empty()
	second.Chats = append(second.Chats, model.NewPersonChat("Carol"))
	if err := s.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := s.Load()
	if len(loaded.Chats) != 1 || loaded.Chats[0].Name != "Carol" {
		t.Errorf("Save should be a full overwrite, got %d chats", len(loaded.Chats))
	}
}

func TestStore_UnicodeContent(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	chat := model.NewPersonChat("日本語のテスト")
	msg := &model.Message{
		ID:        "m1",
		ChatID:    chat.ID,
		Sender:    model.SenderOther,
		Kind:      model.KindText,
		Content:   "こんにちは世界!",
		Timestamp: time.Now(),
		Status:    model.StatusSent,
	}

	snap := Empty()
	snap.Chats = append(snap.Chats, chat)
	snap.Messages[chat.ID] = []*model.Message{msg}
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := s.Load()
	if loaded.Messages[chat.ID][0].Content != "こんにちは世界!" {
		t.Error("Unicode content should be preserved")
	}
}
