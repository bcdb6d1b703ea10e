// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/kestrelworks/parley/internal/model"
	"github.com/kestrelworks/parley/internal/state"
)

// Typing pacing for generated replies. Delivery is delayed in proportion to
// reply length so the indicator reads like someone typing, with a hard cap so
// long replies don't stall the conversation.
const (
	typingDelayPerChar = 30 * time.Millisecond
	typingDelayMax     = 2 * time.Second
)

// Orchestrator runs the reply cycle for AI chats. It is safe for concurrent
// use; each Respond call is independent and all state mutations go through
// the shared State.
type Orchestrator struct {
	state  *state.State
	client *Client

	// pacing disables the typing delay when false (tests, headless use).
	pacing bool
}

// NewOrchestrator creates an orchestrator over the given state and client.
func NewOrchestrator(st *state.State, client *Client, pacing bool) *Orchestrator {
	return &Orchestrator{state: st, client: client, pacing: pacing}
}

// Respond generates and appends the AI reply to a user message. It blocks for
// the duration of the call and is meant to run on its own goroutine (or a
// bubbletea command).
//
// Every outcome lands as a message in the chat: the generated reply, a canned
// notice when the service is unconfigured, or an error report when the call
// fails. The only silent outcome is a chat deleted mid-flight, in which case
// the reply is dropped and the returned message is nil.
//
// The typing indicator is raised before any work and lowered on every path
// out, including panics in the HTTP stack.
func (o *Orchestrator) Respond(ctx context.Context, chatID, content string) *model.Message {
	chat, ok := o.state.Chat(chatID)
	if !ok {
		return nil
	}

	o.state.BeginTyping(chatID)
	defer o.state.EndTyping(chatID)

	reply := o.generateReply(ctx, chat.AIPrompt, content)

	msg, _, err := o.state.Append(chatID, model.Draft{
		Sender:  model.SenderAssistant,
		Kind:    model.KindText,
		Content: reply,
	})
	if err != nil {
		// Chat deleted while generating; nothing to deliver to.
		return nil
	}
	return &msg
}

// generateReply produces the reply body for all outcomes of a generation
// call, applying the typing pace on success.
func (o *Orchestrator) generateReply(ctx context.Context, persona, content string) string {
	if !o.client.Configured() {
		return MsgNotConfigured
	}

	prompt := BuildPrompt(persona, content)
	raw, err := o.client.Generate(ctx, prompt)
	if err != nil {
		return "AI Error: " + errorDetail(err)
	}

	reply := CleanReply(raw, prompt)
	if o.pacing {
		o.pace(ctx, reply)
	}
	return reply
}

// pace sleeps in proportion to the reply length, honoring cancellation.
func (o *Orchestrator) pace(ctx context.Context, reply string) {
	delay := time.Duration(len([]rune(reply))) * typingDelayPerChar
	if delay > typingDelayMax {
		delay = typingDelayMax
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

// errorDetail extracts the human-facing description from a generation error.
// Remote errors with an endpoint-authored description use it verbatim; remote
// errors without one keep the HTTP status alongside whatever the body said.
// Everything else reports the Go error text.
func errorDetail(err error) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.parsed {
			return remoteErr.Message
		}
		return remoteErr.Error()
	}
	return err.Error()
}
