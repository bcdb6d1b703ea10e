// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant generates AI replies for AI-backed chats.
//
// The Client speaks the Hugging Face text-generation inference protocol:
// a single POST with the prompt and sampling parameters, answered by an
// array of generated candidates. The Orchestrator drives the full reply
// cycle around a call: typing indicator on, generate, pace the reply like
// a human typist, append, indicator off.
package assistant
