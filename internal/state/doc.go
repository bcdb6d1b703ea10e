// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state owns the client's mutable state: the chat directory and the
// per-chat message ledgers.
//
// All mutations go through a single State object and are persisted as a full
// snapshot before the mutating call returns. Appending a user message to an
// AI chat does not call the responder directly; Append only reports that a
// reply is needed and the caller hands the request to the assistant package,
// which re-enters Append on completion.
package state
