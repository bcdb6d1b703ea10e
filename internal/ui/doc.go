// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the parley terminal interface.
//
// The layout is a single page: a sidebar listing chats on the left and the
// active chat's thread on the right, with a composer at the bottom. One
// bubbletea model owns the whole page; AI replies arrive asynchronously as
// messages from orchestrator commands.
package ui
