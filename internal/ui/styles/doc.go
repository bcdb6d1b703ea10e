// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the parley TUI.
//
// All lipgloss styles live on a single Theme value built once at startup
// from the configured palette, so the rest of the UI never constructs
// styles inline.
package styles
