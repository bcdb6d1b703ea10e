// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to shareable files.
// Supports Markdown for reading and JSON for machine consumption.
package export
