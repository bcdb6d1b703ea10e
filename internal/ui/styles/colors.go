// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// DarkPalette is the default palette.
var DarkPalette = Palette{
	Background: lipgloss.Color("#1a1b26"),
	Surface:    lipgloss.Color("#24283b"),
	Border:     lipgloss.Color("#3b4261"),
	Text:       lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Accent:     lipgloss.Color("#7aa2f7"),
	AccentSoft: lipgloss.Color("#bb9af7"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Danger:     lipgloss.Color("#f7768e"),
}

// LightPalette is used when the theme is configured as "light".
var LightPalette = Palette{
	Background: lipgloss.Color("#e1e2e7"),
	Surface:    lipgloss.Color("#d5d6db"),
	Border:     lipgloss.Color("#a8aecb"),
	Text:       lipgloss.Color("#343b58"),
	Muted:      lipgloss.Color("#8990b3"),
	Accent:     lipgloss.Color("#34548a"),
	AccentSoft: lipgloss.Color("#5a4a78"),
	Success:    lipgloss.Color("#485e30"),
	Warning:    lipgloss.Color("#8f5e15"),
	Danger:     lipgloss.Color("#8c4351"),
}

// PaletteFor maps a configured theme name to its palette. Unknown names fall
// back to dark.
func PaletteFor(name string) Palette {
	if name == "light" {
		return LightPalette
	}
	return DarkPalette
}
