// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestPaletteFor(t *testing.T) {
	if PaletteFor("light") != LightPalette {
		t.Error("PaletteFor(light) should return the light palette")
	}
	if PaletteFor("dark") != DarkPalette {
		t.Error("PaletteFor(dark) should return the dark palette")
	}
	if PaletteFor("mystery") != DarkPalette {
		t.Error("Unknown theme names should fall back to dark")
	}
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme("dark")
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	if theme.Palette != DarkPalette {
		t.Error("Theme should carry its palette")
	}

	// Styles must be usable immediately.
	if out := theme.UnreadBadge.Render("3"); out == "" {
		t.Error("UnreadBadge should render")
	}
}
