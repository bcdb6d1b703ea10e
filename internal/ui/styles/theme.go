// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	ColorProfile termenv.Profile
	Palette      Palette

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarTitle     lipgloss.Style
	SidebarFilter    lipgloss.Style
	ChatItem         lipgloss.Style
	ChatItemSelected lipgloss.Style
	ChatName         lipgloss.Style
	ChatPreview      lipgloss.Style
	ChatTime         lipgloss.Style
	UnreadBadge      lipgloss.Style
	OnlineDot        lipgloss.Style
	OfflineDot       lipgloss.Style
	TypingText       lipgloss.Style

	// ==========================================================================
	// THREAD STYLES
	// ==========================================================================

	Thread       lipgloss.Style
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style

	MyBubble        lipgloss.Style
	TheirBubble     lipgloss.Style
	AssistantBubble lipgloss.Style
	MessageTime     lipgloss.Style
	EmptyThread     lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	Spinner        lipgloss.Style
	ErrorText      lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	DialogBox      lipgloss.Style
	DialogTitle    lipgloss.Style
	DialogLabel    lipgloss.Style
	DialogKindOn   lipgloss.Style
	DialogKindOff  lipgloss.Style
	DialogHelpText lipgloss.Style
}

// NewTheme creates a theme for the named palette ("dark" or "light").
func NewTheme(name string) *Theme {
	p := PaletteFor(name)

	t := &Theme{
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Border)
	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Padding(0, 1)
	t.SidebarFilter = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)
	t.ChatItem = lipgloss.NewStyle().
		Padding(0, 1)
	t.ChatItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Bold(true)
	t.ChatName = lipgloss.NewStyle().
		Foreground(p.Text)
	t.ChatPreview = lipgloss.NewStyle().
		Foreground(p.Muted)
	t.ChatTime = lipgloss.NewStyle().
		Foreground(p.Muted)
	t.UnreadBadge = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Accent).
		Padding(0, 1).
		Bold(true)
	t.OnlineDot = lipgloss.NewStyle().
		Foreground(p.Success)
	t.OfflineDot = lipgloss.NewStyle().
		Foreground(p.Muted)
	t.TypingText = lipgloss.NewStyle().
		Foreground(p.AccentSoft).
		Italic(true)

	// Thread
	t.Thread = lipgloss.NewStyle().
		Padding(0, 1)
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)
	t.HeaderStatus = lipgloss.NewStyle().
		Foreground(p.Muted)

	t.MyBubble = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Accent).
		Padding(0, 1)
	t.TheirBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.AccentSoft).
		Padding(0, 1)
	t.MessageTime = lipgloss.NewStyle().
		Foreground(p.Muted)
	t.EmptyThread = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true).
		Padding(1, 2)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.Muted)
	t.Spinner = lipgloss.NewStyle().
		Foreground(p.AccentSoft)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(p.Danger)

	// Dialogs
	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	t.DialogLabel = lipgloss.NewStyle().
		Foreground(p.Text)
	t.DialogKindOn = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Accent).
		Padding(0, 1).
		Bold(true)
	t.DialogKindOff = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	t.DialogHelpText = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	return t
}
