// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kestrelworks/parley/internal/model"
)

// renderSidebar draws the chat list pane.
func (a *App) renderSidebar() string {
	width := a.sidebarWidth()
	inner := width - 2

	var b strings.Builder
	b.WriteString(a.theme.SidebarTitle.Render("Parley"))
	b.WriteString("\n")

	if a.focus == focusFilter || a.filter.Value() != "" {
		b.WriteString(a.theme.SidebarFilter.Render(a.filter.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(a.chats) == 0 {
		b.WriteString(a.theme.ChatPreview.Render(" No chats yet. Ctrl+T to start one."))
		b.WriteString("\n")
	}

	for i, c := range a.chats {
		b.WriteString(a.renderChatItem(&c, inner, i == a.cursor))
		b.WriteString("\n")
	}

	return a.theme.Sidebar.
		Width(width).
		Height(a.height - statusBarHeight).
		Render(b.String())
}

// renderChatItem draws one two-line sidebar entry: name with presence and
// time on the first line, preview or typing notice with the unread badge on
// the second.
func (a *App) renderChatItem(c *model.Chat, width int, selected bool) string {
	itemStyle := a.theme.ChatItem
	if selected {
		itemStyle = a.theme.ChatItemSelected
	}

	var presence string
	switch {
	case c.Kind == model.ChatAI:
		presence = a.theme.OnlineDot.Render("✦")
	case c.IsOnline:
		presence = a.theme.OnlineDot.Render("●")
	default:
		presence = a.theme.OfflineDot.Render("●")
	}

	when := ""
	if c.LastMessage != nil {
		when = formatChatTime(c.LastMessage.Timestamp)
	}

	nameWidth := width - runewidth.StringWidth(when) - 4
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)

	top := fmt.Sprintf("%s %s %s",
		presence,
		a.theme.ChatName.Render(name),
		a.theme.ChatTime.Render(when),
	)

	var second string
	switch {
	case c.IsTyping:
		second = a.theme.TypingText.Render("typing…")
	case c.LastMessage != nil:
		second = a.theme.ChatPreview.Render(c.LastMessage.Preview(width - 8))
	default:
		second = a.theme.ChatPreview.Render("no messages")
	}

	if c.UnreadCount > 0 {
		badge := a.theme.UnreadBadge.Render(fmt.Sprintf("%d", c.UnreadCount))
		pad := width - lipgloss.Width(second) - lipgloss.Width(badge) - 2
		if pad < 1 {
			pad = 1
		}
		second += strings.Repeat(" ", pad) + badge
	}

	return itemStyle.Width(width).Render(top + "\n  " + second)
}

// formatChatTime renders a message time the way a chat list does: clock time
// today, weekday within a week, date otherwise.
func formatChatTime(t time.Time) string {
	now := time.Now()
	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("15:04")
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon")
	default:
		return t.Format("Jan 2")
	}
}
