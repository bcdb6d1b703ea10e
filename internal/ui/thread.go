// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelworks/parley/internal/model"
)

// renderThread builds the viewport content for the open chat.
func (a *App) renderThread() string {
	msgs := a.st.Messages(a.activeID)
	if len(msgs) == 0 {
		return a.theme.EmptyThread.Render("No messages yet. Say hello.")
	}

	var b strings.Builder
	for i, m := range msgs {
		b.WriteString(a.renderMessage(&m))
		if i < len(msgs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// renderMessage draws one message bubble, aligned by author: own messages on
// the right, everyone else on the left.
func (a *App) renderMessage(m *model.Message) string {
	maxBubble := a.viewport.Width * 3 / 4
	if maxBubble < 20 {
		maxBubble = 20
	}

	content := m.Content
	style := a.theme.TheirBubble
	align := lipgloss.Left

	switch m.Sender {
	case model.SenderMe:
		style = a.theme.MyBubble
		align = lipgloss.Right
	case model.SenderAssistant:
		style = a.theme.AssistantBubble
		content = a.renderAssistantContent(content)
	}

	bubble := style.MaxWidth(maxBubble).Render(content)
	meta := a.theme.MessageTime.Render(
		fmt.Sprintf("%s · %s", m.Sender.DisplayName(), m.Timestamp.Format("15:04")),
	)

	block := lipgloss.JoinVertical(align, bubble, meta)
	if a.viewport.Width > 0 {
		block = lipgloss.PlaceHorizontal(a.viewport.Width, align, block)
	}
	return block
}

// renderAssistantContent runs generated replies through the markdown
// renderer when one is available. Rendering failures fall back to the raw
// text; a reply is never lost to a formatting bug.
func (a *App) renderAssistantContent(content string) string {
	if a.renderer == nil {
		return content
	}
	out, err := a.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// renderHeader draws the open chat's title line.
func (a *App) renderHeader() string {
	chat, ok := a.st.Chat(a.activeID)
	if !ok {
		return a.theme.Header.Width(a.threadWidth()).Render(
			a.theme.HeaderTitle.Render("Parley"))
	}

	var status string
	switch {
	case chat.IsTyping:
		status = a.spin.View() + a.theme.TypingText.Render(" typing…")
	case chat.Kind == model.ChatAI:
		status = a.theme.HeaderStatus.Render("AI assistant")
	case chat.IsOnline:
		status = a.theme.HeaderStatus.Render("online")
	default:
		status = a.theme.HeaderStatus.Render("offline")
	}

	title := a.theme.HeaderTitle.Render(chat.Name)
	return a.theme.Header.Width(a.threadWidth()).Render(title + "  " + status)
}

// renderComposer draws the input row.
func (a *App) renderComposer() string {
	return a.theme.InputContainer.Width(a.threadWidth()).Render(a.composer.View())
}

// renderStatusBar draws the bottom help/status row.
func (a *App) renderStatusBar() string {
	if a.status != "" {
		return a.theme.StatusBar.Width(a.width).Render(a.status)
	}

	var parts []string
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts,
			a.theme.ShortcutKey.Render(h.Key)+" "+a.theme.ShortcutDesc.Render(h.Desc))
	}
	return a.theme.StatusBar.Width(a.width).Render(strings.Join(parts, "  "))
}

// threadWidth is the horizontal space left of the sidebar.
func (a *App) threadWidth() int {
	w := a.width - a.sidebarWidth() - 1
	if w < 0 {
		w = 0
	}
	return w
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	if a.dialog != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.dialog.View())
	}

	thread := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.viewport.View(),
		a.renderComposer(),
	)
	page := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), thread)
	return lipgloss.JoinVertical(lipgloss.Left, page, a.renderStatusBar())
}
