// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/kestrelworks/parley/internal/assistant"
	"github.com/kestrelworks/parley/internal/config"
	"github.com/kestrelworks/parley/internal/export"
	"github.com/kestrelworks/parley/internal/model"
	"github.com/kestrelworks/parley/internal/state"
	"github.com/kestrelworks/parley/internal/ui/styles"
)

// focus identifies which pane receives key input.
type focus int

const (
	focusSidebar focus = iota
	focusComposer
	focusFilter
	focusDialog
)

// statusBarHeight and composerHeight are fixed rows taken from the thread
// pane's vertical budget.
const (
	headerHeight    = 2
	composerHeight  = 2
	statusBarHeight = 1
)

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg is delivered when an orchestrator call finishes. message is nil
// when the reply was dropped (chat deleted mid-flight).
type replyMsg struct {
	chatID  string
	message *model.Message
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the bubbletea model for the whole client.
type App struct {
	cfg   *config.Config
	theme *styles.Theme
	keys  KeyMap
	st    *state.State
	orch  *assistant.Orchestrator

	width  int
	height int
	focus  focus

	// Sidebar
	chats    []model.Chat
	cursor   int
	activeID string
	filter   textinput.Model

	// Thread
	viewport viewport.Model
	composer textinput.Model
	spin     spinner.Model

	dialog   *newChatDialog
	renderer *glamour.TermRenderer

	// status is a transient notice shown in the status bar (export results,
	// rejected input). Cleared on the next keypress.
	status string
}

// New creates the app over loaded state. The most recently active chat opens
// as the initial selection.
func New(cfg *config.Config, st *state.State, orch *assistant.Orchestrator) *App {
	theme := styles.NewTheme(cfg.UI.Theme)

	filter := textinput.New()
	filter.Placeholder = "filter chats"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	composer := textinput.New()
	composer.Placeholder = "Type a message"
	composer.Prompt = "> "
	composer.CharLimit = 4000

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	a := &App{
		cfg:      cfg,
		theme:    theme,
		keys:     DefaultKeyMap(),
		st:       st,
		orch:     orch,
		focus:    focusSidebar,
		filter:   filter,
		composer: composer,
		spin:     spin,
		viewport: viewport.New(0, 0),
	}

	a.refreshChats()
	if len(a.chats) > 0 {
		a.openChat(a.chats[0].ID)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spin.Tick)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case replyMsg:
		// State already holds the reply (or dropped it). A reply landing in
		// the open chat is read on arrival; only background chats keep the
		// unread badge.
		if msg.message != nil && msg.chatID == a.activeID {
			a.st.MarkRead(msg.chatID)
			a.refreshChats()
			a.refreshThread()
			a.viewport.GotoBottom()
		} else {
			a.refreshChats()
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

// updateKeys routes a keypress to the focused pane.
func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	switch a.focus {
	case focusDialog:
		return a.updateDialog(msg)
	case focusFilter:
		return a.updateFilter(msg)
	case focusComposer:
		return a.updateComposer(msg)
	default:
		return a.updateSidebar(msg)
	}
}

// updateSidebar handles keys while the chat list has focus.
func (a *App) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.chats)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Select):
		if a.cursor < len(a.chats) {
			a.openChat(a.chats[a.cursor].ID)
			a.setFocus(focusComposer)
		}
	case key.Matches(msg, a.keys.Focus):
		a.setFocus(focusComposer)
	case key.Matches(msg, a.keys.Filter):
		a.setFocus(focusFilter)
	case key.Matches(msg, a.keys.NewChat):
		a.dialog = newNewChatDialog(a.theme)
		a.setFocus(focusDialog)
	case key.Matches(msg, a.keys.Delete):
		a.deleteCurrent()
	case key.Matches(msg, a.keys.Export):
		a.exportCurrent()
	}
	return a, nil
}

// updateFilter handles keys while the filter input has focus.
func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.filter.SetValue("")
		a.refreshChats()
		a.setFocus(focusSidebar)
		return a, nil
	case key.Matches(msg, a.keys.Select):
		a.setFocus(focusSidebar)
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.refreshChats()
	return a, cmd
}

// updateComposer handles keys while the message input has focus.
func (a *App) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Focus), key.Matches(msg, a.keys.Cancel):
		a.setFocus(focusSidebar)
		return a, nil
	case key.Matches(msg, a.keys.Send):
		return a, a.send()
	case key.Matches(msg, a.keys.PageUp):
		a.viewport.HalfViewUp()
		return a, nil
	case key.Matches(msg, a.keys.PageDown):
		a.viewport.HalfViewDown()
		return a, nil
	}

	var cmd tea.Cmd
	a.composer, cmd = a.composer.Update(msg)
	return a, cmd
}

// updateDialog handles keys while the new-chat dialog is open.
func (a *App) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Cancel) {
		a.dialog = nil
		a.setFocus(focusSidebar)
		return a, nil
	}

	done, cmd := a.dialog.Update(msg)
	if !done {
		return a, cmd
	}

	kind, name, prompt := a.dialog.Result()
	a.dialog = nil

	chat, err := a.st.CreateChat(kind, name, prompt)
	if err != nil {
		a.status = "Chat name must not be empty"
		a.setFocus(focusSidebar)
		return a, nil
	}

	a.refreshChats()
	a.openChat(chat.ID)
	a.setFocus(focusComposer)
	return a, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// send appends the composer's content to the open chat and kicks off an AI
// reply when one is owed.
func (a *App) send() tea.Cmd {
	content := strings.TrimSpace(a.composer.Value())
	if content == "" || a.activeID == "" {
		return nil
	}
	a.composer.SetValue("")

	_, needsReply, err := a.st.Append(a.activeID, model.Draft{
		Sender:  model.SenderMe,
		Kind:    model.KindText,
		Content: content,
	})
	if err != nil {
		a.status = "Chat no longer exists"
		a.refreshChats()
		return nil
	}

	a.refreshChats()
	a.refreshThread()
	a.viewport.GotoBottom()

	if needsReply {
		return a.respondCmd(a.activeID, content)
	}
	return nil
}

// respondCmd runs the reply cycle off the UI loop.
func (a *App) respondCmd(chatID, content string) tea.Cmd {
	return func() tea.Msg {
		msg := a.orch.Respond(context.Background(), chatID, content)
		return replyMsg{chatID: chatID, message: msg}
	}
}

// openChat makes a chat the active one and clears its unread counter.
func (a *App) openChat(id string) {
	a.activeID = id
	a.st.MarkRead(id)
	a.refreshChats()
	for i, c := range a.chats {
		if c.ID == id {
			a.cursor = i
		}
	}
	a.refreshThread()
	a.viewport.GotoBottom()
}

// deleteCurrent removes the chat under the cursor.
func (a *App) deleteCurrent() {
	if a.cursor >= len(a.chats) {
		return
	}
	id := a.chats[a.cursor].ID
	a.st.DeleteChat(id)
	if a.activeID == id {
		a.activeID = ""
		a.viewport.SetContent("")
	}
	a.refreshChats()
	if len(a.chats) > 0 && a.activeID == "" {
		a.openChat(a.chats[min(a.cursor, len(a.chats)-1)].ID)
	}
}

// exportCurrent writes the open chat's transcript to a Markdown file.
func (a *App) exportCurrent() {
	chat, ok := a.st.Chat(a.activeID)
	if !ok {
		return
	}

	path, err := export.ExportMarkdown(&export.Transcript{
		Chat:     chat,
		Messages: a.st.Messages(chat.ID),
	}, nil)
	if err != nil {
		a.status = "Export failed: " + err.Error()
		return
	}
	a.status = "Exported to " + path
}

// =============================================================================
// STATE SYNC
// =============================================================================

// refreshChats re-reads the directory through the current filter and keeps
// the cursor in range.
func (a *App) refreshChats() {
	a.chats = a.st.Chats(a.filter.Value())
	if a.cursor >= len(a.chats) {
		a.cursor = max(0, len(a.chats)-1)
	}
}

// refreshThread re-renders the open chat's ledger into the viewport.
func (a *App) refreshThread() {
	if a.activeID == "" {
		a.viewport.SetContent("")
		return
	}
	a.viewport.SetContent(a.renderThread())
}

// setFocus moves input focus between panes.
func (a *App) setFocus(f focus) {
	a.focus = f
	a.filter.Blur()
	a.composer.Blur()
	switch f {
	case focusFilter:
		a.filter.Focus()
	case focusComposer:
		a.composer.Focus()
	}
}

// resize recomputes the layout after a terminal size change.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	threadWidth := width - a.sidebarWidth() - 1
	a.viewport.Width = threadWidth
	a.viewport.Height = height - headerHeight - composerHeight - statusBarHeight
	a.composer.Width = threadWidth - 4

	// Markdown rendering wraps to the thread width; rebuild on resize.
	a.renderer = nil
	if a.cfg.UI.RenderMarkdown {
		wrap := threadWidth - 4
		if wrap > 20 {
			if r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(wrap),
			); err == nil {
				a.renderer = r
			}
		}
	}

	a.refreshThread()
	a.viewport.GotoBottom()
}

// sidebarWidth is the configured width clamped to the terminal.
func (a *App) sidebarWidth() int {
	w := a.cfg.UI.SidebarWidth
	if w <= 0 {
		w = 32
	}
	if a.width > 0 && w > a.width/2 {
		w = a.width / 2
	}
	return w
}
