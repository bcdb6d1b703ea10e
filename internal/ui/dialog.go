// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelworks/parley/internal/model"
	"github.com/kestrelworks/parley/internal/ui/styles"
)

// dialogStep is the active field of the new-chat dialog.
type dialogStep int

const (
	stepName dialogStep = iota
	stepKind
	stepPrompt
)

// newChatDialog collects the fields for a new chat: name, kind, and for AI
// chats an optional persona prompt.
type newChatDialog struct {
	theme *styles.Theme
	step  dialogStep
	kind  model.ChatKind

	name   textinput.Model
	prompt textinput.Model
}

func newNewChatDialog(theme *styles.Theme) *newChatDialog {
	name := textinput.New()
	name.Placeholder = "Chat name"
	name.CharLimit = 64
	name.Focus()

	prompt := textinput.New()
	prompt.Placeholder = "Persona, e.g. \"You are a helpful assistant.\""
	prompt.CharLimit = 500

	return &newChatDialog{
		theme:  theme,
		kind:   model.ChatPerson,
		name:   name,
		prompt: prompt,
	}
}

// Update advances the dialog on enter and edits the focused field otherwise.
// done is true once every field has been collected.
func (d *newChatDialog) Update(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		switch d.step {
		case stepName:
			d.step = stepKind
			d.name.Blur()
		case stepKind:
			if d.kind == model.ChatAI {
				d.step = stepPrompt
				d.prompt.Focus()
			} else {
				return true, nil
			}
		case stepPrompt:
			return true, nil
		}
		return false, nil
	}

	switch d.step {
	case stepName:
		d.name, cmd = d.name.Update(msg)
	case stepKind:
		switch msg.String() {
		case "left", "right", "tab", " ":
			if d.kind == model.ChatPerson {
				d.kind = model.ChatAI
			} else {
				d.kind = model.ChatPerson
			}
		}
	case stepPrompt:
		d.prompt, cmd = d.prompt.Update(msg)
	}
	return false, cmd
}

// Result returns the collected fields.
func (d *newChatDialog) Result() (model.ChatKind, string, string) {
	prompt := ""
	if d.kind == model.ChatAI {
		prompt = strings.TrimSpace(d.prompt.Value())
	}
	return d.kind, strings.TrimSpace(d.name.Value()), prompt
}

// View draws the dialog.
func (d *newChatDialog) View() string {
	var b strings.Builder

	b.WriteString(d.theme.DialogTitle.Render("New chat"))
	b.WriteString("\n\n")

	b.WriteString(d.theme.DialogLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(d.name.View())
	b.WriteString("\n\n")

	person := d.theme.DialogKindOff.Render("Person")
	ai := d.theme.DialogKindOff.Render("AI")
	if d.kind == model.ChatPerson {
		person = d.theme.DialogKindOn.Render("Person")
	} else {
		ai = d.theme.DialogKindOn.Render("AI")
	}
	b.WriteString(d.theme.DialogLabel.Render("Kind  "))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, person, " ", ai))
	b.WriteString("\n")

	if d.kind == model.ChatAI {
		b.WriteString("\n")
		b.WriteString(d.theme.DialogLabel.Render("Persona"))
		b.WriteString("\n")
		b.WriteString(d.prompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.theme.DialogHelpText.Render("Enter to continue · Esc to cancel"))

	return d.theme.DialogBox.Render(b.String())
}
