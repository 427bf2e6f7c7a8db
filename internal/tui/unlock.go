// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/passnode/passnode/internal/keychain"
	"github.com/passnode/passnode/internal/service"
)

// UnlockModel is the Bubble Tea model for the unlock screen. It renders the
// master password input and the optional storage API token input, and on
// submission derives the session secret locally. On success an
// [UnlockResult] message is produced and handled by [RootModel] to finish
// the flow.
//
// Leaving the token empty is allowed: the vault then runs local-only, with
// every push and pull silently skipped.
type UnlockModel struct {
	crypto keychain.KeyChainService

	inputs []textinput.Model
	focus  int
	errMsg string
}

// NewUnlockModel creates an [UnlockModel] with the master password input
// focused. credential pre-fills the token input from configuration.
func NewUnlockModel(crypto keychain.KeyChainService, credential string) *UnlockModel {
	passwordInput := textinput.New()
	passwordInput.Placeholder = "master password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'
	passwordInput.Focus()

	tokenInput := textinput.New()
	tokenInput.Placeholder = "storage API token (empty = local only)"
	tokenInput.CharLimit = 2048
	tokenInput.Width = 40
	tokenInput.SetValue(credential)

	return &UnlockModel{
		crypto: crypto,
		inputs: []textinput.Model{passwordInput, tokenInput},
	}
}

func (m *UnlockModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - tab / shift+tab — move focus between inputs.
//   - enter           — validate and derive the session.
//
// All other key events are forwarded to the focused input widget.
func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "enter":
			password := m.inputs[0].Value()
			credential := strings.TrimSpace(m.inputs[1].Value())
			if password == "" {
				m.errMsg = "Master password is required"
				return m, nil
			}

			m.errMsg = ""
			sess := service.NewSession(m.crypto, password, credential)
			return m, func() tea.Msg { return UnlockResult{Session: sess} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the unlock form as a two-column table
// with password and token inputs and an optional error message.
func (m *UnlockModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Token    │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("UNLOCK VAULT", strings.TrimRight(b.String(), "\n"),
		"tab: next field │ enter: unlock │ ctrl+v: version")
}

func (m *UnlockModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *UnlockModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
