// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/passnode/passnode/internal/service"
	"github.com/passnode/passnode/models"
)

type browserMode int

const (
	modeList browserMode = iota
	modeDetail
	modeAdd
	modeConfirmDelete
)

// browserModel is the vault browser: one tab per vault kind, each backed by
// its own sync engine. All engine calls run as async commands; the model
// only ever holds decrypted snapshots handed back in messages.
type browserModel struct {
	ctx      context.Context
	services *service.ClientServices
	sess     *service.Session

	kinds   []models.Kind
	tab     int
	records map[string][]models.Record
	idx     map[string]int
	busy    map[string]bool
	spin    spinner.Model

	mode   browserMode
	form   *recordForm
	reveal bool
	status string
	errMsg string

	lock bool
}

func newBrowserModel(ctx context.Context, services *service.ClientServices, sess *service.Session) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	kinds := models.Kinds()
	busy := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		busy[k.Name] = true
	}

	return browserModel{
		ctx:      ctx,
		services: services,
		sess:     sess,
		kinds:    kinds,
		records:  make(map[string][]models.Record, len(kinds)),
		idx:      make(map[string]int, len(kinds)),
		busy:     busy,
		spin:     s,
	}
}

func (m browserModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	for _, kind := range m.kinds {
		cmds = append(cmds, m.cmdInitialize(kind))
	}
	return tea.Batch(cmds...)
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case vaultLoadedMsg:
		m.busy[msg.kind.Name] = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		if msg.records != nil {
			m.records[msg.kind.Name] = msg.records
			m.clampCursor(msg.kind)
		}
		return m, nil

	case recordSavedMsg:
		m.busy[msg.kind.Name] = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			// The form stays open so the input is not lost.
			return m, nil
		}
		m.mode = modeList
		m.form = nil
		m.status = "Saved"
		return m, tea.Batch(m.cmdList(msg.kind), m.cmdClearStatus())

	case recordRemovedMsg:
		m.busy[msg.kind.Name] = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		if msg.removed == 0 {
			m.status = "Nothing to remove"
		} else {
			m.status = "Removed"
		}
		return m, tea.Batch(m.cmdList(msg.kind), m.cmdClearStatus())

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = msg.field + " copied to clipboard"
		return m, m.cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeAdd && m.form != nil {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kind := m.kinds[m.tab]

	switch m.mode {
	case modeAdd:
		switch key {
		case "esc":
			m.mode = modeList
			m.form = nil
			m.errMsg = ""
			return m, nil
		case "tab", "down":
			m.form.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.form.focusPrev()
			return m, nil
		case "enter":
			if !m.form.onLastField() {
				m.form.focusNext()
				return m, nil
			}
			rec, err := m.form.record()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.busy[kind.Name] = true
			return m, m.cmdAdd(kind, rec)
		}
		cmd := m.form.update(msg)
		return m, cmd

	case modeConfirmDelete:
		switch key {
		case "y":
			m.mode = modeList
			if rec, ok := m.current(); ok {
				m.busy[kind.Name] = true
				return m, m.cmdRemove(kind, rec)
			}
			return m, nil
		case "n", "esc":
			m.mode = modeList
			return m, nil
		}
		return m, nil

	case modeDetail:
		switch key {
		case "esc", "enter":
			m.mode = modeList
			m.reveal = false
			return m, nil
		case "v":
			m.reveal = !m.reveal
			return m, nil
		case "c":
			return m, m.cmdCopy(kind)
		case "d":
			m.mode = modeConfirmDelete
			return m, nil
		}
		return m, nil
	}

	// modeList
	switch {
	case keyMatches(msg, keys.quit):
		return m, tea.Quit
	case keyMatches(msg, keys.lock):
		m.lock = true
		return m, tea.Quit
	case keyMatches(msg, keys.left) || key == "shift+tab":
		m.tab = (m.tab - 1 + len(m.kinds)) % len(m.kinds)
		m.errMsg = ""
	case keyMatches(msg, keys.right) || key == "tab":
		m.tab = (m.tab + 1) % len(m.kinds)
		m.errMsg = ""
	case keyMatches(msg, keys.up):
		if m.idx[kind.Name] > 0 {
			m.idx[kind.Name]--
		}
	case keyMatches(msg, keys.down):
		if m.idx[kind.Name] < len(m.records[kind.Name])-1 {
			m.idx[kind.Name]++
		}
	case keyMatches(msg, keys.enter):
		if _, ok := m.current(); ok {
			m.mode = modeDetail
			m.reveal = false
		}
	case keyMatches(msg, keys.newItem):
		m.mode = modeAdd
		m.errMsg = ""
		m.form = newRecordForm(kind)
		return m, m.form.init()
	case keyMatches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	case keyMatches(msg, keys.copy):
		return m, m.cmdCopy(kind)
	case keyMatches(msg, keys.refresh):
		m.busy[kind.Name] = true
		return m, m.cmdRefresh(kind)
	}
	return m, nil
}

func (m browserModel) current() (models.Record, bool) {
	kind := m.kinds[m.tab]
	recs := m.records[kind.Name]
	i := m.idx[kind.Name]
	if len(recs) == 0 || i < 0 || i >= len(recs) {
		return nil, false
	}
	return recs[i], true
}

func (m *browserModel) clampCursor(kind models.Kind) {
	n := len(m.records[kind.Name])
	if m.idx[kind.Name] >= n {
		m.idx[kind.Name] = n - 1
	}
	if m.idx[kind.Name] < 0 {
		m.idx[kind.Name] = 0
	}
}

// ── Commands ────────────────────────────────────────────────────────────────

func (m browserModel) cmdInitialize(kind models.Kind) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	engine := m.services.Vault(kind)
	return func() tea.Msg {
		_, err := engine.Initialize(ctx, sess)
		records, listErr := engine.ListRecords(sess)
		if err == nil {
			err = listErr
		}
		return vaultLoadedMsg{kind: kind, records: records, err: err}
	}
}

func (m browserModel) cmdRefresh(kind models.Kind) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	engine := m.services.Vault(kind)
	return func() tea.Msg {
		err := engine.Refresh(ctx, sess)
		records, listErr := engine.ListRecords(sess)
		if err == nil {
			err = listErr
		}
		return vaultLoadedMsg{kind: kind, records: records, err: err}
	}
}

func (m browserModel) cmdList(kind models.Kind) tea.Cmd {
	sess := m.sess
	engine := m.services.Vault(kind)
	return func() tea.Msg {
		records, err := engine.ListRecords(sess)
		return vaultLoadedMsg{kind: kind, records: records, err: err}
	}
}

func (m browserModel) cmdAdd(kind models.Kind, rec models.Record) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	engine := m.services.Vault(kind)
	return func() tea.Msg {
		return recordSavedMsg{kind: kind, err: engine.AddRecord(ctx, sess, rec)}
	}
}

func (m browserModel) cmdRemove(kind models.Kind, rec models.Record) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	engine := m.services.Vault(kind)
	return func() tea.Msg {
		removed, err := engine.RemoveRecord(ctx, sess, rec)
		return recordRemovedMsg{kind: kind, removed: removed, err: err}
	}
}

func (m browserModel) cmdCopy(kind models.Kind) tea.Cmd {
	rec, ok := m.current()
	if !ok {
		return nil
	}
	field := copyField(kind)
	value := rec[field]
	return func() tea.Msg {
		return copiedMsg{field: field, err: clipboard.WriteAll(value)}
	}
}

func (m browserModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// copyField is the field the copy hotkey targets per kind.
func copyField(kind models.Kind) string {
	switch kind.Name {
	case models.Cards.Name:
		return "cardnumber"
	case models.Notes.Name:
		return "note"
	default:
		return "password"
	}
}

// sensitiveFields are masked in views until revealed.
var sensitiveFields = map[string]bool{
	"password":   true,
	"cardnumber": true,
	"cvv":        true,
}

// ── Views ───────────────────────────────────────────────────────────────────

func (m browserModel) View() string {
	switch m.mode {
	case modeAdd:
		return m.viewAdd()
	case modeDetail:
		return m.viewDetail()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m browserModel) viewList() string {
	kind := m.kinds[m.tab]
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	recs := m.records[kind.Name]
	switch {
	case m.busy[kind.Name]:
		b.WriteString(m.spin.View())
		b.WriteString(" Loading...\n")
	case len(recs) == 0:
		b.WriteString("No entries\n")
	default:
		for i, rec := range recs {
			cursor := "  "
			if i == m.idx[kind.Name] {
				cursor = "> "
			}
			b.WriteString(cursor)
			b.WriteString(fitText(rec.Key(kind), 48))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return renderPage("PASSNODE — "+kind.Name, strings.TrimRight(b.String(), "\n"),
		"n: new │ d: delete │ c: copy │ s: sync │ enter: open │ tab: next vault │ L: lock │ q: quit")
}

func (m browserModel) viewDetail() string {
	kind := m.kinds[m.tab]
	rec, ok := m.current()
	if !ok {
		return m.viewList()
	}

	var b strings.Builder
	for _, field := range kind.Fields {
		value := rec[field]
		if sensitiveFields[field] && !m.reveal {
			value = maskValue(value)
		} else if value == "" {
			value = "-"
		}
		b.WriteString(fmt.Sprintf("%-15s │ %s\n", field, value))
	}

	if m.status != "" {
		b.WriteString("\nOK: " + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(kind.Name+" — "+fitText(rec.Key(kind), 32), strings.TrimRight(b.String(), "\n"),
		"v: reveal │ c: copy │ d: delete │ esc: back")
}

func (m browserModel) viewAdd() string {
	kind := m.kinds[m.tab]
	body := m.form.view()
	if m.errMsg != "" {
		body += "\n\n" + errorStyle.Render("Error: "+m.errMsg)
	}
	return renderPage("NEW "+strings.ToUpper(kind.Name), body,
		"tab: next field │ enter: save │ esc: cancel")
}

func (m browserModel) viewConfirmDelete() string {
	kind := m.kinds[m.tab]
	rec, _ := m.current()
	name := ""
	if rec != nil {
		name = rec.Key(kind)
	}
	body := fmt.Sprintf("Delete %q from %s?\n\nThis removes the entry from every synced device.", name, kind.Name)
	return renderPage("CONFIRM", body, "y: delete │ n/esc: cancel")
}

func (m browserModel) renderTabs() string {
	parts := make([]string, 0, len(m.kinds))
	for i, k := range m.kinds {
		label := fmt.Sprintf("%s (%d)", k.Name, len(m.records[k.Name]))
		if i == m.tab {
			label = activeTabStyle.Render(label)
		} else {
			label = helpStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  │  ")
}

func (m browserModel) renderStatusLine() string {
	kind := m.kinds[m.tab]
	engine := m.services.Vault(kind)

	var parts []string
	if !m.sess.Synced() {
		parts = append(parts, "local-only")
	} else if issuer := m.sess.Issuer(); issuer != "" {
		parts = append(parts, "synced via "+issuer)
	} else {
		parts = append(parts, "synced")
	}
	parts = append(parts, engine.Status().String())
	if engine.Degraded() {
		parts = append(parts, errorStyle.Render("OFFLINE COPY"))
	}

	out := helpStyle.Render(strings.Join(parts, " · "))
	if m.status != "" {
		out += "\nOK: " + m.status
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg)
	}
	return out
}
