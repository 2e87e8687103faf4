// Package tui is a terminal front end for the profile editor.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nfrund/profiledash/internal/profileeditor"
)

// Options configure a Model.
type Options struct {
	// Context bounds every request the editor makes.
	Context context.Context
	User    profileeditor.UserProfile
	API     profileeditor.ProfileAPI
	Session profileeditor.SessionManager
	Logger  *slog.Logger
}

type saveDoneMsg struct{ err error }

type deleteDoneMsg struct{ err error }

// navigator records where the editor sent the user. Reaching it ends the program.
type navigator struct {
	mu     sync.Mutex
	target string
}

func (n *navigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	n.target = path
	n.mu.Unlock()
	return nil
}

func (n *navigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

var fieldLabels = map[profileeditor.Field]string{
	profileeditor.FieldName:      "Full Name",
	profileeditor.FieldEmail:     "Email Address",
	profileeditor.FieldAvatarURL: "Avatar",
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	editor *profileeditor.Editor
	notes  *notices
	nav    *navigator

	fields  []profileeditor.Field
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	saving   bool
	deleting bool
	status   []notice
	deleted  bool
}

// New mounts an editor for opts.User and builds the form around it.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notes := &notices{}
	nav := &navigator{}
	editor := profileeditor.New(opts.User, profileeditor.Dependencies{
		API:       opts.API,
		Notifier:  notes,
		Session:   opts.Session,
		Navigator: nav,
		Logger:    opts.Logger,
	})

	form := editor.Form()
	fields := []profileeditor.Field{profileeditor.FieldName, profileeditor.FieldEmail, profileeditor.FieldAvatarURL}
	values := []string{form.Name, form.Email, form.AvatarURL}
	inputs := make([]textinput.Model, len(fields))
	for i := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		ti.SetValue(values[i])
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		editor:  editor,
		notes:   notes,
		nav:     nav,
		fields:  fields,
		inputs:  inputs,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Editor exposes the mounted editor.
func (m Model) Editor() *profileeditor.Editor { return m.editor }

// Deleted reports whether the account was deleted and the user sent home.
func (m Model) Deleted() bool { return m.deleted }

// Notices returns the messages shown in the last render.
func (m Model) Notices() []string {
	out := make([]string, len(m.status))
	for i, n := range m.status {
		out[i] = n.text
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveDoneMsg:
		m.saving = false
		m.status = m.notes.drain()
		if msg.err != nil && !errors.Is(msg.err, profileeditor.ErrSaveInProgress) {
			m.status = append(m.status, notice{err: true, text: msg.err.Error()})
		}
		return m, nil

	case deleteDoneMsg:
		m.deleting = false
		m.status = m.notes.drain()
		if m.nav.Target() != "" {
			m.deleted = true
			m.editor.Close()
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.editor.Close()
		return m, tea.Quit
	}

	if m.editor.DialogOpen() {
		switch {
		case m.deleting:
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			return m.confirmDelete()
		case key.Matches(msg, m.keys.Cancel):
			_ = m.editor.CloseDeleteDialog()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.editor.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Delete):
		_ = m.editor.OpenDeleteDialog()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if err := m.editor.SetField(m.fields[m.focus], m.inputs[m.focus].Value()); err != nil {
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.saving = true
	m.status = nil
	editor, ctx := m.editor, m.ctx
	return m, tea.Batch(
		func() tea.Msg { return saveDoneMsg{err: editor.Save(ctx)} },
		m.spinner.Tick,
	)
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	m.deleting = true
	m.status = nil
	editor, ctx := m.editor, m.ctx
	return m, tea.Batch(
		func() tea.Msg { return deleteDoneMsg{err: editor.ConfirmDelete(ctx)} },
		m.spinner.Tick,
	)
}

func (m Model) busy() bool {
	return m.saving || m.deleting
}

func (m Model) View() string {
	if m.deleted {
		return renderNotices(m.status) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := labelStyle
		if i == m.focus {
			label = focusedLabel
		}
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.saving {
		b.WriteString(m.spinner.View() + subtleStyle.Render(" Saving"))
	} else {
		b.WriteString(subtleStyle.Render("[ Save ]"))
	}
	b.WriteString("\n\n")

	b.WriteString(dangerStyle.Render("Danger Zone"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Delete Account removes your account permanently."))
	b.WriteString("\n")

	if m.editor.DialogOpen() {
		body := titleStyle.Render("Confirming Deletion") + "\n\n" +
			"Please note: this cannot be undone.\n\n"
		if m.deleting {
			body += m.spinner.View() + " Deleting"
		} else {
			body += m.help.ShortHelpView(m.keys.DialogHelp())
		}
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(body))
		b.WriteString("\n")
	}

	if len(m.status) > 0 {
		b.WriteString("\n")
		b.WriteString(renderNotices(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func renderNotices(ns []notice) string {
	lines := make([]string, len(ns))
	for i, n := range ns {
		if n.err {
			lines[i] = errorStyle.Render(n.text)
		} else {
			lines[i] = successStyle.Render(n.text)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
