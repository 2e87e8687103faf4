package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	updates   []profileeditor.Update
	deletes   int
	updateErr error
	deleteErr error
}

func (f *fakeAPI) UpdateProfile(_ context.Context, _ string, u profileeditor.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
	return f.updateErr
}

func (f *fakeAPI) DeleteAccount(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return f.deleteErr
}

type fakeSession struct{ terminated int }

func (s *fakeSession) Terminate(context.Context) error {
	s.terminated++
	return nil
}

func newTestModel(api *fakeAPI, sess *fakeSession) Model {
	m := New(Options{
		User:    profileeditor.UserProfile{ID: "user:ada", Name: "Ada", Email: "ada@example.com", Image: ""},
		API:     api,
		Session: sess,
	})
	// A static cursor keeps key handling from scheduling blink timers.
	for i := range m.inputs {
		m.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// send delivers msg and then every message its command produces, the way the
// runtime would, stopping at tea.Quit.
func send(t *testing.T, m Model, msg tea.Msg) (Model, bool) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	return drain(t, m, cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) (Model, bool) {
	t.Helper()
	if cmd == nil {
		return m, false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return m, true
	case tea.BatchMsg:
		quit := false
		for _, c := range msg {
			var q bool
			m, q = drain(t, m, c)
			quit = quit || q
		}
		return m, quit
	case saveDoneMsg, deleteDoneMsg:
		return send(t, m, msg)
	default:
		// Cursor blinks and spinner ticks are not replayed.
		return m, false
	}
}

func TestTypingUpdatesEditor(t *testing.T) {
	m := newTestModel(&fakeAPI{}, &fakeSession{})

	m, _ = send(t, m, keyRunes(" King"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	form := m.Editor().Form()
	assert.Equal(t, "Ada King", form.Name)
	assert.Equal(t, "ada@example.co", form.Email)
	assert.Equal(t, "", form.AvatarURL)
}

func TestSaveShowsOutcome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeAPI{}
		m := newTestModel(api, &fakeSession{})

		m, _ = send(t, m, keyRunes("!"))
		m, quit := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		require.False(t, quit)

		assert.Equal(t, []profileeditor.Update{{Name: "Ada!", Email: "ada@example.com", Image: ""}}, api.updates)
		assert.Equal(t, []string{profileeditor.MessageProfileUpdated}, m.Notices())
		assert.False(t, m.saving)
		assert.Contains(t, m.View(), profileeditor.MessageProfileUpdated)
	})

	t.Run("failure", func(t *testing.T) {
		m := newTestModel(&fakeAPI{updateErr: errors.New("boom")}, &fakeSession{})

		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		assert.Equal(t, []string{profileeditor.MessageFailure}, m.Notices())
	})
}

func TestSaveShowsSpinnerWhilePending(t *testing.T) {
	m := newTestModel(&fakeAPI{}, &fakeSession{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.saving)
	assert.Contains(t, m.View(), "Saving")

	// A second save while one is pending issues nothing.
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)
}

func TestDeleteDialog(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		api := &fakeAPI{}
		m := newTestModel(api, &fakeSession{})

		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
		require.True(t, m.Editor().DialogOpen())
		assert.Contains(t, m.View(), "Confirming Deletion")

		m, _ = send(t, m, keyRunes("n"))
		assert.False(t, m.Editor().DialogOpen())
		assert.Zero(t, api.deletes)
	})

	t.Run("confirm deletes, signs out and quits", func(t *testing.T) {
		api, sess := &fakeAPI{}, &fakeSession{}
		m := newTestModel(api, sess)

		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
		m, quit := send(t, m, keyRunes("y"))

		assert.True(t, quit)
		assert.True(t, m.Deleted())
		assert.Equal(t, 1, api.deletes)
		assert.Equal(t, 1, sess.terminated)
		assert.Equal(t, []string{profileeditor.MessageAccountDeleted}, m.Notices())
		assert.Equal(t, profileeditor.RootPath, m.nav.Target())
	})

	t.Run("failure closes the dialog and stays", func(t *testing.T) {
		api, sess := &fakeAPI{deleteErr: errors.New("boom")}, &fakeSession{}
		m := newTestModel(api, sess)

		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
		m, quit := send(t, m, keyRunes("y"))

		assert.False(t, quit)
		assert.False(t, m.Deleted())
		assert.False(t, m.Editor().DialogOpen())
		assert.Zero(t, sess.terminated)
		assert.Equal(t, []string{profileeditor.MessageFailure}, m.Notices())
	})
}

func TestQuitClosesEditor(t *testing.T) {
	m := newTestModel(&fakeAPI{}, &fakeSession{})

	m, quit := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, quit)

	select {
	case <-m.Editor().Done():
	default:
		t.Fatal("editor was not closed")
	}
}
