package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAPI struct{}

func (nopAPI) UpdateProfile(context.Context, string, profileeditor.Update) error { return nil }
func (nopAPI) DeleteAccount(context.Context) error                               { return nil }

func newTestMount() *mount {
	m := &mount{toasts: &view.ToastQueue{}, nav: &redirectNavigator{}}
	m.editor = profileeditor.New(profileeditor.UserProfile{ID: "user:ada"}, profileeditor.Dependencies{
		API:       nopAPI{},
		Notifier:  m.toasts,
		Session:   sessionTerminator{},
		Navigator: m.nav,
	})
	return m
}

func isClosed(m *mount) bool {
	select {
	case <-m.editor.Done():
		return true
	default:
		return false
	}
}

func newTestRegistry() *editorRegistry {
	return newEditorRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_MountReplacesPrevious(t *testing.T) {
	r := newTestRegistry()
	first, second := newTestMount(), newTestMount()

	r.Mount("tok", first)
	r.Mount("tok", second)

	assert.True(t, isClosed(first), "previous editor is closed")
	assert.False(t, isClosed(second))
	assert.Same(t, second, r.Get("tok"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UnmountOnlyCurrent(t *testing.T) {
	r := newTestRegistry()
	stale, current := newTestMount(), newTestMount()
	r.Mount("tok", stale)
	r.Mount("tok", current)

	r.Unmount("tok", stale)
	require.Same(t, current, r.Get("tok"))

	r.Unmount("tok", current)
	assert.Nil(t, r.Get("tok"))
	assert.True(t, isClosed(current))
}

func TestRegistry_SweepIdle(t *testing.T) {
	r := newTestRegistry()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	idle, active := newTestMount(), newTestMount()
	r.Mount("idle", idle)
	r.Mount("active", active)

	now = now.Add(20 * time.Minute)
	r.Get("active")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.True(t, isClosed(idle))
	assert.False(t, isClosed(active))
	assert.Nil(t, r.Get("idle"))
	assert.NotNil(t, r.Get("active"))
}

func TestRegistry_CloseAll(t *testing.T) {
	r := newTestRegistry()
	a, b := newTestMount(), newTestMount()
	r.Mount("a", a)
	r.Mount("b", b)

	r.CloseAll()

	assert.Zero(t, r.Len())
	assert.True(t, isClosed(a))
	assert.True(t, isClosed(b))
}

func TestRedirectNavigator_TargetClears(t *testing.T) {
	n := &redirectNavigator{}
	require.NoError(t, n.Navigate(context.Background(), "/"))
	assert.Equal(t, "/", n.Target())
	assert.Empty(t, n.Target())
}
