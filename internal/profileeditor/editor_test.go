package profileeditor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every side effect the editor produces, in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) count(ev string) int {
	n := 0
	for _, e := range r.all() {
		if e == ev {
			n++
		}
	}
	return n
}

func (r *recorder) Success(msg string) { r.add("success:" + msg) }
func (r *recorder) Error(msg string)   { r.add("error:" + msg) }

func (r *recorder) Terminate(ctx context.Context) error {
	r.add("terminate")
	return nil
}

func (r *recorder) Navigate(ctx context.Context, path string) error {
	r.add("navigate:" + path)
	return nil
}

// fakeAPI is a ProfileAPI whose calls can be failed or held open.
type fakeAPI struct {
	rec *recorder

	updateErr error
	deleteErr error
	// hold, when non-nil, blocks each call until it is closed or ctx ends.
	hold chan struct{}

	mu      sync.Mutex
	updates []Update
	userIDs []string
	deletes int
}

func (f *fakeAPI) wait(ctx context.Context) error {
	if f.hold == nil {
		return nil
	}
	select {
	case <-f.hold:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, userID string, u Update) error {
	f.mu.Lock()
	f.updates = append(f.updates, u)
	f.userIDs = append(f.userIDs, userID)
	f.mu.Unlock()
	f.rec.add("update")
	if err := f.wait(ctx); err != nil {
		return err
	}
	return f.updateErr
}

func (f *fakeAPI) DeleteAccount(ctx context.Context) error {
	f.mu.Lock()
	f.deletes++
	f.mu.Unlock()
	f.rec.add("delete")
	if err := f.wait(ctx); err != nil {
		return err
	}
	return f.deleteErr
}

func (f *fakeAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeAPI) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}

var testUser = UserProfile{
	ID:    "user:ada",
	Name:  "Ada Lovelace",
	Email: "ada@example.com",
	Image: "https://example.com/ada.png",
}

func newTestEditor(t *testing.T) (*Editor, *fakeAPI, *recorder) {
	t.Helper()
	rec := &recorder{}
	api := &fakeAPI{rec: rec}
	e := New(testUser, Dependencies{API: api, Notifier: rec, Session: rec, Navigator: rec})
	t.Cleanup(e.Close)
	return e, api, rec
}

func TestNew_SeedsFormFromUser(t *testing.T) {
	e, _, _ := newTestEditor(t)

	snap := e.Snapshot()
	assert.Equal(t, FormState{Name: "Ada Lovelace", Email: "ada@example.com", AvatarURL: "https://example.com/ada.png"}, snap.Form)
	assert.False(t, snap.Saving)
	assert.False(t, snap.DialogOpen)
	assert.Equal(t, DeleteIdle, snap.DeleteState)
	assert.NotEmpty(t, e.ID())
}

func TestSetField(t *testing.T) {
	t.Run("last value wins regardless of edit order", func(t *testing.T) {
		e, _, _ := newTestEditor(t)

		require.NoError(t, e.SetEmail("a@x"))
		require.NoError(t, e.SetName("A"))
		require.NoError(t, e.SetAvatarURL(""))
		require.NoError(t, e.SetEmail("b@x"))
		require.NoError(t, e.SetName("Ab"))

		assert.Equal(t, FormState{Name: "Ab", Email: "b@x", AvatarURL: ""}, e.Form())
	})

	t.Run("empty strings are accepted", func(t *testing.T) {
		e, _, _ := newTestEditor(t)

		require.NoError(t, e.SetName(""))
		require.NoError(t, e.SetEmail(""))
		assert.Equal(t, "", e.Form().Name)
		assert.Equal(t, "", e.Form().Email)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		e, _, _ := newTestEditor(t)
		assert.ErrorIs(t, e.SetField(Field(42), "x"), ErrUnknownField)
	})

	t.Run("closed editor rejects edits", func(t *testing.T) {
		e, _, _ := newTestEditor(t)
		e.Close()
		assert.ErrorIs(t, e.SetName("x"), ErrClosed)
	})
}

func TestParseField(t *testing.T) {
	for in, want := range map[string]Field{"name": FieldName, "email": FieldEmail, "image": FieldAvatarURL, "avatar_url": FieldAvatarURL} {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseField("password")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSave(t *testing.T) {
	t.Run("success sends the form and notifies once", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		require.NoError(t, e.SetName("Ada King"))

		require.NoError(t, e.Save(context.Background()))

		require.Equal(t, 1, api.updateCount())
		assert.Equal(t, Update{Name: "Ada King", Email: "ada@example.com", Image: "https://example.com/ada.png"}, api.updates[0])
		assert.Equal(t, "user:ada", api.userIDs[0])
		assert.Equal(t, 1, rec.count("success:"+MessageProfileUpdated))
		assert.Equal(t, 0, rec.count("error:"+MessageFailure))
		assert.Equal(t, "Ada King", e.Form().Name, "form is left as entered")
		assert.False(t, e.Saving())
	})

	t.Run("failure notifies once and clears saving", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.updateErr = errors.New("500 Internal Server Error")
		require.NoError(t, e.SetEmail("new@example.com"))

		require.NoError(t, e.Save(context.Background()))

		assert.Equal(t, 1, rec.count("error:"+MessageFailure))
		assert.Equal(t, 0, rec.count("success:"+MessageProfileUpdated))
		assert.False(t, e.Saving())
		assert.Equal(t, "new@example.com", e.Form().Email)
	})

	t.Run("second save while one is in flight is refused", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.hold = make(chan struct{})

		done := make(chan error, 1)
		go func() { done <- e.Save(context.Background()) }()
		require.Eventually(t, e.Saving, time.Second, time.Millisecond)

		assert.ErrorIs(t, e.Save(context.Background()), ErrSaveInProgress)

		close(api.hold)
		require.NoError(t, <-done)
		assert.Equal(t, 1, api.updateCount())
		assert.Equal(t, 1, rec.count("success:"+MessageProfileUpdated))
		assert.False(t, e.Saving())
	})

	t.Run("fields stay editable while saving", func(t *testing.T) {
		e, api, _ := newTestEditor(t)
		api.hold = make(chan struct{})

		done := make(chan error, 1)
		go func() { done <- e.Save(context.Background()) }()
		require.Eventually(t, e.Saving, time.Second, time.Millisecond)

		require.NoError(t, e.SetName("typed during save"))
		close(api.hold)
		require.NoError(t, <-done)

		assert.Equal(t, "Ada Lovelace", api.updates[0].Name, "payload is the form at the time of save")
		assert.Equal(t, "typed during save", e.Form().Name)
	})

	t.Run("response after close is dropped", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.hold = make(chan struct{})

		done := make(chan error, 1)
		go func() { done <- e.Save(context.Background()) }()
		require.Eventually(t, e.Saving, time.Second, time.Millisecond)

		e.Close()
		require.NoError(t, <-done)
		assert.Empty(t, rec.all()[1:], "no notification after teardown")
		assert.ErrorIs(t, e.Save(context.Background()), ErrClosed)
	})
}

func TestDeleteDialog(t *testing.T) {
	t.Run("dismissing never issues a delete", func(t *testing.T) {
		e, api, _ := newTestEditor(t)

		require.NoError(t, e.OpenDeleteDialog())
		assert.True(t, e.DialogOpen())
		assert.Equal(t, DeleteConfirmPrompted, e.DeleteState())

		require.NoError(t, e.CloseDeleteDialog())
		assert.False(t, e.DialogOpen())
		assert.Equal(t, DeleteIdle, e.DeleteState())

		assert.ErrorIs(t, e.ConfirmDelete(context.Background()), ErrNotConfirming)
		assert.Equal(t, 0, api.deleteCount())
	})

	t.Run("dialog state is independent of saving", func(t *testing.T) {
		e, api, _ := newTestEditor(t)
		api.hold = make(chan struct{})

		done := make(chan error, 1)
		go func() { done <- e.Save(context.Background()) }()
		require.Eventually(t, e.Saving, time.Second, time.Millisecond)

		require.NoError(t, e.OpenDeleteDialog())
		assert.True(t, e.DialogOpen())
		close(api.hold)
		require.NoError(t, <-done)
		assert.True(t, e.DialogOpen())
	})
}

func TestConfirmDelete(t *testing.T) {
	t.Run("success notifies, terminates, then navigates home", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		require.NoError(t, e.OpenDeleteDialog())

		require.NoError(t, e.ConfirmDelete(context.Background()))

		assert.Equal(t, 1, api.deleteCount())
		assert.Equal(t, []string{
			"delete",
			"success:" + MessageAccountDeleted,
			"terminate",
			"navigate:" + RootPath,
		}, rec.all())
		assert.Equal(t, DeleteRedirected, e.DeleteState())
		assert.False(t, e.DialogOpen())
	})

	t.Run("failure notifies and stops before session termination", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.deleteErr = errors.New("connection refused")
		require.NoError(t, e.OpenDeleteDialog())

		require.NoError(t, e.ConfirmDelete(context.Background()))

		assert.Equal(t, 1, rec.count("error:"+MessageFailure))
		assert.Equal(t, 0, rec.count("terminate"))
		assert.Equal(t, 0, rec.count("navigate:"+RootPath))
		assert.Equal(t, DeleteIdle, e.DeleteState())
		assert.False(t, e.DialogOpen(), "dialog is closed after a failed deletion")
	})

	t.Run("a failed attempt can be retried by reopening the dialog", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.deleteErr = errors.New("boom")
		require.NoError(t, e.OpenDeleteDialog())
		require.NoError(t, e.ConfirmDelete(context.Background()))

		api.deleteErr = nil
		require.NoError(t, e.OpenDeleteDialog())
		require.NoError(t, e.ConfirmDelete(context.Background()))

		assert.Equal(t, 2, api.deleteCount())
		assert.Equal(t, 1, rec.count("terminate"))
	})

	t.Run("double confirm issues a single delete", func(t *testing.T) {
		e, api, _ := newTestEditor(t)
		api.hold = make(chan struct{})
		require.NoError(t, e.OpenDeleteDialog())

		done := make(chan error, 1)
		go func() { done <- e.ConfirmDelete(context.Background()) }()
		require.Eventually(t, func() bool { return e.DeleteState() == DeleteDeleting }, time.Second, time.Millisecond)

		assert.ErrorIs(t, e.ConfirmDelete(context.Background()), ErrDeleteInProgress)
		assert.ErrorIs(t, e.OpenDeleteDialog(), ErrDeleteInProgress)

		close(api.hold)
		require.NoError(t, <-done)
		assert.Equal(t, 1, api.deleteCount())
	})

	t.Run("closing mid-delete drops the response", func(t *testing.T) {
		e, api, rec := newTestEditor(t)
		api.hold = make(chan struct{})
		require.NoError(t, e.OpenDeleteDialog())

		done := make(chan error, 1)
		go func() { done <- e.ConfirmDelete(context.Background()) }()
		require.Eventually(t, func() bool { return api.deleteCount() == 1 }, time.Second, time.Millisecond)

		e.Close()
		require.NoError(t, <-done)
		assert.Equal(t, []string{"delete"}, rec.all())
	})

	t.Run("termination failure still navigates home", func(t *testing.T) {
		rec := &recorder{}
		api := &fakeAPI{rec: rec}
		nav := &recorder{}
		e := New(testUser, Dependencies{API: api, Notifier: rec, Session: failingSession{}, Navigator: nav})
		t.Cleanup(e.Close)

		require.NoError(t, e.OpenDeleteDialog())
		require.NoError(t, e.ConfirmDelete(context.Background()))

		assert.Equal(t, []string{"navigate:" + RootPath}, nav.all())
		assert.Equal(t, DeleteRedirected, e.DeleteState())
	})
}

type failingSession struct{}

func (failingSession) Terminate(context.Context) error { return errors.New("sign out failed") }

func TestClose_Idempotent(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.Close()
	e.Close()

	select {
	case <-e.Done():
	default:
		t.Fatal("Done should be closed after Close")
	}
	assert.True(t, e.Snapshot().Closed)
	assert.ErrorIs(t, e.OpenDeleteDialog(), ErrClosed)
	assert.ErrorIs(t, e.CloseDeleteDialog(), ErrClosed)
	assert.ErrorIs(t, e.ConfirmDelete(context.Background()), ErrClosed)
}
