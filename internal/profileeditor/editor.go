// Package profileeditor implements the profile editing form as a UI-agnostic
// state machine: three editable fields, a save operation, and a confirmed
// account deletion that ends the session and navigates home.
//
// An Editor is safe for concurrent use. Network calls are never made while the
// editor's lock is held, so the form stays editable while a request is pending.
package profileeditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Messages surfaced through the Notifier.
const (
	MessageProfileUpdated = "Profile updated."
	MessageAccountDeleted = "Account deleted."
	MessageFailure        = "Something went wrong."
)

// RootPath is where the user is sent after the account is deleted.
const RootPath = "/"

var (
	ErrSaveInProgress   = errors.New("profileeditor: save already in progress")
	ErrNotConfirming    = errors.New("profileeditor: deletion has not been prompted")
	ErrDeleteInProgress = errors.New("profileeditor: deletion already in progress")
	ErrClosed           = errors.New("profileeditor: editor is closed")
	ErrUnknownField     = errors.New("profileeditor: unknown field")
)

// UserProfile is the snapshot of the user the editor is mounted with.
type UserProfile struct {
	ID    string
	Name  string
	Email string
	Image string
}

// FormState is the editable copy of the profile fields.
type FormState struct {
	Name      string
	Email     string
	AvatarURL string
}

// Update is the payload sent to ProfileAPI.UpdateProfile.
type Update struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func (f FormState) update() Update {
	return Update{Name: f.Name, Email: f.Email, Image: f.AvatarURL}
}

// Field names one of the editable inputs.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldAvatarURL
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldAvatarURL:
		return "image"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField maps the wire name of a field ("name", "email", "image") to a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "name":
		return FieldName, nil
	case "email":
		return FieldEmail, nil
	case "image", "avatar", "avatar_url":
		return FieldAvatarURL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// DeleteState tracks the account deletion flow.
type DeleteState int

const (
	DeleteIdle DeleteState = iota
	DeleteConfirmPrompted
	DeleteDeleting
	DeleteSessionTerminated
	DeleteRedirected
)

func (s DeleteState) String() string {
	switch s {
	case DeleteIdle:
		return "idle"
	case DeleteConfirmPrompted:
		return "confirm-prompted"
	case DeleteDeleting:
		return "deleting"
	case DeleteSessionTerminated:
		return "session-terminated"
	case DeleteRedirected:
		return "redirected"
	default:
		return fmt.Sprintf("DeleteState(%d)", int(s))
	}
}

// Dependencies are the collaborators an Editor is mounted with.
type Dependencies struct {
	API       ProfileAPI
	Notifier  Notifier
	Session   SessionManager
	Navigator Navigator
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Snapshot is a consistent, read-only view of the editor's state.
type Snapshot struct {
	User        UserProfile
	Form        FormState
	Saving      bool
	DialogOpen  bool
	DeleteState DeleteState
	Closed      bool
}

// Editor holds the form, submission and dialog state for one mounted profile form.
type Editor struct {
	id   string
	deps Dependencies
	log  *slog.Logger

	// life is cancelled by Close; every request runs under it.
	life   context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	user        UserProfile
	form        FormState
	saving      bool
	dialogOpen  bool
	deleteState DeleteState
	closed      bool
}

// New mounts an editor seeded from user. The snapshot is never re-fetched.
func New(user UserProfile, deps Dependencies) *Editor {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	life, cancel := context.WithCancel(context.Background())
	return &Editor{
		id:     id,
		deps:   deps,
		log:    logger.With("editor_id", id, "user_id", user.ID),
		life:   life,
		cancel: cancel,
		user:   user,
		form: FormState{
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.Image,
		},
	}
}

// ID uniquely identifies this mount.
func (e *Editor) ID() string { return e.id }

// Snapshot returns the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		User:        e.user,
		Form:        e.form,
		Saving:      e.saving,
		DialogOpen:  e.dialogOpen,
		DeleteState: e.deleteState,
		Closed:      e.closed,
	}
}

// Form returns the current field values.
func (e *Editor) Form() FormState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// SetField replaces the value of a field in full.
func (e *Editor) SetField(field Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	switch field {
	case FieldName:
		e.form.Name = value
	case FieldEmail:
		e.form.Email = value
	case FieldAvatarURL:
		e.form.AvatarURL = value
	default:
		return fmt.Errorf("%w: %v", ErrUnknownField, field)
	}
	return nil
}

func (e *Editor) SetName(v string) error      { return e.SetField(FieldName, v) }
func (e *Editor) SetEmail(v string) error     { return e.SetField(FieldEmail, v) }
func (e *Editor) SetAvatarURL(v string) error { return e.SetField(FieldAvatarURL, v) }

// Save sends the current form to the API. The outcome is reported through the
// Notifier; the returned error is non-nil only when no request was issued.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}
	e.saving = true
	userID, update := e.user.ID, e.form.update()
	e.mu.Unlock()

	err := e.run(ctx, func(ctx context.Context) error {
		return e.deps.API.UpdateProfile(ctx, userID, update)
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if e.closed {
		e.log.Debug("dropping save response after close", "error", err)
		return nil
	}
	if err != nil {
		e.log.Warn("profile update failed", "error", err)
		e.deps.Notifier.Error(MessageFailure)
		return nil
	}
	e.deps.Notifier.Success(MessageProfileUpdated)
	return nil
}

// DialogOpen reports whether the delete confirmation dialog is visible.
func (e *Editor) DialogOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dialogOpen
}

// DeleteState reports where the deletion flow currently is.
func (e *Editor) DeleteState() DeleteState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteState
}

// OpenDeleteDialog prompts for confirmation.
func (e *Editor) OpenDeleteDialog() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	switch e.deleteState {
	case DeleteIdle, DeleteConfirmPrompted:
		e.deleteState = DeleteConfirmPrompted
		e.dialogOpen = true
		return nil
	default:
		return ErrDeleteInProgress
	}
}

// CloseDeleteDialog dismisses the dialog. A prompted deletion returns to idle;
// a deletion already underway keeps going.
func (e *Editor) CloseDeleteDialog() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.dialogOpen = false
	if e.deleteState == DeleteConfirmPrompted {
		e.deleteState = DeleteIdle
	}
	return nil
}

// ConfirmDelete deletes the account. On success the user is notified, the
// session is terminated and the navigator is sent to RootPath, in that order.
// On failure the user is notified and the dialog is closed.
func (e *Editor) ConfirmDelete(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	switch e.deleteState {
	case DeleteIdle:
		e.mu.Unlock()
		return ErrNotConfirming
	case DeleteConfirmPrompted:
	default:
		e.mu.Unlock()
		return ErrDeleteInProgress
	}
	e.deleteState = DeleteDeleting
	e.mu.Unlock()

	err := e.run(ctx, e.deps.API.DeleteAccount)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.log.Debug("dropping delete response after close", "error", err)
		return nil
	}
	if err != nil {
		e.deleteState = DeleteIdle
		e.dialogOpen = false
		e.deps.Notifier.Error(MessageFailure)
		e.mu.Unlock()
		e.log.Warn("account deletion failed", "error", err)
		return nil
	}
	e.deps.Notifier.Success(MessageAccountDeleted)
	e.mu.Unlock()

	// The account is gone, so a failed sign-out must not keep the user here.
	if err := e.run(ctx, e.deps.Session.Terminate); err != nil {
		e.log.Warn("session termination failed after account deletion", "error", err)
	}
	if !e.advance(DeleteSessionTerminated) {
		return nil
	}

	if err := e.run(ctx, func(ctx context.Context) error {
		return e.deps.Navigator.Navigate(ctx, RootPath)
	}); err != nil {
		e.log.Warn("navigation after account deletion failed", "error", err)
	}
	e.advance(DeleteRedirected)
	return nil
}

// advance moves the deletion flow forward unless the editor was closed meanwhile.
func (e *Editor) advance(to DeleteState) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.deleteState = to
	if to == DeleteRedirected {
		e.dialogOpen = false
	}
	return true
}

// Close tears the editor down. In-flight requests are cancelled and any
// response that still arrives is ignored. Close is idempotent.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
}

// Done is closed once the editor has been torn down.
func (e *Editor) Done() <-chan struct{} { return e.life.Done() }

// run invokes fn with a context that ends when either ctx or the editor does.
func (e *Editor) run(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(e.life, cancel)
	defer stop()
	return fn(ctx)
}
