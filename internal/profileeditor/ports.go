package profileeditor

import "context"

// ProfileAPI is the remote user service the editor talks to.
type ProfileAPI interface {
	// UpdateProfile sends the form fields for the given user. Any error,
	// transport or status, counts as a failed save.
	UpdateProfile(ctx context.Context, userID string, update Update) error
	// DeleteAccount deletes the account of the authenticated caller.
	DeleteAccount(ctx context.Context) error
}

// Notifier surfaces short, transient messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// SessionManager ends the user's authenticated session.
type SessionManager interface {
	Terminate(ctx context.Context) error
}

// Navigator moves the user to another location in the application.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}
