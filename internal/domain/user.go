package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserTable is the SurrealDB table that holds user records.
const UserTable = "user"

// User represents the core user model in the application domain.
type User struct {
	ID    *surrealmodels.RecordID `json:"id,omitempty"`
	Email string                  `json:"email"`
	Name  *string                 `json:"name,omitempty"`
	Image *string                 `json:"image,omitempty"`
}

// DisplayName returns the user's name, or an empty string when none is set.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

// AvatarURL returns the user's avatar URL, or an empty string when none is set.
func (u *User) AvatarURL() string {
	if u.Image == nil {
		return ""
	}
	return *u.Image
}

// IDString returns the full record id ("user:abc") or an empty string.
func (u *User) IDString() string {
	if u.ID == nil {
		return ""
	}
	return u.ID.String()
}

// ParseUserID turns "user:abc" (or a bare "abc") into a record id on the user table.
// It accepts the output of RecordID.String, including keys wrapped in ⟨⟩.
func ParseUserID(raw string) (*surrealmodels.RecordID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty user id: %w", ErrNotFound)
	}
	table, key, found := strings.Cut(raw, ":")
	if !found {
		table, key = UserTable, raw
	}
	key, ok := unquoteKey(key)
	if table != UserTable || !ok || key == "" {
		return nil, fmt.Errorf("malformed user id %q: %w", raw, ErrNotFound)
	}
	id := surrealmodels.NewRecordID(table, key)
	return &id, nil
}

// unquoteKey reverses the ⟨⟩ quoting RecordID.String applies to keys such as
// UUIDs. Inside the brackets a backslash escapes the next rune.
func unquoteKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "⟨") {
		return key, true
	}
	if !strings.HasSuffix(key, "⟩") || len(key) < len("⟨⟩") {
		return "", false
	}
	inner := key[len("⟨") : len(key)-len("⟩")]
	var b strings.Builder
	escaped := false
	for _, r := range inner {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	if escaped {
		return "", false
	}
	return b.String(), true
}

// ProfileUpdate carries the editable profile fields. Every field is written as-is;
// empty strings are permitted.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Session binds an opaque token to a user until it expires or is revoked.
type Session struct {
	Token     string
	UserID    *surrealmodels.RecordID
	ExpiresAt time.Time
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	// FindByID returns ErrNotFound when no such user exists.
	FindByID(ctx context.Context, id *surrealmodels.RecordID) (*User, error)
	UpdateProfile(ctx context.Context, id *surrealmodels.RecordID, update ProfileUpdate) (*User, error)
	// Delete removes the user and every session that belongs to them.
	Delete(ctx context.Context, id *surrealmodels.RecordID) error

	CreateSession(ctx context.Context, id *surrealmodels.RecordID, ttl time.Duration) (*Session, error)
	// Authenticate resolves a session token to its user, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, token string) (*User, error)
	// RevokeSession is idempotent.
	RevokeSession(ctx context.Context, token string) error
}
