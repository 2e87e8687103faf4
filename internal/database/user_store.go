package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nfrund/profiledash/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// sessionRecord is the stored form of a domain.Session.
type sessionRecord struct {
	Token     string                  `json:"token"`
	User      *surrealmodels.RecordID `json:"user"`
	ExpiresAt int64                   `json:"expires_at"`
}

// UserStore implements domain.UserRepository on SurrealDB. Users live in the
// "user" table and sessions in the "session" table, linked by record id.
type UserStore struct {
	db *surrealdb.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *surrealdb.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID returns the user with the given record id.
func (s *UserStore) FindByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.User, error) {
	user, err := QueryOne[domain.User](ctx, s.db, "SELECT * FROM $id", map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// UpdateProfile merges the profile fields into the user record.
func (s *UserStore) UpdateProfile(ctx context.Context, id *surrealmodels.RecordID, update domain.ProfileUpdate) (*domain.User, error) {
	query := "UPDATE $id MERGE $data RETURN AFTER"
	params := map[string]any{
		"id": id,
		"data": map[string]any{
			"name":  update.Name,
			"email": update.Email,
			"image": update.Image,
		},
	}
	user, err := QueryOne[domain.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	// UPDATE on a missing record returns nothing rather than creating it.
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// Delete removes the user together with all of their sessions.
func (s *UserStore) Delete(ctx context.Context, id *surrealmodels.RecordID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	query := `
		BEGIN TRANSACTION;
		DELETE session WHERE user = $id;
		DELETE $id;
		COMMIT TRANSACTION;
	`
	if err := Execute(ctx, s.db, query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// CreateSession issues a new session token for the user.
func (s *UserStore) CreateSession(ctx context.Context, id *surrealmodels.RecordID, ttl time.Duration) (*domain.Session, error) {
	token, err := generateSecureToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(ttl).UTC()
	rec := sessionRecord{Token: token, User: id, ExpiresAt: expires.Unix()}

	if err := Execute(ctx, s.db, "CREATE session CONTENT $data", map[string]any{"data": rec}); err != nil {
		return nil, fmt.Errorf("create session for %s: %w", id, err)
	}
	return &domain.Session{Token: token, UserID: id, ExpiresAt: expires}, nil
}

// Authenticate resolves a session token to its user.
func (s *UserStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	query := "SELECT token, user, expires_at FROM session WHERE token = $token"
	rec, err := QueryOne[sessionRecord](ctx, s.db, query, map[string]any{"token": token})
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if rec == nil || rec.User == nil || time.Now().Unix() >= rec.ExpiresAt {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.FindByID(ctx, rec.User)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, err
}

// RevokeSession deletes the session. Unknown tokens are ignored.
func (s *UserStore) RevokeSession(ctx context.Context, token string) error {
	if err := Execute(ctx, s.db, "DELETE session WHERE token = $token", map[string]any{"token": token}); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

var _ domain.UserRepository = (*UserStore)(nil)
