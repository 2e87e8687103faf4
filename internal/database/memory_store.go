package database

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/profiledash/internal/domain"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// MemoryUserStore is an in-process domain.UserRepository used for local runs
// (DB_DRIVER=memory) and tests. Returned users are copies.
type MemoryUserStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewMemoryUserStore creates an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:    make(map[string]domain.User),
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

// CreateUser adds a user with a generated record id.
func (s *MemoryUserStore) CreateUser(_ context.Context, email, name, image string) (*domain.User, error) {
	id := surrealmodels.NewRecordID(domain.UserTable, uuid.NewString())
	u := domain.User{ID: &id, Email: email, Name: &name, Image: &image}

	s.mu.Lock()
	s.users[id.String()] = u
	s.mu.Unlock()
	return copyUser(u), nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id *surrealmodels.RecordID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, id *surrealmodels.RecordID, update domain.ProfileUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	name, image := update.Name, update.Image
	u.Name, u.Email, u.Image = &name, update.Email, &image
	s.users[id.String()] = u
	return copyUser(u), nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id *surrealmodels.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := id.String()
	if _, ok := s.users[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, key)
	for token, sess := range s.sessions {
		if sess.UserID.String() == key {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *MemoryUserStore) CreateSession(_ context.Context, id *surrealmodels.RecordID, ttl time.Duration) (*domain.Session, error) {
	token, err := generateSecureToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id.String()]; !ok {
		return nil, domain.ErrNotFound
	}
	uid := *id
	sess := domain.Session{Token: token, UserID: &uid, ExpiresAt: s.now().Add(ttl)}
	s.sessions[token] = sess
	return &sess, nil
}

func (s *MemoryUserStore) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok || !s.now().Before(sess.ExpiresAt) {
		return nil, domain.ErrInvalidCredentials
	}
	u, ok := s.users[sess.UserID.String()]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) RevokeSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func copyUser(u domain.User) *domain.User {
	out := u
	if u.ID != nil {
		id := *u.ID
		out.ID = &id
	}
	if u.Name != nil {
		name := *u.Name
		out.Name = &name
	}
	if u.Image != nil {
		image := *u.Image
		out.Image = &image
	}
	return &out
}

var _ domain.UserRepository = (*MemoryUserStore)(nil)
