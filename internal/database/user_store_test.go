package database

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/profiledash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// seedFunc creates a user in the store under test and returns its id.
type seedFunc func(t *testing.T, email, name string) *surrealmodels.RecordID

// runRepositoryContract exercises a domain.UserRepository implementation.
func runRepositoryContract(t *testing.T, repo domain.UserRepository, seed seedFunc) {
	ctx := context.Background()

	t.Run("find by id", func(t *testing.T) {
		id := seed(t, "find@example.com", "Finder")

		u, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "find@example.com", u.Email)
		assert.Equal(t, "Finder", u.DisplayName())
	})

	t.Run("find missing user", func(t *testing.T) {
		missing := surrealmodels.NewRecordID(domain.UserTable, "missing")
		_, err := repo.FindByID(ctx, &missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update profile writes every field", func(t *testing.T) {
		id := seed(t, "update@example.com", "Before")

		u, err := repo.UpdateProfile(ctx, id, domain.ProfileUpdate{Name: "After", Email: "after@example.com", Image: ""})
		require.NoError(t, err)
		assert.Equal(t, "After", u.DisplayName())
		assert.Equal(t, "after@example.com", u.Email)
		assert.Equal(t, "", u.AvatarURL())

		again, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "After", again.DisplayName())
	})

	t.Run("update missing user", func(t *testing.T) {
		missing := surrealmodels.NewRecordID(domain.UserTable, "ghost")
		_, err := repo.UpdateProfile(ctx, &missing, domain.ProfileUpdate{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("sessions authenticate until revoked", func(t *testing.T) {
		id := seed(t, "session@example.com", "Sess")

		sess, err := repo.CreateSession(ctx, id, time.Hour)
		require.NoError(t, err)
		require.Len(t, sess.Token, 64)

		u, err := repo.Authenticate(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, "session@example.com", u.Email)

		require.NoError(t, repo.RevokeSession(ctx, sess.Token))
		require.NoError(t, repo.RevokeSession(ctx, sess.Token), "revoking twice is fine")

		_, err = repo.Authenticate(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		_, err := repo.Authenticate(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("delete removes the user and their sessions", func(t *testing.T) {
		id := seed(t, "delete@example.com", "Gone")
		sess, err := repo.CreateSession(ctx, id, time.Hour)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))

		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.Authenticate(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrNotFound)
	})
}

func TestMemoryUserStore(t *testing.T) {
	store := NewMemoryUserStore()
	runRepositoryContract(t, store, func(t *testing.T, email, name string) *surrealmodels.RecordID {
		u, err := store.CreateUser(context.Background(), email, name, "https://example.com/"+name+".png")
		require.NoError(t, err)
		return u.ID
	})
}

func TestMemoryUserStore_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	u, err := store.CreateUser(ctx, "exp@example.com", "Exp", "")
	require.NoError(t, err)
	sess, err := store.CreateSession(ctx, u.ID, time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMemoryUserStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()
	u, err := store.CreateUser(ctx, "copy@example.com", "Original", "")
	require.NoError(t, err)

	*u.Name = "Mutated"
	again, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.DisplayName())
}

func TestSurrealUserStore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewUserStore(db)
	runRepositoryContract(t, store, func(t *testing.T, email, name string) *surrealmodels.RecordID {
		ctx := context.Background()
		query := "CREATE user SET email = $email, name = $name, image = ''"
		results, err := surrealdb.Query[[]domain.User](ctx, db, query, map[string]any{"email": email, "name": name})
		require.NoError(t, err, "failed to create test user")
		require.NotEmpty(t, *results)
		require.NotEmpty(t, (*results)[0].Result)

		id := (*results)[0].Result[0].ID
		t.Cleanup(func() {
			_, _ = surrealdb.Query[any](ctx, db, "DELETE $id", map[string]any{"id": id})
		})
		return id
	})
}
