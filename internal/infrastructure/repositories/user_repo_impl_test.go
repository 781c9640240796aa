package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
)

func seedUser(t *testing.T, repo *UserRepository, email string) *entities.User {
	t.Helper()
	user := &entities.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "u@orama.io")
	require.NotEqual(t, uuid.Nil, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "u@orama.io", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "u@orama.io")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "missing@orama.io")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByPhone(ctx, "1234567890")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	user.Phone = "1234567890"
	require.NoError(t, repo.Update(ctx, user))

	byPhone, err := repo.GetByPhone(ctx, "1234567890")
	require.NoError(t, err)
	require.Equal(t, user.ID, byPhone.ID)
}

func TestUserRepository_MarkEmailVerified(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "u@orama.io")
	require.False(t, user.IsEmailVerified)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkEmailVerified(ctx, "u@orama.io", at))

	verified, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, verified.IsEmailVerified)
	require.True(t, verified.EmailVerifiedAt.Valid)
	require.WithinDuration(t, at, verified.EmailVerifiedAt.Time, time.Second)

	require.ErrorIs(t, repo.MarkEmailVerified(ctx, "missing@orama.io", at), domainerrors.ErrNotFound)
}

func TestUserRepository_SetActiveAndLastLogin(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "u@orama.io")

	require.NoError(t, repo.SetActive(ctx, user.ID, false))
	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	at := time.Now().UTC()
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))
	updated, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, updated.LastLogin.Valid)

	require.ErrorIs(t, repo.SetActive(ctx, uuid.New(), true), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateLastLogin(ctx, uuid.New(), at), domainerrors.ErrNotFound)
}

func TestUserRepository_ListByRole_OldestFirst(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,is_active,is_email_verified,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.New().String(), "old@orama.io", "Old", "h", "USER", true, false,
		time.Now().Add(-time.Hour), time.Now().Add(-time.Hour),
	)
	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,is_active,is_email_verified,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.New().String(), "new@orama.io", "New", "h", "USER", true, false,
		time.Now(), time.Now(),
	)
	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,is_active,is_email_verified,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.New().String(), "admin@orama.io", "Admin", "h", "ADMIN", true, false,
		time.Now(), time.Now(),
	)

	users, err := repo.ListByRole(ctx, entities.UserRoleUser)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "old@orama.io", users[0].Email)
	require.Equal(t, "new@orama.io", users[1].Email)

	admins, err := repo.ListByRole(ctx, entities.UserRoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
}

func TestUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "u@orama.io")

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err := repo.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, user.ID), domainerrors.ErrNotFound)
}

func TestUserRepository_DBErrorBranches(t *testing.T) {
	db := newTestDB(t)
	// intentionally skip table creation
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.Error(t, repo.Create(ctx, &entities.User{Email: "u@orama.io"}))

	_, err := repo.GetByID(ctx, uuid.New())
	require.Error(t, err)

	require.Error(t, repo.Update(ctx, &entities.User{ID: uuid.New()}))
	require.Error(t, repo.MarkEmailVerified(ctx, "u@orama.io", time.Now()))

	_, err = repo.ListByRole(ctx, entities.UserRoleUser)
	require.Error(t, err)
}
