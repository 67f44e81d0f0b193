package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minbase/account-service/internal/domain/entity"
	"github.com/minbase/account-service/internal/domain/repository"
	"github.com/minbase/account-service/internal/infrastructure/redisstore"
)

func newRepo(t *testing.T) (*redisstore.UserRepository, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return redisstore.NewUserRepository(rdb), s
}

func sampleUser(id, email string) *entity.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &entity.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Hong",
		Mobile:       "01012345678",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := sampleUser("a1", "a@b.com")
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, u.Name, byID.Name)
	assert.Equal(t, u.Mobile, byID.Mobile)
	assert.True(t, u.CreatedAt.Equal(byID.CreatedAt))
	assert.Nil(t, byID.LastLoginAt)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a1", byEmail.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("a1", "a@b.com")))

	err := repo.Create(ctx, sampleUser("a2", "a@b.com"))
	require.ErrorIs(t, err, repository.ErrEmailTaken)

	// the losing record must not exist
	_, err = repo.GetByID(ctx, "a2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdatePersistsFields(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := sampleUser("a1", "a@b.com")
	require.NoError(t, repo.Create(ctx, u))

	login := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	u.Name = "Hong Gildong"
	u.LastLoginAt = &login
	u.UpdatedAt = login
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Hong Gildong", got.Name)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, login.Equal(*got.LastLoginAt))
	assert.True(t, login.Equal(got.UpdatedAt))
}

func TestUpdateMovesEmailIndex(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := sampleUser("a1", "a@b.com")
	require.NoError(t, repo.Create(ctx, u))

	u.Email = "new@b.com"
	require.NoError(t, repo.Update(ctx, u))

	_, err := repo.GetByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetByEmail(ctx, "new@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
}

func TestUpdateEmailCollision(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("a1", "a@b.com")))
	require.NoError(t, repo.Create(ctx, sampleUser("b1", "b@b.com")))

	u, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	u.Email = "a@b.com"
	err = repo.Update(ctx, u)
	require.ErrorIs(t, err, repository.ErrEmailTaken)

	// the original owner keeps the email
	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
}

func TestUpdateMissing(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, sampleUser("ghost", "g@b.com"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteRemovesRecordAndIndex(t *testing.T) {
	repo, s := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("a1", "a@b.com")))
	require.NoError(t, repo.Delete(ctx, "a1"))

	_, err := repo.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, s.Exists("user:email:a@b.com"))

	// the email is free for signup again
	require.NoError(t, repo.Create(ctx, sampleUser("a2", "a@b.com")))
}

func TestDeleteMissing(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
