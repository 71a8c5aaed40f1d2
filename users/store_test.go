package users_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/users"
	fakeuserrepo "github.com/jrsteele09/go-portfolio-cms/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "admin"
	testPassword = "change-me-now"
)

func setupStore(t *testing.T) (*users.Store, *fakeuserrepo.FakeUserRepo) {
	t.Helper()
	repo := fakeuserrepo.NewFakeUserRepo()
	return users.NewStore(repo, users.WithCost(bcrypt.MinCost)), repo
}

func TestStore_CreateIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		store, repo := setupStore(t)
		require.NoError(t, store.CreateIdentity(ctx, testUsername, testPassword))

		hash := repo.Hash(testUsername)
		require.NotEmpty(t, hash)
		require.NotEqual(t, testPassword, hash)
		require.True(t, users.CheckPasswordHash(testPassword, hash))
	})

	t.Run("existing username is a no-op", func(t *testing.T) {
		store, repo := setupStore(t)
		require.NoError(t, store.CreateIdentity(ctx, testUsername, testPassword))
		original := repo.Hash(testUsername)

		require.NoError(t, store.CreateIdentity(ctx, testUsername, "another-password"))
		require.Equal(t, original, repo.Hash(testUsername))

		ok, err := store.Verify(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		store, _ := setupStore(t)
		require.ErrorIs(t, store.CreateIdentity(ctx, " ", testPassword), apperrors.ErrValidation)
		require.ErrorIs(t, store.CreateIdentity(ctx, testUsername, ""), apperrors.ErrValidation)
	})

	t.Run("rejects passwords bcrypt cannot hash", func(t *testing.T) {
		store, _ := setupStore(t)
		err := store.CreateIdentity(ctx, testUsername, strings.Repeat("x", 73))
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestStore_Verify(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	require.NoError(t, store.CreateIdentity(ctx, testUsername, testPassword))

	t.Run("correct password", func(t *testing.T) {
		ok, err := store.Verify(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		ok, err := store.Verify(ctx, testUsername, "wrong")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown username fails closed", func(t *testing.T) {
		ok, err := store.Verify(ctx, "nobody", testPassword)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestStore_Verify_RepoError(t *testing.T) {
	store, repo := setupStore(t)
	repo.Err = errors.New("disk on fire")

	ok, err := store.Verify(context.Background(), testUsername, testPassword)
	require.Error(t, err)
	require.False(t, ok)
}

func TestStore_RotatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the hash", func(t *testing.T) {
		store, repo := setupStore(t)
		require.NoError(t, store.CreateIdentity(ctx, testUsername, testPassword))
		before := repo.Hash(testUsername)

		updated, err := store.RotatePassword(ctx, testUsername, "brand-new")
		require.NoError(t, err)
		require.True(t, updated)
		require.NotEqual(t, before, repo.Hash(testUsername))

		ok, err := store.Verify(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = store.Verify(ctx, testUsername, "brand-new")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("unknown username", func(t *testing.T) {
		store, _ := setupStore(t)
		updated, err := store.RotatePassword(ctx, "nobody", "brand-new")
		require.NoError(t, err)
		require.False(t, updated)
	})
}

func TestStore_Exists(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	exists, err := store.Exists(ctx, testUsername)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, store.CreateIdentity(ctx, testUsername, testPassword))
	exists, err = store.Exists(ctx, testUsername)
	require.NoError(t, err)
	require.True(t, exists)
}
