package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/sections"
	"github.com/jrsteele09/go-portfolio-cms/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	require.Error(t, err)
}

func TestOpenCreatesDataFolderAndIsReopenable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data", "portfolio.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertSection(ctx, "hero", []byte(`{"name":"Tahsin"}`)))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	raw, found, err := reopened.GetSection(ctx, "hero")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"name":"Tahsin"}`, string(raw))

	var applied int
	require.NoError(t, reopened.sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	require.Equal(t, 2, applied)
}

func TestPing(t *testing.T) {
	store := openTempStore(t)
	require.NoError(t, store.Ping(context.Background()))

	var nilStore *Store
	require.Error(t, nilStore.Ping(context.Background()))
	require.NoError(t, nilStore.Close())
}

func TestIdentities(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	_, err := store.GetIdentity(ctx, "admin")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	created, err := store.InsertIdentity(ctx, users.Identity{Username: "admin", PasswordHash: "hash-1"})
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.InsertIdentity(ctx, users.Identity{Username: "admin", PasswordHash: "hash-2"})
	require.NoError(t, err)
	require.False(t, created)

	identity, err := store.GetIdentity(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "hash-1", identity.PasswordHash)

	updated, err := store.UpdatePasswordHash(ctx, "admin", "hash-3")
	require.NoError(t, err)
	require.True(t, updated)

	updated, err = store.UpdatePasswordHash(ctx, "nobody", "hash-4")
	require.NoError(t, err)
	require.False(t, updated)

	identity, err = store.GetIdentity(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "hash-3", identity.PasswordHash)
}

func TestCredentialStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	credentials := users.NewStore(openTempStore(t), users.WithCost(bcrypt.MinCost))

	require.NoError(t, credentials.CreateIdentity(ctx, "admin", "secret"))
	ok, err := credentials.Verify(ctx, "admin", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	rotated, err := credentials.RotatePassword(ctx, "admin", "secret-2")
	require.NoError(t, err)
	require.True(t, rotated)

	ok, err = credentials.Verify(ctx, "admin", "secret")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSections(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	_, found, err := store.GetSection(ctx, "hero")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.UpsertSection(ctx, "hero", []byte(`{"v":1}`)))
	require.NoError(t, store.UpsertSection(ctx, "hero", []byte(`{"v":2}`)))
	require.NoError(t, store.UpsertSections(ctx, map[string][]byte{
		"about":   []byte(`{"paragraphs":[]}`),
		"contact": []byte(`{}`),
	}))

	all, err := store.ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.JSONEq(t, `{"v":2}`, string(all["hero"]))
	require.JSONEq(t, `{"paragraphs":[]}`, string(all["about"]))

	var rows int
	require.NoError(t, store.sqlDB.QueryRow("SELECT COUNT(*) FROM site_content WHERE section = 'hero'").Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestUpsertSectionsRollsBackOnCancelledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, store.UpsertSections(ctx, map[string][]byte{"hero": []byte(`{}`)}))

	all, err := store.ListSections(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCorruptedSectionSurfacesIntegrityError(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)
	content := sections.NewStore(store)

	require.NoError(t, content.Put(ctx, "projects", sections.Document{"items": []any{}}))
	_, err := store.sqlDB.Exec("UPDATE site_content SET content = ? WHERE section = ?", `{"items": [`, "projects")
	require.NoError(t, err)

	_, _, err = content.Get(ctx, "projects")
	require.ErrorIs(t, err, apperrors.ErrIntegrity)
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
