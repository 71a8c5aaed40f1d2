package sqlitemigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestApply_RecordsMigration(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;")},
		"README.md":     {Data: []byte("ignored")},
	}
	require.NoError(t, Apply(context.Background(), db, migrations, ""))

	require.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	require.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'"))
}

func TestApply_IsIdempotent(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"001_items.sql": {Data: []byte("CREATE TABLE items(id TEXT PRIMARY KEY);")},
	}
	require.NoError(t, Apply(context.Background(), db, migrations, "."))
	require.NoError(t, Apply(context.Background(), db, migrations, "."))

	require.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApply_FailedMigrationIsNotRecorded(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"001_broken.sql": {Data: []byte("CREATE TABLE (;")},
	}
	require.Error(t, Apply(context.Background(), db, migrations, ""))
	require.Equal(t, 0, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApply_RequiresDB(t *testing.T) {
	require.Error(t, Apply(context.Background(), nil, fstest.MapFS{}, ""))
}

func TestUpSection(t *testing.T) {
	require.Equal(t, "\nCREATE TABLE a(x);\n", UpSection("-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;"))
	require.Equal(t, "CREATE TABLE a(x);", UpSection("CREATE TABLE a(x);"))
	require.Equal(t, "\nCREATE TABLE a(x);", UpSection("-- +migrate Up\nCREATE TABLE a(x);"))
}

func openTempDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}
