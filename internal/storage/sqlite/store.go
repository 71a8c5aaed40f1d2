package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/internal/storage/sqlite/migrations"
	"github.com/jrsteele09/go-portfolio-cms/internal/storage/sqlitemigrate"
	"github.com/jrsteele09/go-portfolio-cms/sections"
	"github.com/jrsteele09/go-portfolio-cms/users"
	_ "modernc.org/sqlite"
)

const dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate"

var (
	_ users.Repo    = (*Store)(nil)
	_ sections.Repo = (*Store)(nil)
)

// Store implements the identity and section repositories over SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("[sqlite Open] storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("[sqlite Open] create data folder: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", "file:"+cleanPath+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("[sqlite Open] open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("[sqlite Open] ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("[sqlite Open] run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks that the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("[sqlite Ping] storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) InsertIdentity(ctx context.Context, identity users.Identity) (bool, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT OR IGNORE INTO admin_users (username, password_hash) VALUES (?, ?)",
		identity.Username, identity.PasswordHash,
	)
	if err != nil {
		return false, fmt.Errorf("[sqlite InsertIdentity] %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("[sqlite InsertIdentity] rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetIdentity(ctx context.Context, username string) (*users.Identity, error) {
	identity := users.Identity{}
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT username, password_hash FROM admin_users WHERE username = ?", username,
	).Scan(&identity.Username, &identity.PasswordHash)
	if apperrors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[sqlite GetIdentity] %w", err)
	}
	return &identity, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, username, passwordHash string) (bool, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		"UPDATE admin_users SET password_hash = ? WHERE username = ?", passwordHash, username,
	)
	if err != nil {
		return false, fmt.Errorf("[sqlite UpdatePasswordHash] %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("[sqlite UpdatePasswordHash] rows affected: %w", err)
	}
	return n > 0, nil
}
