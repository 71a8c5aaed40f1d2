package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
)

const upsertSectionQuery = `
INSERT INTO site_content (section, content, updated_at) VALUES (?, ?, ?)
ON CONFLICT(section) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`

type execContexter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) GetSection(ctx context.Context, name string) ([]byte, bool, error) {
	var content string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT content FROM site_content WHERE section = ?", name,
	).Scan(&content)
	if apperrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[sqlite GetSection] %w", err)
	}
	return []byte(content), true, nil
}

func (s *Store) ListSections(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT section, content FROM site_content")
	if err != nil {
		return nil, fmt.Errorf("[sqlite ListSections] %w", err)
	}
	defer rows.Close()

	all := make(map[string][]byte)
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("[sqlite ListSections] scan: %w", err)
		}
		all[name] = []byte(content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[sqlite ListSections] %w", err)
	}
	return all, nil
}

func (s *Store) UpsertSection(ctx context.Context, name string, raw []byte) error {
	if err := s.upsertSection(ctx, s.sqlDB, name, raw); err != nil {
		return fmt.Errorf("[sqlite UpsertSection] %w", err)
	}
	return nil
}

func (s *Store) UpsertSections(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("[sqlite UpsertSections] begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for name, raw := range entries {
		if err := s.upsertSection(ctx, tx, name, raw); err != nil {
			return fmt.Errorf("[sqlite UpsertSections] %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("[sqlite UpsertSections] commit: %w", err)
	}
	return nil
}

func (s *Store) upsertSection(ctx context.Context, exec execContexter, name string, raw []byte) error {
	_, err := exec.ExecContext(ctx, upsertSectionQuery, name, string(raw), s.now().UTC().UnixMilli())
	return err
}
