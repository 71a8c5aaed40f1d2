package sections

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
)

// Store holds named content documents. It does not know which names are
// meaningful; that allow-list belongs to the content package.
type Store struct {
	repo Repo
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// Get returns the document stored under name. found is false when nothing was
// ever written, which is different from an empty document.
func (s *Store) Get(ctx context.Context, name string) (doc Document, found bool, err error) {
	raw, found, err := s.repo.GetSection(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("[sections Get] %q: %w", name, err)
	}
	if !found {
		return nil, false, nil
	}
	doc, err = Decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("[sections Get] %q: %w", name, err)
	}
	return doc, true, nil
}

// GetAll decodes every stored section. One corrupted row fails the whole call.
func (s *Store) GetAll(ctx context.Context) (map[string]Document, error) {
	rows, err := s.repo.ListSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[sections GetAll] %w", err)
	}
	all := make(map[string]Document, len(rows))
	for name, raw := range rows {
		doc, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("[sections GetAll] %q: %w", name, err)
		}
		all[name] = doc
	}
	return all, nil
}

// Put replaces the document stored under name, creating it when absent.
func (s *Store) Put(ctx context.Context, name string, doc Document) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validationf("section name is required")
	}
	raw, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("[sections Put] %q: %w", name, err)
	}
	if err := s.repo.UpsertSection(ctx, name, raw); err != nil {
		return fmt.Errorf("[sections Put] %q: %w", name, err)
	}
	return nil
}

// PutAll replaces several documents at once. Nothing is written if any
// document fails to serialize or the write itself fails.
func (s *Store) PutAll(ctx context.Context, docs map[string]Document) error {
	if len(docs) == 0 {
		return nil
	}
	entries := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		if strings.TrimSpace(name) == "" {
			return apperrors.Validationf("section name is required")
		}
		raw, err := Encode(doc)
		if err != nil {
			return fmt.Errorf("[sections PutAll] %q: %w", name, err)
		}
		entries[name] = raw
	}
	if err := s.repo.UpsertSections(ctx, entries); err != nil {
		return fmt.Errorf("[sections PutAll] %w", err)
	}
	return nil
}
