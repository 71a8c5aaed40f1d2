package users

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Store is the credential store: it owns admin identities and never sees a
// plaintext password after hashing it.
type Store struct {
	repo Repo
	cost int

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Store)

// WithCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Store) {
		s.cost = cost
	}
}

func NewStore(repo Repo, opts ...Option) *Store {
	s := &Store{repo: repo, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateIdentity provisions username with password. An existing username is left untouched.
func (s *Store) CreateIdentity(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.Validationf("username is required")
	}
	hash, err := s.hash(password)
	if err != nil {
		return fmt.Errorf("[users CreateIdentity] %w", err)
	}
	if _, err := s.repo.InsertIdentity(ctx, Identity{Username: username, PasswordHash: hash}); err != nil {
		return fmt.Errorf("[users CreateIdentity] insert %q: %w", username, err)
	}
	return nil
}

// Verify reports whether password is correct for username. Unknown usernames
// return false after the same amount of bcrypt work as a wrong password.
func (s *Store) Verify(ctx context.Context, username, password string) (bool, error) {
	identity, err := s.repo.GetIdentity(ctx, username)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		CheckPasswordHash(password, s.dummy())
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("[users Verify] get %q: %w", username, err)
	}
	return CheckPasswordHash(password, identity.PasswordHash), nil
}

// RotatePassword replaces the password of username. It returns false when no such identity exists.
func (s *Store) RotatePassword(ctx context.Context, username, newPassword string) (bool, error) {
	hash, err := s.hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("[users RotatePassword] %w", err)
	}
	updated, err := s.repo.UpdatePasswordHash(ctx, username, hash)
	if err != nil {
		return false, fmt.Errorf("[users RotatePassword] update %q: %w", username, err)
	}
	return updated, nil
}

// Exists reports whether an identity with username has been provisioned.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetIdentity(ctx, username)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("[users Exists] get %q: %w", username, err)
	}
	return true, nil
}

func (s *Store) hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.Validationf("password is required")
	}
	hash, err := hashPassword(password, s.cost)
	if apperrors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.Validationf("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *Store) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = hashPassword("not-a-real-password", s.cost)
	})
	return s.dummyHash
}
