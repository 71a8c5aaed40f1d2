package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
)

// Verifier checks a username/password pair. users.Store implements it.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// Gate issues sessions on successful login and decides whether a token still
// identifies an authenticated admin. It is the only place sessions are created
// or invalidated.
type Gate struct {
	credentials Verifier
	repo        Repo
	ttl         time.Duration
	now         func() time.Time
	newToken    func() string
}

type GateOption func(*Gate)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

func NewGate(credentials Verifier, repo Repo, ttl time.Duration, opts ...GateOption) *Gate {
	g := &Gate{
		credentials: credentials,
		repo:        repo,
		ttl:         ttl,
		now:         time.Now,
		newToken:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login verifies the credentials and mints a fresh session. Unknown users and
// wrong passwords both yield errors.ErrInvalidCredentials.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, apperrors.ErrInvalidCredentials
	}
	ok, err := g.credentials.Verify(ctx, username, password)
	if err != nil {
		return Session{}, fmt.Errorf("[sessions Login] %w", err)
	}
	if !ok {
		return Session{}, apperrors.ErrInvalidCredentials
	}

	now := g.now()
	session := Session{
		Token:     g.newToken(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	if err := g.repo.Upsert(session.Token, session); err != nil {
		return Session{}, fmt.Errorf("[sessions Login] store session: %w", err)
	}
	return session, nil
}

// Logout invalidates token immediately. Unknown tokens are ignored.
func (g *Gate) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := g.repo.Delete(token); err != nil {
		return fmt.Errorf("[sessions Logout] %w", err)
	}
	return nil
}

// Authorize returns the username bound to token, or an error wrapping
// errors.ErrUnauthorized when the token is missing, unknown or expired.
func (g *Gate) Authorize(token string) (string, error) {
	session, err := g.Session(token)
	if err != nil {
		return "", err
	}
	return session.Username, nil
}

// Session returns the live session for token. Expiry is checked here, on
// access; an expired session is removed the first time it is touched.
func (g *Gate) Session(token string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, apperrors.ErrSessionNotFound)
	}
	session, err := g.repo.Get(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if session.Expired(g.now()) {
		_ = g.repo.Delete(token)
		return Session{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, apperrors.ErrSessionExpired)
	}
	return session, nil
}

// TTL is the lifetime given to new sessions.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}
