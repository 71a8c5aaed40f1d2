package sessions_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/sessions"
	"github.com/jrsteele09/go-portfolio-cms/users"
	fakeuserrepo "github.com/jrsteele09/go-portfolio-cms/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "admin"
	testPassword = "change-me-now"
	testTTL      = 6 * time.Hour
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testFixture struct {
	clock *fakeClock
	repo  *sessions.InMemoryRepo
	gate  *sessions.Gate
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	credentials := users.NewStore(fakeuserrepo.NewFakeUserRepo(), users.WithCost(bcrypt.MinCost))
	require.NoError(t, credentials.CreateIdentity(context.Background(), testUsername, testPassword))

	clock := &fakeClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	repo := sessions.NewInMemoryRepo()
	return &testFixture{
		clock: clock,
		repo:  repo,
		gate:  sessions.NewGate(credentials, repo, testTTL, sessions.WithClock(clock.Now)),
	}
}

func TestGate_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials authenticate", func(t *testing.T) {
		f := setupTestFixture(t)

		session, err := f.gate.Login(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)
		require.Equal(t, testUsername, session.Username)
		require.Equal(t, f.clock.Now().Add(testTTL), session.ExpiresAt)

		username, err := f.gate.Authorize(session.Token)
		require.NoError(t, err)
		require.Equal(t, testUsername, username)
	})

	t.Run("every login mints a new token", func(t *testing.T) {
		f := setupTestFixture(t)

		first, err := f.gate.Login(ctx, testUsername, testPassword)
		require.NoError(t, err)
		second, err := f.gate.Login(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)
		require.Equal(t, 2, f.repo.Len())
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		f := setupTestFixture(t)

		_, wrongPassword := f.gate.Login(ctx, testUsername, "wrong")
		_, unknownUser := f.gate.Login(ctx, "nobody", testPassword)
		_, empty := f.gate.Login(ctx, "", "")

		require.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
		require.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
		require.ErrorIs(t, empty, apperrors.ErrInvalidCredentials)
		require.Equal(t, wrongPassword.Error(), unknownUser.Error())
		require.Zero(t, f.repo.Len())
	})
}

type failingVerifier struct{}

func (failingVerifier) Verify(context.Context, string, string) (bool, error) {
	return false, errors.New("database is locked")
}

func TestGate_Login_VerifierError(t *testing.T) {
	gate := sessions.NewGate(failingVerifier{}, sessions.NewInMemoryRepo(), testTTL)

	_, err := gate.Login(context.Background(), testUsername, testPassword)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGate_Logout(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.gate.Login(context.Background(), testUsername, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.gate.Logout(session.Token))
	_, err = f.gate.Authorize(session.Token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, f.gate.Logout(session.Token))
	require.NoError(t, f.gate.Logout(""))
}

func TestGate_Expiry(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.gate.Login(context.Background(), testUsername, testPassword)
	require.NoError(t, err)

	f.clock.Advance(testTTL - time.Second)
	_, err = f.gate.Authorize(session.Token)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, err = f.gate.Authorize(session.Token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// Touching the expired session removed it.
	require.Zero(t, f.repo.Len())
	_, err = f.gate.Authorize(session.Token)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestGate_AuthorizeUnknownTokens(t *testing.T) {
	f := setupTestFixture(t)

	for _, token := range []string{"", "not-a-session"} {
		_, err := f.gate.Authorize(token)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	}
}

func TestInMemoryRepo(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.Error(t, repo.Upsert("", sessions.Session{}))

	_, err := repo.Get("token")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, repo.Upsert("token", sessions.Session{Token: "token", Username: testUsername}))
	session, err := repo.Get("token")
	require.NoError(t, err)
	require.Equal(t, testUsername, session.Username)

	require.NoError(t, repo.Delete("token"))
	require.NoError(t, repo.Delete("token"))
	require.Zero(t, repo.Len())
}
