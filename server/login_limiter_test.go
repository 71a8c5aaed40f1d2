package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginLimiter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newLoginLimiter(6, 2)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))

	// One token every ten seconds
	now = now.Add(10 * time.Second)
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
}

func TestLoginLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newLoginLimiter(6, 2)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.Len(t, l.clients, 2)

	now = now.Add(loginLimiterMaxIdle + time.Second)
	require.True(t, l.Allow("c"))
	require.Len(t, l.clients, 1)
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := newLoginLimiter(0, 5)
	require.Nil(t, l)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("a"))
	}
}

func TestClientAddress(t *testing.T) {
	require.Equal(t, "192.0.2.1", clientAddress(&http.Request{RemoteAddr: "192.0.2.1:1234"}))
	require.Equal(t, "::1", clientAddress(&http.Request{RemoteAddr: "[::1]:80"}))
	require.Equal(t, "unix-socket", clientAddress(&http.Request{RemoteAddr: "unix-socket"}))
}
