package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const loginLimiterMaxIdle = 10 * time.Minute

// clientLimiter holds the login token bucket for one client address.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastActive time.Time
}

// loginLimiter throttles login attempts per client address. Idle entries are
// swept on access, there is no background goroutine.
type loginLimiter struct {
	limit   rate.Limit
	burst   int
	maxIdle time.Duration
	now     func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	if perMinute <= 0 || burst <= 0 {
		return nil
	}
	return &loginLimiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		maxIdle: loginLimiterMaxIdle,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Allow reports whether key may attempt another login. A nil limiter allows everything.
func (l *loginLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastActive = now
	return cl.limiter.AllowN(now, 1)
}

func (l *loginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.maxIdle {
		return
	}
	for key, cl := range l.clients {
		if now.Sub(cl.lastActive) > l.maxIdle {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// LoginRateLimitMiddleware rejects login attempts beyond the configured rate with 429.
func (s *Server) LoginRateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)
		if !s.loginLimiter.Allow(client) {
			log.Warn().Str("client", client).Msg("Login rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			if wantsJSON(r) {
				writeJSONError(w, errTooManyAttemptsMessage, http.StatusTooManyRequests)
				return
			}
			http.Error(w, errTooManyAttemptsMessage, http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
