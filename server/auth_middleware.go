package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUsername stores the authenticated admin username
const ContextKeyUsername ContextKey = "username"

// RequireSessionAuth validates the session cookie. Browser callers without a
// live session are redirected to the login page, API callers get a 401 JSON body.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			username, err := s.sessions.Authorize(token)
			if err != nil {
				if !apperrors.Is(err, apperrors.ErrUnauthorized) {
					log.Err(err).Str("path", r.URL.Path).Msg("Session lookup failed")
				}
				if token != "" {
					s.clearSessionCookie(w, r)
				}
				denyAccess(w, r)
				return
			}

			// Inject session info into context
			ctx := context.WithValue(r.Context(), ContextKeyUsername, username)
			next(w, r.WithContext(ctx))
		}
	}
}

func denyAccess(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSONError(w, errUnauthorizedMessage, http.StatusUnauthorized)
		return
	}
	redirectSuccess(w, r, RouteAdminLogin)
}

// wantsJSON reports whether the caller is an API client rather than a browser
// navigating the admin UI.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, RouteAPIPrefix) {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(ContextKeyUsername).(string)
	return username
}
