package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/rs/zerolog/log"
)

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// MeHandler reports whether the caller holds a live session (GET /api/admin/me)
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := s.sessions.Authorize(sessionToken(r))
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"username":      username,
		})
	}
}

// ChangePasswordHandler rotates the signed-in admin's password (POST /api/change-password)
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, r, decodeError(err))
			return
		}

		minLength := s.config.GetMinPasswordLength()
		if utf8.RuneCountInString(req.NewPassword) < minLength {
			writeAPIError(w, r, apperrors.Validationf("Password must be at least %d characters", minLength))
			return
		}

		username := usernameFromContext(r.Context())
		updated, err := s.credentials.RotatePassword(r.Context(), username, req.NewPassword)
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		if !updated {
			writeAPIError(w, r, fmt.Errorf("[server ChangePassword] identity %q vanished: %w", username, apperrors.ErrInternal))
			return
		}

		log.Info().Str("username", username).Msg("Admin password changed")
		writeJSONOK(w)
	}
}
