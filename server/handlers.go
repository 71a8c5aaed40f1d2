package server

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

const (
	errUnauthorizedMessage       = "Unauthorized"
	errInvalidCredentialsMessage = "Invalid credentials"
	errNotFoundMessage           = "Not found"
	errMethodNotAllowedMessage   = "Method not allowed"
	errInvalidJSONMessage        = "Invalid JSON"
	errBodyTooLargeMessage       = "Request body too large"
	errTooManyAttemptsMessage    = "Too many login attempts"
	errInternalMessage           = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]any{
		"ok":    false,
		"error": message,
	})
}

// writeAPIError maps an error from the service layer onto a JSON envelope.
// Anything unrecognised is logged and reported as a bare 500.
func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	switch {
	case apperrors.As(err, &maxBytes):
		writeJSONError(w, errBodyTooLargeMessage, http.StatusRequestEntityTooLarge)
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		writeJSONError(w, errInvalidCredentialsMessage, http.StatusUnauthorized)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		writeJSONError(w, errUnauthorizedMessage, http.StatusUnauthorized)
	case apperrors.Is(err, apperrors.ErrNotFound):
		writeJSONError(w, errNotFoundMessage, http.StatusNotFound)
	case apperrors.Is(err, apperrors.ErrValidation):
		reason := apperrors.Reason(err)
		if reason == "" {
			reason = "Invalid request"
		}
		writeJSONError(w, reason, http.StatusBadRequest)
	default:
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		writeJSONError(w, errInternalMessage, http.StatusInternalServerError)
	}
}

// decodeError distinguishes an oversized body from malformed JSON.
func decodeError(err error) error {
	var maxBytes *http.MaxBytesError
	if apperrors.As(err, &maxBytes) {
		return err
	}
	return apperrors.Validationf(errInvalidJSONMessage)
}

// HealthHandler pings the store (GET /healthz)
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.health != nil {
			if err := s.health.Ping(r.Context()); err != nil {
				log.Err(err).Msg("Health check failed")
				writeJSONError(w, "Storage unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		writeJSONOK(w)
	}
}

// APIFallbackHandler answers /api/ requests no route matched. OPTIONS gets an
// empty 204, a known path with the wrong method a JSON 405, anything else a JSON 404.
func (s *Server) APIFallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if _, pattern := s.apiPaths.Handler(r); pattern != "" {
			w.Header().Set("Allow", strings.Join(s.apiMethods[pattern], ", "))
			writeJSONError(w, errMethodNotAllowedMessage, http.StatusMethodNotAllowed)
			return
		}
		writeJSONError(w, errNotFoundMessage, http.StatusNotFound)
	}
}
