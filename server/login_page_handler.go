package server

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Username string // Preserve username on error
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginPageHandler displays the login page (GET /admin/login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Already signed in
		if _, err := s.sessions.Authorize(sessionToken(r)); err == nil {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}

		s.renderLoginPage(w, loginTmpl, http.StatusOK, LoginPageData{AppName: s.config.GetAppName()})
	}
}

// LoginSubmissionHandler processes the login form or JSON submission (POST /admin/login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

		var req loginRequest
		if isJSON {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeAPIError(w, r, decodeError(err))
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
			req.Username = r.FormValue("username")
			req.Password = r.FormValue("password")
		}

		session, err := s.sessions.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				log.Err(err).Msg("Login failed")
			}
			if isJSON {
				writeAPIError(w, r, err)
				return
			}
			if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				http.Error(w, "500 - Internal server error", http.StatusInternalServerError)
				return
			}
			s.renderLoginPage(w, loginTmpl, http.StatusUnauthorized, LoginPageData{
				AppName:  s.config.GetAppName(),
				Error:    errInvalidCredentialsMessage,
				Username: req.Username,
			})
			return
		}

		s.setSessionCookie(w, r, session)
		log.Info().Str("username", session.Username).Msg("Admin logged in")

		if isJSON {
			writeJSONOK(w)
			return
		}
		redirectSuccess(w, r, RouteAdminDashboard)
	}
}

// LogoutHandler ends the browser session (GET /admin/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.endSession(w, r)
		redirectSuccess(w, r, RouteAdminLogin)
	}
}

// APILogoutHandler ends the session for API callers (POST /api/admin/logout)
func (s *Server) APILogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.endSession(w, r)
		writeJSONOK(w)
	}
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(sessionToken(r)); err != nil {
		log.Err(err).Msg("Failed to delete login session")
	}
	s.clearSessionCookie(w, r)
}

func (s *Server) renderLoginPage(w http.ResponseWriter, tmpl templateExecutor, status int, data LoginPageData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render login template")
	}
}
