package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-portfolio-cms/content"
	"github.com/jrsteele09/go-portfolio-cms/internal/config"
	"github.com/jrsteele09/go-portfolio-cms/sessions"
	"github.com/jrsteele09/go-portfolio-cms/users"
	"github.com/rs/zerolog/log"
)

// HealthChecker reports whether the durable store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services are the components the HTTP layer is wired to.
type Services struct {
	Credentials *users.Store
	Sessions    *sessions.Gate
	Content     *content.Facade
	Health      HealthChecker
}

type Server struct {
	env         string // Environment (e.g., "DEV", "PROD")
	mux         *http.ServeMux
	routes      []string
	apiPaths    *http.ServeMux      // method-less copy of the API paths, used by the /api/ fallback
	apiMethods  map[string][]string // API path pattern to the methods registered for it
	config      config.Config
	credentials *users.Store
	sessions    *sessions.Gate
	content     *content.Facade
	health      HealthChecker

	loginLimiter *loginLimiter
}

func New(ctx context.Context, config config.Config, services Services) (*Server, error) {
	if services.Credentials == nil || services.Sessions == nil || services.Content == nil {
		return nil, fmt.Errorf("[Server New] credentials, sessions and content services are required")
	}

	s := &Server{
		mux:         http.NewServeMux(),
		apiPaths:    http.NewServeMux(),
		apiMethods:  make(map[string][]string),
		config:      config,
		credentials: services.Credentials,
		sessions:    services.Sessions,
		content:     services.Content,
		health:      services.Health,

		loginLimiter: newLoginLimiter(config.GetLoginAttemptsPerMinute(), config.GetLoginBurst()),
	}
	s.env = config.GetEnv()

	// Bootstrap: ensure the admin identity exists
	if err := s.InitialiseSystem(ctx); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.trackAPIRoute(pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.trackAPIRoute(pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) trackAPIRoute(pattern string) {
	method, path, found := strings.Cut(pattern, " ")
	if !found || path == RouteAPIPrefix || !strings.HasPrefix(path, RouteAPIPrefix) {
		return
	}
	if _, seen := s.apiMethods[path]; !seen {
		s.apiPaths.Handle(path, http.NotFoundHandler())
	}
	s.apiMethods[path] = append(s.apiMethods[path], method)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
