package server

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAdminLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAdminLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare(s.LoginRateLimitMiddleware, s.BodyLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAdminLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Admin UI (session cookie, browser callers are redirected to the login page)
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))

	// Public API routes
	s.RegisterRouteHandler("POST "+RouteAPILogout, ChainMiddleware(s.APILogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIPublicContent, ChainMiddleware(s.PublicContentHandler(), s.APIMiddleware()...))

	// Protected API routes
	s.RegisterRouteHandler("GET "+RouteAPIContent, ChainMiddleware(s.GetAllSectionsHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteAPIContentSection, ChainMiddleware(s.GetSectionHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("PUT "+RouteAPIContentSection, ChainMiddleware(s.PutSectionHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIChangePassword, ChainMiddleware(s.ChangePasswordHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteAPIExport, ChainMiddleware(s.ExportHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIImport, ChainMiddleware(s.ImportHandler(), s.APIMiddleware(s.RequireSessionAuth())...))

	// Everything else under /api/: preflights, wrong methods and unknown paths
	s.RegisterRouteHandler(RouteAPIPrefix, ChainMiddleware(s.APIFallbackHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}
