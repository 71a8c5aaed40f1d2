package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Admin UI Routes
	RouteAdminDashboard = "/admin"
	RouteAdminLogin     = "/admin/login"
	RouteAdminLogout    = "/admin/logout"

	// Admin API Routes
	RouteAPILogout         = "/api/admin/logout"
	RouteAPIMe             = "/api/admin/me"
	RouteAPIChangePassword = "/api/change-password"

	// Content API Routes
	RouteAPIContent        = "/api/content"
	RouteAPIContentSection = "/api/content/{section}"
	RouteAPIPublicContent  = "/api/public/content"
	RouteAPIExport         = "/api/export"
	RouteAPIImport         = "/api/import"

	// Fallback pattern for every API path
	RouteAPIPrefix = "/api/"

	RouteHealth = "/healthz"
)

const (
	sectionPathValue = "section"
	exportFileName   = "portfolio-backup.json"
)
