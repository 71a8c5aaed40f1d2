package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type dashboardSection struct {
	Name string
	JSON string
}

type dashboardData struct {
	AppName  string
	UserName string
	Sections []dashboardSection
}

// AdminDashboardHandler renders the admin dashboard (GET /admin)
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_dashboard.html")
	if err != nil {
		panic("Failed to parse admin dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.content.Dashboard(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load dashboard sections")
			http.Error(w, "500 - Internal server error", http.StatusInternalServerError)
			return
		}

		data := dashboardData{
			AppName:  s.config.GetAppName(),
			UserName: usernameFromContext(r.Context()),
		}
		for _, entry := range entries {
			pretty, err := json.MarshalIndent(entry.Document, "", "  ")
			if err != nil {
				log.Err(err).Str("section", entry.Name).Msg("Failed to render section")
				http.Error(w, "500 - Internal server error", http.StatusInternalServerError)
				return
			}
			data.Sections = append(data.Sections, dashboardSection{Name: entry.Name, JSON: string(pretty)})
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render admin dashboard")
		}
	}
}
