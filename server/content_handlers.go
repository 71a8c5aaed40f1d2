package server

import (
	"net/http"

	"github.com/jrsteele09/go-portfolio-cms/content"
	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/sections"
)

// GetSectionHandler returns one section document (GET /api/content/{section})
func (s *Server) GetSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.content.ReadSection(r.Context(), r.PathValue(sectionPathValue))
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// PutSectionHandler replaces one section document (PUT /api/content/{section})
func (s *Server) PutSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue(sectionPathValue)
		if !content.IsRecognized(name) {
			writeAPIError(w, r, apperrors.ErrNotFound)
			return
		}

		value, err := sections.DecodeValue(r.Body)
		if err != nil {
			writeAPIError(w, r, decodeError(err))
			return
		}

		if err := s.content.WriteSection(r.Context(), name, value); err != nil {
			writeAPIError(w, r, err)
			return
		}
		writeJSONOK(w)
	}
}

// GetAllSectionsHandler returns every stored section (GET /api/content)
func (s *Server) GetAllSectionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.content.ExportAll(r.Context())
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// PublicContentHandler serves the recognized sections to the public page (GET /api/public/content)
func (s *Server) PublicContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.content.PublicContent(r.Context())
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// ExportHandler downloads the full backup file (GET /api/export)
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.content.ExportAll(r.Context())
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		data, err := snapshot.MarshalIndent()
		if err != nil {
			writeAPIError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// ImportHandler restores sections from a backup (POST /api/import)
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := sections.DecodeValue(r.Body)
		if err != nil {
			writeAPIError(w, r, decodeError(err))
			return
		}
		snapshot, ok := sections.AsDocument(value)
		if !ok {
			writeAPIError(w, r, apperrors.Validationf("Expected a JSON object"))
			return
		}

		imported, err := s.content.ImportAll(r.Context(), snapshot)
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"imported": imported,
		})
	}
}
