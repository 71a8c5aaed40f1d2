package content

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/sections"
)

// Recognized section names, in the order the admin dashboard lists them.
const (
	SectionSettings   = "settings"
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionTimeline   = "timeline"
	SectionSkills     = "skills"
	SectionGithub     = "github"
	SectionNowPlaying = "nowplaying"
	SectionProjects   = "projects"
	SectionContact    = "contact"
)

var recognized = []string{
	SectionSettings,
	SectionHero,
	SectionAbout,
	SectionTimeline,
	SectionSkills,
	SectionGithub,
	SectionNowPlaying,
	SectionProjects,
	SectionContact,
}

// Snapshot is a full export: section name to document.
type Snapshot map[string]sections.Document

// MarshalIndent renders the snapshot as the downloadable backup file.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// Entry is one recognized section with its current document.
type Entry struct {
	Name     string
	Document sections.Document
}

type Facade struct {
	store *sections.Store
}

func New(store *sections.Store) *Facade {
	return &Facade{store: store}
}

// Sections returns the recognized section names in presentation order.
func Sections() []string {
	return slices.Clone(recognized)
}

func IsRecognized(name string) bool {
	return slices.Contains(recognized, name)
}

// ReadSection returns the document for a recognized section, or an empty
// document when nothing has been written yet.
func (f *Facade) ReadSection(ctx context.Context, name string) (sections.Document, error) {
	if !IsRecognized(name) {
		return nil, fmt.Errorf("[content ReadSection] section %q: %w", name, apperrors.ErrNotFound)
	}
	doc, found, err := f.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[content ReadSection] %w", err)
	}
	if !found {
		return sections.Document{}, nil
	}
	return doc, nil
}

// WriteSection replaces the document of a recognized section. value must be a
// JSON object; its fields are stored verbatim.
func (f *Facade) WriteSection(ctx context.Context, name string, value any) error {
	if !IsRecognized(name) {
		return fmt.Errorf("[content WriteSection] section %q: %w", name, apperrors.ErrNotFound)
	}
	doc, ok := sections.AsDocument(value)
	if !ok {
		return apperrors.Validationf("section content must be a JSON object")
	}
	if err := f.store.Put(ctx, name, doc); err != nil {
		return fmt.Errorf("[content WriteSection] %w", err)
	}
	return nil
}

// ExportAll returns every section currently stored.
func (f *Facade) ExportAll(ctx context.Context) (Snapshot, error) {
	all, err := f.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("[content ExportAll] %w", err)
	}
	return Snapshot(all), nil
}

// ImportAll writes the entries of snapshot that name a recognized section and
// hold a JSON object; the rest are skipped. The writes happen in one
// transaction and the number of sections written is returned.
func (f *Facade) ImportAll(ctx context.Context, snapshot map[string]any) (int, error) {
	docs := make(map[string]sections.Document, len(snapshot))
	for name, value := range snapshot {
		if !IsRecognized(name) {
			continue
		}
		doc, ok := sections.AsDocument(value)
		if !ok {
			continue
		}
		docs[name] = doc
	}
	if err := f.store.PutAll(ctx, docs); err != nil {
		return 0, fmt.Errorf("[content ImportAll] %w", err)
	}
	return len(docs), nil
}

// Dashboard lists every recognized section in order with its current document.
func (f *Facade) Dashboard(ctx context.Context) ([]Entry, error) {
	all, err := f.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("[content Dashboard] %w", err)
	}
	entries := make([]Entry, 0, len(recognized))
	for _, name := range recognized {
		doc, ok := all[name]
		if !ok {
			doc = sections.Document{}
		}
		entries = append(entries, Entry{Name: name, Document: doc})
	}
	return entries, nil
}

// PublicContent returns the stored recognized sections for the public page.
// Sections that were never written are left out.
func (f *Facade) PublicContent(ctx context.Context) (Snapshot, error) {
	all, err := f.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("[content PublicContent] %w", err)
	}
	public := make(Snapshot, len(all))
	for name, doc := range all {
		if IsRecognized(name) {
			public[name] = doc
		}
	}
	return public, nil
}
