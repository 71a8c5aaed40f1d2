package sections

import "context"

// Repo persists serialized section documents keyed by section name.
type Repo interface {
	// GetSection returns found=false when no row exists for name.
	GetSection(ctx context.Context, name string) (raw []byte, found bool, err error)
	ListSections(ctx context.Context) (map[string][]byte, error)
	UpsertSection(ctx context.Context, name string, raw []byte) error
	// UpsertSections writes every entry or none of them.
	UpsertSections(ctx context.Context, entries map[string][]byte) error
}
