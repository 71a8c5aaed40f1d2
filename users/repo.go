package users

import "context"

// Repo is the durable storage behind Store.
type Repo interface {
	// InsertIdentity stores identity unless the username is taken; created reports which happened.
	InsertIdentity(ctx context.Context, identity Identity) (created bool, err error)
	// GetIdentity returns errors.ErrNotFound when no identity has the username.
	GetIdentity(ctx context.Context, username string) (*Identity, error)
	// UpdatePasswordHash replaces the stored hash; updated is false when the username is unknown.
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) (updated bool, err error)
}
