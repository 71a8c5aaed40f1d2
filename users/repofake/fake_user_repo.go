package fakeuserrepo

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	identities map[string]users.Identity
	lock       sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		identities: make(map[string]users.Identity),
	}
}

func (ur *FakeUserRepo) InsertIdentity(_ context.Context, identity users.Identity) (bool, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.Err != nil {
		return false, ur.Err
	}
	if _, ok := ur.identities[identity.Username]; ok {
		return false, nil
	}
	ur.identities[identity.Username] = identity
	return true, nil
}

func (ur *FakeUserRepo) GetIdentity(_ context.Context, username string) (*users.Identity, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if ur.Err != nil {
		return nil, ur.Err
	}
	identity, ok := ur.identities[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &identity, nil
}

func (ur *FakeUserRepo) UpdatePasswordHash(_ context.Context, username, passwordHash string) (bool, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.Err != nil {
		return false, ur.Err
	}
	identity, ok := ur.identities[username]
	if !ok {
		return false, nil
	}
	identity.PasswordHash = passwordHash
	ur.identities[username] = identity
	return true, nil
}

// Hash exposes the stored hash so tests can check it changed.
func (ur *FakeUserRepo) Hash(username string) string {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return ur.identities[username].PasswordHash
}
