package fakesectionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-portfolio-cms/sections"
)

var _ sections.Repo = (*FakeSectionRepo)(nil)

type FakeSectionRepo struct {
	rows map[string][]byte
	lock sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewFakeSectionRepo() *FakeSectionRepo {
	return &FakeSectionRepo{
		rows: make(map[string][]byte),
	}
}

func (sr *FakeSectionRepo) GetSection(_ context.Context, name string) ([]byte, bool, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	if sr.Err != nil {
		return nil, false, sr.Err
	}
	raw, ok := sr.rows[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (sr *FakeSectionRepo) ListSections(_ context.Context) (map[string][]byte, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	if sr.Err != nil {
		return nil, sr.Err
	}
	rows := make(map[string][]byte, len(sr.rows))
	for name, raw := range sr.rows {
		rows[name] = append([]byte(nil), raw...)
	}
	return rows, nil
}

func (sr *FakeSectionRepo) UpsertSection(_ context.Context, name string, raw []byte) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Err != nil {
		return sr.Err
	}
	sr.rows[name] = append([]byte(nil), raw...)
	return nil
}

func (sr *FakeSectionRepo) UpsertSections(_ context.Context, entries map[string][]byte) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Err != nil {
		return sr.Err
	}
	for name, raw := range entries {
		sr.rows[name] = append([]byte(nil), raw...)
	}
	return nil
}

// SetRaw stores raw bytes as-is, bypassing serialization.
func (sr *FakeSectionRepo) SetRaw(name string, raw []byte) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.rows[name] = raw
}

// Raw returns the stored bytes for name, nil when absent.
func (sr *FakeSectionRepo) Raw(name string) []byte {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.rows[name]
}
