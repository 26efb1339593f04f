package store

import (
	"context"
	"sync"
	"time"

	"github.com/ruralplus/companion-api/schema"
)

// MemoryStore is a volatile Store used in tests and when the companion runs
// without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	codes    []schema.PlusCode
	lastSync time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, codes []schema.PlusCode, syncedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes = append([]schema.PlusCode(nil), codes...)
	s.lastSync = syncedAt
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) ([]schema.PlusCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]schema.PlusCode(nil), s.codes...), nil
}

func (s *MemoryStore) LastSync(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSync, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes = nil
	s.lastSync = time.Time{}
	return nil
}
