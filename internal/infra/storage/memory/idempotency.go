package memory

import (
	"context"
	"sync"
	"time"

	"hotelstay/internal/app/middleware"
)

// IdempotencyStore keeps replayable command results in memory.
type IdempotencyStore struct {
	mu    sync.RWMutex
	items map[string]middleware.IdempotencyRecord
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{items: make(map[string]middleware.IdempotencyRecord)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[key]
	if ok {
		rec.Payload = append([]byte(nil), rec.Payload...)
	}
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	rec.Payload = append([]byte(nil), rec.Payload...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

// Purge drops records that occurred before cutoff and reports how many went.
func (s *IdempotencyStore) Purge(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, rec := range s.items {
		if rec.OccurredAt.Before(cutoff) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
