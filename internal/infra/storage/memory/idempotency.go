package memory

import (
	"context"
	"sync"
	"time"

	"homestay/internal/app/middleware"
)

// IdempotencyStore stores results in memory. Records older than ttl are treated as absent, as are
// claims older than middleware.ReservationLease.
type IdempotencyStore struct {
	mu    sync.Mutex
	items map[string]middleware.IdempotencyRecord
	ttl   time.Duration
	now   func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{items: make(map[string]middleware.IdempotencyRecord), ttl: ttl, now: time.Now}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.live(key)
	return rec, ok, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.items[key] = middleware.IdempotencyRecord{Key: key, Pending: true, OccurredAt: s.now()}
	return true, nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.items[key]; ok && rec.Pending {
		delete(s.items, key)
	}
	return nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Pending = false
	s.items[rec.Key] = rec
	return nil
}

// live must be called with mu held.
func (s *IdempotencyStore) live(key string) (middleware.IdempotencyRecord, bool) {
	rec, ok := s.items[key]
	if !ok {
		return middleware.IdempotencyRecord{}, false
	}
	age := s.now().Sub(rec.OccurredAt)
	if (rec.Pending && age > middleware.ReservationLease) || (!rec.Pending && s.ttl > 0 && age > s.ttl) {
		delete(s.items, key)
		return middleware.IdempotencyRecord{}, false
	}
	return rec, true
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
