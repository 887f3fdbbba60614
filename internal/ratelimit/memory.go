package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryStore is an in-process Limiter backed by a token-bucket per key.
// Idle keys are evicted by a janitor so the table does not grow for the
// lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit        rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type MemoryOption func(*MemoryStore)

func WithIdleTTL(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

// NewMemoryStore allows `requests` admissions per key per `interval`.
func NewMemoryStore(requests int, interval time.Duration, opts ...MemoryOption) *MemoryStore {
	if requests < 1 {
		requests = 1
	}
	s := &MemoryStore{
		entries:      make(map[string]*memoryEntry),
		limit:        rate.Every(interval / time.Duration(requests)),
		burst:        requests,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admit implements Limiter. The token bucket refuses the request without
// consuming anything when no token is available, so rejected retries never
// push the window forward.
func (s *MemoryStore) Admit(_ context.Context, key string, now time.Time) bool {
	s.mu.Lock()
	ent, ok := s.entries[key]
	if !ok {
		ent = &memoryEntry{lim: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = ent
	}
	ent.lastSeen = now
	s.mu.Unlock()

	return ent.lim.AllowN(now, 1)
}

// Cleanup evicts keys that have been idle longer than the idle TTL.
func (s *MemoryStore) Cleanup(now time.Time) {
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
}

// StartJanitor runs Cleanup periodically until the context is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}
	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				s.Cleanup(now)
			}
		}
	}()
}

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ Limiter = (*MemoryStore)(nil)
