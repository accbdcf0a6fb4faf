// Package ratelimit implements the per-session sliding-window admission gate
// in front of every model-call path. It is advisory, single-process
// admission control, not a distributed limiter.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Defaults applied by callers that don't configure their own limits.
const (
	DefaultMaxRequests = 10
	DefaultWindow      = 60 * time.Minute
)

// Store holds the per-session request windows. The Gate is the only owner of
// this state and serializes all access; implementations need no internal
// locking of their own.
type Store interface {
	Get(sessionID string) []time.Time
	Put(sessionID string, window []time.Time)
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	windows map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]time.Time)}
}

func (s *MemoryStore) Get(sessionID string) []time.Time {
	return s.windows[sessionID]
}

func (s *MemoryStore) Put(sessionID string, window []time.Time) {
	s.windows[sessionID] = window
}

// Gate admits or rejects requests against a trailing window per session.
type Gate struct {
	mu    sync.Mutex
	store Store
	log   *slog.Logger
}

func NewGate(store Store, logger *slog.Logger) *Gate {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, log: logger}
}

// Admit prunes timestamps older than now-window from the session's window,
// then admits and records now unless the remaining count has reached max.
// A denial emits a security audit event and does not record the attempt.
// The mutex makes two concurrent admits for one session observe each other,
// so a window never over-admits.
func (g *Gate) Admit(sessionID string, now time.Time, max int, window time.Duration) bool {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := now.Add(-window)
	kept := pruned(g.store.Get(sessionID), cutoff)

	if len(kept) >= max {
		g.store.Put(sessionID, kept)
		g.log.Warn("ratelimit.denied",
			"event_kind", "rate_limit_exceeded",
			"session_id", sessionID,
			"timestamp", now,
			"window_count", len(kept),
			"max_requests", max,
		)
		return false
	}

	g.store.Put(sessionID, append(kept, now))
	return true
}

// pruned drops timestamps strictly older than the cutoff, keeping order.
func pruned(window []time.Time, cutoff time.Time) []time.Time {
	kept := window[:0]
	for _, ts := range window {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
