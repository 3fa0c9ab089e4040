package store

import (
	"sync"
	"time"

	"github.com/eventbooker/webclient/internal/service"
)

// Registry hands out one Events store per session token. A store lives as
// long as its session is active; idle stores are evicted by the cleanup
// worker so a logged-out token does not pin a stale mirror forever.
type Registry struct {
	mu      sync.Mutex
	svc     service.EventService
	entries map[string]*registryEntry
}

type registryEntry struct {
	events   *Events
	lastSeen time.Time
}

func NewRegistry(svc service.EventService) *Registry {
	return &Registry{
		svc:     svc,
		entries: make(map[string]*registryEntry),
	}
}

// ForToken returns the session's events store, creating it on first use.
func (r *Registry) ForToken(token string) *Events {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[token]
	if !ok {
		entry = &registryEntry{events: NewEvents(r.svc)}
		r.entries[token] = entry
	}
	entry.lastSeen = time.Now()
	return entry.events
}

// Drop discards the store for a token, called on logout and on 401.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, token)
}

// EvictIdle removes stores not touched within the TTL and reports how many
// were dropped.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for token, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, token)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live session stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
