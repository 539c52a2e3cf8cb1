package appeals

import (
	"sync"
	"time"
)

// SeenTracker detecta entregas duplicadas o concurrentes de una misma
// interacción dentro de una ventana acotada. Solo es válido dentro de un
// proceso; no es un lock distribuido.
type SeenTracker struct {
	mu         sync.Mutex
	entries    map[string]time.Time // id -> expiración
	maxEntries int
	now        func() time.Time
}

// NewSeenTracker creates a tracker capped at maxEntries. When the cap is
// exceeded the entry closest to expiry is evicted.
func NewSeenTracker(maxEntries int) *SeenTracker {
	return &SeenTracker{
		entries:    make(map[string]time.Time),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// MarkIfNew marks the id as in-flight with a self-expiring lock and reports
// whether the id was new. A false return means the same interaction is being
// processed (or was processed within the TTL) and must be dropped.
func (t *SeenTracker) MarkIfNew(id string, ttl time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.pruneLocked(now)

	if exp, ok := t.entries[id]; ok && now.Before(exp) {
		return false
	}
	t.entries[id] = now.Add(ttl)
	return true
}

// Release frees the id so error paths don't wedge it permanently. This opens
// a narrow re-entry window, an accepted tradeoff given Discord's
// single-delivery norm.
func (t *SeenTracker) Release(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Len returns the number of tracked ids (expired entries included until the
// next prune).
func (t *SeenTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// pruneLocked drops expired entries and, if still over cap, evicts the
// entries closest to expiry.
func (t *SeenTracker) pruneLocked(now time.Time) {
	for id, exp := range t.entries {
		if !now.Before(exp) {
			delete(t.entries, id)
		}
	}
	for t.maxEntries > 0 && len(t.entries) > t.maxEntries {
		var oldest string
		var oldestExp time.Time
		for id, exp := range t.entries {
			if oldest == "" || exp.Before(oldestExp) {
				oldest, oldestExp = id, exp
			}
		}
		delete(t.entries, oldest)
	}
}
