package appeals

import (
	"testing"
	"time"
)

// TestStateCachePutGet verifies basic storage keyed by appeal id.
func TestStateCachePutGet(t *testing.T) {
	c := NewStateCache()
	defer c.Stop()

	c.Put(&AppealRecord{
		AppealID: "a1",
		Target:   TargetWarn,
		GuildID:  "g1",
		UserID:   "u1",
		TargetID: "warn-abc",
		Guild:    GuildSnapshot{ID: "g1", Name: "Servidor"},
	})

	rec, ok := c.Get("a1")
	if !ok {
		t.Fatal("Get miss for freshly stored record")
	}
	if rec.Guild.Name != "Servidor" || rec.TargetID != "warn-abc" {
		t.Errorf("record fields lost: %+v", rec)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get hit for unknown appeal id")
	}
}

// TestStateCacheTTL verifies records expire after the TTL without waiting on
// the background sweeper.
func TestStateCacheTTL(t *testing.T) {
	now := time.Unix(9000, 0)
	c := NewStateCache()
	defer c.Stop()
	c.now = func() time.Time { return now }

	c.Put(&AppealRecord{AppealID: "a1"})

	now = now.Add(cacheTTL - time.Minute)
	if _, ok := c.Get("a1"); !ok {
		t.Error("record expired before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a1"); ok {
		t.Error("record readable past TTL")
	}
}

// TestStateCacheDelete verifies a decided appeal's record is consumed.
func TestStateCacheDelete(t *testing.T) {
	c := NewStateCache()
	defer c.Stop()

	c.Put(&AppealRecord{AppealID: "a1"})
	c.Delete("a1")

	if _, ok := c.Get("a1"); ok {
		t.Error("record readable after Delete")
	}
	// Deleting again must be a no-op
	c.Delete("a1")
}

// TestStateCacheSweep verifies the sweep removes only expired records.
func TestStateCacheSweep(t *testing.T) {
	now := time.Unix(9000, 0)
	c := NewStateCache()
	defer c.Stop()
	c.now = func() time.Time { return now }

	c.Put(&AppealRecord{AppealID: "old"})
	now = now.Add(cacheTTL + time.Minute)
	c.Put(&AppealRecord{AppealID: "fresh"})

	if dropped := c.sweep(); dropped != 1 {
		t.Errorf("sweep dropped %d records, want 1", dropped)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after sweep, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh record lost during sweep")
	}
}
