package appeals

import (
	"sync"
	"testing"
	"time"
)

// TestSeenTrackerDedup verifies that a second delivery of the same
// interaction inside the TTL is rejected.
func TestSeenTrackerDedup(t *testing.T) {
	tr := NewSeenTracker(16)

	if !tr.MarkIfNew("i1", time.Minute) {
		t.Fatal("first MarkIfNew returned false")
	}
	if tr.MarkIfNew("i1", time.Minute) {
		t.Error("duplicate MarkIfNew returned true inside TTL")
	}
	if !tr.MarkIfNew("i2", time.Minute) {
		t.Error("unrelated id rejected")
	}
}

// TestSeenTrackerExpiry advances an injected clock past the TTL and checks
// the id becomes markable again.
func TestSeenTrackerExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := NewSeenTracker(16)
	tr.now = func() time.Time { return now }

	if !tr.MarkIfNew("i1", 30*time.Second) {
		t.Fatal("first MarkIfNew returned false")
	}

	now = now.Add(29 * time.Second)
	if tr.MarkIfNew("i1", 30*time.Second) {
		t.Error("id markable before TTL elapsed")
	}

	now = now.Add(2 * time.Second)
	if !tr.MarkIfNew("i1", 30*time.Second) {
		t.Error("id not markable after TTL elapsed")
	}
}

// TestSeenTrackerRelease verifies that Release frees the lock so error paths
// don't wedge an interaction permanently.
func TestSeenTrackerRelease(t *testing.T) {
	tr := NewSeenTracker(16)

	tr.MarkIfNew("i1", time.Minute)
	tr.Release("i1")

	if !tr.MarkIfNew("i1", time.Minute) {
		t.Error("id still locked after Release")
	}
}

// TestSeenTrackerCapEviction fills the tracker beyond its cap and checks the
// entry closest to expiry is evicted first.
func TestSeenTrackerCapEviction(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := NewSeenTracker(2)
	tr.now = func() time.Time { return now }

	tr.MarkIfNew("short", 10*time.Second)
	tr.MarkIfNew("mid", 20*time.Second)
	tr.MarkIfNew("long", 30*time.Second)

	if tr.Len() != 2 {
		t.Fatalf("Len = %d after overflow, want 2", tr.Len())
	}
	// "short" expired soonest so it must have been evicted
	if !tr.MarkIfNew("short", 10*time.Second) {
		t.Error("entry closest to expiry was not evicted")
	}
}

// TestSeenTrackerConcurrentMark checks that exactly one of many concurrent
// deliveries of the same id wins.
func TestSeenTrackerConcurrentMark(t *testing.T) {
	tr := NewSeenTracker(64)

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.MarkIfNew("same", time.Minute) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	got := 0
	for range wins {
		got++
	}
	if got != 1 {
		t.Errorf("%d concurrent deliveries won the mark, want exactly 1", got)
	}
}
