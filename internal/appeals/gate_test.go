package appeals

import (
	"testing"
	"time"
)

func freshMeta(now time.Time, id string) InteractionMeta {
	return InteractionMeta{
		ID:        id,
		ActorID:   "u1",
		GuildID:   "g1",
		CreatedAt: now,
		Repliable: true,
	}
}

func testGate(now *time.Time) *Gate {
	g := NewGate(NewSeenTracker(64))
	g.now = func() time.Time { return *now }
	return g
}

// TestGateAcceptsFreshInteraction verifies the happy path and that the lock
// is held until Release.
func TestGateAcceptsFreshInteraction(t *testing.T) {
	now := time.Unix(5000, 0)
	g := testGate(&now)
	meta := freshMeta(now, "i1")

	v := g.Validate(meta, ResponseReply)
	if !v.Valid {
		t.Fatalf("fresh interaction rejected: %s", v.Reason)
	}

	// Same delivery again while the first is still in flight
	if v2 := g.Validate(meta, ResponseReply); v2.Valid {
		t.Error("concurrent duplicate accepted")
	} else if v2.Reason != DropProcessing {
		t.Errorf("duplicate reason = %s, want %s", v2.Reason, DropProcessing)
	}

	g.Release(meta)
	if v3 := g.Validate(meta, ResponseReply); !v3.Valid {
		t.Errorf("interaction rejected after Release: %s", v3.Reason)
	}
}

// TestGateDropReasons exercises each precondition in order.
func TestGateDropReasons(t *testing.T) {
	now := time.Unix(5000, 0)

	tests := []struct {
		name   string
		meta   InteractionMeta
		kind   ResponseKind
		reason DropReason
	}{
		{
			name:   "not repliable",
			meta:   InteractionMeta{ID: "a", CreatedAt: now},
			kind:   ResponseReply,
			reason: DropNotRepliable,
		},
		{
			name:   "already acked",
			meta:   InteractionMeta{ID: "b", CreatedAt: now, Repliable: true, Acked: true},
			kind:   ResponseReply,
			reason: DropAlreadyHandled,
		},
		{
			name:   "past entry budget",
			meta:   InteractionMeta{ID: "c", CreatedAt: now.Add(-EntryBudget - time.Second), Repliable: true},
			kind:   ResponseReply,
			reason: DropExpired,
		},
		{
			name:   "past modal-open budget",
			meta:   InteractionMeta{ID: "d", CreatedAt: now.Add(-2 * time.Second), Repliable: true},
			kind:   ResponseModalOpen,
			reason: DropExpired,
		},
		{
			name:   "past modal-submit budget",
			meta:   InteractionMeta{ID: "e", CreatedAt: now.Add(-3 * time.Second), Repliable: true},
			kind:   ResponseModalSubmit,
			reason: DropExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGate(&now)
			v := g.Validate(tt.meta, tt.kind)
			if v.Valid {
				t.Fatal("Validate accepted, want drop")
			}
			if v.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", v.Reason, tt.reason)
			}
		})
	}
}

// TestGateReleasesLockOnExpiry verifies that an expired interaction does not
// leave its id locked: a later fresh retry with the same id must pass.
func TestGateReleasesLockOnExpiry(t *testing.T) {
	now := time.Unix(5000, 0)
	g := testGate(&now)

	stale := freshMeta(now.Add(-ReplyBudget-time.Second), "i1")
	if v := g.Validate(stale, ResponseReply); v.Reason != DropExpired {
		t.Fatalf("Reason = %s, want %s", v.Reason, DropExpired)
	}

	fresh := freshMeta(now, "i1")
	if v := g.Validate(fresh, ResponseReply); !v.Valid {
		t.Errorf("fresh retry rejected after expired drop: %s", v.Reason)
	}
}

// TestResponseKindBudgets pins the per-kind budgets: modal open is the
// tightest, modal submit slightly wider, plain replies widest.
func TestResponseKindBudgets(t *testing.T) {
	if ResponseModalOpen.budget() >= ResponseModalSubmit.budget() {
		t.Error("modal-open budget should be tighter than modal-submit")
	}
	if ResponseModalSubmit.budget() >= ResponseReply.budget() {
		t.Error("modal-submit budget should be tighter than reply")
	}
	if ResponseReply.budget() != ReplyBudget {
		t.Errorf("reply budget = %v, want %v", ResponseReply.budget(), ReplyBudget)
	}
}
