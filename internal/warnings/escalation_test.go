package warnings

import (
	"testing"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
)

func addWarns(t *testing.T, s *Store, guildID, userID string, n int) []*models.Warn {
	t.Helper()
	out := make([]*models.Warn, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, addWarn(t, s, guildID, userID))
	}
	return out
}

func TestEvaluateEscalationThresholds(t *testing.T) {
	tests := []struct {
		active   int
		action   EscalationAction
		duration time.Duration
	}{
		{0, EscalateNone, 0},
		{2, EscalateNone, 0},
		{3, EscalateTimeout, time.Hour},
		{4, EscalateTimeout, time.Hour},
		{5, EscalateTimeout, 24 * time.Hour},
		{6, EscalateTimeout, 24 * time.Hour},
		{7, EscalateKick, 0},
		{9, EscalateKick, 0},
		{10, EscalateBan, 0},
		{12, EscalateBan, 0},
	}

	for _, tt := range tests {
		s, _ := testStore()
		addWarns(t, s, "g1", "u1", tt.active)

		esc, err := s.EvaluateEscalation("g1", "u1")
		if err != nil {
			t.Fatalf("EvaluateEscalation(%d warns) error: %v", tt.active, err)
		}
		if esc.Action != tt.action {
			t.Errorf("%d warns: Action = %s, want %s", tt.active, esc.Action, tt.action)
		}
		if esc.Duration != tt.duration {
			t.Errorf("%d warns: Duration = %v, want %v", tt.active, esc.Duration, tt.duration)
		}
		if esc.Count != tt.active {
			t.Errorf("%d warns: Count = %d", tt.active, esc.Count)
		}
	}
}

// TestEvaluateEscalationIgnoresInactive verifies removed and expired warns
// don't count toward the ladder.
func TestEvaluateEscalationIgnoresInactive(t *testing.T) {
	s, _ := testStore()
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	warns := addWarns(t, s, "g1", "u1", 3)
	s.RemoveWarning("g1", "u1", warns[0].ID, "mod1")

	// Añadir una que caduque y dejar que caduque
	s.AddWarning("g1", "u1", "Advertencia con caducidad de prueba", models.SeverityMinor, "mod1", time.Minute)
	now = now.Add(time.Hour)

	esc, err := s.EvaluateEscalation("g1", "u1")
	if err != nil {
		t.Fatalf("EvaluateEscalation error: %v", err)
	}
	if esc.Action != EscalateNone {
		t.Errorf("Action = %s with 2 active warns, want none", esc.Action)
	}
	if esc.Count != 2 {
		t.Errorf("Count = %d, want 2", esc.Count)
	}
}
