package levels

import "testing"

func TestXPForLevel(t *testing.T) {
	if got := XPForLevel(0); got != 0 {
		t.Errorf("XPForLevel(0) = %d, want 0", got)
	}
	if got := XPForLevel(-3); got != 0 {
		t.Errorf("XPForLevel(-3) = %d, want 0", got)
	}
	if got := XPForLevel(1); got != 100 {
		t.Errorf("XPForLevel(1) = %d, want 100", got)
	}
	// 100 * 4^1.5 = 800
	if got := XPForLevel(4); got != 800 {
		t.Errorf("XPForLevel(4) = %d, want 800", got)
	}

	// La curva debe ser estrictamente creciente
	prev := int64(-1)
	for level := 0; level <= 50; level++ {
		xp := XPForLevel(level)
		if xp <= prev && level > 0 {
			t.Fatalf("XPForLevel(%d) = %d no crece sobre %d", level, xp, prev)
		}
		prev = xp
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{281, 1}, // XPForLevel(2) = 282
		{282, 2},
		{799, 3},
		{800, 4},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

// TestLevelRoundTrip verifies the two functions agree: reaching exactly the
// XP for a level yields that level.
func TestLevelRoundTrip(t *testing.T) {
	for level := 1; level <= 30; level++ {
		xp := XPForLevel(level)
		if got := LevelForXP(xp); got != level {
			t.Errorf("LevelForXP(XPForLevel(%d)) = %d", level, got)
		}
		if got := LevelForXP(xp - 1); got != level-1 {
			t.Errorf("LevelForXP(XPForLevel(%d)-1) = %d, want %d", level, got, level-1)
		}
	}
}
