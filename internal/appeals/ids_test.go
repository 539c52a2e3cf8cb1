package appeals

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

// TestNewAppealIDFormat verifies the <KIND>_<epoch-ms>_<9 base36 chars> shape.
func TestNewAppealIDFormat(t *testing.T) {
	for _, kind := range []string{KindWarnAppeal, KindTimeoutAppeal} {
		id := NewAppealID(kind)

		if !strings.HasPrefix(id, kind+"_") {
			t.Fatalf("NewAppealID(%s) = %q, missing kind prefix", kind, id)
		}

		rest := strings.TrimPrefix(id, kind+"_")
		parts := strings.Split(rest, "_")
		if len(parts) != 2 {
			t.Fatalf("NewAppealID(%s) = %q, want exactly two suffix segments", kind, id)
		}

		ms, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			t.Fatalf("timestamp segment %q is not numeric: %v", parts[0], err)
		}
		now := time.Now().UnixMilli()
		if ms < now-60_000 || ms > now+60_000 {
			t.Errorf("timestamp %d too far from now %d", ms, now)
		}

		if len(parts[1]) != 9 {
			t.Errorf("random segment %q has length %d, want 9", parts[1], len(parts[1]))
		}
		for _, c := range parts[1] {
			if !strings.ContainsRune(idCharset, c) {
				t.Errorf("random segment contains %q outside base36 charset", c)
			}
		}
	}
}

// TestNewAppealIDUniqueness generates a batch and checks for collisions.
func TestNewAppealIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10_000; i++ {
		id := NewAppealID(KindWarnAppeal)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate appeal ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
