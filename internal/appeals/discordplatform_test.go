package appeals

import (
	"testing"
	"time"
)

func TestSnowflakeTime(t *testing.T) {
	// Snowflake 0 encodes the Discord epoch itself
	if got := SnowflakeTime("0"); got.UnixMilli() != discordEpoch {
		t.Errorf("SnowflakeTime(0) = %d ms, want %d", got.UnixMilli(), discordEpoch)
	}

	// 175928847299117063 es el ejemplo de la documentación de Discord:
	// 2016-04-30 11:18:25.796 UTC
	got := SnowflakeTime("175928847299117063").UTC()
	want := time.Date(2016, 4, 30, 11, 18, 25, 796_000_000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SnowflakeTime = %v, want %v", got, want)
	}
}

func TestSnowflakeTimeInvalid(t *testing.T) {
	for _, id := range []string{"", "abc", "-5"} {
		if got := SnowflakeTime(id); !got.IsZero() {
			t.Errorf("SnowflakeTime(%q) = %v, want zero time", id, got)
		}
	}
}
