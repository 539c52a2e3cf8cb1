package appeals

import (
	"strings"
	"testing"
)

// TestParseCustomIDRoundTrip verifies that every builder produces an ID the
// parser decodes back to the same intent.
func TestParseCustomIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Intent
	}{
		{
			name: "warn appeal button",
			id:   AppealButtonID(TargetWarn, "g1", "warn-abc", "u1"),
			want: Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "warn-abc", UserID: "u1"},
		},
		{
			name: "timeout appeal button",
			id:   AppealButtonID(TargetTimeout, "g1", "to-12345678", "u2"),
			want: Intent{Kind: IntentAppealButton, Target: TargetTimeout, GuildID: "g1", TargetID: "to-12345678", UserID: "u2"},
		},
		{
			name: "appeal modal",
			id:   AppealModalID(TargetWarn, "g1", "warn-abc", "u1", "WARN_APPEAL_1_xxxxxxxxx"),
			want: Intent{Kind: IntentAppealModal, Target: TargetWarn, GuildID: "g1", TargetID: "warn-abc", UserID: "u1", AppealID: "WARN_APPEAL_1_xxxxxxxxx"},
		},
		{
			name: "approve decision",
			id:   DecisionButtonID(true, TargetWarn, "g1", "warn-abc", "u1", "a1"),
			want: Intent{Kind: IntentDecisionButton, Approve: true, Target: TargetWarn, GuildID: "g1", TargetID: "warn-abc", UserID: "u1", AppealID: "a1"},
		},
		{
			name: "deny decision",
			id:   DecisionButtonID(false, TargetTimeout, "g1", "to-1", "u1", "a2"),
			want: Intent{Kind: IntentDecisionButton, Approve: false, Target: TargetTimeout, GuildID: "g1", TargetID: "to-1", UserID: "u1", AppealID: "a2"},
		},
		{
			name: "feedback button",
			id:   FeedbackButtonID("g1", "a1", "u1"),
			want: Intent{Kind: IntentFeedbackButton, GuildID: "g1", AppealID: "a1", UserID: "u1"},
		},
		{
			name: "feedback modal",
			id:   FeedbackModalID("g1", "a1", "u1"),
			want: Intent{Kind: IntentFeedbackModal, GuildID: "g1", AppealID: "a1", UserID: "u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCustomID(tt.id)
			if err != nil {
				t.Fatalf("ParseCustomID(%q) error: %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("ParseCustomID(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

// TestParseCustomIDFailsClosed verifies that malformed IDs are rejected with
// ErrBadCustomID instead of producing a partial intent.
func TestParseCustomIDFailsClosed(t *testing.T) {
	bad := []string{
		"",
		"appeal",
		"appeal|warn|g1|w1",              // missing user field
		"appeal|warn|g1|w1|u1|extra",     // extra field
		"appeal|banana|g1|w1|u1",         // unknown target kind
		"appeal|warn||w1|u1",             // empty guild
		"appealdec|maybe|warn|g|w|u|a",   // unknown verb
		"appealdec|approve|warn|g|w|u",   // missing appeal id
		"appealfb|close|g1|a1|u1",        // unknown feedback verb
		"appealfbmodal|g1|a1",            // missing user field
		"rolemenu|g1|r1",                 // foreign prefix
		"appealmodal|warn|g1|w1|u1",      // missing appeal id
		"appeal|warn|g1|w1|u1|",          // trailing empty field
	}

	for _, id := range bad {
		if _, err := ParseCustomID(id); err == nil {
			t.Errorf("ParseCustomID(%q) = nil error, want ErrBadCustomID", id)
		}
	}
}

// TestIsAppealCustomID verifies that only appeal-prefixed IDs are routed to
// the appeal subsystem.
func TestIsAppealCustomID(t *testing.T) {
	if !IsAppealCustomID("appeal|warn|g|w|u") {
		t.Error("appeal button ID not recognized")
	}
	if !IsAppealCustomID("appealfbmodal|g|a|u") {
		t.Error("feedback modal ID not recognized")
	}
	if IsAppealCustomID("rolemenu|g|r") {
		t.Error("foreign custom ID routed to appeals")
	}
}

// TestCustomIDFieldOrder pins the wire format so a reordering of builder
// fields breaks loudly.
func TestCustomIDFieldOrder(t *testing.T) {
	id := DecisionButtonID(true, TargetWarn, "g1", "w1", "u1", "a1")
	want := "appealdec|approve|warn|g1|w1|u1|a1"
	if id != want {
		t.Errorf("DecisionButtonID = %q, want %q", id, want)
	}
	if strings.Count(id, "|") != 6 {
		t.Errorf("DecisionButtonID has %d separators, want 6", strings.Count(id, "|"))
	}
}
