package appeals

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
)

func TestValidateRating(t *testing.T) {
	for _, raw := range []string{"1", "2", "3", "4", "5"} {
		if _, err := ValidateRating(raw); err != nil {
			t.Errorf("ValidateRating(%q) error: %v", raw, err)
		}
	}
	for _, raw := range []string{"", "0", "6", "-1", "cinco", "3.5", " 3"} {
		if _, err := ValidateRating(raw); err == nil {
			t.Errorf("ValidateRating(%q) accepted, want error", raw)
		}
	}
}

// TestFeedbackStoreCap verifies the append-only log evicts its oldest
// entries once the cap is exceeded.
func TestFeedbackStoreCap(t *testing.T) {
	store := NewFeedbackStore(&memFeedbackRepo{})

	total := models.MaxFeedbackEntries + 50
	for i := 0; i < total; i++ {
		err := store.Append(models.FeedbackEntry{ID: fmt.Sprintf("e%d", i), Rating: 3})
		if err != nil {
			t.Fatalf("Append failed at %d: %v", i, err)
		}
	}

	entries, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(entries) != models.MaxFeedbackEntries {
		t.Fatalf("log holds %d entries, want %d", len(entries), models.MaxFeedbackEntries)
	}
	// The oldest 50 must be gone, the newest must survive
	if entries[0].ID != "e50" {
		t.Errorf("oldest surviving entry = %s, want e50", entries[0].ID)
	}
	if entries[len(entries)-1].ID != fmt.Sprintf("e%d", total-1) {
		t.Errorf("newest entry = %s, want e%d", entries[len(entries)-1].ID, total-1)
	}
}

func TestFeedbackStoreRecentLimit(t *testing.T) {
	store := NewFeedbackStore(&memFeedbackRepo{})
	for i := 0; i < 5; i++ {
		store.Append(models.FeedbackEntry{ID: fmt.Sprintf("e%d", i)})
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e3" || entries[1].ID != "e4" {
		t.Errorf("Recent(2) = %+v, want [e3 e4]", entries)
	}
}

func TestFeedbackButtonRejectsOtherUser(t *testing.T) {
	e := testEngine(&fakeStore{}, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "intruder"
	intent := Intent{Kind: IntentFeedbackButton, GuildID: "g1", AppealID: "a1", UserID: "victim"}
	e.HandleFeedbackButton(meta, intent, r)

	if len(r.modals) != 0 {
		t.Error("feedback modal opened for the wrong user")
	}
	if !strings.Contains(r.lastReply(), "no es para ti") {
		t.Errorf("reply = %q, want ownership rejection", r.lastReply())
	}
}

func TestFeedbackModalBadRatingIsRetryable(t *testing.T) {
	e := testEngine(&fakeStore{}, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentFeedbackModal, GuildID: "g1", AppealID: "a1", UserID: "victim"}
	e.HandleFeedbackModal(liveMeta(), intent, "diez", "todo bien", "", r)

	if !strings.Contains(r.lastReply(), "Inténtalo de nuevo") {
		t.Errorf("reply = %q, want retryable error", r.lastReply())
	}

	entries, _ := e.Feedback.Recent(0)
	if len(entries) != 0 {
		t.Error("invalid rating still appended to the log")
	}
}

func TestFeedbackModalAppendsAndForwards(t *testing.T) {
	sentCh := make(chan struct{}, 1)
	platform := &fakePlatform{snapshot: GuildSnapshot{Name: "Servidor"}, sentCh: sentCh}
	resolver := &fakeResolver{channelID: "modlog", ok: true}
	sink := &fakeSink{}
	e := testEngine(&fakeStore{}, platform, resolver, sink)
	r := &fakeResponder{}

	intent := Intent{Kind: IntentFeedbackModal, GuildID: "g1", AppealID: "a1", UserID: "victim"}
	e.HandleFeedbackModal(liveMeta(), intent, "4", "rápido y claro", "nada", r)

	if !strings.Contains(r.lastReply(), "Gracias") {
		t.Errorf("reply = %q, want thanks", r.lastReply())
	}

	entries, err := e.Feedback.Recent(0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("log entries = %d (err %v), want 1", len(entries), err)
	}
	got := entries[0]
	if got.Rating != 4 || got.GuildName != "Servidor" || got.AppealID != "a1" {
		t.Errorf("entry = %+v", got)
	}

	if !sink.has("feedback_submitted") {
		t.Error("feedback_submitted event not published")
	}

	// Summary forwarded to the modlog channel, best-effort
	select {
	case <-sentCh:
	case <-time.After(2 * time.Second):
		t.Fatal("feedback summary never forwarded")
	}
}
