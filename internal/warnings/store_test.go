package warnings

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
)

// memRepo guarda los documentos en memoria copiándolos en cada operación,
// como haría un driver real.
type memRepo struct {
	mu   sync.Mutex
	docs map[string]*models.WarnsDocument
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[string]*models.WarnsDocument)}
}

func key(guildID, userID string) string { return guildID + "/" + userID }

func copyDoc(doc *models.WarnsDocument) *models.WarnsDocument {
	out := *doc
	out.Warns = make([]models.Warn, len(doc.Warns))
	copy(out.Warns, doc.Warns)
	return &out
}

func (r *memRepo) Load(guildID, userID string) (*models.WarnsDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key(guildID, userID)]
	if !ok {
		return nil, nil
	}
	return copyDoc(doc), nil
}

func (r *memRepo) Save(doc *models.WarnsDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key(doc.GuildID, doc.UserID)] = copyDoc(doc)
	return nil
}

func (r *memRepo) LoadGuild(guildID string) ([]*models.WarnsDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.WarnsDocument
	for _, doc := range r.docs {
		if doc.GuildID == guildID {
			out = append(out, copyDoc(doc))
		}
	}
	return out, nil
}

func (r *memRepo) Delete(guildID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, key(guildID, userID))
	return nil
}

func testStore() (*Store, *memRepo) {
	repo := newMemRepo()
	return NewStore(repo), repo
}

func addWarn(t *testing.T, s *Store, guildID, userID string) *models.Warn {
	t.Helper()
	warn, err := s.AddWarning(guildID, userID, "Spam repetido en varios canales", models.SeverityMinor, "mod1", 0)
	if err != nil {
		t.Fatalf("AddWarning error: %v", err)
	}
	return warn
}

func TestAddWarning(t *testing.T) {
	s, _ := testStore()

	warn := addWarn(t, s, "g1", "u1")
	if !strings.HasPrefix(warn.ID, "warn-") {
		t.Errorf("warn ID = %q, want warn- prefix", warn.ID)
	}
	if warn.Moderator != "mod1" || warn.Severity != models.SeverityMinor {
		t.Errorf("warn = %+v", warn)
	}
	if warn.ExpiresAt != 0 {
		t.Errorf("ExpiresAt = %d for non-expiring warn, want 0", warn.ExpiresAt)
	}

	got, err := s.GetWarning("g1", "u1", warn.ID)
	if err != nil || got == nil {
		t.Fatalf("GetWarning = %v, %v", got, err)
	}
	if got.ID != warn.ID {
		t.Errorf("GetWarning ID = %s, want %s", got.ID, warn.ID)
	}
}

func TestAddWarningRejectsUnknownSeverity(t *testing.T) {
	s, _ := testStore()
	if _, err := s.AddWarning("g1", "u1", "razón", "catastrophic", "mod1", 0); err == nil {
		t.Error("unknown severity accepted")
	}
}

func TestWarningLazyExpiry(t *testing.T) {
	s, _ := testStore()
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	warn, err := s.AddWarning("g1", "u1", "Conducta hostil en el chat general", models.SeverityModerate, "mod1", time.Hour)
	if err != nil {
		t.Fatalf("AddWarning error: %v", err)
	}
	if warn.ExpiresAt != now.Add(time.Hour).UnixMilli() {
		t.Errorf("ExpiresAt = %d, want %d", warn.ExpiresAt, now.Add(time.Hour).UnixMilli())
	}

	now = now.Add(2 * time.Hour)
	got, err := s.GetWarning("g1", "u1", warn.ID)
	if err != nil || got == nil {
		t.Fatalf("GetWarning = %v, %v", got, err)
	}
	if !got.Expired {
		t.Error("warn not marked expired after its expiry instant")
	}
	if got.Active() {
		t.Error("expired warn still counts as active")
	}
}

func TestRemoveWarning(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")

	ok, err := s.RemoveWarning("g1", "u1", warn.ID, "mod2")
	if err != nil || !ok {
		t.Fatalf("RemoveWarning = %v, %v", ok, err)
	}

	// Removing again is a no-op
	ok, err = s.RemoveWarning("g1", "u1", warn.ID, "mod2")
	if err != nil || ok {
		t.Errorf("second RemoveWarning = %v, %v, want false", ok, err)
	}

	got, _ := s.GetWarning("g1", "u1", warn.ID)
	if !got.Removed {
		t.Error("warn not marked removed")
	}
}

func TestClearWarnings(t *testing.T) {
	s, _ := testStore()
	addWarn(t, s, "g1", "u1")
	w2 := addWarn(t, s, "g1", "u1")
	s.RemoveWarning("g1", "u1", w2.ID, "mod1")

	active, err := s.ClearWarnings("g1", "u1")
	if err != nil {
		t.Fatalf("ClearWarnings error: %v", err)
	}
	if active != 1 {
		t.Errorf("ClearWarnings active count = %d, want 1", active)
	}

	warns, _ := s.GetUserWarnings("g1", "u1")
	if len(warns) != 0 {
		t.Errorf("%d warns remain after clear", len(warns))
	}
}

func TestAppealWarning(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")

	res := s.AppealWarning("g1", "u1", warn.ID, "No fui yo, mi cuenta estuvo comprometida ese día", "captura.png")
	if !res.Success {
		t.Fatalf("AppealWarning failed: %s", res.Message)
	}
	if res.Warning.AppealStatus != models.AppealPending {
		t.Errorf("AppealStatus = %s, want pending", res.Warning.AppealStatus)
	}
	if res.Warning.AppealReason == "" || res.Warning.AppealEvidence != "captura.png" {
		t.Errorf("appeal fields not recorded: %+v", res.Warning)
	}

	// A second appeal over the same warn is rejected
	res = s.AppealWarning("g1", "u1", warn.ID, "otra razón cualquiera de longitud válida", "")
	if res.Success {
		t.Error("duplicate appeal accepted")
	}
	if !strings.Contains(res.Message, "Ya existe") {
		t.Errorf("Message = %q, want duplicate notice", res.Message)
	}
}

func TestAppealWarningEdgeCases(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")
	s.RemoveWarning("g1", "u1", warn.ID, "mod1")

	if res := s.AppealWarning("g1", "u1", warn.ID, "razón", ""); res.Success {
		t.Error("appeal over a removed warn accepted")
	}
	if res := s.AppealWarning("g1", "u1", "warn-nope", "razón", ""); res.Success {
		t.Error("appeal over a missing warn accepted")
	}
	if res := s.AppealWarning("g1", "ghost", "warn-nope", "razón", ""); res.Success {
		t.Error("appeal for a user without records accepted")
	}
}

func TestProcessWarningAppealApprove(t *testing.T) {
	s, _ := testStore()
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	warn := addWarn(t, s, "g1", "u1")
	s.AppealWarning("g1", "u1", warn.ID, "Fue un malentendido, el mensaje era una cita", "")

	res := s.ProcessWarningAppeal("g1", "u1", warn.ID, "evidencia convincente", "mod9", true)
	if !res.Success {
		t.Fatalf("ProcessWarningAppeal failed: %s", res.Message)
	}
	w := res.Warning
	if w.AppealStatus != models.AppealApproved {
		t.Errorf("AppealStatus = %s, want approved", w.AppealStatus)
	}
	if !w.Removed {
		t.Error("approved appeal did not retire the warn")
	}
	if w.DecidedBy != "mod9" || w.DecisionNote != "evidencia convincente" || w.DecidedAt != now.UnixMilli() {
		t.Errorf("decision fields = %+v", w)
	}
}

func TestProcessWarningAppealDeny(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")
	s.AppealWarning("g1", "u1", warn.ID, "No estoy de acuerdo con esta advertencia", "")

	res := s.ProcessWarningAppeal("g1", "u1", warn.ID, "", "mod9", false)
	if !res.Success {
		t.Fatalf("ProcessWarningAppeal failed: %s", res.Message)
	}
	if res.Warning.AppealStatus != models.AppealDenied {
		t.Errorf("AppealStatus = %s, want denied", res.Warning.AppealStatus)
	}
	if res.Warning.Removed {
		t.Error("denied appeal retired the warn")
	}
}

func TestProcessWarningAppealFirstDecisionWins(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")
	s.AppealWarning("g1", "u1", warn.ID, "El contexto completo muestra que no hubo falta", "")

	first := s.ProcessWarningAppeal("g1", "u1", warn.ID, "", "modA", false)
	if !first.Success {
		t.Fatalf("first decision failed: %s", first.Message)
	}

	second := s.ProcessWarningAppeal("g1", "u1", warn.ID, "", "modB", true)
	if second.Success {
		t.Fatal("second decision succeeded")
	}
	if !strings.Contains(second.Message, "ya fue procesada") {
		t.Errorf("Message = %q, want already-processed", second.Message)
	}

	// The losing approve must not have altered the stored state
	got, _ := s.GetWarning("g1", "u1", warn.ID)
	if got.AppealStatus != models.AppealDenied || got.Removed {
		t.Errorf("stored warn after race = %+v", got)
	}
}

func TestProcessWarningAppealConcurrent(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")
	s.AppealWarning("g1", "u1", warn.ID, "Decisión concurrente de varios moderadores", "")

	const mods = 16
	var wg sync.WaitGroup
	wins := make(chan bool, mods)
	for i := 0; i < mods; i++ {
		approve := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := s.ProcessWarningAppeal("g1", "u1", warn.ID, "", "mod", approve)
			if res.Success {
				wins <- approve
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
		t.Errorf("%d concurrent decisions succeeded, want exactly 1", got)
	}
}

func TestProcessWarningAppealRequiresPending(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")

	res := s.ProcessWarningAppeal("g1", "u1", warn.ID, "", "mod1", true)
	if res.Success {
		t.Error("decision over a never-appealed warn succeeded")
	}
	if !strings.Contains(res.Message, "pendiente") {
		t.Errorf("Message = %q, want no-pending-appeal notice", res.Message)
	}
}

func TestEditWarning(t *testing.T) {
	s, _ := testStore()
	warn := addWarn(t, s, "g1", "u1")

	ok, err := s.EditWarning("g1", "u1", warn.ID, "Razón corregida tras revisar el historial")
	if err != nil || !ok {
		t.Fatalf("EditWarning = %v, %v", ok, err)
	}
	got, _ := s.GetWarning("g1", "u1", warn.ID)
	if got.Reason != "Razón corregida tras revisar el historial" {
		t.Errorf("Reason = %q", got.Reason)
	}
}
