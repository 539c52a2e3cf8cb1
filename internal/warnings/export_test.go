package warnings

import (
	"testing"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	json "github.com/goccy/go-json"
)

func TestGuildStats(t *testing.T) {
	s, _ := testStore()

	w1 := addWarn(t, s, "g1", "u1")
	addWarn(t, s, "g1", "u1")
	w3 := addWarn(t, s, "g1", "u2")
	addWarn(t, s, "otro", "u9") // otro servidor, no debe contar

	s.AppealWarning("g1", "u1", w1.ID, "Primera apelación pendiente de revisión", "")
	s.AppealWarning("g1", "u2", w3.ID, "Segunda apelación que será aprobada", "")
	s.ProcessWarningAppeal("g1", "u2", w3.ID, "", "mod1", true)

	stats, err := s.Stats("g1")
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	want := GuildStats{
		TotalWarns:     3,
		ActiveWarns:    2, // la aprobada quedó retirada
		WarnedUsers:    2,
		PendingAppeals: 1,
		Approved:       1,
	}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestExportWarnings(t *testing.T) {
	s, _ := testStore()
	addWarn(t, s, "g1", "u1")
	addWarn(t, s, "g1", "u2")

	data, err := s.ExportWarnings("g1")
	if err != nil {
		t.Fatalf("ExportWarnings error: %v", err)
	}

	var export struct {
		GuildID string                 `json:"guildId"`
		Users   []models.WarnsDocument `json:"users"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if export.GuildID != "g1" {
		t.Errorf("GuildID = %q, want g1", export.GuildID)
	}
	if len(export.Users) != 2 {
		t.Errorf("exported %d users, want 2", len(export.Users))
	}
	for _, doc := range export.Users {
		if len(doc.Warns) != 1 {
			t.Errorf("user %s exported %d warns, want 1", doc.UserID, len(doc.Warns))
		}
	}
}

func TestExportWarningsEmptyGuild(t *testing.T) {
	s, _ := testStore()
	data, err := s.ExportWarnings("vacío")
	if err != nil {
		t.Fatalf("ExportWarnings error: %v", err)
	}
	if !json.Valid(data) {
		t.Error("empty export is not valid JSON")
	}
}
