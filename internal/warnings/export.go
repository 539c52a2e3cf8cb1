package warnings

import (
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	json "github.com/goccy/go-json"
)

// GuildStats resume el estado de las advertencias de un servidor
type GuildStats struct {
	TotalWarns     int `json:"totalWarns"`
	ActiveWarns    int `json:"activeWarns"`
	WarnedUsers    int `json:"warnedUsers"`
	PendingAppeals int `json:"pendingAppeals"`
	Approved       int `json:"approvedAppeals"`
	Denied         int `json:"deniedAppeals"`
}

// guildExport es el documento serializado que produce ExportWarnings
type guildExport struct {
	GuildID    string                 `json:"guildId"`
	ExportedAt time.Time              `json:"exportedAt"`
	Users      []models.WarnsDocument `json:"users"`
}

// Stats recorre los documentos de un servidor y calcula los contadores
func (s *Store) Stats(guildID string) (GuildStats, error) {
	docs, err := s.repo.LoadGuild(guildID)
	if err != nil {
		return GuildStats{}, err
	}
	var stats GuildStats
	for _, doc := range docs {
		if len(doc.Warns) == 0 {
			continue
		}
		stats.WarnedUsers++
		for i := range doc.Warns {
			w := &doc.Warns[i]
			stats.TotalWarns++
			if w.Active() {
				stats.ActiveWarns++
			}
			switch w.AppealStatus {
			case models.AppealPending:
				stats.PendingAppeals++
			case models.AppealApproved:
				stats.Approved++
			case models.AppealDenied:
				stats.Denied++
			}
		}
	}
	return stats, nil
}

// ExportWarnings serializa todos los registros de un servidor como JSON,
// listo para adjuntar como archivo
func (s *Store) ExportWarnings(guildID string) ([]byte, error) {
	docs, err := s.repo.LoadGuild(guildID)
	if err != nil {
		return nil, err
	}
	export := guildExport{
		GuildID:    guildID,
		ExportedAt: s.now().UTC(),
		Users:      make([]models.WarnsDocument, 0, len(docs)),
	}
	for _, doc := range docs {
		export.Users = append(export.Users, *doc)
	}
	return json.MarshalIndent(export, "", "  ")
}
