// Package modlog resuelve el canal de moderación configurado por servidor y
// registra acciones de moderación en la colección de auditoría.
package modlog

import (
	"fmt"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Resolver resuelve y administra el canal de moderación por servidor
type Resolver struct {
	dm *database.DataManager[models.GuildSettings]
}

var (
	resolverInstance *Resolver
	resolverOnce     sync.Once
)

// Init configura el resolver global sobre el DataManager de guild_settings
func Init() *Resolver {
	resolverOnce.Do(func() {
		resolverInstance = &Resolver{dm: database.GlobalGuildSettingsDM}
		logger.System("Resolver de canal de moderación inicializado", "ModLog")
	})
	return resolverInstance
}

// Get devuelve el resolver global
func Get() *Resolver {
	if resolverInstance == nil {
		panic("modlog: resolver not initialized, call Init first")
	}
	return resolverInstance
}

// ModLogChannel devuelve el canal configurado para un servidor. El segundo
// valor es falso cuando no hay canal configurado.
func (r *Resolver) ModLogChannel(guildID string) (string, bool) {
	settings, err := r.dm.Get(bson.M{"guildId": guildID})
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer la configuración del servidor %s: %v", guildID, err), "ModLog")
		return "", false
	}
	if settings == nil || settings.ModLogChannelID == "" {
		return "", false
	}
	return settings.ModLogChannelID, true
}

// SetModLogChannel guarda el canal de moderación de un servidor. Un canal
// vacío lo desconfigura.
func (r *Resolver) SetModLogChannel(guildID, channelID string) error {
	_, err := r.dm.Set(bson.M{"guildId": guildID}, models.GuildSettings{
		GuildID:         guildID,
		ModLogChannelID: channelID,
	})
	return err
}

// Audit registra acciones de moderación. Los fallos de escritura se tragan
// tras loguearse: la auditoría nunca bloquea el flujo principal.
type Audit struct {
	dm  *database.DataManager[models.AuditEntry]
	now func() time.Time
}

var (
	auditInstance *Audit
	auditOnce     sync.Once
)

// InitAudit configura el registrador de auditoría global
func InitAudit() *Audit {
	auditOnce.Do(func() {
		auditInstance = &Audit{dm: database.GlobalAuditDM, now: time.Now}
	})
	return auditInstance
}

// GetAudit devuelve el registrador de auditoría global
func GetAudit() *Audit {
	if auditInstance == nil {
		panic("modlog: audit not initialized, call InitAudit first")
	}
	return auditInstance
}

// LogAction persiste una entrada de auditoría, best-effort
func (a *Audit) LogAction(guildID, action, detail, moderatorID, subjectID string) {
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		GuildID:   guildID,
		Action:    action,
		Moderator: moderatorID,
		Subject:   subjectID,
		Detail:    detail,
		Timestamp: a.now().UnixMilli(),
	}
	if _, err := a.dm.Set(bson.M{"id": entry.ID}, entry); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo registrar la acción '%s' en auditoría: %v", action, err), "ModLog")
	}
}

// RecentActions devuelve las últimas entradas de auditoría de un servidor
func (a *Audit) RecentActions(guildID string, limit int) ([]*models.AuditEntry, error) {
	entries, err := a.dm.GetAll(bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
