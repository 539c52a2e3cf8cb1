package appeals

import (
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Platform es la capacidad estrecha que el motor necesita de Discord:
// nada de pasar la sesión completa por la lógica de negocio, así el flujo se
// prueba con fakes.
type Platform interface {
	// GuildSnapshot fetches the denormalized guild metadata for an appeal.
	GuildSnapshot(guildID string) (GuildSnapshot, error)
	// MemberTimedOut reports whether the user currently has an active timeout.
	MemberTimedOut(guildID, userID string) (bool, error)
	// RemoveTimeout lifts an active timeout so access is restored immediately.
	RemoveTimeout(guildID, userID string) error
	// HasModPermission reports whether the user holds ModerateMembers.
	HasModPermission(guildID, userID string) (bool, error)
	// SendEmbed posts an embed with optional components to a channel and
	// returns the new message id.
	SendEmbed(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error)
	// EditEmbed edits a message in place, replacing embed and components.
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error
	// SendDM sends a direct message, best-effort.
	SendDM(userID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error
}

// Responder responde a la interacción en curso
type Responder interface {
	ReplyEphemeral(content string) error
	ReplyEphemeralEmbed(embed *discordgo.MessageEmbed) error
	ShowModal(data *discordgo.InteractionResponseData) error
}

// WarningStore es el contrato que el motor consume del almacén de
// advertencias (internal/warnings lo implementa)
type WarningStore interface {
	GetWarning(guildID, userID, warnID string) (*models.Warn, error)
	AppealWarning(guildID, userID, warnID, reason, evidence string) StoreResult
	ProcessWarningAppeal(guildID, userID, warnID, note, moderatorID string, approve bool) StoreResult
}

// StoreResult es el resultado de una operación del almacén. Message está
// pensado para mostrarse tal cual al usuario cuando Success es falso.
type StoreResult struct {
	Success bool
	Message string
	Warning *models.Warn
}

// ModLogResolver resuelve el canal de moderación configurado por servidor.
// La ausencia significa "sin destino de fan-out", un no-op con aviso.
type ModLogResolver interface {
	ModLogChannel(guildID string) (string, bool)
}

// AuditLogger registra acciones de moderación, best-effort: los fallos se
// tragan y solo se loguean localmente.
type AuditLogger interface {
	LogAction(guildID, action, detail, moderatorID, subjectID string)
}

// EventSink recibe telemetría del ciclo de vida (MQTT, websocket del
// dashboard). Best-effort; puede ser nil.
type EventSink interface {
	Publish(event string, payload map[string]any)
}
