package models

// GuildSettings representa la configuración por servidor
type GuildSettings struct {
	GuildID string `bson:"guildId" json:"guildId"`
	// ModLogChannelID es el canal donde se publican apelaciones y auditoría.
	// Vacío significa "sin configurar": las apelaciones se registran pero
	// nunca llegan a los moderadores.
	ModLogChannelID string `bson:"modLogChannelId,omitempty" json:"modLogChannelId,omitempty"`
}
