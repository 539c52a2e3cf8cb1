// Package config - /config modlog command
package config

import (
	"fmt"

	"github.com/AmparoStudios/AmparoBotGo/internal/modlog"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createModLogCommand creates the /config modlog subcommand
func createModLogCommand() *discord.Command {
	return discord.NewCommand(
		"modlog",
		"Configura el canal de moderación donde llegan las apelaciones",
		"config",
		modLogHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal",
			Description: "Canal de moderación (vacío para consultar el actual)",
			Required:    false,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).RequiresDatabase()
}

// modLogHandler handles the /config modlog command
func modLogHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	channel := ctx.GetChannelOption("canal")

	if channel == nil {
		current, ok := modlog.Get().ModLogChannel(guildID)
		if !ok {
			return ctx.ReplyEphemeral("ℹ️ Este servidor no tiene canal de moderación configurado. Las apelaciones se registran pero no llegan a los moderadores.")
		}
		return ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ El canal de moderación actual es <#%s>.", current))
	}

	if err := modlog.Get().SetModLogChannel(guildID, channel.ID); err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración. Intenta de nuevo más tarde.")
	}

	modlog.GetAudit().LogAction(guildID, "modlog_set", channel.ID, ctx.User().ID, "")
	return ctx.Reply(fmt.Sprintf("✅ Canal de moderación configurado: <#%s>. Las apelaciones pendientes se publicarán ahí.", channel.ID))
}
