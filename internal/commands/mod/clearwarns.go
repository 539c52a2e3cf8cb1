// Package mod - /mod clearwarns command
package mod

import (
	"fmt"

	"github.com/AmparoStudios/AmparoBotGo/internal/modlog"
	"github.com/AmparoStudios/AmparoBotGo/internal/warnings"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyas advertencias se eliminarán",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).RequiresDatabase()
}

func clearWarnsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	go func() {
		defer errors.RecoverMiddleware()()

		guildID := ctx.Interaction.GuildID
		count, err := warnings.Get().ClearWarnings(guildID, user.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error en ClearWarns: %v", err), "CMD-ClearWarns")
			ctx.ReplyEphemeral("❌ No se pudieron eliminar las advertencias.")
			return
		}

		modlog.GetAudit().LogAction(guildID, "warns_clear", fmt.Sprintf("%d advertencias activas eliminadas", count), ctx.User().ID, user.ID)

		ctx.Reply(fmt.Sprintf("🧹 Se eliminó el historial de advertencias de **%s** (%d activas).", user.Username, count))
	}()

	return nil
}
