// Package mod - /mod export command
package mod

import (
	"bytes"
	"fmt"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/internal/warnings"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createExportCommand creates the /mod export subcommand
func createExportCommand() *discord.Command {
	return discord.NewCommand(
		"export",
		"Exporta las advertencias del servidor como JSON",
		"mod",
		exportHandler,
	).WithUserPermissions(discordgo.PermissionAdministrator).RequiresDatabase()
}

func exportHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		guildID := ctx.Interaction.GuildID

		if err := ctx.Defer(); err != nil {
			logger.Error(fmt.Sprintf("Error en defer de export: %v", err), "CMD-Export")
			return
		}

		data, err := warnings.Get().ExportWarnings(guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error exportando advertencias: %v", err), "CMD-Export")
			ctx.EditReply("❌ No se pudo generar la exportación.")
			return
		}

		stats, err := warnings.Get().Stats(guildID)
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudieron calcular las estadísticas: %v", err), "CMD-Export")
		}

		content := fmt.Sprintf(
			"📦 Exportación de advertencias lista.\n> 👥 Usuarios con advertencias: %d\n> ⚠️ Advertencias activas: %d de %d\n> ⚖️ Apelaciones pendientes: %d",
			stats.WarnedUsers, stats.ActiveWarns, stats.TotalWarns, stats.PendingAppeals,
		)
		filename := fmt.Sprintf("warns-%s-%d.json", guildID, time.Now().Unix())
		_, err = ctx.Session.InteractionResponseEdit(ctx.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Files: []*discordgo.File{{
				Name:        filename,
				ContentType: "application/json",
				Reader:      bytes.NewReader(data),
			}},
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error enviando exportación: %v", err), "CMD-Export")
		}
	}()

	return nil
}
