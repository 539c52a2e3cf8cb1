// Package social - /social nivel and /social top commands
package social

import (
	"fmt"

	"github.com/AmparoStudios/AmparoBotGo/internal/levels"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createLevelCommand creates the /social nivel subcommand
func createLevelCommand() *discord.Command {
	return discord.NewCommand(
		"nivel",
		"Muestra tu nivel y XP en este servidor",
		"social",
		levelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar (por defecto tú)",
			Required:    false,
		},
	).RequiresDatabase()
}

func levelHandler(ctx *discord.CommandContext) error {
	target := ctx.GetUserOption("usuario")
	if target == nil {
		target = ctx.User()
	}

	doc, err := levels.Get().Progress(ctx.Interaction.GuildID, target.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error consultando nivel: %v", err), "CMD-Nivel")
		return ctx.ReplyEphemeral("❌ No se pudo consultar el nivel.")
	}

	next := levels.XPForLevel(doc.Level + 1)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Nivel de %s", target.Username),
		Description: fmt.Sprintf(
			"> 🏅 - **Nivel:** %d\n> ✨ - **XP:** %d / %d\n> 💬 - **Mensajes:** %d",
			doc.Level, doc.XP, next, doc.Messages,
		),
		Color:  0x3498db,
		Footer: &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
	}
	return ctx.ReplyEmbed(embed)
}

// createTopCommand creates the /social top subcommand
func createTopCommand() *discord.Command {
	return discord.NewCommand(
		"top",
		"Muestra los usuarios con más XP del servidor",
		"social",
		topHandler,
	).RequiresDatabase()
}

func topHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		docs, err := levels.Get().Top(ctx.Interaction.GuildID, 10)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando top: %v", err), "CMD-Top")
			ctx.ReplyEphemeral("❌ No se pudo consultar la clasificación.")
			return
		}
		if len(docs) == 0 {
			ctx.ReplyEphemeral("ℹ️ Todavía no hay progreso registrado en este servidor.")
			return
		}

		medals := []string{"🥇", "🥈", "🥉"}
		var description string
		for i, doc := range docs {
			rank := fmt.Sprintf("**%d.**", i+1)
			if i < len(medals) {
				rank = medals[i]
			}
			description += fmt.Sprintf("%s <@%s> · Nivel %d (%d XP)\n", rank, doc.UserID, doc.Level, doc.XP)
		}

		embed := &discordgo.MessageEmbed{
			Title:       "🏆 Clasificación del servidor",
			Description: description,
			Color:       0xFFD700,
			Footer:      &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
		}
		ctx.ReplyEmbed(embed)
	}()

	return nil
}
