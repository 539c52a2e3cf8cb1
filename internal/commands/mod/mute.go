// Package mod - /mod mute command
package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/internal/modlog"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario temporalmente",
		"mod",
		muteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duracion",
			Description: "Duración en minutos",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    40320, // 28 days max
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

// muteHandler handles the /mod mute command
func muteHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	duration := ctx.GetIntOption("duracion")
	if duration < 1 {
		return ctx.ReplyEphemeral("❌ La duración debe ser al menos 1 minuto.")
	}

	reason := ctx.GetStringOption("razon")
	if reason == "" {
		reason = "Sin razón especificada"
	}

	// Calculate timeout until
	timeoutUntil := time.Now().Add(time.Duration(duration) * time.Minute)

	// Apply timeout (mute)
	err := ctx.Session.GuildMemberTimeout(
		ctx.Interaction.GuildID,
		user.ID,
		&timeoutUntil,
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al silenciar: %v", err))
	}

	guildID := ctx.Interaction.GuildID
	violationID := "to-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	modlog.GetAudit().LogAction(guildID, "mute", fmt.Sprintf("%s (%d min, %s)", reason, duration, violationID), ctx.User().ID, user.ID)

	// MD con botón de apelación, best-effort
	go func() {
		defer errors.RecoverMiddleware()()

		guildName := guildID
		if g := ctx.Guild(); g != nil {
			guildName = g.Name
		}
		embedDM := &discordgo.MessageEmbed{
			Title: "🔇 - Has sido silenciado",
			Color: 0xFF0000,
			Description: fmt.Sprintf(
				"⚒ - **Servidor:** %s\n📄 - **Razón:** %s\n🕒 - **Hasta:** <t:%d:F>\n\n"+
					"Si crees que este silencio es injusto, puedes apelarlo con el botón de abajo.",
				guildName, reason, timeoutUntil.Unix(),
			),
			Footer:    &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		components := []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Label:    "Apelar silencio",
					Style:    discordgo.PrimaryButton,
					Emoji:    &discordgo.ComponentEmoji{Name: "⚖️"},
					CustomID: appeals.AppealButtonID(appeals.TargetTimeout, guildID, violationID, user.ID),
				},
			}},
		}
		userChannel, err := ctx.Session.UserChannelCreate(user.ID)
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudo abrir MD con %s: %v", user.ID, err), "CMD-Mute")
			return
		}
		_, err = ctx.Session.ChannelMessageSendComplex(userChannel.ID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embedDM},
			Components: components,
		})
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudo enviar MD de silencio a %s: %v", user.ID, err), "CMD-Mute")
		}
	}()

	return ctx.Reply(fmt.Sprintf("🔇 **%s** ha sido silenciado por %d minutos.\n**Razón:** %s",
		user.Username,
		duration,
		reason,
	))
}
