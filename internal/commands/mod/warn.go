// Package mod - /mod warn command
package mod

import (
	"fmt"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/internal/modlog"
	"github.com/AmparoStudios/AmparoBotGo/internal/warnings"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia (20 a 500 caracteres)",
			Required:    true,
			MinLength:   func() *int { v := appeals.WarnReasonMin; return &v }(),
			MaxLength:   appeals.WarnReasonMax,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "gravedad",
			Description: "Gravedad de la advertencia",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Leve", Value: string(models.SeverityMinor)},
				{Name: "Moderada", Value: string(models.SeverityModerate)},
				{Name: "Grave", Value: string(models.SeveritySevere)},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caducidad",
			Description: "Días hasta que la advertencia caduque (0 = permanente)",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
			MaxValue:    365,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	if user.Bot {
		return ctx.ReplyEphemeral("❌ No puedes advertir a un bot.")
	}

	reason := ctx.GetStringOption("razon")
	// Discord ya aplica los límites del formulario, pero los clientes no
	// oficiales pueden saltárselos
	if len(reason) < appeals.WarnReasonMin || len(reason) > appeals.WarnReasonMax {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ La razón debe tener entre %d y %d caracteres.", appeals.WarnReasonMin, appeals.WarnReasonMax))
	}

	severity := models.WarnSeverity(ctx.GetStringOption("gravedad"))
	if severity == "" {
		severity = models.SeverityModerate
	}
	if !severity.Valid() {
		return ctx.ReplyEphemeral("❌ Gravedad desconocida.")
	}

	expiryDays := ctx.GetIntOption("caducidad")
	var expiry time.Duration
	if expiryDays > 0 {
		expiry = time.Duration(expiryDays) * 24 * time.Hour
	}

	go func() {
		defer errors.RecoverMiddleware()()

		guildID := ctx.Interaction.GuildID
		warn, err := warnings.Get().AddWarning(guildID, user.ID, reason, severity, ctx.User().ID, expiry)
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando advertencia: %v", err), "CMD-Warn")
			ctx.ReplyEphemeral("❌ No se pudo guardar la advertencia. Intenta de nuevo más tarde.")
			return
		}

		modlog.GetAudit().LogAction(guildID, "warn_add", reason, ctx.User().ID, user.ID)

		// Confirmación al moderador
		embed := &discordgo.MessageEmbed{
			Title: "⚠️ Usuario advertido",
			Description: fmt.Sprintf(
				"> 👤 - **Usuario:** %s\n> 📄 - **Razón:** %s\n> 📶 - **Gravedad:** %s\n> 🆔 - **ID:** `%s`",
				user.Mention(), reason, severity, warn.ID,
			),
			Color:     0xFFA500,
			Footer:    &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if warn.ExpiresAt > 0 {
			embed.Description += fmt.Sprintf("\n> 🕒 - **Caduca:** <t:%d:F>", warn.ExpiresAt/1000)
		}
		if err := ctx.ReplyEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando confirmación de warn: %v", err), "CMD-Warn")
		}

		// MD al usuario con el botón de apelación
		sendWarnDM(ctx, user, warn, reason)

		// Escalada automática por acumulación
		applyEscalation(ctx, user)
	}()

	return nil
}

// sendWarnDM notifica al usuario por MD e incluye el botón para apelar
func sendWarnDM(ctx *discord.CommandContext, user *discordgo.User, warn *models.Warn, reason string) {
	guildName := ctx.Interaction.GuildID
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}

	embedDM := &discordgo.MessageEmbed{
		Title: "⚠️ - Has recibido una advertencia",
		Color: 0xFFA500,
		Description: fmt.Sprintf(
			"⚒ - **Servidor:** %s\n📄 - **Razón:** %s\n📶 - **Gravedad:** %s\n\n"+
				"Si crees que esta advertencia es injusta, puedes apelarla con el botón de abajo.",
			guildName, reason, warn.Severity,
		),
		Footer:    &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{
				Label:    "Apelar advertencia",
				Style:    discordgo.PrimaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "⚖️"},
				CustomID: appeals.AppealButtonID(appeals.TargetWarn, ctx.Interaction.GuildID, warn.ID, user.ID),
			},
		}},
	}

	userChannel, err := ctx.Session.UserChannelCreate(user.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo abrir MD con %s: %v", user.ID, err), "CMD-Warn")
		return
	}
	_, err = ctx.Session.ChannelMessageSendComplex(userChannel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embedDM},
		Components: components,
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar MD de advertencia a %s: %v", user.ID, err), "CMD-Warn")
	}
}

// applyEscalation evalúa la escalera de sanciones y aplica la que toque
func applyEscalation(ctx *discord.CommandContext, user *discordgo.User) {
	guildID := ctx.Interaction.GuildID
	esc, err := warnings.Get().EvaluateEscalation(guildID, user.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo evaluar la escalada para %s: %v", user.ID, err), "CMD-Warn")
		return
	}

	switch esc.Action {
	case warnings.EscalateTimeout:
		until := time.Now().Add(esc.Duration)
		if err := ctx.Session.GuildMemberTimeout(guildID, user.ID, &until); err != nil {
			logger.Warn(fmt.Sprintf("Fallo de timeout automático para %s: %v", user.ID, err), "CMD-Warn")
			return
		}
		modlog.GetAudit().LogAction(guildID, "escalation_timeout",
			fmt.Sprintf("%d advertencias activas, timeout de %s", esc.Count, esc.Duration), "", user.ID)
		_, _ = ctx.Session.ChannelMessageSend(ctx.Interaction.ChannelID,
			fmt.Sprintf("🔇 **%s** acumuló %d advertencias activas y fue silenciado automáticamente por %s.", user.Username, esc.Count, esc.Duration))

	case warnings.EscalateKick:
		if err := ctx.Session.GuildMemberDelete(guildID, user.ID); err != nil {
			logger.Warn(fmt.Sprintf("Fallo de expulsión automática para %s: %v", user.ID, err), "CMD-Warn")
			return
		}
		modlog.GetAudit().LogAction(guildID, "escalation_kick",
			fmt.Sprintf("%d advertencias activas", esc.Count), "", user.ID)
		_, _ = ctx.Session.ChannelMessageSend(ctx.Interaction.ChannelID,
			fmt.Sprintf("👢 **%s** acumuló %d advertencias activas y fue expulsado automáticamente.", user.Username, esc.Count))

	case warnings.EscalateBan:
		if err := ctx.Session.GuildBanCreateWithReason(guildID, user.ID, "Escalada automática por acumulación de advertencias", 0); err != nil {
			logger.Warn(fmt.Sprintf("Fallo de baneo automático para %s: %v", user.ID, err), "CMD-Warn")
			return
		}
		modlog.GetAudit().LogAction(guildID, "escalation_ban",
			fmt.Sprintf("%d advertencias activas", esc.Count), "", user.ID)
		_, _ = ctx.Session.ChannelMessageSend(ctx.Interaction.ChannelID,
			fmt.Sprintf("🔨 **%s** acumuló %d advertencias activas y fue baneado automáticamente.", user.Username, esc.Count))
	}
}
