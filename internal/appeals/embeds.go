package appeals

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Límites de los campos del formulario. Las apelaciones de advertencias
// exigen más detalle que las de timeout; la asimetría viene de los distintos
// contextos de severidad.
const (
	WarnReasonMin    = 20
	WarnReasonMax    = 500
	TimeoutReasonMin = 10
	TimeoutReasonMax = 1000
	EvidenceMax      = 500
)

// Marcadores terminales escritos en el título del embed del mensaje de
// decisión. Son para humanos; el guard de idempotencia real es el estado de
// la apelación en el almacén.
const (
	ApprovedMarker = "APROBADA"
	DeniedMarker   = "DENEGADA"
)

const embedFooter = "💫 - Developed by AmparoStudios"

const (
	colorPending  = 0xFFA500 // Orange
	colorApproved = 0x00FF00 // Green
	colorDenied   = 0xFF0000 // Red
	colorInfo     = 0x3498db // Blue
)

// appealModalData builds the modal shown when the appeal button is pressed.
func appealModalData(intent Intent, appealID string) *discordgo.InteractionResponseData {
	reasonMin, reasonMax := WarnReasonMin, WarnReasonMax
	title := "Apelar advertencia"
	if intent.Target == TargetTimeout {
		reasonMin, reasonMax = TimeoutReasonMin, TimeoutReasonMax
		title = "Apelar timeout"
	}

	return &discordgo.InteractionResponseData{
		CustomID: AppealModalID(intent.Target, intent.GuildID, intent.TargetID, intent.UserID, appealID),
		Title:    title,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID:    "reason",
					Label:       "¿Por qué debería anularse esta sanción?",
					Style:       discordgo.TextInputParagraph,
					Required:    true,
					MinLength:   reasonMin,
					MaxLength:   reasonMax,
					Placeholder: "Explica tu versión de los hechos...",
				},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID:    "evidence",
					Label:       "Evidencia (opcional)",
					Style:       discordgo.TextInputParagraph,
					Required:    false,
					MaxLength:   EvidenceMax,
					Placeholder: "Enlaces a mensajes, capturas, etc.",
				},
			}},
		},
	}
}

// confirmationEmbed is the ephemeral ack sent to the user after a successful
// submission, echoing the server context and a truncated copy of their text.
func confirmationEmbed(rec *AppealRecord, reason, evidence string) *discordgo.MessageEmbed {
	desc := fmt.Sprintf(
		"Tu apelación ha sido registrada y enviada a los moderadores de **%s**.\n\n"+
			"> 📄 - **Razón:** %s\n",
		rec.Guild.Name, truncate(reason, 200),
	)
	if evidence != "" {
		desc += fmt.Sprintf("> 🔎 - **Evidencia:** %s\n", truncate(evidence, 150))
	}
	desc += fmt.Sprintf("> 🆔 - **Apelación:** `%s`\n> 🕒 - **Fecha:** <t:%d:F>", rec.AppealID, time.Now().Unix())

	return &discordgo.MessageEmbed{
		Title:       "📨 Apelación enviada",
		Description: desc,
		Color:       colorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// fanoutEmbed is the moderator-facing embed posted to the mod-log channel.
// It carries enough data to reconstruct a decision even if the in-memory
// appeal record is lost to a restart.
func fanoutEmbed(rec *AppealRecord, reason, evidence string) *discordgo.MessageEmbed {
	kind := "Advertencia"
	if rec.Target == TargetTimeout {
		kind = "Timeout"
	}

	desc := fmt.Sprintf(
		"> 👤 - **Usuario:** <@%s> (%s)\n"+
			"> ⚒ - **Sanción:** %s `%s`\n"+
			"> 📄 - **Razón de la apelación:**\n%s\n",
		rec.UserID, rec.UserID, kind, rec.TargetID, truncate(reason, 800),
	)
	if evidence != "" {
		desc += fmt.Sprintf("> 🔎 - **Evidencia:**\n%s\n", truncate(evidence, 400))
	}
	desc += fmt.Sprintf("> 🆔 - **Apelación:** `%s`", rec.AppealID)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚖️ Apelación pendiente: %s", kind),
		Description: desc,
		Color:       colorPending,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if rec.Guild.Name != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "🏠 Servidor", Value: fmt.Sprintf("%s (%d miembros)", rec.Guild.Name, rec.Guild.MemberCount), Inline: true},
			{Name: "👑 Owner", Value: fmt.Sprintf("<@%s>", rec.Guild.OwnerID), Inline: true},
		}
	}
	return embed
}

// decisionButtons son los controles Aprobar/Denegar/Feedback del fan-out
func decisionButtons(rec *AppealRecord) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{
				Label:    "Aprobar",
				Style:    discordgo.SuccessButton,
				CustomID: DecisionButtonID(true, rec.Target, rec.GuildID, rec.TargetID, rec.UserID, rec.AppealID),
			},
			&discordgo.Button{
				Label:    "Denegar",
				Style:    discordgo.DangerButton,
				CustomID: DecisionButtonID(false, rec.Target, rec.GuildID, rec.TargetID, rec.UserID, rec.AppealID),
			},
		}},
	}
}

// terminalEmbed rewrites the fan-out embed into its APROBADA/DENEGADA state.
func terminalEmbed(original *discordgo.MessageEmbed, approved bool, moderatorID string) *discordgo.MessageEmbed {
	marker, color := DeniedMarker, colorDenied
	if approved {
		marker, color = ApprovedMarker, colorApproved
	}

	out := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚖️ Apelación %s", marker),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if original != nil {
		out.Description = original.Description
		out.Fields = original.Fields
	}
	out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
		Name:  "⚖️ Decidido por",
		Value: fmt.Sprintf("<@%s>", moderatorID),
	})
	return out
}

// decisionDMEmbed is the best-effort notice DMed to the appealing user.
func decisionDMEmbed(guildName string, approved bool) *discordgo.MessageEmbed {
	if approved {
		return &discordgo.MessageEmbed{
			Title: "✅ Tu apelación fue aprobada",
			Description: fmt.Sprintf(
				"Los moderadores de **%s** aprobaron tu apelación. La sanción ha sido retirada.\n\n"+
					"¿Cómo fue tu experiencia? Puedes contárnoslo con el botón de abajo.", guildName),
			Color:     colorApproved,
			Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}
	return &discordgo.MessageEmbed{
		Title: "❌ Tu apelación fue denegada",
		Description: fmt.Sprintf(
			"Los moderadores de **%s** revisaron tu apelación y decidieron mantener la sanción.\n\n"+
				"¿Cómo fue tu experiencia? Puedes contárnoslo con el botón de abajo.", guildName),
		Color:     colorDenied,
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// feedbackButton acompaña al DM de decisión
func feedbackButton(guildID, appealID, userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{
				Label:    "Valorar experiencia",
				Style:    discordgo.SecondaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
				CustomID: FeedbackButtonID(guildID, appealID, userID),
			},
		}},
	}
}

// feedbackModalData builds the satisfaction-survey modal.
func feedbackModalData(intent Intent) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: FeedbackModalID(intent.GuildID, intent.AppealID, intent.UserID),
		Title:    "Valora tu experiencia",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID:    "rating",
					Label:       "Puntuación (1-5)",
					Style:       discordgo.TextInputShort,
					Required:    true,
					MinLength:   1,
					MaxLength:   1,
					Placeholder: "5",
				},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID: "experience",
					Label:    "¿Cómo fue el proceso de apelación?",
					Style:    discordgo.TextInputParagraph,
					Required: true,
					MaxLength: 1000,
				},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID: "suggestions",
					Label:    "Sugerencias (opcional)",
					Style:    discordgo.TextInputParagraph,
					Required: false,
					MaxLength: 1000,
				},
			}},
		},
	}
}

// feedbackSummaryEmbed is forwarded to the mod-log channel, best-effort.
func feedbackSummaryEmbed(userID string, rating int, experience, suggestions string) *discordgo.MessageEmbed {
	stars := ""
	for i := 0; i < rating; i++ {
		stars += "⭐"
	}
	desc := fmt.Sprintf(
		"> 👤 - **Usuario:** <@%s>\n> %s (%d/5)\n> 💬 - **Experiencia:** %s\n",
		userID, stars, rating, truncate(experience, 500),
	)
	if suggestions != "" {
		desc += fmt.Sprintf("> 💡 - **Sugerencias:** %s\n", truncate(suggestions, 300))
	}
	return &discordgo.MessageEmbed{
		Title:       "📝 Nueva valoración de apelación",
		Description: desc,
		Color:       colorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
