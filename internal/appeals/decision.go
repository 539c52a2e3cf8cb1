package appeals

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// HandleDecision consume la pulsación de Aprobar/Denegar de un moderador
// sobre el mensaje de fan-out. Las precondiciones se comprueban en orden y
// cada una produce un error efímero distinto: frescura/duplicado (gate),
// permiso de moderación, apelación no decidida todavía.
func (e *Engine) HandleDecision(meta InteractionMeta, intent Intent, r Responder) {
	verdict := e.Gate.Validate(meta, ResponseReply)
	if !verdict.Valid {
		atomic.AddInt64(&e.metrics.Dropped, 1)
		return
	}
	defer e.Gate.Release(meta)

	isMod, err := e.Platform.HasModPermission(meta.GuildID, meta.ActorID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error comprobando permisos de %s: %v", meta.ActorID, err), "AppealDecision")
		isMod = false
	}
	if !isMod {
		r.ReplyEphemeral("❌ Necesitas el permiso **Moderar Miembros** para decidir apelaciones.")
		return
	}

	// Primer guard contra dobles decisiones: el marcador terminal del
	// título. Es solo la primera línea; el guard autoritativo para
	// advertencias es el estado de la apelación en el almacén.
	if strings.Contains(meta.MessageTitle, ApprovedMarker) || strings.Contains(meta.MessageTitle, DeniedMarker) {
		r.ReplyEphemeral("⚠️ Esta apelación ya fue procesada.")
		return
	}

	if intent.Target == TargetWarn {
		res := e.Store.ProcessWarningAppeal(intent.GuildID, intent.UserID, intent.TargetID, "", meta.ActorID, intent.Approve)
		if !res.Success {
			if res.Warning != nil && res.Warning.AppealStatus.Decided() {
				// Perdió la carrera contra otro moderador o es un re-click
				r.ReplyEphemeral("⚠️ Esta apelación ya fue procesada.")
				return
			}
			r.ReplyEphemeral("❌ No se pudo procesar la decisión: " + res.Message)
			return
		}
	}

	// A partir de aquí la decisión es el source of truth: los efectos
	// secundarios que fallen se loguean pero no la revierten

	if intent.Approve {
		e.liftPunishment(intent)
	}

	e.finalizeMessage(meta, intent.Approve)
	e.notifyUser(intent)

	action := "appeal_denied"
	if intent.Approve {
		action = "appeal_approved"
		atomic.AddInt64(&e.metrics.Approved, 1)
	} else {
		atomic.AddInt64(&e.metrics.Denied, 1)
	}
	e.audit(intent.GuildID, action, fmt.Sprintf("apelación %s sobre %s", intent.AppealID, intent.TargetID), meta.ActorID, intent.UserID)
	e.publish(action, map[string]any{
		"appealId":  intent.AppealID,
		"guildId":   intent.GuildID,
		"userId":    intent.UserID,
		"moderator": meta.ActorID,
	})

	e.Cache.Delete(intent.AppealID)

	if intent.Approve {
		r.ReplyEphemeral("✅ Apelación aprobada. La sanción ha sido retirada y el usuario notificado.")
	} else {
		r.ReplyEphemeral("✅ Apelación denegada. El usuario ha sido notificado.")
	}
}

// liftPunishment retira el castigo activo ligado a la sanción apelada para
// que el acceso se restaure de inmediato, no solo el registro.
func (e *Engine) liftPunishment(intent Intent) {
	timedOut, err := e.Platform.MemberTimedOut(intent.GuildID, intent.UserID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo comprobar el timeout de %s: %v", intent.UserID, err), "AppealDecision")
		return
	}
	if !timedOut {
		return
	}
	if err := e.Platform.RemoveTimeout(intent.GuildID, intent.UserID); err != nil {
		logger.Error(fmt.Sprintf("Error retirando timeout de %s: %v", intent.UserID, err), "AppealDecision")
	}
}

// finalizeMessage edita el mensaje de fan-out a su estado terminal, sin
// botones.
func (e *Engine) finalizeMessage(meta InteractionMeta, approved bool) {
	if meta.ChannelID == "" || meta.MessageID == "" {
		return
	}
	embed := terminalEmbed(meta.MessageEmbed, approved, meta.ActorID)
	if err := e.Platform.EditEmbed(meta.ChannelID, meta.MessageID, embed, []discordgo.MessageComponent{}); err != nil {
		logger.Error(fmt.Sprintf("Error editando mensaje de decisión %s: %v", meta.MessageID, err), "AppealDecision")
	}
}

// notifyUser envía el DM de decisión con el botón de feedback, best-effort.
func (e *Engine) notifyUser(intent Intent) {
	guildName := intent.GuildID
	if rec, ok := e.Cache.Get(intent.AppealID); ok && rec.Guild.Name != "" {
		guildName = rec.Guild.Name
	} else if snap, err := e.Platform.GuildSnapshot(intent.GuildID); err == nil && snap.Name != "" {
		guildName = snap.Name
	}

	embed := decisionDMEmbed(guildName, intent.Approve)
	components := feedbackButton(intent.GuildID, intent.AppealID, intent.UserID)
	if err := e.Platform.SendDM(intent.UserID, embed, components); err != nil {
		// DMs cerrados u otro fallo: se traga, la decisión ya es firme
		logger.Debug(fmt.Sprintf("No se pudo enviar DM de decisión a %s: %v", intent.UserID, err), "AppealDecision")
	}
}
