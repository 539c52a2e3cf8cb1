package appeals

import (
	"fmt"
	"sync/atomic"

	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
)

// HandleAppealButton procesa la pulsación del botón "Apelar" de un aviso de
// sanción: valida frescura y propiedad, genera el identificador de
// apelación, cachea el contexto del servidor y abre el formulario.
func (e *Engine) HandleAppealButton(meta InteractionMeta, intent Intent, r Responder) {
	verdict := e.Gate.Validate(meta, ResponseModalOpen)
	if !verdict.Valid {
		atomic.AddInt64(&e.metrics.Dropped, 1)
		return
	}
	defer e.Gate.Release(meta)

	// Solo el sancionado puede apelar su propia sanción
	if meta.ActorID != intent.UserID {
		r.ReplyEphemeral("❌ Solo puedes apelar tus propias sanciones.")
		return
	}

	if intent.Target == TargetWarn {
		warn, err := e.Store.GetWarning(intent.GuildID, intent.UserID, intent.TargetID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando advertencia %s: %v", intent.TargetID, err), "Appeals")
			r.ReplyEphemeral("❌ No se pudo consultar la advertencia. Inténtalo de nuevo.")
			return
		}
		if warn == nil || warn.Removed {
			r.ReplyEphemeral("❌ Esa advertencia ya no existe.")
			return
		}
		if warn.AppealStatus != models.AppealNone {
			r.ReplyEphemeral("⚠️ Esa advertencia ya tiene una apelación registrada.")
			return
		}
	}

	kind := KindWarnAppeal
	if intent.Target == TargetTimeout {
		kind = KindTimeoutAppeal
	}
	appealID := NewAppealID(kind)

	// El snapshot del servidor se obtiene una sola vez; si falla se degrada
	// a un registro sin metadatos (la caché es optimización, no correctitud)
	snapshot, err := e.Platform.GuildSnapshot(intent.GuildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo obtener snapshot del servidor %s: %v", intent.GuildID, err), "Appeals")
	}

	e.Cache.Put(&AppealRecord{
		AppealID: appealID,
		Target:   intent.Target,
		GuildID:  intent.GuildID,
		UserID:   intent.UserID,
		TargetID: intent.TargetID,
		Guild:    snapshot,
	})

	if err := r.ShowModal(appealModalData(intent, appealID)); err != nil {
		logger.Error(fmt.Sprintf("Error abriendo modal de apelación: %v", err), "Appeals")
		return
	}

	e.publish("appeal_opened", map[string]any{
		"appealId": appealID,
		"guildId":  intent.GuildID,
		"userId":   intent.UserID,
		"kind":     string(intent.Target),
	})
}

// HandleAppealModal procesa el envío del formulario: revalida propiedad y
// longitud, registra la apelación en el almacén, confirma al usuario y hace
// fan-out al canal de moderación.
func (e *Engine) HandleAppealModal(meta InteractionMeta, intent Intent, reason, evidence string, r Responder) {
	// Presupuesto estricto: un modal con más de ~2.5s probablemente ya
	// falló una vez; descartar en silencio
	verdict := e.Gate.Validate(meta, ResponseModalSubmit)
	if !verdict.Valid {
		atomic.AddInt64(&e.metrics.Dropped, 1)
		return
	}
	defer e.Gate.Release(meta)

	if meta.ActorID != intent.UserID {
		r.ReplyEphemeral("❌ Solo puedes apelar tus propias sanciones.")
		return
	}

	// Revalidar límites en el servidor: no se confía solo en la validación
	// del formulario de la plataforma
	if msg := validateReason(intent.Target, reason, evidence); msg != "" {
		r.ReplyEphemeral(msg)
		return
	}

	rec, ok := e.Cache.Get(intent.AppealID)
	if !ok {
		// Degradación elegante: el registro caducó o el proceso se
		// reinició; reconstruir desde el custom ID del modal
		snapshot, err := e.Platform.GuildSnapshot(intent.GuildID)
		if err != nil {
			logger.Warn(fmt.Sprintf("Snapshot no disponible para %s: %v", intent.GuildID, err), "Appeals")
		}
		rec = &AppealRecord{
			AppealID: intent.AppealID,
			Target:   intent.Target,
			GuildID:  intent.GuildID,
			UserID:   intent.UserID,
			TargetID: intent.TargetID,
			Guild:    snapshot,
		}
		e.Cache.Put(rec)
	}

	if intent.Target == TargetWarn {
		res := e.Store.AppealWarning(intent.GuildID, intent.UserID, intent.TargetID, reason, evidence)
		if !res.Success {
			// El mensaje del almacén se muestra tal cual; sin fan-out
			r.ReplyEphemeral("❌ " + res.Message)
			return
		}
	}

	if err := r.ReplyEphemeralEmbed(confirmationEmbed(rec, reason, evidence)); err != nil {
		logger.Error(fmt.Sprintf("Error confirmando apelación %s: %v", rec.AppealID, err), "Appeals")
	}

	atomic.AddInt64(&e.metrics.Submitted, 1)
	e.audit(intent.GuildID, "appeal_submitted", fmt.Sprintf("apelación %s sobre %s", rec.AppealID, rec.TargetID), "", intent.UserID)
	e.publish("appeal_submitted", map[string]any{
		"appealId": rec.AppealID,
		"guildId":  rec.GuildID,
		"userId":   rec.UserID,
		"kind":     string(rec.Target),
	})

	// Fan-out asíncrono al canal de moderación
	go func() {
		defer errors.RecoverMiddleware()()
		e.fanout(rec, reason, evidence)
	}()
}

// fanout publica el embed con botones de decisión en el canal de moderación
// configurado. Sin canal configurado la apelación queda registrada pero
// nunca llega a los moderadores: condición conocida que se loguea, no se
// oculta.
func (e *Engine) fanout(rec *AppealRecord, reason, evidence string) {
	channelID, ok := e.Resolver.ModLogChannel(rec.GuildID)
	if !ok {
		logger.Warn(fmt.Sprintf("Servidor %s sin canal de moderación configurado: la apelación %s no llegará a los moderadores", rec.GuildID, rec.AppealID), "Appeals")
		return
	}

	if _, err := e.Platform.SendEmbed(channelID, fanoutEmbed(rec, reason, evidence), decisionButtons(rec)); err != nil {
		logger.Error(fmt.Sprintf("Error publicando apelación %s en canal %s: %v", rec.AppealID, channelID, err), "Appeals")
	}
}

// validateReason aplica los límites del formulario también en el servidor.
// Devuelve el mensaje de error para el usuario, o vacío si es válido.
func validateReason(target TargetKind, reason, evidence string) string {
	min, max := WarnReasonMin, WarnReasonMax
	if target == TargetTimeout {
		min, max = TimeoutReasonMin, TimeoutReasonMax
	}
	if len(reason) < min {
		return fmt.Sprintf("❌ La razón debe tener al menos %d caracteres.", min)
	}
	if len(reason) > max {
		return fmt.Sprintf("❌ La razón no puede superar los %d caracteres.", max)
	}
	if len(evidence) > EvidenceMax {
		return fmt.Sprintf("❌ La evidencia no puede superar los %d caracteres.", EvidenceMax)
	}
	return ""
}
