// Package events provides event handlers for interaction events
package events

import (
	"fmt"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterInteractionEvents registers all interaction-related event handlers
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onInteractionCreate)
}

// onInteractionCreate routes buttons and modal submits. Slash commands are
// already handled by the CommandHandler.
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var customID string
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		customID = i.ModalSubmitData().CustomID
	default:
		return
	}

	if appeals.IsAppealCustomID(customID) {
		go func() {
			defer errors.RecoverMiddleware()()
			routeAppealInteraction(s, i, customID)
		}()
		return
	}

	logger.Debug(fmt.Sprintf("Componente no manejado: %s", customID), "Interaction")
}

// routeAppealInteraction decodifica el custom ID y despacha al motor de
// apelaciones. Un ID con forma inesperada se descarta sin responder.
func routeAppealInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	intent, err := appeals.ParseCustomID(customID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Custom ID de apelación malformado: %q", customID), "Interaction")
		return
	}

	// Los usuarios en la blacklist no pueden usar los botones del bot
	meta := appeals.MetaFromInteraction(i)
	if banned, _, _ := database.IsUserBlacklisted(meta.ActorID); banned {
		logger.Debug(fmt.Sprintf("Interacción de usuario en blacklist descartada: %s", meta.ActorID), "Interaction")
		return
	}

	engine := appeals.Get()
	if engine == nil {
		logger.Warn("Motor de apelaciones no inicializado, interacción descartada", "Interaction")
		return
	}
	responder := &appeals.InteractionResponder{Session: s, Interaction: i}

	switch intent.Kind {
	case appeals.IntentAppealButton:
		engine.HandleAppealButton(meta, intent, responder)

	case appeals.IntentAppealModal:
		reason := modalField(i, "reason")
		evidence := modalField(i, "evidence")
		engine.HandleAppealModal(meta, intent, reason, evidence, responder)

	case appeals.IntentDecisionButton:
		engine.HandleDecision(meta, intent, responder)

	case appeals.IntentFeedbackButton:
		engine.HandleFeedbackButton(meta, intent, responder)

	case appeals.IntentFeedbackModal:
		rating := modalField(i, "rating")
		experience := modalField(i, "experience")
		suggestions := modalField(i, "suggestions")
		engine.HandleFeedbackModal(meta, intent, rating, experience, suggestions, responder)
	}
}

// modalField extrae el valor de un TextInput por su custom ID
func modalField(i *discordgo.InteractionCreate, id string) string {
	data := i.ModalSubmitData()
	for _, component := range data.Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionRow.Components {
			if textInput, ok := c.(*discordgo.TextInput); ok && textInput.CustomID == id {
				return textInput.Value
			}
		}
	}
	return ""
}
