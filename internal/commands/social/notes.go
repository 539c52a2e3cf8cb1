// Package social - /social nota command
package social

import (
	"fmt"
	"strings"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const maxNotesPerUser = 25

// createNoteCommand creates the /social nota subcommand with its own
// add/list/del actions
func createNoteCommand() *discord.Command {
	return discord.NewCommand(
		"nota",
		"Administra tus notas personales",
		"social",
		noteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "accion",
			Description: "Qué hacer con tus notas",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Añadir", Value: "add"},
				{Name: "Listar", Value: "list"},
				{Name: "Eliminar", Value: "del"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "texto",
			Description: "Contenido de la nota (añadir) o ID (eliminar)",
			Required:    false,
			MaxLength:   500,
		},
	).RequiresDatabase()
}

func noteHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		action := ctx.GetStringOption("accion")
		text := ctx.GetStringOption("texto")
		userID := ctx.User().ID

		dm := database.GlobalNotesDM
		query := bson.M{"userId": userID}

		doc, err := dm.Get(query)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB Notas: %v", err), "CMD-Nota")
			ctx.ReplyEphemeral("❌ No se pudieron consultar tus notas.")
			return
		}
		if doc == nil {
			doc = &models.NotesDocument{UserID: userID}
		}

		switch action {
		case "add":
			if strings.TrimSpace(text) == "" {
				ctx.ReplyEphemeral("❌ Debes escribir el contenido de la nota.")
				return
			}
			if len(doc.Notes) >= maxNotesPerUser {
				ctx.ReplyEphemeral(fmt.Sprintf("❌ Solo puedes guardar %d notas. Elimina alguna primero.", maxNotesPerUser))
				return
			}
			note := models.Note{
				ID:        "note-" + strings.SplitN(uuid.NewString(), "-", 2)[0],
				Content:   text,
				Timestamp: time.Now().UnixMilli(),
			}
			doc.Notes = append(doc.Notes, note)
			if _, err := dm.Set(query, doc); err != nil {
				ctx.ReplyEphemeral("❌ No se pudo guardar la nota.")
				return
			}
			ctx.ReplyEphemeral(fmt.Sprintf("📝 Nota guardada con ID `%s`.", note.ID))

		case "list":
			if len(doc.Notes) == 0 {
				ctx.ReplyEphemeral("ℹ️ No tienes notas guardadas.")
				return
			}
			var description string
			for _, note := range doc.Notes {
				description += fmt.Sprintf("> `%s`: %s (<t:%d:R>)\n", note.ID, note.Content, note.Timestamp/1000)
			}
			embed := &discordgo.MessageEmbed{
				Title:       fmt.Sprintf("📒 Notas de %s", ctx.User().Username),
				Description: description,
				Color:       0x3498db,
				Footer:      &discordgo.MessageEmbedFooter{Text: "💫 - Developed by AmparoStudios"},
			}
			ctx.ReplyEphemeralEmbed(embed)

		case "del":
			if strings.TrimSpace(text) == "" {
				ctx.ReplyEphemeral("❌ Debes indicar el ID de la nota a eliminar.")
				return
			}
			found := false
			kept := doc.Notes[:0]
			for _, note := range doc.Notes {
				if note.ID == text {
					found = true
					continue
				}
				kept = append(kept, note)
			}
			if !found {
				ctx.ReplyEphemeral("❌ No se encontró una nota con ese ID.")
				return
			}
			doc.Notes = kept
			if _, err := dm.Set(query, doc); err != nil {
				ctx.ReplyEphemeral("❌ No se pudo eliminar la nota.")
				return
			}
			ctx.ReplyEphemeral("🗑️ Nota eliminada.")

		default:
			ctx.ReplyEphemeral("❌ Acción desconocida.")
		}
	}()

	return nil
}
