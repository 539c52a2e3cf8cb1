package appeals

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// FeedbackRepo persiste el log único de feedback
type FeedbackRepo interface {
	Load() (*models.FeedbackLog, error)
	Save(log *models.FeedbackLog) error
}

// MongoFeedbackRepo persiste el log en la colección "feedback" vía el
// DataManager compartido
type MongoFeedbackRepo struct {
	DM *database.DataManager[models.FeedbackLog]
}

// NewMongoFeedbackRepo crea el repositorio sobre el DataManager global
func NewMongoFeedbackRepo() *MongoFeedbackRepo {
	return &MongoFeedbackRepo{DM: database.GlobalFeedbackDM}
}

func (r *MongoFeedbackRepo) Load() (*models.FeedbackLog, error) {
	return r.DM.Get(bson.M{"key": "global"})
}

func (r *MongoFeedbackRepo) Save(log *models.FeedbackLog) error {
	_, err := r.DM.Set(bson.M{"key": "global"}, log)
	return err
}

// FeedbackStore mantiene el log append-only con tope de 200 entradas: al
// superarlo se descartan las más antiguas.
type FeedbackStore struct {
	repo FeedbackRepo
	mu   sync.Mutex
}

// NewFeedbackStore creates a store over the given repository.
func NewFeedbackStore(repo FeedbackRepo) *FeedbackStore {
	return &FeedbackStore{repo: repo}
}

// Append adds an entry, evicting the oldest entries beyond the cap.
func (s *FeedbackStore) Append(entry models.FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.repo.Load()
	if err != nil {
		return err
	}
	if log == nil {
		log = &models.FeedbackLog{Key: "global"}
	}

	log.Entries = append(log.Entries, entry)
	if excess := len(log.Entries) - models.MaxFeedbackEntries; excess > 0 {
		log.Entries = log.Entries[excess:]
	}

	return s.repo.Save(log)
}

// Recent returns up to n most-recent entries, newest last.
func (s *FeedbackStore) Recent(n int) ([]models.FeedbackEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.repo.Load()
	if err != nil || log == nil {
		return nil, err
	}
	if n <= 0 || n > len(log.Entries) {
		n = len(log.Entries)
	}
	out := make([]models.FeedbackEntry, n)
	copy(out, log.Entries[len(log.Entries)-n:])
	return out, nil
}

// ValidateRating parsea y valida una puntuación 1-5. Cualquier valor fuera
// de rango o no numérico se rechaza.
func ValidateRating(raw string) (int, error) {
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("la puntuación debe ser un número")
	}
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("la puntuación debe estar entre 1 y 5")
	}
	return rating, nil
}

// HandleFeedbackButton abre el formulario de valoración tras una decisión.
func (e *Engine) HandleFeedbackButton(meta InteractionMeta, intent Intent, r Responder) {
	verdict := e.Gate.Validate(meta, ResponseModalOpen)
	if !verdict.Valid {
		return
	}
	defer e.Gate.Release(meta)

	if meta.ActorID != intent.UserID {
		r.ReplyEphemeral("❌ Este formulario no es para ti.")
		return
	}

	if err := r.ShowModal(feedbackModalData(intent)); err != nil {
		logger.Error(fmt.Sprintf("Error abriendo modal de feedback: %v", err), "Feedback")
	}
}

// HandleFeedbackModal procesa el envío del formulario de valoración:
// valida la puntuación (error reintentable), añade la entrada al log con
// tope, reenvía el resumen al canal de moderación (best-effort) y agradece.
func (e *Engine) HandleFeedbackModal(meta InteractionMeta, intent Intent, rawRating, experience, suggestions string, r Responder) {
	verdict := e.Gate.Validate(meta, ResponseModalSubmit)
	if !verdict.Valid {
		return
	}
	defer e.Gate.Release(meta)

	rating, err := ValidateRating(rawRating)
	if err != nil {
		// Reintentable: el usuario puede volver a abrir el formulario
		r.ReplyEphemeral("❌ " + err.Error() + ". Inténtalo de nuevo.")
		return
	}

	guildName := intent.GuildID
	if snap, serr := e.Platform.GuildSnapshot(intent.GuildID); serr == nil && snap.Name != "" {
		guildName = snap.Name
	}

	entry := models.FeedbackEntry{
		ID:          uuid.NewString(),
		AppealID:    intent.AppealID,
		UserID:      intent.UserID,
		GuildID:     intent.GuildID,
		GuildName:   guildName,
		Rating:      rating,
		Experience:  experience,
		Suggestions: suggestions,
		Timestamp:   time.Now().Unix(),
	}

	if err := e.Feedback.Append(entry); err != nil {
		logger.Error(fmt.Sprintf("Error guardando feedback de %s: %v", intent.UserID, err), "Feedback")
		r.ReplyEphemeral("❌ No se pudo guardar tu valoración. Inténtalo de nuevo más tarde.")
		return
	}

	r.ReplyEphemeral("✅ ¡Gracias por valorar tu experiencia!")

	e.publish("feedback_submitted", map[string]any{
		"appealId": intent.AppealID,
		"guildId":  intent.GuildID,
		"rating":   rating,
	})

	// Resumen al canal de moderación, best-effort: el envío fallido no se
	// muestra al usuario
	go func() {
		defer errors.RecoverMiddleware()()
		channelID, ok := e.Resolver.ModLogChannel(intent.GuildID)
		if !ok {
			return
		}
		if _, err := e.Platform.SendEmbed(channelID, feedbackSummaryEmbed(intent.UserID, rating, experience, suggestions), nil); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo reenviar el feedback al canal %s: %v", channelID, err), "Feedback")
		}
	}()
}
