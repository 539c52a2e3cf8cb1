package appeals

import (
	"fmt"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// Presupuestos de frescura. Discord impone una ventana dura de ~3 s para
// reconocer una interacción; los presupuestos de respuesta dejan margen para
// la latencia de red y de cola antes de que el código pueda responder.
const (
	EntryBudget       = 15 * time.Minute
	ReplyBudget       = 10 * time.Second
	ModalOpenBudget   = 1500 * time.Millisecond
	ModalSubmitBudget = 2500 * time.Millisecond

	// LockTTL es la vida del lock auto-expirante por interacción
	LockTTL = 30 * time.Second
)

// ResponseKind selecciona el presupuesto estricto aplicado en el punto de
// responder realmente
type ResponseKind int

const (
	ResponseReply ResponseKind = iota
	ResponseModalOpen
	ResponseModalSubmit
)

func (k ResponseKind) budget() time.Duration {
	switch k {
	case ResponseModalOpen:
		return ModalOpenBudget
	case ResponseModalSubmit:
		return ModalSubmitBudget
	}
	return ReplyBudget
}

// DropReason etiqueta por qué una interacción no debe procesarse
type DropReason string

const (
	DropNone           DropReason = ""
	DropNotRepliable   DropReason = "not_repliable"
	DropAlreadyHandled DropReason = "already_handled"
	DropExpired        DropReason = "expired"
	DropProcessing     DropReason = "processing"
)

// Verdict is the result of validating an inbound interaction. When Valid is
// false the caller must silently drop the interaction: no reply, no retry.
// Replying to a dead interaction raises a platform error visible to the user.
type Verdict struct {
	Valid  bool
	Reason DropReason
}

// InteractionMeta es la vista mínima de una interacción de la plataforma que
// el gate necesita; se construye desde discordgo en discordplatform.go y con
// literales en los tests.
type InteractionMeta struct {
	ID        string
	ActorID   string
	GuildID   string
	CreatedAt time.Time
	Acked     bool // ya respondida o diferida
	Repliable bool

	// Datos del mensaje al que pertenece el componente pulsado (vacíos para
	// modales): necesarios para editar el fan-out en el sitio
	ChannelID    string
	MessageID    string
	MessageTitle string
	MessageEmbed *discordgo.MessageEmbed
}

// Gate valida cada punto de entrada del subsistema de apelaciones
type Gate struct {
	tracker *SeenTracker
	now     func() time.Time
}

// NewGate creates a Gate over the given tracker.
func NewGate(tracker *SeenTracker) *Gate {
	return &Gate{tracker: tracker, now: time.Now}
}

// Validate runs the checks in order: repliable, not already acked, not a
// duplicate/concurrent delivery, within the entry budget, within the
// response-kind budget. On success the interaction id holds a LockTTL lock;
// the caller must call Release on exit (success or failure).
func (g *Gate) Validate(meta InteractionMeta, kind ResponseKind) Verdict {
	if !meta.Repliable {
		return g.drop(meta, DropNotRepliable)
	}
	if meta.Acked {
		return g.drop(meta, DropAlreadyHandled)
	}
	if !g.tracker.MarkIfNew(meta.ID, LockTTL) {
		return g.drop(meta, DropProcessing)
	}

	age := g.now().Sub(meta.CreatedAt)
	if age > EntryBudget || age > kind.budget() {
		g.tracker.Release(meta.ID)
		return g.drop(meta, DropExpired)
	}

	return Verdict{Valid: true}
}

// Release frees the per-interaction lock taken by Validate.
func (g *Gate) Release(meta InteractionMeta) {
	g.tracker.Release(meta.ID)
}

func (g *Gate) drop(meta InteractionMeta, reason DropReason) Verdict {
	// Solo diagnóstico: los descartes por frescura/duplicado son esperados
	logger.Debug(fmt.Sprintf("Interacción %s descartada: %s", meta.ID, reason), "Gate")
	return Verdict{Valid: false, Reason: reason}
}
