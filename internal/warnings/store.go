// Package warnings maintains per-user warning records and the appeal
// state attached to them. All mutations of a guild's documents pass
// through a per-guild lock so concurrent moderator actions serialize.
package warnings

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/google/uuid"
)

// Repository abstrae la persistencia de documentos de advertencias
type Repository interface {
	Load(guildID, userID string) (*models.WarnsDocument, error)
	Save(doc *models.WarnsDocument) error
	LoadGuild(guildID string) ([]*models.WarnsDocument, error)
	Delete(guildID, userID string) error
}

// Store coordina lecturas y escrituras de advertencias por servidor
type Store struct {
	repo Repository

	mu     sync.Mutex
	guilds map[string]*sync.Mutex

	now func() time.Time
}

var (
	storeInstance *Store
	storeOnce     sync.Once
)

// Init configura el almacén global de advertencias
func Init(repo Repository) *Store {
	storeOnce.Do(func() {
		storeInstance = NewStore(repo)
		logger.System("Almacén de advertencias inicializado", "Warnings")
	})
	return storeInstance
}

// Get devuelve el almacén global. Panic si no fue inicializado.
func Get() *Store {
	if storeInstance == nil {
		panic("warnings: store not initialized, call Init first")
	}
	return storeInstance
}

// NewStore creates a Store backed by the given repository.
func NewStore(repo Repository) *Store {
	return &Store{
		repo:   repo,
		guilds: make(map[string]*sync.Mutex),
		now:    time.Now,
	}
}

// guildLock returns the mutex that serializes writes for one guild.
func (s *Store) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.guilds[guildID]
	if !ok {
		m = &sync.Mutex{}
		s.guilds[guildID] = m
	}
	return m
}

// newWarnID genera un identificador corto y único para una advertencia
func newWarnID() string {
	return "warn-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// refreshExpiry marks warns whose expiry instant already passed. Returns
// true when anything changed and the document needs saving.
func (s *Store) refreshExpiry(doc *models.WarnsDocument) bool {
	nowMs := s.now().UnixMilli()
	changed := false
	for i := range doc.Warns {
		w := &doc.Warns[i]
		if !w.Expired && w.ExpiresAt > 0 && w.ExpiresAt <= nowMs {
			w.Expired = true
			changed = true
		}
	}
	return changed
}

// load fetches the document for one user, applying lazy expiry. A nil
// document means the user has no record yet.
func (s *Store) load(guildID, userID string) (*models.WarnsDocument, error) {
	doc, err := s.repo.Load(guildID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if s.refreshExpiry(doc) {
		if err := s.repo.Save(doc); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo persistir la caducidad de advertencias (%s/%s): %v", guildID, userID, err), "Warnings")
		}
	}
	return doc, nil
}

// AddWarning registra una nueva advertencia y devuelve la entrada creada.
// expiry en cero significa que la advertencia no caduca.
func (s *Store) AddWarning(guildID, userID, reason string, severity models.WarnSeverity, moderatorID string, expiry time.Duration) (*models.Warn, error) {
	if !severity.Valid() {
		return nil, fmt.Errorf("severidad desconocida: %q", severity)
	}

	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &models.WarnsDocument{GuildID: guildID, UserID: userID}
	}

	warn := models.Warn{
		ID:        newWarnID(),
		Reason:    reason,
		Severity:  severity,
		Moderator: moderatorID,
		Timestamp: s.now().UnixMilli(),
	}
	if expiry > 0 {
		warn.ExpiresAt = s.now().Add(expiry).UnixMilli()
	}
	doc.Warns = append(doc.Warns, warn)

	if err := s.repo.Save(doc); err != nil {
		return nil, err
	}
	return &doc.Warns[len(doc.Warns)-1], nil
}

// GetUserWarnings devuelve todas las advertencias de un usuario, incluidas
// las caducadas y retiradas (el llamador decide qué mostrar)
func (s *Store) GetUserWarnings(guildID, userID string) ([]models.Warn, error) {
	doc, err := s.load(guildID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	out := make([]models.Warn, len(doc.Warns))
	copy(out, doc.Warns)
	return out, nil
}

// GetWarning busca una advertencia concreta por su identificador
func (s *Store) GetWarning(guildID, userID, warnID string) (*models.Warn, error) {
	doc, err := s.load(guildID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	for i := range doc.Warns {
		if doc.Warns[i].ID == warnID {
			w := doc.Warns[i]
			return &w, nil
		}
	}
	return nil, nil
}

// RemoveWarning marca una advertencia como retirada sin borrar el historial
func (s *Store) RemoveWarning(guildID, userID, warnID, moderatorID string) (bool, error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	for i := range doc.Warns {
		w := &doc.Warns[i]
		if w.ID == warnID && !w.Removed {
			w.Removed = true
			w.DecidedBy = moderatorID
			return true, s.repo.Save(doc)
		}
	}
	return false, nil
}

// ClearWarnings elimina el registro completo de un usuario. Devuelve cuántas
// advertencias activas había.
func (s *Store) ClearWarnings(guildID, userID string) (int, error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return 0, err
	}
	if doc == nil {
		return 0, nil
	}
	active := 0
	for i := range doc.Warns {
		if doc.Warns[i].Active() {
			active++
		}
	}
	return active, s.repo.Delete(guildID, userID)
}

// EditWarning reemplaza la razón de una advertencia existente
func (s *Store) EditWarning(guildID, userID, warnID, newReason string) (bool, error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	for i := range doc.Warns {
		if doc.Warns[i].ID == warnID {
			doc.Warns[i].Reason = newReason
			return true, s.repo.Save(doc)
		}
	}
	return false, nil
}

// AppealWarning marca una advertencia como apelada. Falla si la advertencia
// no existe, fue retirada, o ya tiene una apelación registrada.
func (s *Store) AppealWarning(guildID, userID, warnID, reason, evidence string) appeals.StoreResult {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return appeals.StoreResult{Message: "No se pudo consultar tus advertencias. Intenta de nuevo más tarde."}
	}
	if doc == nil {
		return appeals.StoreResult{Message: "No se encontró la advertencia que intentas apelar."}
	}
	for i := range doc.Warns {
		w := &doc.Warns[i]
		if w.ID != warnID {
			continue
		}
		if w.Removed {
			return appeals.StoreResult{Message: "Esa advertencia ya fue retirada, no hace falta apelarla."}
		}
		if w.AppealStatus != models.AppealNone {
			return appeals.StoreResult{Message: "Ya existe una apelación para esta advertencia."}
		}
		w.AppealStatus = models.AppealPending
		w.AppealReason = reason
		w.AppealEvidence = evidence
		if err := s.repo.Save(doc); err != nil {
			return appeals.StoreResult{Message: "No se pudo guardar tu apelación. Intenta de nuevo más tarde."}
		}
		out := *w
		return appeals.StoreResult{Success: true, Warning: &out}
	}
	return appeals.StoreResult{Message: "No se encontró la advertencia que intentas apelar."}
}

// ProcessWarningAppeal aplica la decisión de un moderador sobre una apelación
// pendiente. La primera decisión gana: una apelación ya decidida devuelve
// fallo sin modificar nada.
func (s *Store) ProcessWarningAppeal(guildID, userID, warnID, note, moderatorID string, approve bool) appeals.StoreResult {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(guildID, userID)
	if err != nil {
		return appeals.StoreResult{Message: "No se pudo consultar la advertencia. Intenta de nuevo más tarde."}
	}
	if doc == nil {
		return appeals.StoreResult{Message: "La advertencia apelada ya no existe."}
	}
	for i := range doc.Warns {
		w := &doc.Warns[i]
		if w.ID != warnID {
			continue
		}
		if w.AppealStatus.Decided() {
			return appeals.StoreResult{Message: "Esta apelación ya fue procesada."}
		}
		if w.AppealStatus != models.AppealPending {
			return appeals.StoreResult{Message: "Esta advertencia no tiene una apelación pendiente."}
		}
		if approve {
			w.AppealStatus = models.AppealApproved
			w.Removed = true
		} else {
			w.AppealStatus = models.AppealDenied
		}
		w.DecisionNote = note
		w.DecidedBy = moderatorID
		w.DecidedAt = s.now().UnixMilli()
		if err := s.repo.Save(doc); err != nil {
			return appeals.StoreResult{Message: "No se pudo guardar la decisión. Intenta de nuevo más tarde."}
		}
		out := *w
		return appeals.StoreResult{Success: true, Warning: &out}
	}
	return appeals.StoreResult{Message: "La advertencia apelada ya no existe."}
}
