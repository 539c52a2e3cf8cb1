package appeals

import (
	"fmt"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
)

const (
	cacheTTL   = 30 * time.Minute
	sweepEvery = 5 * time.Minute
)

// GuildSnapshot es la copia desnormalizada de los metadatos del servidor que
// se obtiene una sola vez al pulsar el botón de apelación
type GuildSnapshot struct {
	ID                string
	Name              string
	MemberCount       int
	OwnerID           string
	IconURL           string
	CreatedAt         time.Time
	VerificationLevel int
}

// AppealRecord correlaciona usuario/servidor/advertencia con los metadatos
// cacheados durante la vida de la apelación. No se persiste: un reinicio del
// proceso pierde el contexto en vuelo (fallo suave, la advertencia no se
// pierde).
type AppealRecord struct {
	AppealID  string
	Target    TargetKind
	GuildID   string
	UserID    string
	TargetID  string
	Guild     GuildSnapshot
	CreatedAt time.Time
}

// StateCache is the transient, time-boxed store of in-flight appeals, keyed
// by appeal id. It is an optimization, not a source of truth: a miss means
// the caller re-derives the guild metadata from the platform.
type StateCache struct {
	mu       sync.RWMutex
	records  map[string]*AppealRecord
	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewStateCache creates an empty cache. Call StartSweeper to begin the
// background garbage collection.
func NewStateCache() *StateCache {
	return &StateCache{
		records: make(map[string]*AppealRecord),
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// Put stores a record under its appeal id, stamping its insertion time.
func (c *StateCache) Put(rec *AppealRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec.CreatedAt = c.now()
	c.records[rec.AppealID] = rec
}

// Get returns the record for an appeal id. A missing or expired record is
// not an error; the caller degrades to re-fetching metadata.
func (c *StateCache) Get(appealID string) (*AppealRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[appealID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(rec.CreatedAt) > cacheTTL {
		return nil, false
	}
	return rec, true
}

// Delete consumes a record once the appeal is decided.
func (c *StateCache) Delete(appealID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, appealID)
}

// Len returns the number of cached records, expired ones included until the
// next sweep.
func (c *StateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// StartSweeper starts the fixed-interval background sweep (blacklist-cache
// idiom: ticker + done channel).
func (c *StateCache) StartSweeper() {
	c.ticker = time.NewTicker(sweepEvery)
	go func() {
		for {
			select {
			case <-c.done:
				return
			case <-c.ticker.C:
				if n := c.sweep(); n > 0 {
					logger.Debug(fmt.Sprintf("Caché de apelaciones: %d registros caducados eliminados", n), "AppealCache")
				}
			}
		}
	}()
	logger.System("Caché de apelaciones iniciada (barrido cada 5 minutos)", "AppealCache")
}

// Stop stops the background sweep.
func (c *StateCache) Stop() {
	c.stopOnce.Do(func() {
		if c.ticker != nil {
			c.ticker.Stop()
		}
		close(c.done)
	})
}

// sweep removes records older than cacheTTL and returns how many were dropped.
func (c *StateCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	dropped := 0
	for id, rec := range c.records {
		if now.Sub(rec.CreatedAt) > cacheTTL {
			delete(c.records, id)
			dropped++
		}
	}
	return dropped
}
