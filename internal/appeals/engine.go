package appeals

import (
	"sync"
	"sync/atomic"
	"time"
)

// Engine es la máquina de estados de apelaciones. Todas las dependencias son
// inyectables para poder probar el flujo completo con fakes.
type Engine struct {
	Store    WarningStore
	Cache    *StateCache
	Gate     *Gate
	Platform Platform
	Resolver ModLogResolver
	Audit    AuditLogger
	Events   EventSink
	Feedback *FeedbackStore

	metrics engineMetrics
}

type engineMetrics struct {
	Submitted int64
	Approved  int64
	Denied    int64
	Dropped   int64
}

// Metrics es una instantánea de los contadores del motor para el dashboard
type Metrics struct {
	Submitted int64 `json:"submitted"`
	Approved  int64 `json:"approved"`
	Denied    int64 `json:"denied"`
	Dropped   int64 `json:"dropped"`
	InFlight  int   `json:"inFlight"`
}

var (
	engine *Engine
	once   sync.Once
)

// Deps agrupa los colaboradores externos del motor
type Deps struct {
	Store    WarningStore
	Platform Platform
	Resolver ModLogResolver
	Audit    AuditLogger
	Events   EventSink
	Feedback *FeedbackStore
}

// Init initializes the global appeal engine and starts its background cache
// sweeper.
func Init(deps Deps) *Engine {
	once.Do(func() {
		engine = NewEngine(deps)
		engine.Cache.StartSweeper()
	})
	return engine
}

// Get returns the global appeal engine (nil before Init).
func Get() *Engine {
	return engine
}

// NewEngine creates an Engine with a fresh gate and state cache.
func NewEngine(deps Deps) *Engine {
	return &Engine{
		Store:    deps.Store,
		Cache:    NewStateCache(),
		Gate:     NewGate(NewSeenTracker(2048)),
		Platform: deps.Platform,
		Resolver: deps.Resolver,
		Audit:    deps.Audit,
		Events:   deps.Events,
		Feedback: deps.Feedback,
	}
}

// Stop stops the background sweeper.
func (e *Engine) Stop() {
	e.Cache.Stop()
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		Submitted: atomic.LoadInt64(&e.metrics.Submitted),
		Approved:  atomic.LoadInt64(&e.metrics.Approved),
		Denied:    atomic.LoadInt64(&e.metrics.Denied),
		Dropped:   atomic.LoadInt64(&e.metrics.Dropped),
		InFlight:  e.Cache.Len(),
	}
}

func (e *Engine) publish(event string, payload map[string]any) {
	if e.Events == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	payload["event"] = event
	payload["timestamp"] = time.Now().Unix()
	e.Events.Publish(event, payload)
}

func (e *Engine) audit(guildID, action, detail, moderatorID, subjectID string) {
	if e.Audit == nil {
		return
	}
	e.Audit.LogAction(guildID, action, detail, moderatorID, subjectID)
}
