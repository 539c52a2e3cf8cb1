// Package web - appeal telemetry endpoints and live feed.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/internal/warnings"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El middleware de host ya filtró el origen
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHub reenvía eventos del ciclo de vida de apelaciones a los clientes
// websocket del dashboard. Implementa el sink de eventos del motor.
type FeedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

var (
	hub     *FeedHub
	hubOnce sync.Once
)

// Hub devuelve el hub global del feed en vivo
func Hub() *FeedHub {
	hubOnce.Do(func() {
		hub = &FeedHub{clients: make(map[*websocket.Conn]struct{})}
	})
	return hub
}

// feedMessage es el sobre serializado hacia los clientes
type feedMessage struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// Publish envía un evento a todos los clientes conectados, best-effort.
// Los clientes que fallan al escribir se desconectan.
func (h *FeedHub) Publish(event string, payload map[string]any) {
	data, err := json.Marshal(feedMessage{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Clients devuelve cuántos clientes están conectados al feed
func (h *FeedHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// add registra una conexión y lanza su lector para detectar el cierre
func (h *FeedHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				_ = conn.Close()
				delete(h.clients, conn)
				h.mu.Unlock()
				return
			}
		}
	}()
}

// SetupAppealRoutes sets up appeal telemetry routes
func SetupAppealRoutes(s *Server) {
	api := s.Group("/api/appeals")
	{
		api.GET("/stats", appealStatsHandler)
		api.GET("/guild/:id", guildWarnStatsHandler)
	}
	s.GET("/ws/appeals", appealFeedHandler)
}

// appealStatsHandler returns the engine lifecycle counters
func appealStatsHandler(c *gin.Context) {
	engine := appeals.Get()
	if engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Engine Offline",
			"message": "El motor de apelaciones no está disponible.",
		})
		return
	}
	metrics := engine.Metrics()

	c.JSON(http.StatusOK, gin.H{
		"submitted":   metrics.Submitted,
		"approved":    metrics.Approved,
		"denied":      metrics.Denied,
		"dropped":     metrics.Dropped,
		"inFlight":    metrics.InFlight,
		"feedClients": Hub().Clients(),
	})
}

// guildWarnStatsHandler returns warning counters for one guild
func guildWarnStatsHandler(c *gin.Context) {
	guildID := c.Param("id")
	stats, err := warnings.Get().Stats(guildID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Offline",
			"message": "No se pudieron consultar las estadísticas.",
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// appealFeedHandler upgrades the connection and joins the live feed
func appealFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("No se pudo abrir el websocket del feed de apelaciones", "WebServer")
		return
	}
	Hub().add(conn)
}
