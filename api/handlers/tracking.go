package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Sessions already gate the endpoint; the origin check is left open so
	// dashboards served from other hosts can subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TrackingEvent is one message on the live vehicle stream.
type TrackingEvent struct {
	Event   string               `json:"event"`
	Vehicle models.PoliceVehicle `json:"vehicle"`
}

// TrackingHub fans vehicle updates out to every connected websocket client.
type TrackingHub struct {
	mu         sync.Mutex
	clients    map[*websocket.Conn]bool
	broadcast  chan TrackingEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewTrackingHub returns a hub; call Run in a goroutine to start it.
func NewTrackingHub() *TrackingHub {
	return &TrackingHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan TrackingEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		quit:       make(chan struct{}),
	}
}

// Run owns the client set. A client that cannot keep up is dropped rather
// than allowed to stall the broadcast loop.
func (h *TrackingHub) Run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			zap.S().Debugw("tracking client connected", "clients", len(h.clients))
		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				zap.S().Errorw("failed to marshal tracking event", "error", err)
				continue
			}
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the broadcast loop down and closes every client connection.
// Safe on a nil hub and safe to call more than once.
func (h *TrackingHub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.quit) })
}

// BroadcastVehicle queues an event for every subscriber. Safe on a nil hub
// so handlers can run without a live stream behind them.
func (h *TrackingHub) BroadcastVehicle(event string, v models.PoliceVehicle) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- TrackingEvent{Event: event, Vehicle: v}:
	default:
		zap.S().Warn("tracking broadcast buffer full, dropping event")
	}
}

// ServeWS upgrades the request and parks a reader goroutine that only
// watches for the client going away.
func (h *TrackingHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.quit:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.quit:
				conn.Close()
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
