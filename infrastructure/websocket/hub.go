package websocket

import (
	"log/slog"
	"sng-lab/domain"
	"sync"
)

// Hub tracks the live connection of every participant.
// A participant reconnecting replaces, and closes, its previous connection.
type Hub struct {
	mu          sync.RWMutex
	log         *slog.Logger
	connections map[domain.Identity]*Connection
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{log: log, connections: make(map[domain.Identity]*Connection)}
}

func (h *Hub) Register(conn *Connection) {
	id := conn.Participant().ID
	h.mu.Lock()
	previous, exists := h.connections[id]
	h.connections[id] = conn
	h.mu.Unlock()
	if exists && previous != conn {
		go func() {
			if err := previous.Close(); err != nil {
				h.log.Debug("Failed to close replaced connection", "participant", id, "error", err)
			}
		}()
	}
}

// Unregister removes conn only if it is still the registered one.
func (h *Hub) Unregister(conn *Connection) {
	id := conn.Participant().ID
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.connections[id]; ok && current == conn {
		delete(h.connections, id)
	}
}

func (h *Hub) Lookup(id domain.Identity) (*Connection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.connections[id]
	return conn, ok
}

// Broadcast sends a frame to every participant watching the channel and returns how many got it.
func (h *Hub) Broadcast(channel domain.ChannelID, frame Outbound) int {
	h.mu.RLock()
	var targets []*Connection
	for _, conn := range h.connections {
		if conn.Participant().Channel == channel {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, conn := range targets {
		if err := conn.WriteJSON(frame); err != nil {
			h.log.Debug("Broadcast write failed", "participant", conn.Participant().ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// Send delivers a frame to a single participant.
func (h *Hub) Send(id domain.Identity, frame Outbound) bool {
	conn, ok := h.Lookup(id)
	if !ok {
		return false
	}
	if err := conn.WriteJSON(frame); err != nil {
		h.log.Debug("Direct write failed", "participant", id, "error", err)
		return false
	}
	return true
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
