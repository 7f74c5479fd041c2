package realtime

import (
	"encoding/json"
	"sync"

	"todo-list-api/internal/todo"

	"github.com/charmbracelet/log"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections and broadcasts registry events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
	logger  *log.Logger
}

// NewHub returns an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Len returns the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to all clients.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			// write failed; the handler unregisters it when its read loop ends
			h.logger.Debug("realtime send failed")
		}
	}
}

// Notify implements todo.Notifier.
func (h *Hub) Notify(evt todo.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("encode event", "type", evt.Type, "err", err)
		return
	}
	h.Broadcast(data)
}

var _ todo.Notifier = (*Hub)(nil)
