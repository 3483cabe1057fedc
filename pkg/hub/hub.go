// Package hub provides a thread-safe websocket broadcast hub for streaming
// telemetry frames to dashboard clients, using the channel-based fan-out
// pattern.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/teslashibe/go-rover/internal/log"
)

// Hub maintains the set of active clients and fans telemetry frames out to
// them. Slow clients are dropped rather than allowed to stall the decision
// loop.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// New creates a hub. Call Run in a goroutine before broadcasting.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's main loop. It owns the client set; all membership changes
// and broadcasts are serialized here.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry client connected", "hub", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry client disconnected", "hub", h.name, "clients", count)

		case frame := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Client buffer full; drop them rather than block.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow telemetry client", "hub", h.name)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues a frame for all connected clients. Never blocks; the frame
// is dropped when the queue is full.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
		log.Warn("telemetry queue full, dropping frame", "hub", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
