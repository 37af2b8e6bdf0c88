package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	Namespace() string
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections grouped by ledger namespace.
// It is safe for concurrent use
type Hub struct {
	// namespaces maps a ledger namespace to a map of client ID to client
	namespaces map[string]map[string]ClientInterface
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		namespaces: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its namespace
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	namespace := client.Namespace()
	clientID := client.ID()

	if h.namespaces[namespace] == nil {
		h.namespaces[namespace] = make(map[string]ClientInterface)
	}

	h.namespaces[namespace][clientID] = client

	log.Debug().
		Str("namespace", namespace).
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	namespace := client.Namespace()
	clientID := client.ID()

	if clients, ok := h.namespaces[namespace]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			if len(clients) == 0 {
				delete(h.namespaces, namespace)
			}

			log.Debug().
				Str("namespace", namespace).
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends an event to all clients of a namespace
func (h *Hub) Broadcast(namespace string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("namespace", namespace).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients, ok := h.namespaces[namespace]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	for _, client := range clientsCopy {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("namespace", namespace).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("namespace", namespace).
		Str("event_type", event.Type).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients connected to a namespace
func (h *Hub) ClientCount(namespace string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.namespaces[namespace])
}

// TotalClientCount returns the total number of connected clients
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.namespaces {
		total += len(clients)
	}
	return total
}
