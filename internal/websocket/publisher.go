package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients subscribed to the namespace
	Publish(namespace string, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the namespace
func (h *Hub) Publish(namespace string, event Event) {
	h.Broadcast(namespace, event)
}

// NoOpPublisher is a publisher that does nothing (for the CLI or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(namespace string, event Event) {}
