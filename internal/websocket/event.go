package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated     EventType = "created"
	EventTypeUpdated     EventType = "updated"
	EventTypeDeleted     EventType = "deleted"
	EventTypeContributed EventType = "contributed"
	EventTypeReset       EventType = "reset"
	EventTypeSaveFailed  EventType = "save_failed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeCategory EntityType = "category"
	EntityTypeGoal     EntityType = "goal"
	EntityTypeIncome   EntityType = "income"
	EntityTypeLedger   EntityType = "ledger"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "category.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "category"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, payload)
}

// GoalCreated creates a goal.created event
func GoalCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeGoal, payload)
}

// GoalContributed creates a goal.contributed event
func GoalContributed(payload interface{}) Event {
	return NewEvent(EventTypeContributed, EntityTypeGoal, payload)
}

// GoalReset creates a goal.reset event
func GoalReset(payload interface{}) Event {
	return NewEvent(EventTypeReset, EntityTypeGoal, payload)
}

// IncomeUpdated creates an income.updated event
func IncomeUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeIncome, payload)
}

// LedgerSaveFailed creates a ledger.save_failed event
func LedgerSaveFailed(payload interface{}) Event {
	return NewEvent(EventTypeSaveFailed, EntityTypeLedger, payload)
}
