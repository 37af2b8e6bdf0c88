package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     "b7c8a3d2-0000-4000-8000-000000000001",
		"name":   "Food",
		"budget": "450",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeCategory, payload)
	after := time.Now()

	assert.Equal(t, "category.created", evt.Type)
	assert.Equal(t, EntityTypeCategory, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"name":          "Car",
		"currentAmount": "1500",
	}

	evt := Event{
		Type:      "goal.contributed",
		Entity:    EntityTypeGoal,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime, decoded.Timestamp.UTC())

	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Car", decodedPayload["name"])
	assert.Equal(t, "1500", decodedPayload["currentAmount"])
}

func TestEvent_ToJSON(t *testing.T) {
	evt := NewEvent(EventTypeUpdated, EntityTypeIncome, map[string]interface{}{"monthlyIncome": "3120"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "income.updated", decoded["type"])
	assert.Equal(t, "income", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": "x"}

	tests := []struct {
		name     string
		build    func(interface{}) Event
		wantType string
		entity   EntityType
	}{
		{"CategoryCreated", CategoryCreated, "category.created", EntityTypeCategory},
		{"CategoryUpdated", CategoryUpdated, "category.updated", EntityTypeCategory},
		{"CategoryDeleted", CategoryDeleted, "category.deleted", EntityTypeCategory},
		{"GoalCreated", GoalCreated, "goal.created", EntityTypeGoal},
		{"GoalContributed", GoalContributed, "goal.contributed", EntityTypeGoal},
		{"GoalReset", GoalReset, "goal.reset", EntityTypeGoal},
		{"IncomeUpdated", IncomeUpdated, "income.updated", EntityTypeIncome},
		{"LedgerSaveFailed", LedgerSaveFailed, "ledger.save_failed", EntityTypeLedger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := tt.build(payload)
			assert.Equal(t, tt.wantType, evt.Type)
			assert.Equal(t, tt.entity, evt.Entity)
			assert.Equal(t, payload, evt.Payload)
		})
	}
}
