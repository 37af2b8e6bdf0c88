package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetState(t *testing.T) {
	env := newTestEnv(t)
	h := NewStateHandler(env.projection)
	_, err := env.projection.AddCategory(context.Background(), "Food", dec("500"), dec("350"))
	require.NoError(t, err)

	c, rec := env.request(http.MethodGet, "/api/v1/state", "")
	require.NoError(t, h.GetState(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var state StateResponse
	decodeBody(t, rec, &state)
	assert.Len(t, state.Snapshot.Categories, 1)
	assert.Len(t, state.Categories, 1)
	assert.True(t, state.SaveStatus.Saved)
	assert.Empty(t, rec.Header().Get(PersistenceHeader))
}

func TestGetState_ReportsUnsaved(t *testing.T) {
	env := newTestEnv(t)
	h := NewStateHandler(env.projection)
	env.store.FailSet = true
	_, err := env.projection.AddCategory(context.Background(), "Food", dec("500"), dec("350"))
	require.Error(t, err)

	c, rec := env.request(http.MethodGet, "/api/v1/state", "")
	require.NoError(t, h.GetState(c))

	assert.Equal(t, "unsaved", rec.Header().Get(PersistenceHeader))
	var state StateResponse
	decodeBody(t, rec, &state)
	assert.False(t, state.SaveStatus.Saved)
	assert.NotEmpty(t, state.SaveStatus.LastError)
}
