package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSaveRetryWorker(t *testing.T) (*SaveRetryWorker, *ProjectionService, *testutil.MockKeyValueStore) {
	store := testutil.NewMockKeyValueStore()
	projection := newTestProjection(t, store)

	config := SaveRetryWorkerConfig{
		Interval: 100 * time.Millisecond, // Fast interval for testing
	}

	worker := NewSaveRetryWorker(projection, zerolog.Nop(), config)
	return worker, projection, store
}

func TestSaveRetryWorker_New(t *testing.T) {
	worker, _, _ := setupSaveRetryWorker(t)

	assert.NotNil(t, worker)
	assert.Equal(t, 100*time.Millisecond, worker.interval)
	assert.False(t, worker.IsRunning())
}

func TestSaveRetryWorker_DefaultsForInvalidConfig(t *testing.T) {
	projection := newTestProjection(t, testutil.NewMockKeyValueStore())

	worker := NewSaveRetryWorker(projection, zerolog.Nop(), SaveRetryWorkerConfig{Interval: 0})
	assert.Equal(t, DefaultSaveRetryWorkerConfig().Interval, worker.interval)
}

func TestSaveRetryWorker_StartStop(t *testing.T) {
	worker, _, _ := setupSaveRetryWorker(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start twice is idempotent
	worker.Start(ctx)
	worker.Start(ctx)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	assert.False(t, worker.IsRunning())

	// Stop again should not panic
	worker.Stop()
}

func TestSaveRetryWorker_RestartAfterStop(t *testing.T) {
	worker, projection, store := setupSaveRetryWorker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Stop()
	require.False(t, worker.IsRunning())

	store.FailSet = true
	_, err := projection.AddCategory(ctx, "Food", d("500"), d("350"))
	require.ErrorIs(t, err, domain.ErrPersistence)
	store.SetFailures(false, false)

	worker.Start(ctx)
	assert.True(t, worker.IsRunning())
	assert.Eventually(t, func() bool { return projection.SaveStatus().Saved }, 2*time.Second, 20*time.Millisecond)
	assert.True(t, worker.IsRunning(), "restarted worker must keep running")

	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestSaveRetryWorker_ContextCancellation(t *testing.T) {
	worker, _, _ := setupSaveRetryWorker(t)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	assert.True(t, worker.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !worker.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestSaveRetryWorker_RetryNow(t *testing.T) {
	worker, projection, store := setupSaveRetryWorker(t)
	ctx := context.Background()

	// Nothing to do while saved
	assert.True(t, worker.RetryNow(ctx))
	assert.Equal(t, 0, store.SetCalls)

	store.FailSet = true
	_, err := projection.AddCategory(ctx, "Food", d("500"), d("350"))
	require.ErrorIs(t, err, domain.ErrPersistence)

	assert.False(t, worker.RetryNow(ctx))
	assert.False(t, projection.SaveStatus().Saved)

	store.SetFailures(false, false)
	assert.True(t, worker.RetryNow(ctx))
	assert.True(t, projection.SaveStatus().Saved)

	reloaded := newTestProjection(t, store)
	assert.Len(t, reloaded.Categories(), 1)
}

func TestSaveRetryWorker_RetriesInBackground(t *testing.T) {
	worker, projection, store := setupSaveRetryWorker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store.FailSet = true
	_, err := projection.SetMonthlyIncome(ctx, d("4000"))
	require.Error(t, err)
	store.SetFailures(false, false)

	worker.Start(ctx)
	defer worker.Stop()

	assert.Eventually(t, func() bool { return projection.SaveStatus().Saved }, 2*time.Second, 20*time.Millisecond)
}

func TestProjection_FlushSkipsAfterFailedLoad(t *testing.T) {
	store := testutil.NewMockKeyValueStore()
	store.FailGet = true
	projection := NewProjectionService(store, ProjectionOptions{})
	require.Error(t, projection.Load(context.Background()))

	attempted, err := projection.Flush(context.Background())
	assert.NoError(t, err)
	assert.False(t, attempted)
	assert.Equal(t, 0, store.SetCalls)
}
