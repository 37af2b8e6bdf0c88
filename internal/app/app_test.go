package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreBackend:   config.StoreMemory,
		StoreNamespace: "default",
		SeedDefaults:   true,
	}
}

func TestNew_SeedsEmptyLedger(t *testing.T) {
	a, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Projection.Categories(), 6)
	assert.True(t, a.Projection.FinancialSnapshot().MonthlyIncome.Equal(decimal.NewFromInt(3120)))
	assert.True(t, a.Projection.SaveStatus().Saved)
}

func TestNew_NoSeed(t *testing.T) {
	cfg := memoryConfig()
	cfg.SeedDefaults = false
	cfg.DefaultMonthlyIncome = decimal.NewFromInt(5000)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Projection.Categories())
	assert.True(t, a.Projection.FinancialSnapshot().MonthlyIncome.Equal(decimal.NewFromInt(5000)))
}

func TestNew_SQLitePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.StoreBackend = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "sprout.db")
	cfg.SeedDefaults = false

	first, err := New(ctx, cfg)
	require.NoError(t, err)
	_, err = first.Projection.AddCategory(ctx, "Food", decimal.NewFromInt(500), decimal.NewFromInt(350))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()
	require.Len(t, second.Projection.Categories(), 1)
	assert.Equal(t, "Food", second.Projection.Categories()[0].Name)
}

func TestNew_PresetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaultMonthlyIncome: "1000"
seedCategories:
  - {name: Rent, budget: "600", spent: "600"}
quickScenarios: []
purchaseFees:
  car: []
  house: []
  student_loan: []
`), 0o600))

	cfg := memoryConfig()
	cfg.PresetsPath = path

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Projection.Categories(), 1)
	assert.Equal(t, "Rent", a.Projection.Categories()[0].Name)
}

func TestNew_MissingPresetsFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.PresetsPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
