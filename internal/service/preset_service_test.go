package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedPresets(t *testing.T) {
	presets, err := LoadEmbeddedPresets()
	require.NoError(t, err)

	assert.True(t, presets.DefaultMonthlyIncome.Equal(d("3120")))
	require.Len(t, presets.SeedCategories, 6)
	assert.Equal(t, "Housing", presets.SeedCategories[0].Name)
	assert.True(t, presets.SeedCategories[0].Budget.Equal(d("1200")))
	require.Len(t, presets.QuickScenarios, 4)

	for _, kind := range []domain.PurchaseKind{domain.PurchaseKindCar, domain.PurchaseKindHouse, domain.PurchaseKindStudentLoan} {
		assert.NotEmpty(t, presets.PurchaseFees[kind], kind)
	}
}

func TestQuickScenarios_IncomeRelativeRaise(t *testing.T) {
	presets, err := LoadEmbeddedPresets()
	require.NoError(t, err)
	svc := NewPresetService(presets)

	inputs := svc.QuickScenarios(baseSnapshot())
	require.Len(t, inputs, 4)

	assert.Equal(t, "New Car", inputs[0].Name)
	assert.Equal(t, domain.RecurrenceMonthly, inputs[0].Recurrence)
	assert.Equal(t, 60, inputs[0].DurationMonths)

	raise := inputs[3]
	assert.Equal(t, "10% Raise", raise.Name)
	assert.True(t, raise.IsIncome)
	assert.True(t, raise.Amount.Equal(d("312")))

	result := NewScenarioService().Evaluate(raise, baseSnapshot())
	assert.True(t, result.ProjectedSavingsRate.Equal(d("832")))
}

func TestParsePresets_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "seedCategories: [oops"},
		{"bad category", "seedCategories:\n  - name: Food\n    budget: \"0\"\n"},
		{"bad recurrence", "quickScenarios:\n  - name: X\n    amount: \"1\"\n    recurrence: weekly\n    durationMonths: 1\n"},
		{"bad duration", "quickScenarios:\n  - name: X\n    amount: \"1\"\n    recurrence: once\n    durationMonths: 0\n"},
		{"negative fee", "purchaseFees:\n  car:\n    - {name: Tax, percent: \"-1\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePresets([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadPresets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultMonthlyIncome: \"4000\"\nseedCategories:\n  - name: Rent\n    budget: \"1500\"\n    spent: \"0\"\n"), 0o644))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	assert.True(t, presets.DefaultMonthlyIncome.Equal(d("4000")))
	require.Len(t, presets.SeedCategories, 1)

	_, err = LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
