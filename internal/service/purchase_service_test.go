package service

import (
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchaseService(t *testing.T) *PurchaseService {
	t.Helper()
	presets, err := LoadEmbeddedPresets()
	require.NoError(t, err)
	return NewPurchaseService(presets.PurchaseFees)
}

func TestEstimate_Car(t *testing.T) {
	svc := newTestPurchaseService(t)

	estimate, err := svc.Estimate(domain.PurchaseKindCar, d("20000"), 12)
	require.NoError(t, err)

	require.Len(t, estimate.Fees, 10)
	assert.Equal(t, "Sales tax", estimate.Fees[0].Name)
	assert.True(t, estimate.Fees[0].Amount.Equal(d("1500")))
	assert.True(t, estimate.TotalFees.Equal(d("6442.5")))
	assert.True(t, estimate.TotalCost.Equal(d("26442.5")))

	assert.Equal(t, domain.RecurrenceOnce, estimate.Scenario.Recurrence)
	assert.Equal(t, 12, estimate.Scenario.DurationMonths)
	assert.True(t, estimate.Scenario.Amount.Equal(estimate.TotalCost))
	assert.False(t, estimate.Scenario.IsIncome)
}

func TestEstimate_StudentLoan(t *testing.T) {
	svc := newTestPurchaseService(t)

	estimate, err := svc.Estimate(domain.PurchaseKindStudentLoan, d("10000"), 0)
	require.NoError(t, err)

	// 3% origination + 50% interest + 62.5 + 400
	assert.True(t, estimate.TotalFees.Equal(d("5762.5")))
	assert.Equal(t, 1, estimate.Scenario.DurationMonths)
}

func TestEstimate_Validation(t *testing.T) {
	svc := newTestPurchaseService(t)

	_, err := svc.Estimate(domain.PurchaseKindHouse, d("0"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Estimate("boat", d("100"), 1)
	assert.ErrorIs(t, err, domain.ErrUnknownPurchaseKind)
}

func TestParsePurchaseKind(t *testing.T) {
	tests := []struct {
		in   string
		want domain.PurchaseKind
	}{
		{"car", domain.PurchaseKindCar},
		{" House ", domain.PurchaseKindHouse},
		{"student loan", domain.PurchaseKindStudentLoan},
		{"student_loan", domain.PurchaseKindStudentLoan},
	}
	for _, tt := range tests {
		got, err := ParsePurchaseKind(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePurchaseKind("yacht")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
