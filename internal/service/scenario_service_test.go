package service

import (
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tolerance = decimal.New(1, -9)

func assertApprox(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Sub(got).Abs().LessThanOrEqual(tolerance), "want %s, got %s", want, got)
}

func baseSnapshot() domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		MonthlyIncome:   d("3120"),
		MonthlyExpenses: d("2600"),
		MonthlySavings:  d("520"),
	}
}

func TestEvaluate_MonthlyExpense(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Name:           "New Car",
		Amount:         d("300"),
		Recurrence:     domain.RecurrenceMonthly,
		DurationMonths: 12,
	}, baseSnapshot())

	require.False(t, result.Rejected())
	assert.True(t, result.MonthlyImpact.Equal(d("300")))
	assert.True(t, result.TotalImpact.Equal(d("3600")))
	assert.True(t, result.AnnualImpact.Equal(d("3600")))
	assert.Equal(t, "9.6", result.PercentOfIncome.StringFixed(1))
	assert.True(t, result.ProjectedSavingsRate.Equal(d("220")))
	assert.True(t, result.Affordable)

	titles := make([]string, len(result.Steps))
	for i, s := range result.Steps {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Monthly Impact", "Total Impact", "Budget Impact", "Savings Impact", "Annual Perspective"}, titles)
	assert.Equal(t, "Subtracting $300.00 each month.", result.Steps[0].Description)
	assert.Equal(t, "This would reduce your monthly savings from $520.00 to $220.00.", result.Steps[3].Description)

	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, "Remaining Savings", result.Breakdown[2].Label)
	assert.True(t, result.Breakdown[2].Value.Equal(d("220")))
}

func TestEvaluate_ExceedsIncome(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Amount:         d("5000"),
		Recurrence:     domain.RecurrenceMonthly,
		DurationMonths: 1,
	}, baseSnapshot())

	assert.Equal(t, domain.RejectionExceedsIncome, result.RejectionReason)
	assert.False(t, result.Affordable)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "Exceeds monthly income", result.Steps[0].Title)
	assert.True(t, result.TotalImpact.IsZero())
	assert.Nil(t, result.Breakdown)
}

func TestEvaluate_IncomeScenario(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Name:           "10% Raise",
		Amount:         d("312"),
		Recurrence:     domain.RecurrenceMonthly,
		DurationMonths: 12,
		IsIncome:       true,
	}, baseSnapshot())

	require.False(t, result.Rejected())
	assert.True(t, result.ProjectedSavingsRate.Equal(d("832")))
	assert.True(t, result.Affordable)
	assert.Equal(t, "Savings Opportunity", result.Steps[3].Title)
	assert.Equal(t, "Additional Income", result.Breakdown[2].Label)
}

func TestEvaluate_IncomeLargerThanIncomeIsAccepted(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Amount:         d("10000"),
		Recurrence:     domain.RecurrenceMonthly,
		DurationMonths: 1,
		IsIncome:       true,
	}, baseSnapshot())

	assert.False(t, result.Rejected())
}

func TestEvaluate_AcceptedButUnaffordable(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Amount:         d("600"),
		Recurrence:     domain.RecurrenceMonthly,
		DurationMonths: 12,
	}, baseSnapshot())

	require.False(t, result.Rejected())
	assert.True(t, result.ProjectedSavingsRate.Equal(d("-80")))
	assert.False(t, result.Affordable)
	assert.Equal(t, "This would exceed your current savings rate of $520.00 per month by $80.00.", result.Steps[3].Description)
	assert.True(t, result.Breakdown[2].Value.IsZero())
}

func TestEvaluate_RejectionReasons(t *testing.T) {
	engine := NewScenarioService()

	tests := []struct {
		name  string
		input domain.ScenarioInput
		want  domain.RejectionReason
	}{
		{"zero amount", domain.ScenarioInput{Amount: decimal.Zero, Recurrence: domain.RecurrenceMonthly, DurationMonths: 1}, domain.RejectionInvalidAmount},
		{"negative amount", domain.ScenarioInput{Amount: d("-1"), Recurrence: domain.RecurrenceMonthly, DurationMonths: 1}, domain.RejectionInvalidAmount},
		{"negative income amount", domain.ScenarioInput{Amount: d("-1"), Recurrence: domain.RecurrenceMonthly, DurationMonths: 1, IsIncome: true}, domain.RejectionInvalidAmount},
		{"unknown recurrence", domain.ScenarioInput{Amount: d("1"), Recurrence: "weekly", DurationMonths: 1}, domain.RejectionInvalidRecurrence},
		{"zero duration", domain.ScenarioInput{Amount: d("1"), Recurrence: domain.RecurrenceOnce, DurationMonths: 0}, domain.RejectionInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Evaluate(tt.input, baseSnapshot())
			assert.Equal(t, tt.want, result.RejectionReason)
			assert.False(t, result.Affordable)
			assert.Len(t, result.Steps, 1)
		})
	}
}

func TestEvaluate_ZeroIncome(t *testing.T) {
	engine := NewScenarioService()
	snapshot := domain.FinancialSnapshot{MonthlyIncome: decimal.Zero, MonthlyExpenses: decimal.Zero, MonthlySavings: decimal.Zero}

	expense := engine.Evaluate(domain.ScenarioInput{Amount: d("10"), Recurrence: domain.RecurrenceMonthly, DurationMonths: 1}, snapshot)
	assert.Equal(t, domain.RejectionExceedsIncome, expense.RejectionReason)

	income := engine.Evaluate(domain.ScenarioInput{Amount: d("10"), Recurrence: domain.RecurrenceMonthly, DurationMonths: 1, IsIncome: true}, snapshot)
	require.False(t, income.Rejected())
	assert.True(t, income.PercentOfIncome.IsZero())
	assert.True(t, income.ProjectedSavingsRate.Equal(d("10")))
}

func TestNormalization_RoundTrips(t *testing.T) {
	amounts := []string{"1", "100", "333.33", "1234.56", "99999"}
	durations := []int{1, 3, 7, 12, 60}

	for _, a := range amounts {
		amount := d(a)

		assert.True(t, MonthlyImpact(amount, domain.RecurrenceMonthly, 12).Equal(amount))

		yearly := MonthlyImpact(amount, domain.RecurrenceYearly, 12)
		assertApprox(t, amount, yearly.Mul(decimal.NewFromInt(12)))

		for _, months := range durations {
			once := MonthlyImpact(amount, domain.RecurrenceOnce, months)
			assertApprox(t, amount, once.Mul(decimal.NewFromInt(int64(months))))
		}
	}
}

func TestTotalAndAnnualImpact(t *testing.T) {
	tests := []struct {
		recurrence domain.Recurrence
		months     int
		wantTotal  string
		wantAnnual string
	}{
		{domain.RecurrenceOnce, 6, "1200", "1200"},
		{domain.RecurrenceMonthly, 6, "7200", "14400"},
		{domain.RecurrenceYearly, 6, "600", "1200"},
		{domain.RecurrenceYearly, 24, "2400", "1200"},
	}

	for _, tt := range tests {
		t.Run(string(tt.recurrence), func(t *testing.T) {
			assert.True(t, TotalImpact(d("1200"), tt.recurrence, tt.months).Equal(d(tt.wantTotal)))
			assert.True(t, AnnualImpact(d("1200"), tt.recurrence).Equal(d(tt.wantAnnual)))
		})
	}
}

func TestEvaluate_OnceSpreadsOverDuration(t *testing.T) {
	engine := NewScenarioService()

	result := engine.Evaluate(domain.ScenarioInput{
		Name:           "Vacation",
		Amount:         d("1500"),
		Recurrence:     domain.RecurrenceOnce,
		DurationMonths: 3,
	}, baseSnapshot())

	require.False(t, result.Rejected())
	assert.True(t, result.MonthlyImpact.Equal(d("500")))
	assert.True(t, result.TotalImpact.Equal(d("1500")))
	assert.Equal(t, "Subtracting $500.00 averaged over time.", result.Steps[0].Description)
	assert.Equal(t, "Total cost of $1500.00 over 3 months.", result.Steps[1].Description)
}
