package domain

import "github.com/shopspring/decimal"

type Recurrence string

const (
	RecurrenceOnce    Recurrence = "once"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the known recurrences.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// RejectionReason explains why a scenario was not evaluated. Rejections are
// ordinary results, not errors.
type RejectionReason string

const (
	RejectionInvalidAmount     RejectionReason = "invalid_amount"
	RejectionExceedsIncome     RejectionReason = "exceeds_income"
	RejectionInvalidDuration   RejectionReason = "invalid_duration"
	RejectionInvalidRecurrence RejectionReason = "invalid_recurrence"
)

// ScenarioInput is a hypothetical income or expense event.
type ScenarioInput struct {
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Recurrence     Recurrence      `json:"recurrence"`
	DurationMonths int             `json:"durationMonths"`
	IsIncome       bool            `json:"isIncome"`
}

// FinancialSnapshot is the monthly position a scenario is measured against.
type FinancialSnapshot struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
}

// ScenarioStep is one line of the human-readable explanation of a result.
type ScenarioStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BreakdownSlice is one segment of the post-scenario monthly budget.
type BreakdownSlice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// ScenarioResult is either an accepted evaluation or a rejection. When
// RejectionReason is set only Name, Affordable and Steps are meaningful.
type ScenarioResult struct {
	Name                 string           `json:"name"`
	IsIncome             bool             `json:"isIncome"`
	MonthlyImpact        decimal.Decimal  `json:"monthlyImpact"`
	TotalImpact          decimal.Decimal  `json:"totalImpact"`
	PercentOfIncome      decimal.Decimal  `json:"percentOfIncome"`
	ProjectedSavingsRate decimal.Decimal  `json:"projectedSavingsRate"`
	AnnualImpact         decimal.Decimal  `json:"annualImpact"`
	Affordable           bool             `json:"affordable"`
	RejectionReason      RejectionReason  `json:"rejectionReason,omitempty"`
	Steps                []ScenarioStep   `json:"steps"`
	Breakdown            []BreakdownSlice `json:"breakdown,omitempty"`
}

// Rejected reports whether the evaluation was rejected.
func (r ScenarioResult) Rejected() bool {
	return r.RejectionReason != ""
}
