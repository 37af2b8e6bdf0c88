package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultGoalName is used when a goal is created without a name.
const DefaultGoalName = "Savings goal"

// SavingsGoal is the single active savings target. CurrentAmount is the exact
// sum of the goal's contributions and may exceed TargetAmount.
type SavingsGoal struct {
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CurrentAmount   decimal.Decimal `json:"currentAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	TimeframeMonths *int            `json:"timeframeMonths,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
}

// ProgressPercentage returns min(100, round(current / target * 100)).
func (g SavingsGoal) ProgressPercentage() int {
	p := RoundedPercent(g.CurrentAmount, g.TargetAmount)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Remaining returns max(0, target - current).
func (g SavingsGoal) Remaining() decimal.Decimal {
	return MaxZero(g.TargetAmount.Sub(g.CurrentAmount))
}

// Achieved reports whether the target has been reached.
func (g SavingsGoal) Achieved() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Contribution is one immutable deposit toward the active goal.
type Contribution struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// GoalProgress is the derived view of the active goal.
type GoalProgress struct {
	CurrentAmount      decimal.Decimal  `json:"currentAmount"`
	TargetAmount       decimal.Decimal  `json:"targetAmount"`
	ProgressPercentage int              `json:"progressPercentage"`
	Remaining          decimal.Decimal  `json:"remaining"`
	Achieved           bool             `json:"achieved"`
	MonthsRemaining    *int             `json:"monthsRemaining,omitempty"`
	SuggestedMonthly   *decimal.Decimal `json:"suggestedMonthly,omitempty"`
}

// ContributeOptions tunes a single contribution.
type ContributeOptions struct {
	// EnforceCap rejects contributions larger than the goal's remaining amount.
	EnforceCap bool
}
