package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryStatus classifies how much of a budget has been used.
type CategoryStatus string

const (
	CategoryStatusOK       CategoryStatus = "ok"
	CategoryStatusWarning  CategoryStatus = "warning"
	CategoryStatusCritical CategoryStatus = "critical"
)

// Status thresholds, inclusive upper bounds.
const (
	StatusOKMaxProgress      = 70
	StatusWarningMaxProgress = 90
)

// StatusForProgress maps a progress percentage onto ok (<=70),
// warning (<=90) or critical (>90).
func StatusForProgress(progress int) CategoryStatus {
	switch {
	case progress <= StatusOKMaxProgress:
		return CategoryStatusOK
	case progress <= StatusWarningMaxProgress:
		return CategoryStatusWarning
	default:
		return CategoryStatusCritical
	}
}

// BudgetCategory is a named spending bucket. Progress is derived from Budget
// and Spent and is not persisted.
type BudgetCategory struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// Progress returns round(spent / budget * 100), or 0 when budget is not positive.
// It is not capped: a category over budget reports more than 100.
func (c BudgetCategory) Progress() int {
	return RoundedPercent(c.Spent, c.Budget)
}

// Status returns the threshold classification of the category's progress.
func (c BudgetCategory) Status() CategoryStatus {
	return StatusForProgress(c.Progress())
}

// OverBudget returns how far spending exceeds the budget, or zero.
func (c BudgetCategory) OverBudget() decimal.Decimal {
	return MaxZero(c.Spent.Sub(c.Budget))
}

// CategoryView is a category together with its derived figures.
type CategoryView struct {
	BudgetCategory
	Progress   int             `json:"progress"`
	Status     CategoryStatus  `json:"status"`
	OverBudget decimal.Decimal `json:"overBudget"`
}

// View computes the derived figures for c.
func (c BudgetCategory) View() CategoryView {
	progress := c.Progress()
	return CategoryView{
		BudgetCategory: c,
		Progress:       progress,
		Status:         StatusForProgress(progress),
		OverBudget:     c.OverBudget(),
	}
}

// CategoryTotals aggregates all categories. Remaining is negative when the
// ledger is over budget in aggregate.
type CategoryTotals struct {
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	Remaining       decimal.Decimal `json:"remaining"`
	OverallProgress int             `json:"overallProgress"`
}

// CategoryUpdate carries the fields to replace on a category; nil fields are
// left unchanged.
type CategoryUpdate struct {
	Name   *string
	Budget *decimal.Decimal
	Spent  *decimal.Decimal
}
