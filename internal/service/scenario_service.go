package service

import (
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// ScenarioService evaluates hypothetical income and expense events against a
// financial snapshot. It is stateless.
type ScenarioService struct{}

// NewScenarioService creates a new ScenarioService
func NewScenarioService() *ScenarioService {
	return &ScenarioService{}
}

// MonthlyImpact normalizes an amount to its per-month equivalent
func MonthlyImpact(amount decimal.Decimal, recurrence domain.Recurrence, durationMonths int) decimal.Decimal {
	switch recurrence {
	case domain.RecurrenceOnce:
		return amount.Div(decimal.NewFromInt(int64(durationMonths)))
	case domain.RecurrenceYearly:
		return amount.Div(decimalTwelve)
	default:
		return amount
	}
}

// TotalImpact is the cumulative amount over the scenario's duration
func TotalImpact(amount decimal.Decimal, recurrence domain.Recurrence, durationMonths int) decimal.Decimal {
	months := decimal.NewFromInt(int64(durationMonths))
	switch recurrence {
	case domain.RecurrenceOnce:
		return amount
	case domain.RecurrenceYearly:
		return amount.Mul(months).Div(decimalTwelve)
	default:
		return amount.Mul(months)
	}
}

// AnnualImpact is the amount the scenario represents over one year
func AnnualImpact(amount decimal.Decimal, recurrence domain.Recurrence) decimal.Decimal {
	switch recurrence {
	case domain.RecurrenceMonthly:
		return amount.Mul(decimalTwelve)
	default:
		return amount
	}
}

// Evaluate runs a scenario against snapshot. It never returns an error:
// invalid or unaffordable scenarios come back with RejectionReason set.
func (s *ScenarioService) Evaluate(input domain.ScenarioInput, snapshot domain.FinancialSnapshot) domain.ScenarioResult {
	result := domain.ScenarioResult{
		Name:     input.Name,
		IsIncome: input.IsIncome,
	}

	if !input.Amount.IsPositive() {
		return reject(result, domain.RejectionInvalidAmount,
			"Invalid amount", "Please enter a positive amount for your scenario.")
	}
	if !input.Recurrence.Valid() {
		return reject(result, domain.RejectionInvalidRecurrence,
			"Invalid recurrence", fmt.Sprintf("Recurrence %q must be once, monthly or yearly.", input.Recurrence))
	}
	if input.DurationMonths < 1 {
		return reject(result, domain.RejectionInvalidDuration,
			"Invalid duration", "Duration must be at least one month.")
	}

	monthly := MonthlyImpact(input.Amount, input.Recurrence, input.DurationMonths)
	income := snapshot.MonthlyIncome

	if !input.IsIncome && monthly.GreaterThan(income) {
		return reject(result, domain.RejectionExceedsIncome,
			"Exceeds monthly income",
			fmt.Sprintf("This expense of $%s per month exceeds your current monthly income of $%s.",
				monthly.StringFixed(2), income.StringFixed(2)))
	}

	result.MonthlyImpact = monthly
	result.TotalImpact = TotalImpact(input.Amount, input.Recurrence, input.DurationMonths)
	result.AnnualImpact = AnnualImpact(input.Amount, input.Recurrence)

	// An income scenario against zero income has no meaningful share.
	result.PercentOfIncome = decimal.Zero
	if income.IsPositive() {
		result.PercentOfIncome = monthly.Mul(decimalHundred).Div(income)
	}

	if input.IsIncome {
		result.ProjectedSavingsRate = snapshot.MonthlySavings.Add(monthly)
	} else {
		result.ProjectedSavingsRate = snapshot.MonthlySavings.Sub(monthly)
	}
	result.Affordable = input.IsIncome || !result.ProjectedSavingsRate.IsNegative()

	result.Steps = explain(input, snapshot, result)
	result.Breakdown = breakdown(input.IsIncome, snapshot, monthly)
	return result
}

func reject(result domain.ScenarioResult, reason domain.RejectionReason, title, description string) domain.ScenarioResult {
	result.RejectionReason = reason
	result.Affordable = false
	result.Steps = []domain.ScenarioStep{{Title: title, Description: description}}
	return result
}

func explain(input domain.ScenarioInput, snapshot domain.FinancialSnapshot, result domain.ScenarioResult) []domain.ScenarioStep {
	direction, spread, kind, verb := "Subtracting", "each month", "cost", "costs"
	if input.IsIncome {
		direction, kind, verb = "Adding", "income", "adds"
	}
	if input.Recurrence == domain.RecurrenceOnce {
		spread = "averaged over time"
	}
	plural := ""
	if input.DurationMonths > 1 {
		plural = "s"
	}

	steps := []domain.ScenarioStep{
		{
			Title:       "Monthly Impact",
			Description: fmt.Sprintf("%s $%s %s.", direction, result.MonthlyImpact.StringFixed(2), spread),
		},
		{
			Title: "Total Impact",
			Description: fmt.Sprintf("Total %s of $%s over %d month%s.",
				kind, result.TotalImpact.StringFixed(2), input.DurationMonths, plural),
		},
	}

	if input.IsIncome {
		steps = append(steps,
			domain.ScenarioStep{
				Title:       "Budget Impact",
				Description: fmt.Sprintf("This increases your income by %s%% of your current monthly income.", result.PercentOfIncome.StringFixed(1)),
			},
			domain.ScenarioStep{
				Title: "Savings Opportunity",
				Description: fmt.Sprintf("This could increase your monthly savings from $%s to $%s.",
					snapshot.MonthlySavings.StringFixed(2), result.ProjectedSavingsRate.StringFixed(2)),
			})
	} else {
		steps = append(steps, domain.ScenarioStep{
			Title:       "Budget Impact",
			Description: fmt.Sprintf("This represents %s%% of your current monthly income.", result.PercentOfIncome.StringFixed(1)),
		})
		if result.ProjectedSavingsRate.IsNegative() {
			steps = append(steps, domain.ScenarioStep{
				Title: "Savings Impact",
				Description: fmt.Sprintf("This would exceed your current savings rate of $%s per month by $%s.",
					snapshot.MonthlySavings.StringFixed(2), result.ProjectedSavingsRate.Abs().StringFixed(2)),
			})
		} else {
			steps = append(steps, domain.ScenarioStep{
				Title: "Savings Impact",
				Description: fmt.Sprintf("This would reduce your monthly savings from $%s to $%s.",
					snapshot.MonthlySavings.StringFixed(2), result.ProjectedSavingsRate.StringFixed(2)),
			})
		}
	}

	steps = append(steps, domain.ScenarioStep{
		Title:       "Annual Perspective",
		Description: fmt.Sprintf("Over a year, this %s $%s.", verb, result.AnnualImpact.StringFixed(2)),
	})
	return steps
}

func breakdown(isIncome bool, snapshot domain.FinancialSnapshot, monthly decimal.Decimal) []domain.BreakdownSlice {
	if isIncome {
		return []domain.BreakdownSlice{
			{Label: "Current Expenses", Value: snapshot.MonthlyExpenses},
			{Label: "Current Savings", Value: snapshot.MonthlySavings},
			{Label: "Additional Income", Value: monthly},
		}
	}
	remaining := domain.MaxZero(snapshot.MonthlyIncome.Sub(snapshot.MonthlyExpenses.Add(monthly)))
	return []domain.BreakdownSlice{
		{Label: "Current Expenses", Value: snapshot.MonthlyExpenses},
		{Label: "New Expense", Value: monthly},
		{Label: "Remaining Savings", Value: remaining},
	}
}
