package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	okText       = color.New(color.FgGreen)
	warningText  = color.New(color.FgYellow, color.Bold)
	criticalText = color.New(color.FgRed, color.Bold)
	headerText   = color.New(color.FgCyan, color.Bold)
	errorText    = color.New(color.FgRed)
)

func statusColor(status domain.CategoryStatus) *color.Color {
	switch status {
	case domain.CategoryStatusOK:
		return okText
	case domain.CategoryStatusWarning:
		return warningText
	default:
		return criticalText
	}
}

func header(w io.Writer, text string) {
	headerText.Fprintf(w, "\n%s\n%s\n", text, strings.Repeat("-", len(text)))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// warnUnsaved reports a persistence failure and swallows it. Any other error
// is returned unchanged.
func warnUnsaved(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPersistence) {
		warningText.Fprintf(w, "Warning: changes were applied but not saved (%s)\n", err)
		return nil
	}
	return err
}

func printCategory(w io.Writer, v domain.CategoryView) {
	fmt.Fprintf(w, "%-36s  %-20s %12s %12s  ", v.ID, v.Name, money(v.Spent), money(v.Budget))
	statusColor(v.Status).Fprintf(w, "%4d%% %s", v.Progress, v.Status)
	if v.OverBudget.IsPositive() {
		criticalText.Fprintf(w, "  over by %s", money(v.OverBudget))
	}
	fmt.Fprintln(w)
}

func printTotals(w io.Writer, t domain.CategoryTotals) {
	fmt.Fprintf(w, "Total budget:  %s\n", money(t.TotalBudget))
	fmt.Fprintf(w, "Total spent:   %s\n", money(t.TotalSpent))
	remaining := okText
	if t.Remaining.IsNegative() {
		remaining = criticalText
	}
	fmt.Fprint(w, "Remaining:     ")
	remaining.Fprintln(w, money(t.Remaining))
	fmt.Fprintf(w, "Overall:       %d%%\n", t.OverallProgress)
}

func printProgress(w io.Writer, p domain.GoalProgress) {
	fmt.Fprintf(w, "Saved:      %s of %s (%d%%)\n", money(p.CurrentAmount), money(p.TargetAmount), p.ProgressPercentage)
	fmt.Fprintf(w, "Remaining:  %s\n", money(p.Remaining))
	if p.MonthsRemaining != nil {
		fmt.Fprintf(w, "Months left: %d\n", *p.MonthsRemaining)
	}
	if p.SuggestedMonthly != nil {
		fmt.Fprintf(w, "Suggested:  %s per month\n", money(*p.SuggestedMonthly))
	}
	if p.Achieved {
		okText.Fprintln(w, "Goal achieved!")
	}
}

func printScenario(w io.Writer, r domain.ScenarioResult) {
	header(w, r.Name)
	if r.Rejected() {
		criticalText.Fprintf(w, "Rejected: %s\n", r.RejectionReason)
	} else if r.Affordable {
		okText.Fprintln(w, "Affordable")
	} else {
		criticalText.Fprintln(w, "Not affordable")
	}
	for i, step := range r.Steps {
		fmt.Fprintf(w, "%d. %s: %s\n", i+1, step.Title, step.Description)
	}
	if len(r.Breakdown) > 0 {
		fmt.Fprintln(w)
		for _, slice := range r.Breakdown {
			fmt.Fprintf(w, "  %-20s %12s\n", slice.Label, money(slice.Value))
		}
	}
}
