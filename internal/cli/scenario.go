package cli

import (
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/app"
	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/spf13/cobra"
)

func (r *runner) incomeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage monthly income",
	}

	set := &cobra.Command{
		Use:   "set AMOUNT",
		Short: "Set monthly income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseAmount("income", args[0])
			if err != nil {
				return err
			}
			return r.withApp(cmd, func(a *app.App) error {
				snapshot, err := a.Projection.SetMonthlyIncome(cmd.Context(), income)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				if ok, err := r.printJSON(cmd, snapshot); ok {
					return err
				}
				printSnapshot(cmd, snapshot)
				return nil
			})
		},
	}

	cmd.AddCommand(set)
	return cmd
}

func printSnapshot(cmd *cobra.Command, s domain.FinancialSnapshot) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Monthly income:    %s\n", money(s.MonthlyIncome))
	fmt.Fprintf(w, "Monthly expenses:  %s\n", money(s.MonthlyExpenses))
	fmt.Fprintf(w, "Monthly savings:   %s\n", money(s.MonthlySavings))
}

func (r *runner) scenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Evaluate what-if scenarios",
	}

	var (
		name       string
		amount     string
		recurrence string
		months     int
		isIncome   bool
	)
	eval := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a scenario against the current position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			input := domain.ScenarioInput{
				Name:           name,
				Amount:         value,
				Recurrence:     domain.Recurrence(recurrence),
				DurationMonths: months,
				IsIncome:       isIncome,
			}
			return r.withApp(cmd, func(a *app.App) error {
				result := a.Projection.Evaluate(input, nil)
				if ok, err := r.printJSON(cmd, result); ok {
					return err
				}
				printScenario(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
	eval.Flags().StringVar(&name, "name", "Scenario", "Scenario name")
	eval.Flags().StringVar(&amount, "amount", "", "Amount (required)")
	eval.Flags().StringVar(&recurrence, "recurrence", string(domain.RecurrenceMonthly), "once, monthly or yearly")
	eval.Flags().IntVar(&months, "months", 12, "Duration in months")
	eval.Flags().BoolVar(&isIncome, "income", false, "Treat the amount as additional income")
	_ = eval.MarkFlagRequired("amount")

	presets := &cobra.Command{
		Use:   "presets",
		Short: "Evaluate the quick scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				snapshot := a.Projection.FinancialSnapshot()
				inputs := a.Preset.QuickScenarios(snapshot)
				results := make([]domain.ScenarioResult, len(inputs))
				for i, input := range inputs {
					results[i] = a.Projection.Evaluate(input, &snapshot)
				}
				if ok, err := r.printJSON(cmd, results); ok {
					return err
				}
				for _, result := range results {
					printScenario(cmd.OutOrStdout(), result)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(eval, presets)
	return cmd
}

func (r *runner) purchaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Estimate the full cost of large purchases",
	}

	var price string
	var months int
	estimate := &cobra.Command{
		Use:   "estimate KIND",
		Short: "Estimate fees for a car, house or student loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := service.ParsePurchaseKind(args[0])
			if err != nil {
				return err
			}
			value, err := parseAmount("price", price)
			if err != nil {
				return err
			}
			return r.withApp(cmd, func(a *app.App) error {
				est, err := a.Purchase.Estimate(kind, value, months)
				if err != nil {
					return err
				}
				result := a.Projection.Evaluate(est.Scenario, nil)
				if ok, err := r.printJSON(cmd, map[string]interface{}{"estimate": est, "result": result}); ok {
					return err
				}

				w := cmd.OutOrStdout()
				header(w, est.Scenario.Name)
				fmt.Fprintf(w, "  %-28s %12s\n", "Price", money(est.Price))
				for _, fee := range est.Fees {
					fmt.Fprintf(w, "  %-28s %12s\n", fee.Name, money(fee.Amount))
				}
				fmt.Fprintf(w, "  %-28s %12s\n", "Total fees", money(est.TotalFees))
				fmt.Fprintf(w, "  %-28s %12s\n", "Total cost", money(est.TotalCost))
				printScenario(w, result)
				return nil
			})
		},
	}
	estimate.Flags().StringVar(&price, "price", "", "Purchase price (required)")
	estimate.Flags().IntVar(&months, "months", 12, "Months to spread the cost over")
	_ = estimate.MarkFlagRequired("price")

	cmd.AddCommand(estimate)
	return cmd
}
