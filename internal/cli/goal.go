package cli

import (
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/app"
	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/spf13/cobra"
)

func (r *runner) goalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the savings goal",
	}

	var name, target string
	var months int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a savings goal, replacing any existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetAmount, err := parseAmount("target", target)
			if err != nil {
				return err
			}
			var timeframe *int
			if cmd.Flags().Changed("months") {
				timeframe = &months
			}
			return r.withApp(cmd, func(a *app.App) error {
				state, err := a.Projection.CreateGoal(cmd.Context(), name, targetAmount, timeframe)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				if ok, err := r.printJSON(cmd, state); ok {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Created goal %q for %s\n", state.Goal.Name, money(state.Goal.TargetAmount))
				if state.Progress != nil {
					printProgress(w, *state.Progress)
				}
				return nil
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "Goal name")
	create.Flags().StringVar(&target, "target", "", "Target amount (required)")
	create.Flags().IntVar(&months, "months", 0, "Timeframe in months")
	_ = create.MarkFlagRequired("target")

	var enforceCap bool
	contribute := &cobra.Command{
		Use:   "contribute AMOUNT",
		Short: "Record a contribution toward the goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			var opts *domain.ContributeOptions
			if cmd.Flags().Changed("enforce-cap") {
				opts = &domain.ContributeOptions{EnforceCap: enforceCap}
			}
			return r.withApp(cmd, func(a *app.App) error {
				result, err := a.Projection.Contribute(cmd.Context(), amount, opts)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				if ok, err := r.printJSON(cmd, result); ok {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Contributed %s\n", money(result.Contribution.Amount))
				printProgress(w, result.Progress)
				return nil
			})
		},
	}
	contribute.Flags().BoolVar(&enforceCap, "enforce-cap", false, "Reject contributions beyond the remaining amount")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear the goal and its contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				err := a.Projection.ResetGoal(cmd.Context())
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Savings goal reset")
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show goal progress and contribution history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				state := a.Projection.Goal()
				if ok, err := r.printJSON(cmd, state); ok {
					return err
				}
				w := cmd.OutOrStdout()
				if state.Goal == nil {
					fmt.Fprintln(w, "No active savings goal.")
					return nil
				}
				header(w, state.Goal.Name)
				printProgress(w, *state.Progress)
				if len(state.Contributions) > 0 {
					fmt.Fprintln(w)
					for _, c := range state.Contributions {
						fmt.Fprintf(w, "  %s  %12s\n", c.Timestamp.Format("2006-01-02 15:04"), money(c.Amount))
					}
				}
				return nil
			})
		},
	}

	cmd.AddCommand(create, contribute, reset, show)
	return cmd
}
