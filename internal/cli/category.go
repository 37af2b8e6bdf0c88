package cli

import (
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/app"
	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (r *runner) categoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage budget categories",
	}

	var budget, spent string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a budget category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgetAmount, err := parseAmount("budget", budget)
			if err != nil {
				return err
			}
			spentAmount, err := parseAmount("spent", spent)
			if err != nil {
				return err
			}
			return r.withApp(cmd, func(a *app.App) error {
				view, err := a.Projection.AddCategory(cmd.Context(), args[0], budgetAmount, spentAmount)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				if ok, err := r.printJSON(cmd, view); ok {
					return err
				}
				printCategory(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
	add.Flags().StringVar(&budget, "budget", "", "Monthly budget (required)")
	add.Flags().StringVar(&spent, "spent", "0", "Amount spent so far")
	_ = add.MarkFlagRequired("budget")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories with progress and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				views := a.Projection.Categories()
				if ok, err := r.printJSON(cmd, views); ok {
					return err
				}
				w := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintln(w, "No budget categories.")
					return nil
				}
				header(w, "BUDGET CATEGORIES")
				for _, v := range views {
					printCategory(w, v)
				}
				return nil
			})
		},
	}

	var newName, newBudget, newSpent string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change a category's name, budget or spent amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			var u domain.CategoryUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &newName
			}
			if cmd.Flags().Changed("budget") {
				amount, err := parseAmount("budget", newBudget)
				if err != nil {
					return err
				}
				u.Budget = &amount
			}
			if cmd.Flags().Changed("spent") {
				amount, err := parseAmount("spent", newSpent)
				if err != nil {
					return err
				}
				u.Spent = &amount
			}

			return r.withApp(cmd, func(a *app.App) error {
				view, err := a.Projection.UpdateCategory(cmd.Context(), id, u)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				if ok, err := r.printJSON(cmd, view); ok {
					return err
				}
				printCategory(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
	update.Flags().StringVar(&newName, "name", "", "New name")
	update.Flags().StringVar(&newBudget, "budget", "", "New budget")
	update.Flags().StringVar(&newSpent, "spent", "", "New spent amount")

	remove := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			return r.withApp(cmd, func(a *app.App) error {
				err := a.Projection.DeleteCategory(cmd.Context(), id)
				if err := warnUnsaved(cmd.ErrOrStderr(), err); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", id)
				return nil
			})
		},
	}

	totals := &cobra.Command{
		Use:   "totals",
		Short: "Show totals across all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				t := a.Projection.Totals()
				if ok, err := r.printJSON(cmd, t); ok {
					return err
				}
				printTotals(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, update, remove, totals)
	return cmd
}
