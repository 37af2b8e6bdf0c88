// Package cli implements the sprout command line client.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dafibh/sprout/sprout-backend/internal/app"
	"github.com/dafibh/sprout/sprout-backend/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Opener builds the application the commands operate on
type Opener func(ctx context.Context) (*app.App, error)

// OpenFromEnv loads configuration from the environment and opens the ledger.
// Every command runs in its own process, so the CLI stores to SQLite unless
// STORE_BACKEND names another persistent backend.
func OpenFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := usePersistentBackend(cfg, os.Getenv("STORE_BACKEND")); err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

func usePersistentBackend(cfg *config.Config, requested string) error {
	if requested == "" {
		cfg.StoreBackend = config.StoreSQLite
		return nil
	}
	if cfg.StoreBackend == config.StoreMemory {
		return fmt.Errorf("STORE_BACKEND=memory does not keep changes between sprout commands; use sqlite, postgres or s3")
	}
	return nil
}

type runner struct {
	open    Opener
	jsonOut bool
}

// NewRootCommand builds the sprout command tree
func NewRootCommand(open Opener) *cobra.Command {
	r := &runner{open: open}

	root := &cobra.Command{
		Use:           "sprout",
		Short:         "Budget and scenario projection ledger",
		Long:          "Track budget categories and a savings goal, and evaluate what-if scenarios against your monthly position.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&r.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		r.categoryCommand(),
		r.goalCommand(),
		r.incomeCommand(),
		r.scenarioCommand(),
		r.purchaseCommand(),
	)
	return root
}

// Execute is the entry point called from main.go
func Execute() {
	root := NewRootCommand(OpenFromEnv)
	if err := root.Execute(); err != nil {
		errorText.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// withApp opens the ledger for the duration of fn
func (r *runner) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := r.open(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// printJSON writes v as indented JSON when --json is set and reports whether
// it did.
func (r *runner) printJSON(cmd *cobra.Command, v interface{}) (bool, error) {
	if !r.jsonOut {
		return false, nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal amount, got %q", name, value)
	}
	return amount, nil
}
