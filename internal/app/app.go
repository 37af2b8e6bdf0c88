package app

import (
	"context"
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/config"
	"github.com/dafibh/sprout/sprout-backend/internal/repository"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// App holds the services shared by the API server and the CLI
type App struct {
	Config     *config.Config
	Presets    *service.Presets
	Projection *service.ProjectionService
	Preset     *service.PresetService
	Purchase   *service.PurchaseService

	closeStore repository.CloseFunc
}

// New opens the configured store, restores the ledger and seeds it when
// empty. A failed load is logged and leaves the ledger empty.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	presets, err := loadPresets(cfg)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	income := cfg.DefaultMonthlyIncome
	if income.IsZero() {
		income = presets.DefaultMonthlyIncome
	}

	projection := service.NewProjectionService(store, service.ProjectionOptions{
		Namespace:            cfg.StoreNamespace,
		EnforceCap:           cfg.EnforceContributionCap,
		DefaultMonthlyIncome: income,
	})

	// Load failures are already logged; the ledger stays empty and unseeded.
	if err := projection.Load(ctx); err == nil && cfg.SeedDefaults {
		if _, err := projection.SeedIfEmpty(ctx, presets); err != nil {
			log.Warn().Err(err).Msg("Seed categories were not saved")
		}
	}

	return &App{
		Config:     cfg,
		Presets:    presets,
		Projection: projection,
		Preset:     service.NewPresetService(presets),
		Purchase:   service.NewPurchaseService(presets.PurchaseFees),
		closeStore: closeStore,
	}, nil
}

// Close releases the store
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func loadPresets(cfg *config.Config) (*service.Presets, error) {
	if cfg.PresetsPath == "" {
		return service.LoadEmbeddedPresets()
	}
	presets, err := service.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets from %s: %w", cfg.PresetsPath, err)
	}
	return presets, nil
}
