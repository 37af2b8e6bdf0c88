package service

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var embeddedPresets []byte

// SeedCategory is a category added to an empty ledger on first start
type SeedCategory struct {
	Name   string          `yaml:"name" json:"name"`
	Budget decimal.Decimal `yaml:"budget" json:"budget"`
	Spent  decimal.Decimal `yaml:"spent" json:"spent"`
}

// QuickScenario is a canned scenario. When IncomePercent is set the amount
// is that percentage of the current monthly income.
type QuickScenario struct {
	Name           string            `yaml:"name" json:"name"`
	Amount         decimal.Decimal   `yaml:"amount" json:"amount"`
	IncomePercent  *decimal.Decimal  `yaml:"incomePercent" json:"incomePercent,omitempty"`
	Recurrence     domain.Recurrence `yaml:"recurrence" json:"recurrence"`
	DurationMonths int               `yaml:"durationMonths" json:"durationMonths"`
	IsIncome       bool              `yaml:"isIncome" json:"isIncome"`
}

// Presets is the parsed preset file
type Presets struct {
	DefaultMonthlyIncome decimal.Decimal                         `yaml:"defaultMonthlyIncome"`
	SeedCategories       []SeedCategory                          `yaml:"seedCategories"`
	QuickScenarios       []QuickScenario                         `yaml:"quickScenarios"`
	PurchaseFees         map[domain.PurchaseKind][]domain.FeeRule `yaml:"purchaseFees"`
}

// ParsePresets decodes and validates a preset document
func ParsePresets(data []byte) (*Presets, error) {
	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	if presets.DefaultMonthlyIncome.IsNegative() {
		return nil, fmt.Errorf("defaultMonthlyIncome must not be negative")
	}
	for i, c := range presets.SeedCategories {
		if c.Name == "" || !c.Budget.IsPositive() || c.Spent.IsNegative() {
			return nil, fmt.Errorf("seed category %d (%q) is invalid", i, c.Name)
		}
	}
	for i, q := range presets.QuickScenarios {
		if q.Name == "" {
			return nil, fmt.Errorf("quick scenario %d has no name", i)
		}
		if !q.Recurrence.Valid() {
			return nil, fmt.Errorf("quick scenario %q has unknown recurrence %q", q.Name, q.Recurrence)
		}
		if q.DurationMonths < 1 {
			return nil, fmt.Errorf("quick scenario %q needs durationMonths >= 1", q.Name)
		}
		if q.IncomePercent == nil && !q.Amount.IsPositive() {
			return nil, fmt.Errorf("quick scenario %q needs an amount or incomePercent", q.Name)
		}
	}
	for kind, rules := range presets.PurchaseFees {
		for _, r := range rules {
			if r.Percent.IsNegative() || r.Flat.IsNegative() {
				return nil, fmt.Errorf("fee %q for %s must not be negative", r.Name, kind)
			}
		}
	}

	return &presets, nil
}

// LoadEmbeddedPresets parses the presets compiled into the binary
func LoadEmbeddedPresets() (*Presets, error) {
	return ParsePresets(embeddedPresets)
}

// LoadPresets reads presets from path, or the embedded defaults when path is empty
func LoadPresets(path string) (*Presets, error) {
	if path == "" {
		return LoadEmbeddedPresets()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return ParsePresets(data)
}

// PresetService exposes quick scenarios resolved against the live snapshot
type PresetService struct {
	presets *Presets
}

// NewPresetService creates a new PresetService
func NewPresetService(presets *Presets) *PresetService {
	return &PresetService{presets: presets}
}

// Presets returns the underlying preset document
func (s *PresetService) Presets() *Presets {
	return s.presets
}

// QuickScenarios returns ready-to-evaluate inputs. Income-relative amounts
// are computed from snapshot.MonthlyIncome.
func (s *PresetService) QuickScenarios(snapshot domain.FinancialSnapshot) []domain.ScenarioInput {
	inputs := make([]domain.ScenarioInput, 0, len(s.presets.QuickScenarios))
	for _, q := range s.presets.QuickScenarios {
		amount := q.Amount
		if q.IncomePercent != nil {
			amount = snapshot.MonthlyIncome.Mul(*q.IncomePercent).Div(decimalHundred)
		}
		inputs = append(inputs, domain.ScenarioInput{
			Name:           q.Name,
			Amount:         amount,
			Recurrence:     q.Recurrence,
			DurationMonths: q.DurationMonths,
			IsIncome:       q.IsIncome,
		})
	}
	return inputs
}
