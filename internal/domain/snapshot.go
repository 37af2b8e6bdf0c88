package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotVersion is written into every persisted ledger document.
const SnapshotVersion = 1

// Store keys. A namespace prefix may be prepended by the store factory.
const (
	LedgerKey        = "sprout.ledger"
	ContributionsKey = "sprout.contributions"
)

type Metadata struct {
	Version       int             `json:"version"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LedgerSnapshot is the complete persisted state of the projection engine.
type LedgerSnapshot struct {
	Metadata      Metadata         `json:"metadata"`
	Categories    []BudgetCategory `json:"categories"`
	Goal          *SavingsGoal     `json:"goal"`
	Contributions []Contribution   `json:"contributions"`
}

// KeyValueStore is the persistence port. Get returns (nil, nil) for a key
// that has never been set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// SaveStatus describes the outcome of the most recent save.
type SaveStatus struct {
	Saved     bool       `json:"saved"`
	LastError string     `json:"lastError,omitempty"`
	SavedAt   *time.Time `json:"savedAt,omitempty"`
}
