package service

import (
	"encoding/json"
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerDocument is the JSON stored under domain.LedgerKey
type ledgerDocument struct {
	Metadata   domain.Metadata         `json:"metadata"`
	Categories []domain.BudgetCategory `json:"categories"`
	Goal       *domain.SavingsGoal     `json:"goal"`
}

// EncodeSnapshot serializes a snapshot into the ledger document and the
// contribution list. Output is deterministic for equal snapshots.
func EncodeSnapshot(snapshot domain.LedgerSnapshot) (ledger []byte, contributions []byte, err error) {
	snapshot = normalizeSnapshot(snapshot)

	ledger, err = json.Marshal(ledgerDocument{
		Metadata:   snapshot.Metadata,
		Categories: snapshot.Categories,
		Goal:       snapshot.Goal,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encode ledger: %w", err)
	}

	contributions, err = json.Marshal(snapshot.Contributions)
	if err != nil {
		return nil, nil, fmt.Errorf("encode contributions: %w", err)
	}
	return ledger, contributions, nil
}

// DecodeSnapshot parses the two stored documents. Missing documents (nil)
// decode as an empty ledger. Structurally invalid data, or a goal whose
// current amount does not equal the sum of its contributions, is rejected
// with ErrCorruptSnapshot.
func DecodeSnapshot(ledger []byte, contributions []byte) (domain.LedgerSnapshot, error) {
	snapshot := domain.LedgerSnapshot{
		Metadata: domain.Metadata{Version: domain.SnapshotVersion, MonthlyIncome: decimal.Zero},
	}

	if ledger != nil {
		var doc ledgerDocument
		if err := json.Unmarshal(ledger, &doc); err != nil {
			return domain.LedgerSnapshot{}, fmt.Errorf("%w: ledger: %v", domain.ErrCorruptSnapshot, err)
		}
		snapshot.Metadata = doc.Metadata
		snapshot.Categories = doc.Categories
		snapshot.Goal = doc.Goal
	}
	if contributions != nil {
		if err := json.Unmarshal(contributions, &snapshot.Contributions); err != nil {
			return domain.LedgerSnapshot{}, fmt.Errorf("%w: contributions: %v", domain.ErrCorruptSnapshot, err)
		}
	}

	snapshot = normalizeSnapshot(snapshot)
	if err := validateSnapshot(snapshot); err != nil {
		return domain.LedgerSnapshot{}, err
	}
	return snapshot, nil
}

func normalizeSnapshot(snapshot domain.LedgerSnapshot) domain.LedgerSnapshot {
	if snapshot.Metadata.Version == 0 {
		snapshot.Metadata.Version = domain.SnapshotVersion
	}
	if snapshot.Categories == nil {
		snapshot.Categories = []domain.BudgetCategory{}
	}
	if snapshot.Contributions == nil {
		snapshot.Contributions = []domain.Contribution{}
	}
	snapshot.Metadata.UpdatedAt = snapshot.Metadata.UpdatedAt.UTC()
	return snapshot
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}

func validateSnapshot(snapshot domain.LedgerSnapshot) error {
	if snapshot.Metadata.Version > domain.SnapshotVersion {
		return corrupt("unsupported version %d", snapshot.Metadata.Version)
	}
	if snapshot.Metadata.MonthlyIncome.IsNegative() {
		return corrupt("negative monthly income")
	}

	seen := make(map[uuid.UUID]bool, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		if seen[c.ID] {
			return corrupt("duplicate category id %s", c.ID)
		}
		seen[c.ID] = true
		if c.Name == "" || !c.Budget.IsPositive() || c.Spent.IsNegative() {
			return corrupt("invalid category %s", c.ID)
		}
	}

	if snapshot.Goal == nil {
		if len(snapshot.Contributions) > 0 {
			return corrupt("contributions without a goal")
		}
		return nil
	}
	if !snapshot.Goal.TargetAmount.IsPositive() {
		return corrupt("goal target must be positive")
	}

	sum := decimal.Zero
	for _, c := range snapshot.Contributions {
		if !c.Amount.IsPositive() {
			return corrupt("contribution %s has non-positive amount", c.ID)
		}
		sum = sum.Add(c.Amount)
	}
	if !sum.Equal(snapshot.Goal.CurrentAmount) {
		return corrupt("goal current amount %s does not match contributions %s",
			snapshot.Goal.CurrentAmount, sum)
	}
	return nil
}
