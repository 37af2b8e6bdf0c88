package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProjectionOptions configures a ProjectionService
type ProjectionOptions struct {
	// Namespace scopes websocket events; store keys are scoped by the store itself.
	Namespace            string
	EnforceCap           bool
	DefaultMonthlyIncome decimal.Decimal
}

// ProjectionService composes the category ledger, the savings goal ledger and
// the scenario engine behind one API, and persists the combined snapshot after
// every mutating command.
//
// A failed save never rolls back in-memory state. Commands then return their
// normal result together with an error wrapping domain.ErrPersistence.
type ProjectionService struct {
	mu             sync.Mutex
	store          domain.KeyValueStore
	namespace      string
	categories     *BudgetCategoryService
	goals          *SavingsGoalService
	scenarios      *ScenarioService
	income         decimal.Decimal
	status         domain.SaveStatus
	stored         bool
	loadFailed     bool
	dirty          bool
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewProjectionService creates a ProjectionService with empty ledgers. Call
// Load to restore persisted state.
func NewProjectionService(store domain.KeyValueStore, opts ProjectionOptions) *ProjectionService {
	return &ProjectionService{
		store:      store,
		namespace:  opts.Namespace,
		categories: NewBudgetCategoryService(),
		goals:      NewSavingsGoalService(opts.EnforceCap),
		scenarios:  NewScenarioService(),
		income:     opts.DefaultMonthlyIncome,
		status:     domain.SaveStatus{Saved: true},
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProjectionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *ProjectionService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(s.namespace, event)
	}
}

// Load restores state from the store. When the store fails or holds corrupt
// data the ledgers stay empty and the error wraps domain.ErrPersistence.
func (s *ProjectionService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.store.Get(ctx, domain.LedgerKey)
	if err != nil {
		return s.failLoad(fmt.Errorf("%w: load %s: %w", domain.ErrPersistence, domain.LedgerKey, err))
	}
	contributions, err := s.store.Get(ctx, domain.ContributionsKey)
	if err != nil {
		return s.failLoad(fmt.Errorf("%w: load %s: %w", domain.ErrPersistence, domain.ContributionsKey, err))
	}

	snapshot, err := DecodeSnapshot(ledger, contributions)
	if err != nil {
		return s.failLoad(err)
	}

	s.loadFailed = false
	s.stored = ledger != nil
	if s.stored {
		s.income = snapshot.Metadata.MonthlyIncome
	}
	s.categories.Replace(snapshot.Categories)
	s.goals.Restore(snapshot.Goal, snapshot.Contributions)

	log.Info().
		Str("namespace", s.namespace).
		Bool("stored", s.stored).
		Int("categories", len(snapshot.Categories)).
		Int("contributions", len(snapshot.Contributions)).
		Msg("Ledger loaded")
	return nil
}

func (s *ProjectionService) failLoad(err error) error {
	s.loadFailed = true
	s.status = domain.SaveStatus{Saved: false, LastError: err.Error()}
	log.Warn().Err(err).Str("namespace", s.namespace).Msg("Failed to load ledger, starting empty")
	return err
}

// SeedIfEmpty adds the preset categories when nothing has ever been stored,
// and the preset income when none is configured. It never seeds after a failed load so unreadable data is not
// overwritten. It reports whether seeding happened.
func (s *ProjectionService) SeedIfEmpty(ctx context.Context, presets *Presets) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stored || s.loadFailed || len(s.categories.Categories()) > 0 {
		return false, nil
	}

	for _, seed := range presets.SeedCategories {
		if _, err := s.categories.AddCategory(seed.Name, seed.Budget, seed.Spent); err != nil {
			return false, fmt.Errorf("seed category %q: %w", seed.Name, err)
		}
	}
	if s.income.IsZero() && presets.DefaultMonthlyIncome.IsPositive() {
		s.income = presets.DefaultMonthlyIncome
	}

	log.Info().
		Str("namespace", s.namespace).
		Int("categories", len(presets.SeedCategories)).
		Msg("Seeded empty ledger")
	return true, s.save(ctx)
}

// save persists the whole snapshot. Callers hold s.mu.
func (s *ProjectionService) save(ctx context.Context) error {
	snapshot := s.snapshotLocked()
	snapshot.Metadata.UpdatedAt = s.now().UTC()

	ledger, contributions, err := EncodeSnapshot(snapshot)
	if err == nil {
		err = s.store.Set(ctx, domain.ContributionsKey, contributions)
	}
	if err == nil {
		err = s.store.Set(ctx, domain.LedgerKey, ledger)
	}
	if err != nil {
		s.status = domain.SaveStatus{Saved: false, LastError: err.Error(), SavedAt: s.status.SavedAt}
		s.dirty = true
		log.Warn().Err(err).Str("namespace", s.namespace).Msg("Failed to save ledger")
		s.publishEvent(websocket.LedgerSaveFailed(s.status))
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	savedAt := snapshot.Metadata.UpdatedAt
	s.status = domain.SaveStatus{Saved: true, SavedAt: &savedAt}
	s.stored = true
	s.dirty = false
	return nil
}

// Flush retries a failed save. It reports whether a save was attempted; state
// that is already persisted, or was never changed after a failed load, is
// left alone.
func (s *ProjectionService) Flush(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return false, nil
	}
	return true, s.save(ctx)
}

// SaveStatus reports whether the in-memory state has been persisted
func (s *ProjectionService) SaveStatus() domain.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns the full state in its persisted shape
func (s *ProjectionService) Snapshot() domain.LedgerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ProjectionService) snapshotLocked() domain.LedgerSnapshot {
	updatedAt := time.Time{}
	if s.status.SavedAt != nil {
		updatedAt = *s.status.SavedAt
	}
	return domain.LedgerSnapshot{
		Metadata: domain.Metadata{
			Version:       domain.SnapshotVersion,
			MonthlyIncome: s.income,
			UpdatedAt:     updatedAt,
		},
		Categories:    s.categories.Categories(),
		Goal:          s.goals.Goal(),
		Contributions: s.goals.Contributions(),
	}
}

// AddCategory adds a budget category and saves
func (s *ProjectionService) AddCategory(ctx context.Context, name string, budget, spent decimal.Decimal) (domain.CategoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.categories.AddCategory(name, budget, spent)
	if err != nil {
		return domain.CategoryView{}, err
	}
	view := category.View()
	s.publishEvent(websocket.CategoryCreated(view))

	log.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("Budget category added")
	return view, s.save(ctx)
}

// UpdateCategory changes an existing category and saves
func (s *ProjectionService) UpdateCategory(ctx context.Context, id uuid.UUID, update domain.CategoryUpdate) (domain.CategoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.categories.UpdateCategory(id, update)
	if err != nil {
		return domain.CategoryView{}, err
	}
	view := category.View()
	s.publishEvent(websocket.CategoryUpdated(view))
	return view, s.save(ctx)
}

// DeleteCategory removes a category and saves
func (s *ProjectionService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.DeleteCategory(id); err != nil {
		return err
	}
	s.publishEvent(websocket.CategoryDeleted(map[string]string{"id": id.String()}))

	log.Info().Str("category_id", id.String()).Msg("Budget category deleted")
	return s.save(ctx)
}

// Category returns one category with its derived figures
func (s *ProjectionService) Category(id uuid.UUID) (domain.CategoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.categories.GetCategory(id)
	if err != nil {
		return domain.CategoryView{}, err
	}
	return category.View(), nil
}

// Categories lists all categories in insertion order
func (s *ProjectionService) Categories() []domain.CategoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.categories.Categories()
	views := make([]domain.CategoryView, len(categories))
	for i, c := range categories {
		views[i] = c.View()
	}
	return views
}

// Totals aggregates all categories
func (s *ProjectionService) Totals() domain.CategoryTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Totals()
}

// GoalState is the active goal with its history and derived progress
type GoalState struct {
	Goal          *domain.SavingsGoal   `json:"goal"`
	Progress      *domain.GoalProgress  `json:"progress"`
	Contributions []domain.Contribution `json:"contributions"`
}

// Goal returns the active goal state; Goal and Progress are nil without a goal
func (s *ProjectionService) Goal() GoalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalStateLocked()
}

func (s *ProjectionService) goalStateLocked() GoalState {
	state := GoalState{
		Goal:          s.goals.Goal(),
		Contributions: s.goals.Contributions(),
	}
	if progress, err := s.goals.Progress(); err == nil {
		state.Progress = &progress
	}
	return state
}

// CreateGoal replaces the active goal and saves
func (s *ProjectionService) CreateGoal(ctx context.Context, name string, target decimal.Decimal, timeframeMonths *int) (GoalState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, err := s.goals.CreateGoal(name, target, timeframeMonths)
	if err != nil {
		return GoalState{}, err
	}
	state := s.goalStateLocked()
	s.publishEvent(websocket.GoalCreated(state))

	log.Info().Str("name", goal.Name).Str("target", goal.TargetAmount.String()).Msg("Savings goal created")
	return state, s.save(ctx)
}

// ContributionResult is a recorded contribution and the goal after it
type ContributionResult struct {
	Contribution domain.Contribution `json:"contribution"`
	Progress     domain.GoalProgress `json:"progress"`
}

// Contribute records a contribution and saves. A nil opts uses the
// configured default for EnforceCap.
func (s *ProjectionService) Contribute(ctx context.Context, amount decimal.Decimal, opts *domain.ContributeOptions) (ContributionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective := s.goals.DefaultContributeOptions()
	if opts != nil {
		effective = *opts
	}

	contribution, err := s.goals.Contribute(amount, effective)
	if err != nil {
		return ContributionResult{}, err
	}
	progress, err := s.goals.Progress()
	if err != nil {
		return ContributionResult{}, err
	}
	result := ContributionResult{Contribution: contribution, Progress: progress}
	s.publishEvent(websocket.GoalContributed(result))
	return result, s.save(ctx)
}

// ResetGoal clears the goal and its history and saves
func (s *ProjectionService) ResetGoal(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hadGoal := s.goals.Goal() != nil
	s.goals.Reset()
	if hadGoal {
		s.publishEvent(websocket.GoalReset(nil))
		log.Info().Msg("Savings goal reset")
	}
	return s.save(ctx)
}

// SetMonthlyIncome updates the income used for derived snapshots and saves
func (s *ProjectionService) SetMonthlyIncome(ctx context.Context, income decimal.Decimal) (domain.FinancialSnapshot, error) {
	if err := domain.ValidateNonNegative(income, domain.ErrInvalidIncome); err != nil {
		return domain.FinancialSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.income = income
	snapshot := s.financialSnapshotLocked()
	s.publishEvent(websocket.IncomeUpdated(snapshot))
	return snapshot, s.save(ctx)
}

// FinancialSnapshot derives the monthly position from ledger state: expenses
// are total category spending and savings are income minus expenses.
func (s *ProjectionService) FinancialSnapshot() domain.FinancialSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.financialSnapshotLocked()
}

func (s *ProjectionService) financialSnapshotLocked() domain.FinancialSnapshot {
	expenses := s.categories.Totals().TotalSpent
	return domain.FinancialSnapshot{
		MonthlyIncome:   s.income,
		MonthlyExpenses: expenses,
		MonthlySavings:  s.income.Sub(expenses),
	}
}

// Evaluate runs a scenario. A nil snapshot means the derived one.
func (s *ProjectionService) Evaluate(input domain.ScenarioInput, snapshot *domain.FinancialSnapshot) domain.ScenarioResult {
	if snapshot == nil {
		derived := s.FinancialSnapshot()
		snapshot = &derived
	}
	return s.scenarios.Evaluate(input, *snapshot)
}
