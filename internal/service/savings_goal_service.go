package service

import (
	"strings"
	"time"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoalService manages the single active savings goal and its
// append-only contribution history.
type SavingsGoalService struct {
	goal          *domain.SavingsGoal
	contributions []domain.Contribution
	enforceCap    bool
	now           func() time.Time
	newID         func() uuid.UUID
}

// NewSavingsGoalService creates a SavingsGoalService with no active goal.
// enforceCap is the default for contributions that do not override it.
func NewSavingsGoalService(enforceCap bool) *SavingsGoalService {
	return &SavingsGoalService{
		enforceCap: enforceCap,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// DefaultContributeOptions returns the ledger-wide contribution options
func (s *SavingsGoalService) DefaultContributeOptions() domain.ContributeOptions {
	return domain.ContributeOptions{EnforceCap: s.enforceCap}
}

// CreateGoal replaces any existing goal and clears its contribution history
func (s *SavingsGoalService) CreateGoal(name string, targetAmount decimal.Decimal, timeframeMonths *int) (domain.SavingsGoal, error) {
	if err := domain.ValidatePositive(targetAmount, domain.ErrInvalidTarget); err != nil {
		return domain.SavingsGoal{}, err
	}
	if timeframeMonths != nil && *timeframeMonths < 1 {
		return domain.SavingsGoal{}, domain.ErrInvalidTimeframe
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultGoalName
	}
	if len(name) > domain.MaxGoalNameLength {
		return domain.SavingsGoal{}, domain.ErrNameTooLong
	}

	createdAt := s.now().UTC()
	goal := &domain.SavingsGoal{
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		CreatedAt:     createdAt,
	}
	if timeframeMonths != nil {
		months := *timeframeMonths
		deadline := util.AddMonths(createdAt, months)
		goal.TimeframeMonths = &months
		goal.Deadline = &deadline
	}

	s.goal = goal
	s.contributions = nil
	return *goal, nil
}

// Contribute appends a contribution to the active goal. Over-contribution is
// allowed unless opts.EnforceCap is set.
func (s *SavingsGoalService) Contribute(amount decimal.Decimal, opts domain.ContributeOptions) (domain.Contribution, error) {
	if err := domain.ValidatePositive(amount, domain.ErrInvalidAmount); err != nil {
		return domain.Contribution{}, err
	}
	if s.goal == nil {
		return domain.Contribution{}, domain.ErrNoActiveGoal
	}
	if opts.EnforceCap && amount.GreaterThan(s.goal.Remaining()) {
		return domain.Contribution{}, domain.ErrContributionExceedsRemaining
	}

	contribution := domain.Contribution{
		ID:        s.newID(),
		Amount:    amount,
		Timestamp: s.now().UTC(),
	}
	s.contributions = append(s.contributions, contribution)
	s.goal.CurrentAmount = s.goal.CurrentAmount.Add(amount)

	return contribution, nil
}

// Reset clears the goal and its history. It is a no-op without a goal.
func (s *SavingsGoalService) Reset() {
	s.goal = nil
	s.contributions = nil
}

// Goal returns a copy of the active goal, or nil
func (s *SavingsGoalService) Goal() *domain.SavingsGoal {
	if s.goal == nil {
		return nil
	}
	goal := *s.goal
	return &goal
}

// Contributions returns a copy of the contribution history, oldest first
func (s *SavingsGoalService) Contributions() []domain.Contribution {
	result := make([]domain.Contribution, len(s.contributions))
	copy(result, s.contributions)
	return result
}

// Progress derives the display figures for the active goal
func (s *SavingsGoalService) Progress() (domain.GoalProgress, error) {
	if s.goal == nil {
		return domain.GoalProgress{}, domain.ErrNoActiveGoal
	}
	goal := s.goal

	progress := domain.GoalProgress{
		CurrentAmount:      goal.CurrentAmount,
		TargetAmount:       goal.TargetAmount,
		ProgressPercentage: goal.ProgressPercentage(),
		Remaining:          goal.Remaining(),
		Achieved:           goal.Achieved(),
	}

	if goal.Deadline != nil {
		months := util.MonthsUntil(s.now(), *goal.Deadline)
		progress.MonthsRemaining = &months
		if months > 0 {
			suggested := progress.Remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
			progress.SuggestedMonthly = &suggested
		}
	}

	return progress, nil
}

// Restore loads a persisted goal and its history. CurrentAmount is recomputed
// from the contributions.
func (s *SavingsGoalService) Restore(goal *domain.SavingsGoal, contributions []domain.Contribution) {
	if goal == nil {
		s.Reset()
		return
	}
	restored := *goal
	amounts := make([]decimal.Decimal, len(contributions))
	for i, c := range contributions {
		amounts[i] = c.Amount
	}
	restored.CurrentAmount = domain.Sum(amounts...)

	s.goal = &restored
	s.contributions = make([]domain.Contribution, len(contributions))
	copy(s.contributions, contributions)
}
