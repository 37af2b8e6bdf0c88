package service

import (
	"strings"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetCategoryService owns the set of budget categories. It holds no lock;
// ProjectionService serializes access.
type BudgetCategoryService struct {
	categories map[uuid.UUID]*domain.BudgetCategory
	order      []uuid.UUID
	newID      func() uuid.UUID
}

// NewBudgetCategoryService creates an empty BudgetCategoryService
func NewBudgetCategoryService() *BudgetCategoryService {
	return &BudgetCategoryService{
		categories: make(map[uuid.UUID]*domain.BudgetCategory),
		newID:      uuid.New,
	}
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxBudgetCategoryNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

func validateCategoryAmounts(budget, spent decimal.Decimal) error {
	if err := domain.ValidatePositive(budget, domain.ErrInvalidBudget); err != nil {
		return err
	}
	return domain.ValidateNonNegative(spent, domain.ErrInvalidSpent)
}

// AddCategory creates a new category with a fresh id
func (s *BudgetCategoryService) AddCategory(name string, budget, spent decimal.Decimal) (domain.BudgetCategory, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return domain.BudgetCategory{}, err
	}
	if err := validateCategoryAmounts(budget, spent); err != nil {
		return domain.BudgetCategory{}, err
	}

	category := &domain.BudgetCategory{
		ID:     s.newID(),
		Name:   name,
		Budget: budget,
		Spent:  spent,
	}
	s.categories[category.ID] = category
	s.order = append(s.order, category.ID)

	return *category, nil
}

// UpdateCategory replaces the non-nil fields of an existing category. The
// category is left untouched when validation fails.
func (s *BudgetCategoryService) UpdateCategory(id uuid.UUID, update domain.CategoryUpdate) (domain.BudgetCategory, error) {
	existing, ok := s.categories[id]
	if !ok {
		return domain.BudgetCategory{}, domain.ErrBudgetCategoryNotFound
	}

	next := *existing
	if update.Name != nil {
		name, err := validateCategoryName(*update.Name)
		if err != nil {
			return domain.BudgetCategory{}, err
		}
		next.Name = name
	}
	if update.Budget != nil {
		next.Budget = *update.Budget
	}
	if update.Spent != nil {
		next.Spent = *update.Spent
	}
	if err := validateCategoryAmounts(next.Budget, next.Spent); err != nil {
		return domain.BudgetCategory{}, err
	}

	*existing = next
	return next, nil
}

// DeleteCategory removes a category. Deleting an unknown id, including a
// second delete of the same id, returns ErrBudgetCategoryNotFound.
func (s *BudgetCategoryService) DeleteCategory(id uuid.UUID) error {
	if _, ok := s.categories[id]; !ok {
		return domain.ErrBudgetCategoryNotFound
	}
	delete(s.categories, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetCategory returns a single category by id
func (s *BudgetCategoryService) GetCategory(id uuid.UUID) (domain.BudgetCategory, error) {
	category, ok := s.categories[id]
	if !ok {
		return domain.BudgetCategory{}, domain.ErrBudgetCategoryNotFound
	}
	return *category, nil
}

// Categories returns copies of all categories in insertion order
func (s *BudgetCategoryService) Categories() []domain.BudgetCategory {
	result := make([]domain.BudgetCategory, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.categories[id])
	}
	return result
}

// Status classifies a category's progress
func (s *BudgetCategoryService) Status(category domain.BudgetCategory) domain.CategoryStatus {
	return category.Status()
}

// Totals sums budgets and spending across all categories. Remaining is not
// clamped and goes negative when the ledger is over budget.
func (s *BudgetCategoryService) Totals() domain.CategoryTotals {
	totals := domain.CategoryTotals{
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
	for _, id := range s.order {
		category := s.categories[id]
		totals.TotalBudget = totals.TotalBudget.Add(category.Budget)
		totals.TotalSpent = totals.TotalSpent.Add(category.Spent)
	}
	totals.Remaining = totals.TotalBudget.Sub(totals.TotalSpent)
	totals.OverallProgress = domain.RoundedPercent(totals.TotalSpent, totals.TotalBudget)
	return totals
}

// Replace swaps the ledger contents for a previously persisted list
func (s *BudgetCategoryService) Replace(categories []domain.BudgetCategory) {
	s.categories = make(map[uuid.UUID]*domain.BudgetCategory, len(categories))
	s.order = make([]uuid.UUID, 0, len(categories))
	for i := range categories {
		category := categories[i]
		if _, dup := s.categories[category.ID]; dup {
			continue
		}
		s.categories[category.ID] = &category
		s.order = append(s.order, category.ID)
	}
}
