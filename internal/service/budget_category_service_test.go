package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func strPtr(s string) *string {
	return &s
}

func TestAddCategory_Success(t *testing.T) {
	ledger := NewBudgetCategoryService()

	category, err := ledger.AddCategory("Food", d("450"), d("350"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Food", category.Name)
	assert.Equal(t, 78, category.Progress())
	assert.Equal(t, domain.CategoryStatusWarning, ledger.Status(category))
}

func TestAddCategory_DefaultsAndTrim(t *testing.T) {
	ledger := NewBudgetCategoryService()

	category, err := ledger.AddCategory("  Groceries  ", d("100"), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "Groceries", category.Name)
	assert.Equal(t, 0, category.Progress())
	assert.Equal(t, domain.CategoryStatusOK, category.Status())
}

func TestAddCategory_Validation(t *testing.T) {
	tests := []struct {
		name    string
		catName string
		budget  string
		spent   string
		wantErr error
	}{
		{"empty name", "", "100", "0", domain.ErrNameRequired},
		{"whitespace name", "   ", "100", "0", domain.ErrNameRequired},
		{"name too long", strings.Repeat("a", domain.MaxBudgetCategoryNameLength+1), "100", "0", domain.ErrNameTooLong},
		{"zero budget", "Food", "0", "0", domain.ErrInvalidBudget},
		{"negative budget", "Food", "-5", "0", domain.ErrInvalidBudget},
		{"negative spent", "Food", "100", "-1", domain.ErrInvalidSpent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewBudgetCategoryService()
			_, err := ledger.AddCategory(tt.catName, d(tt.budget), d(tt.spent))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, ledger.Categories())
		})
	}
}

func TestStatusThresholds(t *testing.T) {
	tests := []struct {
		spent string
		want  domain.CategoryStatus
	}{
		{"0", domain.CategoryStatusOK},
		{"70", domain.CategoryStatusOK},
		{"70.4", domain.CategoryStatusOK},
		{"70.5", domain.CategoryStatusWarning},
		{"71", domain.CategoryStatusWarning},
		{"90", domain.CategoryStatusWarning},
		{"90.6", domain.CategoryStatusCritical},
		{"91", domain.CategoryStatusCritical},
		{"150", domain.CategoryStatusCritical},
	}

	ledger := NewBudgetCategoryService()
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			category := domain.BudgetCategory{Name: "x", Budget: d("100"), Spent: d(tt.spent)}
			assert.Equal(t, tt.want, ledger.Status(category))
			assert.Equal(t, ledger.Status(category), ledger.Status(category))
		})
	}
}

func TestProgress_ZeroBudgetNeverDivides(t *testing.T) {
	category := domain.BudgetCategory{Name: "x", Budget: decimal.Zero, Spent: d("50")}
	assert.Equal(t, 0, category.Progress())
}

func TestProgress_NotCappedForCategories(t *testing.T) {
	category := domain.BudgetCategory{Name: "x", Budget: d("200"), Spent: d("300")}
	assert.Equal(t, 150, category.Progress())
	assert.True(t, category.OverBudget().Equal(d("100")))
}

func TestUpdateCategory(t *testing.T) {
	ledger := NewBudgetCategoryService()
	created, err := ledger.AddCategory("Food", d("450"), d("350"))
	require.NoError(t, err)

	updated, err := ledger.UpdateCategory(created.ID, domain.CategoryUpdate{
		Name:  strPtr("Groceries"),
		Spent: dp("440"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Groceries", updated.Name)
	assert.True(t, updated.Budget.Equal(d("450")))
	assert.Equal(t, 98, updated.Progress())
	assert.Equal(t, domain.CategoryStatusCritical, updated.Status())

	stored, err := ledger.GetCategory(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	ledger := NewBudgetCategoryService()

	_, err := ledger.UpdateCategory(uuid.New(), domain.CategoryUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrBudgetCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCategory_InvalidLeavesCategoryUnchanged(t *testing.T) {
	ledger := NewBudgetCategoryService()
	created, err := ledger.AddCategory("Food", d("450"), d("350"))
	require.NoError(t, err)

	_, err = ledger.UpdateCategory(created.ID, domain.CategoryUpdate{
		Name:   strPtr("Renamed"),
		Budget: dp("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)

	stored, err := ledger.GetCategory(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", stored.Name)
	assert.True(t, stored.Budget.Equal(d("450")))
}

func TestDeleteCategory_SecondDeleteIsNotFound(t *testing.T) {
	ledger := NewBudgetCategoryService()
	created, err := ledger.AddCategory("Food", d("450"), decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteCategory(created.ID))
	err = ledger.DeleteCategory(created.ID)
	assert.True(t, errors.Is(err, domain.ErrBudgetCategoryNotFound))
	assert.Empty(t, ledger.Categories())
}

func TestCategories_PreserveInsertionOrder(t *testing.T) {
	ledger := NewBudgetCategoryService()
	names := []string{"Housing", "Food", "Transportation", "Entertainment"}
	for _, name := range names {
		_, err := ledger.AddCategory(name, d("100"), decimal.Zero)
		require.NoError(t, err)
	}

	second := ledger.Categories()[1]
	require.NoError(t, ledger.DeleteCategory(second.ID))

	var got []string
	for _, c := range ledger.Categories() {
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{"Housing", "Transportation", "Entertainment"}, got)
}

func TestTotals_RemainingNotClamped(t *testing.T) {
	ledger := NewBudgetCategoryService()
	_, err := ledger.AddCategory("Housing", d("1200"), d("1150"))
	require.NoError(t, err)
	_, err = ledger.AddCategory("Fun", d("100"), d("300.50"))
	require.NoError(t, err)

	totals := ledger.Totals()
	assert.True(t, totals.TotalBudget.Equal(d("1300")))
	assert.True(t, totals.TotalSpent.Equal(d("1450.50")))
	assert.True(t, totals.Remaining.Equal(d("-150.50")))
	assert.Equal(t, 112, totals.OverallProgress)
}

func TestTotals_Empty(t *testing.T) {
	totals := NewBudgetCategoryService().Totals()
	assert.True(t, totals.TotalBudget.IsZero())
	assert.True(t, totals.Remaining.IsZero())
	assert.Equal(t, 0, totals.OverallProgress)
}

func TestReplace_SkipsDuplicateIDs(t *testing.T) {
	ledger := NewBudgetCategoryService()
	id := uuid.New()
	ledger.Replace([]domain.BudgetCategory{
		{ID: id, Name: "A", Budget: d("1"), Spent: decimal.Zero},
		{ID: id, Name: "B", Budget: d("1"), Spent: decimal.Zero},
	})

	categories := ledger.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "A", categories[0].Name)
}
