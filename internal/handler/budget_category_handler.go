package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetCategoryHandler handles budget category HTTP requests
type BudgetCategoryHandler struct {
	projectionService *service.ProjectionService
}

// NewBudgetCategoryHandler creates a new BudgetCategoryHandler
func NewBudgetCategoryHandler(projectionService *service.ProjectionService) *BudgetCategoryHandler {
	return &BudgetCategoryHandler{projectionService: projectionService}
}

// CreateBudgetCategoryRequest represents the create category request body
type CreateBudgetCategoryRequest struct {
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// UpdateBudgetCategoryRequest represents the update category request body.
// Omitted fields are left unchanged.
type UpdateBudgetCategoryRequest struct {
	Name   *string          `json:"name"`
	Budget *decimal.Decimal `json:"budget"`
	Spent  *decimal.Decimal `json:"spent"`
}

// CreateCategory handles POST /api/v1/budget-categories
func (h *BudgetCategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateBudgetCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	view, err := h.projectionService.AddCategory(c.Request().Context(), req.Name, req.Budget, req.Spent)
	return respondMutation(c, http.StatusCreated, view, err, "create category")
}

// GetCategories handles GET /api/v1/budget-categories
func (h *BudgetCategoryHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projectionService.Categories())
}

// GetCategory handles GET /api/v1/budget-categories/:id
func (h *BudgetCategoryHandler) GetCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	view, err := h.projectionService.Category(id)
	if err != nil {
		return respondError(c, err, "get category")
	}
	return c.JSON(http.StatusOK, view)
}

// GetTotals handles GET /api/v1/budget-categories/totals
func (h *BudgetCategoryHandler) GetTotals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projectionService.Totals())
}

// UpdateCategory handles PUT /api/v1/budget-categories/:id
func (h *BudgetCategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateBudgetCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	view, err := h.projectionService.UpdateCategory(c.Request().Context(), id, domain.CategoryUpdate{
		Name:   req.Name,
		Budget: req.Budget,
		Spent:  req.Spent,
	})
	return respondMutation(c, http.StatusOK, view, err, "update category")
}

// DeleteCategory handles DELETE /api/v1/budget-categories/:id
func (h *BudgetCategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	err = h.projectionService.DeleteCategory(c.Request().Context(), id)
	return respondMutation(c, http.StatusOK, map[string]string{"id": id.String()}, err, "delete category")
}
