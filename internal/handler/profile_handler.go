package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProfileHandler handles the income profile
type ProfileHandler struct {
	projectionService *service.ProjectionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(projectionService *service.ProjectionService) *ProfileHandler {
	return &ProfileHandler{projectionService: projectionService}
}

// UpdateIncomeRequest represents the update income request
type UpdateIncomeRequest struct {
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
}

// UpdateIncome handles PUT /api/v1/profile/income
func (h *ProfileHandler) UpdateIncome(c echo.Context) error {
	var req UpdateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	snapshot, err := h.projectionService.SetMonthlyIncome(c.Request().Context(), req.MonthlyIncome)
	return respondMutation(c, http.StatusOK, snapshot, err, "update income")
}
