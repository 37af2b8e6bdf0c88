package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// SavingsGoalHandler handles savings goal HTTP requests
type SavingsGoalHandler struct {
	projectionService *service.ProjectionService
}

// NewSavingsGoalHandler creates a new SavingsGoalHandler
func NewSavingsGoalHandler(projectionService *service.ProjectionService) *SavingsGoalHandler {
	return &SavingsGoalHandler{projectionService: projectionService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	TimeframeMonths *int            `json:"timeframeMonths"`
}

// ContributeRequest represents the contribution request body. EnforceCap
// overrides the configured default when present.
type ContributeRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	EnforceCap *bool           `json:"enforceCap"`
}

// GetGoal handles GET /api/v1/savings-goal
func (h *SavingsGoalHandler) GetGoal(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projectionService.Goal())
}

// CreateGoal handles POST /api/v1/savings-goal
func (h *SavingsGoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	state, err := h.projectionService.CreateGoal(c.Request().Context(), req.Name, req.TargetAmount, req.TimeframeMonths)
	return respondMutation(c, http.StatusCreated, state, err, "create savings goal")
}

// Contribute handles POST /api/v1/savings-goal/contributions
func (h *SavingsGoalHandler) Contribute(c echo.Context) error {
	var req ContributeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var opts *domain.ContributeOptions
	if req.EnforceCap != nil {
		opts = &domain.ContributeOptions{EnforceCap: *req.EnforceCap}
	}

	result, err := h.projectionService.Contribute(c.Request().Context(), req.Amount, opts)
	return respondMutation(c, http.StatusCreated, result, err, "record contribution")
}

// ResetGoal handles DELETE /api/v1/savings-goal
func (h *SavingsGoalHandler) ResetGoal(c echo.Context) error {
	err := h.projectionService.ResetGoal(c.Request().Context())
	return respondMutation(c, http.StatusOK, h.projectionService.Goal(), err, "reset savings goal")
}
