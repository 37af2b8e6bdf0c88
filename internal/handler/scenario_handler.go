package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ScenarioHandler handles what-if scenario requests
type ScenarioHandler struct {
	projectionService *service.ProjectionService
	presetService     *service.PresetService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(projectionService *service.ProjectionService, presetService *service.PresetService) *ScenarioHandler {
	return &ScenarioHandler{
		projectionService: projectionService,
		presetService:     presetService,
	}
}

// EvaluateScenarioRequest is a scenario input with an optional snapshot.
// Without a snapshot the one derived from the ledger is used.
type EvaluateScenarioRequest struct {
	Name           string                    `json:"name"`
	Amount         decimal.Decimal           `json:"amount"`
	Recurrence     domain.Recurrence         `json:"recurrence"`
	DurationMonths int                       `json:"durationMonths"`
	IsIncome       bool                      `json:"isIncome"`
	Snapshot       *domain.FinancialSnapshot `json:"snapshot"`
}

// QuickScenarioResponse is a preset input and its evaluation
type QuickScenarioResponse struct {
	Input  domain.ScenarioInput  `json:"input"`
	Result domain.ScenarioResult `json:"result"`
}

// GetSnapshot handles GET /api/v1/scenarios/snapshot
func (h *ScenarioHandler) GetSnapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projectionService.FinancialSnapshot())
}

// Evaluate handles POST /api/v1/scenarios/evaluate. Rejections are returned
// as 200 with a rejectionReason.
func (h *ScenarioHandler) Evaluate(c echo.Context) error {
	var req EvaluateScenarioRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result := h.projectionService.Evaluate(domain.ScenarioInput{
		Name:           req.Name,
		Amount:         req.Amount,
		Recurrence:     req.Recurrence,
		DurationMonths: req.DurationMonths,
		IsIncome:       req.IsIncome,
	}, req.Snapshot)

	return c.JSON(http.StatusOK, result)
}

// GetPresets handles GET /api/v1/scenarios/presets
func (h *ScenarioHandler) GetPresets(c echo.Context) error {
	snapshot := h.projectionService.FinancialSnapshot()
	inputs := h.presetService.QuickScenarios(snapshot)

	response := make([]QuickScenarioResponse, len(inputs))
	for i, input := range inputs {
		response[i] = QuickScenarioResponse{
			Input:  input,
			Result: h.projectionService.Evaluate(input, &snapshot),
		}
	}
	return c.JSON(http.StatusOK, response)
}
