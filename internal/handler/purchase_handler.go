package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PurchaseHandler handles purchase cost estimates
type PurchaseHandler struct {
	purchaseService   *service.PurchaseService
	projectionService *service.ProjectionService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *service.PurchaseService, projectionService *service.ProjectionService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService:   purchaseService,
		projectionService: projectionService,
	}
}

// EstimatePurchaseRequest represents the estimate request body
type EstimatePurchaseRequest struct {
	Kind           string          `json:"kind"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"durationMonths"`
}

// EstimatePurchaseResponse is the estimate and its evaluation as a scenario
type EstimatePurchaseResponse struct {
	Estimate domain.PurchaseEstimate `json:"estimate"`
	Result   domain.ScenarioResult   `json:"result"`
}

// Estimate handles POST /api/v1/purchases/estimate
func (h *PurchaseHandler) Estimate(c echo.Context) error {
	var req EstimatePurchaseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	kind, err := service.ParsePurchaseKind(req.Kind)
	if err != nil {
		return respondError(c, err, "estimate purchase")
	}

	estimate, err := h.purchaseService.Estimate(kind, req.Price, req.DurationMonths)
	if err != nil {
		return respondError(c, err, "estimate purchase")
	}

	return c.JSON(http.StatusOK, EstimatePurchaseResponse{
		Estimate: estimate,
		Result:   h.projectionService.Evaluate(estimate.Scenario, nil),
	})
}
