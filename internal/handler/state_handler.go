package handler

import (
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// StateHandler exposes the whole ledger
type StateHandler struct {
	projectionService *service.ProjectionService
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(projectionService *service.ProjectionService) *StateHandler {
	return &StateHandler{projectionService: projectionService}
}

// StateResponse is the persisted snapshot plus derived figures
type StateResponse struct {
	Snapshot   domain.LedgerSnapshot    `json:"snapshot"`
	Categories []domain.CategoryView    `json:"categories"`
	Totals     domain.CategoryTotals    `json:"totals"`
	Goal       service.GoalState        `json:"goal"`
	Financial  domain.FinancialSnapshot `json:"financial"`
	SaveStatus domain.SaveStatus        `json:"saveStatus"`
}

// GetState handles GET /api/v1/state
func (h *StateHandler) GetState(c echo.Context) error {
	status := h.projectionService.SaveStatus()
	if !status.Saved {
		c.Response().Header().Set(PersistenceHeader, "unsaved")
	}

	return c.JSON(http.StatusOK, StateResponse{
		Snapshot:   h.projectionService.Snapshot(),
		Categories: h.projectionService.Categories(),
		Totals:     h.projectionService.Totals(),
		Goal:       h.projectionService.Goal(),
		Financial:  h.projectionService.FinancialSnapshot(),
		SaveStatus: status,
	})
}
