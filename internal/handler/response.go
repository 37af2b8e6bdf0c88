package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MutationResponse wraps the result of a command together with whether the
// ledger reached the store.
type MutationResponse struct {
	Data    interface{} `json:"data"`
	Saved   bool        `json:"saved"`
	Warning string      `json:"warning,omitempty"`
}

// PersistenceHeader is set to "unsaved" when a command succeeded in memory but
// could not be written to the store.
const PersistenceHeader = "X-Sprout-Persistence"

// Error types
const (
	ErrorTypeValidation = "https://sprout.app/errors/validation"
	ErrorTypeNotFound   = "https://sprout.app/errors/not-found"
	ErrorTypeConflict   = "https://sprout.app/errors/conflict"
	ErrorTypeInternal   = "https://sprout.app/errors/internal"
)

// fieldErrors maps specific validation errors onto the request field they
// concern.
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name must be 100 characters or less"},
	{domain.ErrInvalidBudget, "budget", "Budget must be greater than zero"},
	{domain.ErrInvalidSpent, "spent", "Spent must not be negative"},
	{domain.ErrInvalidAmount, "amount", "Amount must be greater than zero"},
	{domain.ErrInvalidTarget, "targetAmount", "Target amount must be greater than zero"},
	{domain.ErrInvalidTimeframe, "timeframeMonths", "Timeframe must be at least one month"},
	{domain.ErrInvalidIncome, "monthlyIncome", "Monthly income must not be negative"},
	{domain.ErrContributionExceedsRemaining, "amount", "Contribution exceeds the remaining goal amount"},
	{domain.ErrUnknownPurchaseKind, "kind", "Kind must be one of car, house, student_loan"},
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondError maps a service error onto its Problem Details response
func respondError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var details []ValidationError
		for _, fe := range fieldErrors {
			if errors.Is(err, fe.err) {
				details = append(details, ValidationError{Field: fe.field, Message: fe.message})
			}
		}
		return NewValidationError(c, "Validation failed", details)
	case errors.Is(err, domain.ErrBudgetCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Resource not found")
	case errors.Is(err, domain.ErrNoActiveGoal):
		return NewConflictError(c, "No active savings goal")
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to " + action)
		return NewInternalError(c, "Failed to "+action)
	}
}

// respondMutation writes the result of a command. A persistence error keeps
// the success status and flags the response as unsaved; any other error is
// mapped with respondError.
func respondMutation(c echo.Context, status int, data interface{}, err error, action string) error {
	if err == nil {
		return c.JSON(status, MutationResponse{Data: data, Saved: true})
	}
	if errors.Is(err, domain.ErrPersistence) {
		c.Response().Header().Set(PersistenceHeader, "unsaved")
		return c.JSON(status, MutationResponse{
			Data:    data,
			Saved:   false,
			Warning: "Changes were applied but could not be saved",
		})
	}
	return respondError(c, err, action)
}
