package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every specific error below wraps exactly one of these so
// callers can branch with errors.Is on the class.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrNoActiveGoal = errors.New("no active savings goal")
	ErrPersistence  = errors.New("persistence failed")
)

// Validation errors
var (
	ErrNameRequired                 = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooLong                  = fmt.Errorf("%w: name exceeds maximum length", ErrValidation)
	ErrInvalidBudget                = fmt.Errorf("%w: budget must be greater than zero", ErrValidation)
	ErrInvalidSpent                 = fmt.Errorf("%w: spent must not be negative", ErrValidation)
	ErrInvalidAmount                = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidTarget                = fmt.Errorf("%w: target amount must be greater than zero", ErrValidation)
	ErrInvalidTimeframe             = fmt.Errorf("%w: timeframe must be at least one month", ErrValidation)
	ErrInvalidIncome                = fmt.Errorf("%w: monthly income must not be negative", ErrValidation)
	ErrContributionExceedsRemaining = fmt.Errorf("%w: contribution exceeds remaining goal amount", ErrValidation)
	ErrUnknownPurchaseKind          = fmt.Errorf("%w: unknown purchase kind", ErrValidation)
)

// Lookup errors
var (
	ErrBudgetCategoryNotFound = fmt.Errorf("%w: budget category", ErrNotFound)
)

// Persistence errors
var (
	ErrCorruptSnapshot = fmt.Errorf("%w: corrupt snapshot", ErrPersistence)
)

// Validation constants
const (
	MaxBudgetCategoryNameLength = 100
	MaxGoalNameLength           = 100
)
