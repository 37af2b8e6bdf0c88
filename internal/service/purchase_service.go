package service

import (
	"fmt"
	"strings"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PurchaseService estimates the all-in cost of a large purchase from flat
// illustrative fee schedules.
type PurchaseService struct {
	schedules map[domain.PurchaseKind][]domain.FeeRule
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(schedules map[domain.PurchaseKind][]domain.FeeRule) *PurchaseService {
	return &PurchaseService{schedules: schedules}
}

// ParsePurchaseKind accepts "car", "house", "student loan" and "student_loan"
func ParsePurchaseKind(s string) (domain.PurchaseKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	switch kind := domain.PurchaseKind(normalized); kind {
	case domain.PurchaseKindCar, domain.PurchaseKindHouse, domain.PurchaseKindStudentLoan:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownPurchaseKind, s)
}

// Estimate applies the fee schedule for kind to price. The returned estimate
// carries a one-time scenario for the total cost spread over durationMonths.
func (s *PurchaseService) Estimate(kind domain.PurchaseKind, price decimal.Decimal, durationMonths int) (domain.PurchaseEstimate, error) {
	if err := domain.ValidatePositive(price, domain.ErrInvalidAmount); err != nil {
		return domain.PurchaseEstimate{}, err
	}
	rules, ok := s.schedules[kind]
	if !ok {
		return domain.PurchaseEstimate{}, fmt.Errorf("%w: %q", domain.ErrUnknownPurchaseKind, kind)
	}
	if durationMonths < 1 {
		durationMonths = 1
	}

	estimate := domain.PurchaseEstimate{
		Kind:      kind,
		Price:     price,
		Fees:      make([]domain.PurchaseFee, 0, len(rules)),
		TotalFees: decimal.Zero,
	}
	for _, rule := range rules {
		amount := rule.Amount(price)
		estimate.Fees = append(estimate.Fees, domain.PurchaseFee{Name: rule.Name, Amount: amount})
		estimate.TotalFees = estimate.TotalFees.Add(amount)
	}
	estimate.TotalCost = price.Add(estimate.TotalFees)
	estimate.Scenario = domain.ScenarioInput{
		Name:           purchaseLabel(kind),
		Amount:         estimate.TotalCost,
		Recurrence:     domain.RecurrenceOnce,
		DurationMonths: durationMonths,
		IsIncome:       false,
	}
	return estimate, nil
}

func purchaseLabel(kind domain.PurchaseKind) string {
	switch kind {
	case domain.PurchaseKindCar:
		return "Car purchase"
	case domain.PurchaseKindHouse:
		return "House purchase"
	default:
		return "Student loan"
	}
}
