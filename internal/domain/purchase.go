package domain

import "github.com/shopspring/decimal"

type PurchaseKind string

const (
	PurchaseKindCar         PurchaseKind = "car"
	PurchaseKindHouse       PurchaseKind = "house"
	PurchaseKindStudentLoan PurchaseKind = "student_loan"
)

// FeeRule is either a percentage of the price or a flat amount.
type FeeRule struct {
	Name    string          `json:"name" yaml:"name"`
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
	Flat    decimal.Decimal `json:"flat" yaml:"flat"`
}

// Amount returns the fee charged on price.
func (r FeeRule) Amount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(r.Percent).Div(decimalHundred).Round(2).Add(r.Flat)
}

type PurchaseFee struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PurchaseEstimate struct {
	Kind      PurchaseKind    `json:"kind"`
	Price     decimal.Decimal `json:"price"`
	Fees      []PurchaseFee   `json:"fees"`
	TotalFees decimal.Decimal `json:"totalFees"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Scenario  ScenarioInput   `json:"scenario"`
}
