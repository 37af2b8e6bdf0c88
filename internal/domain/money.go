package domain

import "github.com/shopspring/decimal"

var decimalHundred = decimal.NewFromInt(100)

// ValidatePositive returns err unless amount > 0.
func ValidatePositive(amount decimal.Decimal, err error) error {
	if !amount.IsPositive() {
		return err
	}
	return nil
}

// ValidateNonNegative returns err when amount < 0.
func ValidateNonNegative(amount decimal.Decimal, err error) error {
	if amount.IsNegative() {
		return err
	}
	return nil
}

// RoundedPercent returns round(part / whole * 100) rounded half up, or 0 when
// whole is not positive.
func RoundedPercent(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	return int(part.Mul(decimalHundred).Div(whole).Round(0).IntPart())
}

// MaxZero clamps negative amounts to zero.
func MaxZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Sum adds up amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
