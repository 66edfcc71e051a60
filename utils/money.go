package utils

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// RoundMoney rounds a monetary amount to two decimal places, half up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MoneyString formats a monetary amount with exactly two decimals.
func MoneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Percentage computes amount * percent / 100, rounded to two decimals.
func Percentage(amount, percent decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(percent).Div(oneHundred))
}

// MinMoney returns the smaller of two amounts.
func MinMoney(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
