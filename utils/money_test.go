package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoneyHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"25.096", "25.10"},
		{"25.094", "25.09"},
		{"25.095", "25.10"},
		{"0.005", "0.01"},
		{"10", "10.00"},
	}
	for _, tt := range tests {
		in, _ := decimal.NewFromString(tt.in)
		assert.Equal(t, tt.want, MoneyString(RoundMoney(in)), "round %s", tt.in)
	}
}

func TestPercentage(t *testing.T) {
	amount, _ := decimal.NewFromString("125.48")
	percent, _ := decimal.NewFromString("20")
	assert.Equal(t, "25.10", MoneyString(Percentage(amount, percent)))
}

func TestMinMoney(t *testing.T) {
	a, _ := decimal.NewFromString("10.00")
	b, _ := decimal.NewFromString("9.99")
	assert.True(t, MinMoney(a, b).Equal(b))
	assert.True(t, MinMoney(b, a).Equal(b))
}
