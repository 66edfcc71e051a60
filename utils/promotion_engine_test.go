package utils

import (
	"testing"
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func activePromotion(code string) models.Promotion {
	return models.Promotion{
		Code:              code,
		Type:              models.PromotionTypePercentage,
		DiscountValue:     dec("20"),
		MinimumOrderValue: decimal.Zero,
		MaxUsagePerUser:   1,
		StartDate:         engineNow.AddDate(0, -1, 0),
		EndDate:           engineNow.AddDate(0, 1, 0),
		IsActive:          true,
		IsApplicableToAll: true,
	}
}

func cartOrder(code string, items ...PromotionOrderItem) PromotionOrder {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return PromotionOrder{Code: code, Subtotal: subtotal, Items: items}
}

func TestEvaluatePromotionPercentage(t *testing.T) {
	promo := activePromotion("SUMMER20")
	order := cartOrder("SUMMER20",
		PromotionOrderItem{ProductID: 1, Category: "Electronics", Quantity: 2, UnitPrice: dec("49.99")},
		PromotionOrderItem{ProductID: 2, Category: "Books", Quantity: 1, UnitPrice: dec("25.50")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	// 20% of 125.48 = 25.096, rounded half up
	assert.Equal(t, "25.10", result.DiscountAmount.StringFixed(2))
	assert.Equal(t, "125.48", result.MatchedSubtotal.StringFixed(2))
	assert.False(t, result.FreeShipping)
}

func TestEvaluatePromotionPercentageCap(t *testing.T) {
	promo := activePromotion("SUMMER20")
	promo.MaxDiscountAmount = decimal.NewNullDecimal(dec("10.00"))
	order := cartOrder("SUMMER20",
		PromotionOrderItem{ProductID: 1, Category: "Electronics", Quantity: 1, UnitPrice: dec("200.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	assert.Equal(t, "10.00", result.DiscountAmount.StringFixed(2))
}

func TestEvaluatePromotionScopedToCategory(t *testing.T) {
	promo := activePromotion("BOOKS15")
	promo.DiscountValue = dec("15")
	promo.IsApplicableToAll = false
	promo.ApplicableCategories = []models.PromotionCategory{{CategoryName: "Books"}}

	order := cartOrder("BOOKS15",
		PromotionOrderItem{ProductID: 1, Category: "Electronics", Quantity: 1, UnitPrice: dec("300.00")},
		PromotionOrderItem{ProductID: 2, Category: "books", Quantity: 2, UnitPrice: dec("20.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	// Only the book lines count: 15% of 40.00
	assert.Equal(t, "40.00", result.MatchedSubtotal.StringFixed(2))
	assert.Equal(t, "6.00", result.DiscountAmount.StringFixed(2))
}

func TestEvaluatePromotionScopedNoMatch(t *testing.T) {
	promo := activePromotion("BOOKS15")
	promo.IsApplicableToAll = false
	promo.ApplicableCategories = []models.PromotionCategory{{CategoryName: "Books"}}

	order := cartOrder("BOOKS15",
		PromotionOrderItem{ProductID: 1, Category: "Electronics", Quantity: 1, UnitPrice: dec("300.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	assert.False(t, result.Eligible)
	assert.Equal(t, PromotionReasonNotApplicable, result.Reason)
	assert.True(t, result.DiscountAmount.IsZero())
}

func TestEvaluatePromotionFixedAmountClampedToMatched(t *testing.T) {
	promo := activePromotion("FLAT50")
	promo.Type = models.PromotionTypeFixedAmount
	promo.DiscountValue = dec("50.00")
	promo.IsApplicableToAll = false
	promo.ApplicableProducts = []models.PromotionProduct{{ProductID: 7}}

	order := cartOrder("FLAT50",
		PromotionOrderItem{ProductID: 7, Category: "Toys", Quantity: 1, UnitPrice: dec("30.00")},
		PromotionOrderItem{ProductID: 8, Category: "Toys", Quantity: 1, UnitPrice: dec("100.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	// The discount never exceeds the matched subtotal.
	assert.Equal(t, "30.00", result.DiscountAmount.StringFixed(2))
}

func TestEvaluatePromotionFreeShipping(t *testing.T) {
	promo := activePromotion("SHIPFREE")
	promo.Type = models.PromotionTypeFreeShipping
	promo.DiscountValue = decimal.Zero

	order := cartOrder("SHIPFREE",
		PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 1, UnitPrice: dec("10.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	assert.True(t, result.FreeShipping)
	assert.True(t, result.DiscountAmount.IsZero())
}

func TestEvaluatePromotionCodeMatchingIsCaseInsensitive(t *testing.T) {
	promo := activePromotion("SUMMER20")
	order := cartOrder("  summer20 ",
		PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 1, UnitPrice: dec("10.00")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	assert.True(t, result.Eligible)
}

func TestEvaluatePromotionIneligibleReasons(t *testing.T) {
	maxUsage := 100
	tests := []struct {
		name   string
		mutate func(*models.Promotion, *PromotionOrder)
		usage  int
		reason string
	}{
		{
			name:   "wrong code",
			mutate: func(p *models.Promotion, o *PromotionOrder) { o.Code = "WINTER5" },
			reason: PromotionReasonCodeMismatch,
		},
		{
			name:   "inactive",
			mutate: func(p *models.Promotion, o *PromotionOrder) { p.IsActive = false },
			reason: PromotionReasonInactive,
		},
		{
			name: "inactive wins over expired",
			mutate: func(p *models.Promotion, o *PromotionOrder) {
				p.IsActive = false
				p.EndDate = engineNow.AddDate(0, -1, 0)
			},
			reason: PromotionReasonInactive,
		},
		{
			name:   "not started",
			mutate: func(p *models.Promotion, o *PromotionOrder) { p.StartDate = engineNow.AddDate(0, 0, 1) },
			reason: PromotionReasonNotStarted,
		},
		{
			name:   "expired",
			mutate: func(p *models.Promotion, o *PromotionOrder) { p.EndDate = engineNow.AddDate(0, 0, -1) },
			reason: PromotionReasonExpired,
		},
		{
			name: "global usage limit",
			mutate: func(p *models.Promotion, o *PromotionOrder) {
				p.MaxUsageCount = &maxUsage
				p.UsageCount = 100
			},
			reason: PromotionReasonUsageLimitReached,
		},
		{
			name:   "per user limit",
			mutate: func(p *models.Promotion, o *PromotionOrder) {},
			usage:  1,
			reason: PromotionReasonPerUserLimitReached,
		},
		{
			name:   "below minimum",
			mutate: func(p *models.Promotion, o *PromotionOrder) { p.MinimumOrderValue = dec("500.00") },
			reason: PromotionReasonBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := activePromotion("SUMMER20")
			order := cartOrder("SUMMER20",
				PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 1, UnitPrice: dec("100.00")},
			)
			tt.mutate(&promo, &order)

			result := EvaluatePromotion(promo, order, tt.usage, engineNow)
			assert.False(t, result.Eligible)
			assert.Equal(t, tt.reason, result.Reason)
			assert.True(t, result.DiscountAmount.IsZero())
		})
	}
}

func TestEvaluatePromotionBoundaryDates(t *testing.T) {
	promo := activePromotion("SUMMER20")
	order := cartOrder("SUMMER20",
		PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 1, UnitPrice: dec("100.00")},
	)

	// Exactly at the start and end instants the promotion is live.
	assert.True(t, EvaluatePromotion(promo, order, 0, promo.StartDate).Eligible)
	assert.True(t, EvaluatePromotion(promo, order, 0, promo.EndDate).Eligible)
	assert.False(t, EvaluatePromotion(promo, order, 0, promo.EndDate.Add(time.Second)).Eligible)
}

func TestEvaluatePromotionIsIdempotent(t *testing.T) {
	promo := activePromotion("SUMMER20")
	promo.MaxDiscountAmount = decimal.NewNullDecimal(dec("15.00"))
	order := cartOrder("SUMMER20",
		PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 3, UnitPrice: dec("33.33")},
	)

	first := EvaluatePromotion(promo, order, 0, engineNow)
	second := EvaluatePromotion(promo, order, 0, engineNow)
	assert.Equal(t, first, second)
}

func TestEvaluatePromotionDiscountNeverExceedsMatched(t *testing.T) {
	promo := activePromotion("ALL100")
	promo.Type = models.PromotionTypePercentage
	promo.DiscountValue = dec("100")
	order := cartOrder("ALL100",
		PromotionOrderItem{ProductID: 1, Category: "Books", Quantity: 1, UnitPrice: dec("19.99")},
	)

	result := EvaluatePromotion(promo, order, 0, engineNow)
	require.True(t, result.Eligible)
	assert.True(t, result.DiscountAmount.LessThanOrEqual(result.MatchedSubtotal))
	assert.Equal(t, "19.99", result.DiscountAmount.StringFixed(2))
}
