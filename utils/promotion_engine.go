package utils

import (
	"strings"
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/shopspring/decimal"
)

// Reasons a promotion can fail evaluation, in the order they are checked.
// The first failing check wins, so the user always sees the same message
// for the same cart.
const (
	PromotionReasonCodeMismatch        = "code_mismatch"
	PromotionReasonInactive            = "inactive"
	PromotionReasonNotStarted          = "not_started"
	PromotionReasonExpired             = "expired"
	PromotionReasonUsageLimitReached   = "usage_limit_reached"
	PromotionReasonPerUserLimitReached = "per_user_limit_reached"
	PromotionReasonBelowMinimum        = "below_minimum"
	PromotionReasonNotApplicable       = "not_applicable"
)

// PromotionOrderItem is one order line as the engine sees it.
type PromotionOrderItem struct {
	ProductID uint
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PromotionOrder is the candidate order a promotion is evaluated against.
type PromotionOrder struct {
	Code     string
	Subtotal decimal.Decimal
	Items    []PromotionOrderItem
}

// PromotionResult is the outcome of evaluating one promotion against one
// order. DiscountAmount is always zero when Eligible is false, and zero
// for free-shipping promotions, where FreeShipping signals the caller to
// zero the shipping line instead.
type PromotionResult struct {
	Eligible        bool            `json:"eligible"`
	Reason          string          `json:"reason,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	MatchedSubtotal decimal.Decimal `json:"matched_subtotal"`
	FreeShipping    bool            `json:"free_shipping"`
}

// EvaluatePromotion decides whether promo applies to order and computes
// the discount. It is a pure function: the clock is injected and no state
// is touched, so it is safe for preview calls from the checkout page.
// userUsageCount is the caller's prior redemption count for this code.
func EvaluatePromotion(promo models.Promotion, order PromotionOrder, userUsageCount int, now time.Time) PromotionResult {
	ineligible := func(reason string) PromotionResult {
		return PromotionResult{Reason: reason, DiscountAmount: decimal.Zero, MatchedSubtotal: decimal.Zero}
	}

	if !strings.EqualFold(strings.TrimSpace(order.Code), promo.Code) {
		return ineligible(PromotionReasonCodeMismatch)
	}
	if !promo.IsActive {
		return ineligible(PromotionReasonInactive)
	}
	if now.Before(promo.StartDate) {
		return ineligible(PromotionReasonNotStarted)
	}
	if now.After(promo.EndDate) {
		return ineligible(PromotionReasonExpired)
	}
	if promo.MaxUsageCount != nil && promo.UsageCount >= *promo.MaxUsageCount {
		return ineligible(PromotionReasonUsageLimitReached)
	}
	if userUsageCount >= promo.MaxUsagePerUser {
		return ineligible(PromotionReasonPerUserLimitReached)
	}
	if order.Subtotal.LessThan(promo.MinimumOrderValue) {
		return ineligible(PromotionReasonBelowMinimum)
	}

	matched := order.Subtotal
	if !promo.IsApplicableToAll {
		var anyMatch bool
		matched, anyMatch = matchedSubtotal(promo, order.Items)
		if !anyMatch {
			return ineligible(PromotionReasonNotApplicable)
		}
	}

	result := PromotionResult{
		Eligible:        true,
		DiscountAmount:  decimal.Zero,
		MatchedSubtotal: RoundMoney(matched),
	}

	switch promo.Type {
	case models.PromotionTypePercentage:
		discount := Percentage(matched, promo.DiscountValue)
		if promo.MaxDiscountAmount.Valid {
			discount = MinMoney(discount, promo.MaxDiscountAmount.Decimal)
		}
		// A discount never exceeds the subtotal it discounts.
		result.DiscountAmount = MinMoney(discount, result.MatchedSubtotal)
	case models.PromotionTypeFixedAmount:
		result.DiscountAmount = RoundMoney(MinMoney(promo.DiscountValue, matched))
	case models.PromotionTypeFreeShipping:
		result.FreeShipping = true
	default:
		return ineligible(PromotionReasonNotApplicable)
	}

	if result.DiscountAmount.IsNegative() {
		result.DiscountAmount = decimal.Zero
	}
	return result
}

// matchedSubtotal sums the order lines eligible under a scoped promotion:
// a line matches when its product id appears in the promotion's product
// list or its category in the category list.
func matchedSubtotal(promo models.Promotion, items []PromotionOrderItem) (decimal.Decimal, bool) {
	products := make(map[uint]bool, len(promo.ApplicableProducts))
	for _, p := range promo.ApplicableProducts {
		products[p.ProductID] = true
	}
	categories := make(map[string]bool, len(promo.ApplicableCategories))
	for _, c := range promo.ApplicableCategories {
		categories[strings.ToLower(c.CategoryName)] = true
	}

	total := decimal.Zero
	anyMatch := false
	for _, item := range items {
		if products[item.ProductID] || categories[strings.ToLower(item.Category)] {
			anyMatch = true
			total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return total, anyMatch
}
