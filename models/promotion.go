package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromotionType is the closed set of discount kinds a promotion can carry.
type PromotionType string

const (
	PromotionTypePercentage   PromotionType = "percentage"
	PromotionTypeFixedAmount  PromotionType = "fixed_amount"
	PromotionTypeFreeShipping PromotionType = "free_shipping"
)

type Promotion struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	Code              string              `gorm:"uniqueIndex:idx_promotions_code" json:"code"`
	Type              PromotionType       `json:"type"`
	DiscountValue     decimal.Decimal     `json:"discount_value" gorm:"type:decimal(12,2)"`
	MaxDiscountAmount decimal.NullDecimal `json:"max_discount_amount" gorm:"type:decimal(12,2)"`
	MinimumOrderValue decimal.Decimal     `json:"minimum_order_value" gorm:"type:decimal(12,2)"`
	MaxUsageCount     *int                `json:"max_usage_count"`
	UsageCount        int                 `json:"usage_count"`
	MaxUsagePerUser   int                 `json:"max_usage_per_user" gorm:"default:1"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           time.Time           `json:"end_date"`
	IsActive          bool                `json:"is_active"`
	IsApplicableToAll bool                `json:"is_applicable_to_all"`

	ApplicableProducts   []PromotionProduct  `json:"applicable_products,omitempty" gorm:"foreignKey:PromotionID"`
	ApplicableCategories []PromotionCategory `json:"applicable_categories,omitempty" gorm:"foreignKey:PromotionID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PromotionProduct restricts a scoped promotion to a single product.
type PromotionProduct struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	PromotionID uint `gorm:"index" json:"promotion_id"`
	ProductID   uint `json:"product_id"`
}

// PromotionCategory restricts a scoped promotion to a category name.
type PromotionCategory struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PromotionID  uint   `gorm:"index" json:"promotion_id"`
	CategoryName string `json:"category_name"`
}

// PromotionUsage records one successful redemption by one user.
type PromotionUsage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PromotionID uint      `gorm:"index:idx_promotion_usages_promo_user" json:"promotion_id"`
	UserID      uint      `gorm:"index:idx_promotion_usages_promo_user" json:"user_id"`
	OrderID     uint      `json:"order_id"`
	UsedAt      time.Time `json:"used_at"`
}

// UserActivePromotion tracks the promotion currently applied to a user's
// cart. Only one per user; replaced when a new code is applied.
type UserActivePromotion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	PromotionID uint      `json:"promotion_id"`
	Code        string    `json:"code"`
	AppliedAt   time.Time `json:"applied_at"`
}
