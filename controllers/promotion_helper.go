package controllers

import (
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// buildPromotionOrder assembles the engine's view of the user's cart.
func buildPromotionOrder(db *gorm.DB, userID uint, code string) (utils.PromotionOrder, error) {
	var cartItems []models.Cart
	if err := db.Where("user_id = ?", userID).Preload("Product").Preload("Product.Category").Find(&cartItems).Error; err != nil {
		return utils.PromotionOrder{}, err
	}

	order := utils.PromotionOrder{Code: code, Subtotal: decimal.Zero}
	for _, item := range cartItems {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Subtotal = order.Subtotal.Add(lineTotal)
		order.Items = append(order.Items, utils.PromotionOrderItem{
			ProductID: item.ProductID,
			Category:  item.Product.Category.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}
	return order, nil
}

// userPromotionUsage counts the user's prior redemptions of a promotion.
func userPromotionUsage(db *gorm.DB, promotionID, userID uint) (int, error) {
	var count int64
	err := db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ? AND user_id = ?", promotionID, userID).
		Count(&count).Error
	return int(count), err
}

// commitPromotion is the only mutator of promotion usage. It must run
// inside a transaction that holds the promotion row FOR UPDATE, so two
// concurrent redemptions of the same code serialize; the conditional
// increment is a second guard against a stale usage count.
func commitPromotion(tx *gorm.DB, promo models.Promotion, userID, orderID uint, now time.Time) error {
	used, err := userPromotionUsage(tx, promo.ID, userID)
	if err != nil {
		return err
	}
	if used >= promo.MaxUsagePerUser {
		return utils.ErrConflict
	}

	query := tx.Model(&models.Promotion{}).Where("id = ?", promo.ID)
	if promo.MaxUsageCount != nil {
		query = query.Where("usage_count < ?", *promo.MaxUsageCount)
	}
	res := query.UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrConflict
	}

	usage := models.PromotionUsage{
		PromotionID: promo.ID,
		UserID:      userID,
		OrderID:     orderID,
		UsedAt:      now,
	}
	return tx.Create(&usage).Error
}

// loadPromotionByCode fetches a promotion with its scoping lists.
func loadPromotionByCode(db *gorm.DB, code string) (models.Promotion, error) {
	var promo models.Promotion
	err := db.Where("LOWER(code) = LOWER(?)", code).
		Preload("ApplicableProducts").
		Preload("ApplicableCategories").
		First(&promo).Error
	return promo, err
}
