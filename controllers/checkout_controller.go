package controllers

import (
	"errors"
	"fmt"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// CheckoutRequest represents the place-order request body
type CheckoutRequest struct {
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cod online"`
}

// Checkout places an order from the user's cart. The whole operation is
// one transaction: inventory rows are locked FOR UPDATE and drained
// through the ledger, and the active promotion (if any) is re-evaluated
// against locked state and committed. Losing a race on the last unit of
// stock or on a single-use code fails the checkout cleanly.
func Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userModel := user.(models.User)
	userID := userModel.ID

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var cartItems []models.Cart
	if err := config.DB.Where("user_id = ?", userID).Preload("Product").Preload("Product.Category").Find(&cartItems).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch cart items", nil)
		return
	}
	if len(cartItems) == 0 {
		utils.BadRequest(c, "Your cart is empty", nil)
		return
	}

	now := nowFunc()
	store := config.App.Store

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Drain stock first, under row locks, so a concurrent checkout on
	// the same product waits here instead of overselling.
	reference := "order-" + uuid.New().String()
	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	promoOrder := utils.PromotionOrder{Subtotal: decimal.Zero}

	for _, item := range cartItems {
		var inventory models.Inventory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", item.ProductID).
			First(&inventory).Error; err != nil {
			tx.Rollback()
			utils.BadRequest(c, fmt.Sprintf("%s is out of stock", item.Product.Name), nil)
			return
		}

		updated, movement, err := utils.AdjustStock(inventory, utils.StockAdjustment{
			Kind:      utils.StockAdjustRemove,
			Quantity:  item.Quantity,
			Reason:    models.StockReasonOrder,
			Reference: reference,
		}, now)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, utils.ErrInsufficientStock) {
				utils.BadRequest(c, fmt.Sprintf("Not enough stock for %s", item.Product.Name), gin.H{
					"product_id": item.ProductID,
					"available":  inventory.CurrentStock,
					"requested":  item.Quantity,
				})
			} else {
				utils.BadRequest(c, err.Error(), nil)
			}
			return
		}

		if err := tx.Model(&models.Inventory{}).Where("id = ?", inventory.ID).
			Update("current_stock", updated.CurrentStock).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update stock", nil)
			return
		}
		if err := tx.Create(&movement).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to record stock movement", nil)
			return
		}

		lineTotal := utils.RoundMoney(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Category:  item.Product.Category.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Total:     lineTotal,
		})
		promoOrder.Items = append(promoOrder.Items, utils.PromotionOrderItem{
			ProductID: item.ProductID,
			Category:  item.Product.Category.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}
	promoOrder.Subtotal = subtotal

	// Re-evaluate the applied promotion inside the transaction, against
	// a locked promotion row, and commit the redemption atomically.
	discount := decimal.Zero
	freeShipping := false
	var promotionID *uint
	promotionCode := ""

	var active models.UserActivePromotion
	if err := tx.Where("user_id = ?", userID).First(&active).Error; err == nil {
		var promo models.Promotion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("ApplicableProducts").
			Preload("ApplicableCategories").
			First(&promo, active.PromotionID).Error; err != nil {
			tx.Rollback()
			utils.BadRequest(c, "Applied promotion no longer exists", nil)
			return
		}

		usage, err := userPromotionUsage(tx, promo.ID, userID)
		if err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to check promotion usage", nil)
			return
		}

		promoOrder.Code = promo.Code
		result := utils.EvaluatePromotion(promo, promoOrder, usage, now)
		if !result.Eligible {
			tx.Rollback()
			message, ok := promotionReasonMessages[result.Reason]
			if !ok {
				message = "Applied promotion is no longer valid"
			}
			utils.BadRequest(c, message, gin.H{"reason": result.Reason})
			return
		}

		if err := commitPromotion(tx, promo, userID, 0, now); err != nil {
			tx.Rollback()
			if errors.Is(err, utils.ErrConflict) {
				utils.LogError("Promotion %s redemption conflict for user %d", promo.Code, userID)
				utils.Conflict(c, "Promotion was exhausted by a concurrent order, please retry", nil)
			} else {
				utils.InternalServerError(c, "Failed to redeem promotion", nil)
			}
			return
		}

		discount = result.DiscountAmount
		freeShipping = result.FreeShipping
		promotionID = &promo.ID
		promotionCode = promo.Code
	}

	shipping := store.ShippingCharge
	if freeShipping {
		shipping = decimal.Zero
	}
	taxable := subtotal.Sub(discount)
	tax := utils.Percentage(taxable, store.TaxRatePercent)
	finalTotal := utils.RoundMoney(taxable.Add(tax).Add(shipping))

	order := models.Order{
		UserID:         userID,
		AddressID:      address.ID,
		Subtotal:       utils.RoundMoney(subtotal),
		Discount:       discount,
		PromotionID:    promotionID,
		PromotionCode:  promotionCode,
		FreeShipping:   freeShipping,
		Tax:            tax,
		ShippingCharge: shipping,
		FinalTotal:     finalTotal,
		PaymentMethod:  req.PaymentMethod,
		Status:         models.OrderStatusPending,
		ProcessingStep: models.ProcessingStepNone,
		OrderItems:     orderItems,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	// Attribute the redemption and the stock movements to the order id.
	if promotionID != nil {
		if err := tx.Model(&models.PromotionUsage{}).
			Where("promotion_id = ? AND user_id = ? AND order_id = 0", *promotionID, userID).
			Update("order_id", order.ID).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to record promotion usage", nil)
			return
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserActivePromotion{}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to clear applied promotion", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit checkout for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	if err := utils.SendOrderConfirmation(userModel.Email, order.ID, utils.MoneyString(finalTotal)); err != nil {
		// The order is placed; a failed email is only logged.
		utils.LogError("Failed to send confirmation for order %d: %v", order.ID, err)
	}

	utils.LogInfo("Order %d placed by user %d, total %s", order.ID, userID, utils.MoneyString(finalTotal))
	utils.Created(c, "Order placed successfully", gin.H{
		"order": gin.H{
			"id":              order.ID,
			"status":          order.Status,
			"subtotal":        utils.MoneyString(order.Subtotal),
			"discount":        utils.MoneyString(order.Discount),
			"promotion_code":  order.PromotionCode,
			"free_shipping":   order.FreeShipping,
			"tax":             utils.MoneyString(order.Tax),
			"shipping_charge": utils.MoneyString(order.ShippingCharge),
			"final_total":     utils.MoneyString(order.FinalTotal),
			"payment_method":  order.PaymentMethod,
		},
	})
}
