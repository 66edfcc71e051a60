package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserOrders lists the authenticated user's orders, newest first
func GetUserOrders(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("OrderItems").Preload("OrderItems.Product").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, orderSummary(order))
	}

	utils.SuccessWithPagination(c, "Orders fetched successfully", items, total, pagination.Page, pagination.Limit)
}

// GetOrderDetails shows one of the user's orders
func GetOrderDetails(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, userID).
		Preload("OrderItems").Preload("OrderItems.Product").
		Preload("Address").
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order fetched successfully", gin.H{"order": order})
}

// CancelOrderRequest carries the customer's cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels a pending order and puts the stock back. An order
// that has been approved, rejected or already cancelled cannot move;
// refusal comes from the transition table, not from ad hoc checks.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("OrderItems").
		First(&order).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !utils.CanTransitionOrder(order.Status, models.OrderStatusCancelled) {
		tx.Rollback()
		utils.LogInfo("Rejected cancel of order %d in status %s", order.ID, order.Status)
		utils.Conflict(c, fmt.Sprintf("Order cannot be cancelled from status %s", order.Status), nil)
		return
	}

	if err := restockOrderItems(tx, order, nowFunc()); err != nil {
		tx.Rollback()
		utils.LogError("Failed to restock order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to return stock", nil)
		return
	}

	updates := map[string]interface{}{
		"status":              models.OrderStatusCancelled,
		"cancelled_by":        models.CancelledByCustomer,
		"cancellation_reason": req.Reason,
	}
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Order %d cancelled by user %d", order.ID, userID)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id": order.ID,
		"status":   models.OrderStatusCancelled,
	})
}

// restockOrderItems returns every item of an order to inventory through
// the ledger, one audit entry per product. Caller owns the transaction.
func restockOrderItems(tx *gorm.DB, order models.Order, now time.Time) error {
	reference := fmt.Sprintf("order-%d-return", order.ID)
	for _, item := range order.OrderItems {
		var inventory models.Inventory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", item.ProductID).
			First(&inventory).Error; err != nil {
			return err
		}

		updated, movement, err := utils.AdjustStock(inventory, utils.StockAdjustment{
			Kind:      utils.StockAdjustAdd,
			Quantity:  item.Quantity,
			Reason:    models.StockReasonReturn,
			Reference: reference,
		}, now)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Inventory{}).Where("id = ?", inventory.ID).
			Update("current_stock", updated.CurrentStock).Error; err != nil {
			return err
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
	}
	return nil
}

func orderSummary(order models.Order) gin.H {
	return gin.H{
		"id":              order.ID,
		"status":          order.Status,
		"processing_step": order.ProcessingStep,
		"item_count":      len(order.OrderItems),
		"subtotal":        utils.MoneyString(order.Subtotal),
		"discount":        utils.MoneyString(order.Discount),
		"final_total":     utils.MoneyString(order.FinalTotal),
		"payment_method":  order.PaymentMethod,
		"promotion_code":  order.PromotionCode,
		"created_at":      order.CreatedAt,
	}
}
