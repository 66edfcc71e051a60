package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// AdminListOrders lists all orders for the back office
func AdminListOrders(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("User").Preload("OrderItems").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		summary := orderSummary(order)
		summary["user_id"] = order.UserID
		summary["username"] = order.User.Username
		items = append(items, summary)
	}

	utils.SuccessWithPagination(c, "Orders fetched successfully", items, total, pagination.Page, pagination.Limit)
}

// AdminGetOrderDetails shows one order with user, address and items
func AdminGetOrderDetails(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").Preload("Address").
		Preload("OrderItems").Preload("OrderItems.Product").
		First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order fetched successfully", gin.H{"order": order})
}

// ApproveOrder moves a pending order to approved and starts processing
func ApproveOrder(c *gin.Context) {
	utils.LogInfo("ApproveOrder called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !utils.CanTransitionOrder(order.Status, models.OrderStatusApproved) {
		tx.Rollback()
		utils.Conflict(c, fmt.Sprintf("Order cannot be approved from status %s", order.Status), nil)
		return
	}

	updates := map[string]interface{}{
		"status":          models.OrderStatusApproved,
		"processing_step": models.ProcessingStepPreparing,
	}
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to approve order", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Order %d approved", order.ID)
	utils.Success(c, "Order approved successfully", gin.H{
		"order_id":        order.ID,
		"status":          models.OrderStatusApproved,
		"processing_step": models.ProcessingStepPreparing,
	})
}

// RejectOrderRequest carries the mandatory rejection reason
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectOrder rejects a pending order and puts the stock back. Rejection
// is terminal; the reason is recorded for the customer to read.
func RejectOrder(c *gin.Context) {
	utils.LogInfo("RejectOrder called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "A rejection reason is required", err.Error())
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		utils.BadRequest(c, "A rejection reason is required", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OrderItems").
		First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !utils.CanTransitionOrder(order.Status, models.OrderStatusRejected) {
		tx.Rollback()
		utils.Conflict(c, fmt.Sprintf("Order cannot be rejected from status %s", order.Status), nil)
		return
	}

	if err := restockOrderItems(tx, order, nowFunc()); err != nil {
		tx.Rollback()
		utils.LogError("Failed to restock order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to return stock", nil)
		return
	}

	updates := map[string]interface{}{
		"status":           models.OrderStatusRejected,
		"rejection_reason": strings.TrimSpace(req.Reason),
	}
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to reject order", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Order %d rejected: %s", order.ID, req.Reason)
	utils.Success(c, "Order rejected successfully", gin.H{
		"order_id": order.ID,
		"status":   models.OrderStatusRejected,
	})
}

// AdvanceOrderProcessing moves an approved order one step forward along
// the fixed processing sequence. Steps cannot be skipped or revisited.
func AdvanceOrderProcessing(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusApproved {
		tx.Rollback()
		utils.Conflict(c, "Only approved orders move through processing", nil)
		return
	}

	next, ok := utils.NextProcessingStep(order.ProcessingStep)
	if !ok {
		tx.Rollback()
		utils.Conflict(c, "Order has already finished processing", nil)
		return
	}

	if err := tx.Model(&order).Update("processing_step", next).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to advance processing step", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Order %d advanced to %s", order.ID, next)
	utils.Success(c, "Processing step advanced", gin.H{
		"order_id":        order.ID,
		"processing_step": next,
	})
}

// AdminCancelOrder cancels a pending order on the store's behalf
func AdminCancelOrder(c *gin.Context) {
	utils.LogInfo("AdminCancelOrder called")

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
		Preload("OrderItems").
		First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !utils.CanTransitionOrder(order.Status, models.OrderStatusCancelled) {
		tx.Rollback()
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
		"cancelled_by":        models.CancelledByAdmin,
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

	utils.LogInfo("Order %d cancelled by admin", order.ID)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id": order.ID,
		"status":   models.OrderStatusCancelled,
	})
}
