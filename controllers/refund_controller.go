package controllers

import (
	"strconv"
	"strings"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// CreateRefundRequest represents the refund request body
type CreateRefundRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// CreateRefund opens a refund request for one of the user's orders. The
// amount is fixed to what the order was actually paid; requests start
// Pending and move only through the admin workflow.
func CreateRefund(c *gin.Context) {
	utils.LogInfo("CreateRefund called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var req CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		utils.BadRequest(c, "A reason is required", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}
	if order.Status != models.OrderStatusApproved {
		utils.BadRequest(c, "Only approved orders can be refunded", nil)
		return
	}

	var open int64
	config.DB.Model(&models.RefundRequest{}).
		Where("order_id = ? AND status NOT IN ?", order.ID, []string{models.RefundStatusRejected}).
		Count(&open)
	if open > 0 {
		utils.Conflict(c, "A refund request already exists for this order", nil)
		return
	}

	refund := models.RefundRequest{
		OrderID: order.ID,
		UserID:  userID,
		Amount:  order.FinalTotal,
		Reason:  strings.TrimSpace(req.Reason),
		Status:  models.RefundStatusPending,
	}
	if err := config.DB.Create(&refund).Error; err != nil {
		utils.LogError("Failed to create refund for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create refund request", nil)
		return
	}

	utils.LogInfo("Refund request %d opened for order %d", refund.ID, order.ID)
	utils.Created(c, "Refund request created", gin.H{
		"refund_id": refund.ID,
		"order_id":  refund.OrderID,
		"amount":    utils.MoneyString(refund.Amount),
		"status":    refund.Status,
	})
}

// GetUserRefunds lists the user's refund requests
func GetUserRefunds(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.RefundRequest{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var refunds []models.RefundRequest
	if err := query.Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&refunds).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch refund requests", nil)
		return
	}

	items := make([]gin.H, 0, len(refunds))
	for _, r := range refunds {
		items = append(items, gin.H{
			"id":             r.ID,
			"order_id":       r.OrderID,
			"amount":         utils.MoneyString(r.Amount),
			"reason":         r.Reason,
			"status":         r.Status,
			"admin_response": r.AdminResponse,
			"created_at":     r.CreatedAt,
			"reviewed_at":    r.ReviewedAt,
			"completed_at":   r.CompletedAt,
		})
	}

	utils.SuccessWithPagination(c, "Refund requests fetched successfully", items, total, pagination.Page, pagination.Limit)
}

// GetRefundDetails shows one of the user's refund requests
func GetRefundDetails(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	refundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	var refund models.RefundRequest
	if err := config.DB.Where("id = ? AND user_id = ?", refundID, userID).
		Preload("Order").
		First(&refund).Error; err != nil {
		utils.NotFound(c, "Refund request not found")
		return
	}

	utils.Success(c, "Refund request fetched successfully", gin.H{"refund": refund})
}
