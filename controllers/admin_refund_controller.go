package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminListRefunds lists refund requests for the back office
func AdminListRefunds(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.RefundRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var refunds []models.RefundRequest
	if err := query.Preload("Order").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&refunds).Error; err != nil {
		utils.LogError("Failed to fetch refund requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch refund requests", nil)
		return
	}

	utils.SuccessWithPagination(c, "Refund requests fetched successfully", refunds, total, pagination.Page, pagination.Limit)
}

// RefundDecisionRequest carries the admin's response message
type RefundDecisionRequest struct {
	Response string `json:"response"`
}

// lockRefund loads a refund request FOR UPDATE inside tx.
func lockRefund(tx *gorm.DB, refundID int) (models.RefundRequest, error) {
	var refund models.RefundRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&refund, refundID).Error
	return refund, err
}

// transitionRefund moves a refund to the target status or fails with a
// conflict if the workflow forbids it. Caller owns the transaction.
func transitionRefund(c *gin.Context, tx *gorm.DB, refund *models.RefundRequest, target string, updates map[string]interface{}) bool {
	if !utils.CanTransitionRefund(refund.Status, target) {
		tx.Rollback()
		utils.Conflict(c, fmt.Sprintf("Refund cannot move from %s to %s", refund.Status, target), nil)
		return false
	}
	updates["status"] = target
	if err := tx.Model(refund).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update refund %d: %v", refund.ID, err)
		utils.InternalServerError(c, "Failed to update refund request", nil)
		return false
	}
	return true
}

// ApproveRefund moves a pending refund to Approved
func ApproveRefund(c *gin.Context) {
	utils.LogInfo("ApproveRefund called")

	refundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	var req RefundDecisionRequest
	_ = c.ShouldBindJSON(&req)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	refund, err := lockRefund(tx, refundID)
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Refund request not found")
		return
	}

	now := nowFunc()
	ok := transitionRefund(c, tx, &refund, models.RefundStatusApproved, map[string]interface{}{
		"admin_response": req.Response,
		"reviewed_at":    now,
	})
	if !ok {
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Refund %d approved", refund.ID)
	utils.Success(c, "Refund request approved", gin.H{"refund_id": refund.ID, "status": models.RefundStatusApproved})
}

// RejectRefund closes a pending refund. The workflow requires a
// non-empty response so the customer always learns why.
func RejectRefund(c *gin.Context) {
	utils.LogInfo("RejectRefund called")

	refundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	var req RefundDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Response) == "" {
		utils.BadRequest(c, "A response is required when rejecting a refund", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	refund, err := lockRefund(tx, refundID)
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Refund request not found")
		return
	}

	now := nowFunc()
	ok := transitionRefund(c, tx, &refund, models.RefundStatusRejected, map[string]interface{}{
		"admin_response": strings.TrimSpace(req.Response),
		"reviewed_at":    now,
	})
	if !ok {
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Refund %d rejected", refund.ID)
	utils.Success(c, "Refund request rejected", gin.H{"refund_id": refund.ID, "status": models.RefundStatusRejected})
}

// ProcessRefund moves an approved refund into Processing
func ProcessRefund(c *gin.Context) {
	refundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	refund, err := lockRefund(tx, refundID)
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Refund request not found")
		return
	}

	if !transitionRefund(c, tx, &refund, models.RefundStatusProcessing, map[string]interface{}{}) {
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Refund %d processing", refund.ID)
	utils.Success(c, "Refund is being processed", gin.H{"refund_id": refund.ID, "status": models.RefundStatusProcessing})
}

// CompleteRefund finishes a processing refund and credits the amount to
// the customer's wallet. The status change and the wallet credit commit
// together or not at all.
func CompleteRefund(c *gin.Context) {
	utils.LogInfo("CompleteRefund called")

	refundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	refund, err := lockRefund(tx, refundID)
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Refund request not found")
		return
	}

	now := nowFunc()
	ok := transitionRefund(c, tx, &refund, models.RefundStatusCompleted, map[string]interface{}{
		"completed_at": now,
	})
	if !ok {
		return
	}

	if err := creditWallet(tx, refund.UserID, refund.Amount,
		fmt.Sprintf("Refund for order #%d", refund.OrderID),
		fmt.Sprintf("refund-%d", refund.ID)); err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for refund %d: %v", refund.ID, err)
		utils.InternalServerError(c, "Failed to credit wallet", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Refund %d completed, %s credited to user %d", refund.ID, utils.MoneyString(refund.Amount), refund.UserID)
	utils.Success(c, "Refund completed and wallet credited", gin.H{
		"refund_id": refund.ID,
		"status":    models.RefundStatusCompleted,
		"amount":    utils.MoneyString(refund.Amount),
	})
}
