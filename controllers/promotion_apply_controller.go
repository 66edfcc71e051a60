package controllers

import (
	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// ApplyPromotionRequest represents the request body for applying a code
type ApplyPromotionRequest struct {
	Code string `json:"code" binding:"required"`
}

// promotionReasonMessages maps engine reasons to user-facing messages.
var promotionReasonMessages = map[string]string{
	utils.PromotionReasonCodeMismatch:        "Invalid promotion code",
	utils.PromotionReasonInactive:            "This promotion is no longer active",
	utils.PromotionReasonNotStarted:          "This promotion has not started yet",
	utils.PromotionReasonExpired:             "This promotion has expired",
	utils.PromotionReasonUsageLimitReached:   "This promotion has reached its usage limit",
	utils.PromotionReasonPerUserLimitReached: "You have already used this promotion",
	utils.PromotionReasonBelowMinimum:        "Cart total is below the minimum order value for this promotion",
	utils.PromotionReasonNotApplicable:       "This promotion does not apply to any item in your cart",
}

// ApplyPromotion evaluates a promotion code against the user's cart and,
// when eligible, records it as the active code for checkout. Evaluation
// has no side effects; the usage counters only move when the order is
// placed.
func ApplyPromotion(c *gin.Context) {
	utils.LogInfo("ApplyPromotion called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var req ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Applying promotion code %s for user %d", req.Code, userID)

	promo, err := loadPromotionByCode(config.DB, req.Code)
	if err != nil {
		utils.LogError("Promotion not found: %s", req.Code)
		utils.NotFound(c, "Invalid promotion code")
		return
	}

	order, err := buildPromotionOrder(config.DB, userID, req.Code)
	if err != nil {
		utils.LogError("Failed to build cart for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to fetch cart items", nil)
		return
	}
	if len(order.Items) == 0 {
		utils.BadRequest(c, "Your cart is empty", nil)
		return
	}

	usage, err := userPromotionUsage(config.DB, promo.ID, userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to check promotion usage", nil)
		return
	}

	result := utils.EvaluatePromotion(promo, order, usage, nowFunc())
	if !result.Eligible {
		message, ok := promotionReasonMessages[result.Reason]
		if !ok {
			message = "Promotion cannot be applied"
		}
		utils.LogInfo("Promotion %s not eligible for user %d: %s", promo.Code, userID, result.Reason)
		utils.BadRequest(c, message, gin.H{"reason": result.Reason})
		return
	}

	// Remember the applied code; replaced if the user applies another.
	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserActivePromotion{}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to clear previous promotion", nil)
		return
	}
	active := models.UserActivePromotion{
		UserID:      userID,
		PromotionID: promo.ID,
		Code:        promo.Code,
		AppliedAt:   nowFunc(),
	}
	if err := tx.Create(&active).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to save applied promotion", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Promotion %s applied for user %d, discount %s", promo.Code, userID, utils.MoneyString(result.DiscountAmount))
	utils.Success(c, "Promotion applied successfully", gin.H{
		"code":             promo.Code,
		"type":             promo.Type,
		"subtotal":         utils.MoneyString(utils.RoundMoney(order.Subtotal)),
		"matched_subtotal": utils.MoneyString(result.MatchedSubtotal),
		"discount":         utils.MoneyString(result.DiscountAmount),
		"free_shipping":    result.FreeShipping,
	})
}

// PreviewPromotion evaluates a code without recording anything, for the
// checkout page to validate as the user types.
func PreviewPromotion(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "code query parameter is required", nil)
		return
	}

	promo, err := loadPromotionByCode(config.DB, code)
	if err != nil {
		utils.NotFound(c, "Invalid promotion code")
		return
	}

	order, err := buildPromotionOrder(config.DB, userID, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch cart items", nil)
		return
	}

	usage, err := userPromotionUsage(config.DB, promo.ID, userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to check promotion usage", nil)
		return
	}

	result := utils.EvaluatePromotion(promo, order, usage, nowFunc())
	utils.Success(c, "Promotion evaluated", result)
}

// RemovePromotion clears the user's active promotion
func RemovePromotion(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	if err := config.DB.Where("user_id = ?", userID).Delete(&models.UserActivePromotion{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to remove promotion", nil)
		return
	}

	utils.LogInfo("Cleared active promotion for user %d", userID)
	utils.Success(c, "Promotion removed successfully", nil)
}
