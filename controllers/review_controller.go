package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// ReviewRequest represents the create review request body
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview adds a review for a product. Reviews await admin approval
// before they show on the product page.
func CreateReview(c *gin.Context) {
	utils.LogInfo("CreateReview called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Review
	if err := config.DB.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "You have already reviewed this product", nil)
		return
	}

	review := models.Review{
		ProductID: uint(productID),
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   utils.SanitizeString(req.Comment),
	}
	if err := config.DB.Create(&review).Error; err != nil {
		utils.LogError("Failed to create review: %v", err)
		utils.InternalServerError(c, "Failed to create review", nil)
		return
	}

	utils.LogInfo("User %d reviewed product %d", userID, productID)
	utils.Created(c, "Review submitted for approval", gin.H{"review": review})
}

// ApproveReview marks a review approved and refreshes the product's
// aggregate rating.
func ApproveReview(c *gin.Context) {
	utils.LogInfo("ApproveReview called")

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID", nil)
		return
	}

	var review models.Review
	if err := config.DB.First(&review, reviewID).Error; err != nil {
		utils.NotFound(c, "Review not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	review.IsApproved = true
	if err := tx.Save(&review).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to approve review", nil)
		return
	}

	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ? AND is_approved = ?", review.ProductID, true).
		Scan(&stats).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to recompute rating", nil)
		return
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", review.ProductID).
		Updates(map[string]interface{}{
			"average_rating": stats.Avg,
			"total_reviews":  stats.Count,
		}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update product rating", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Success(c, "Review approved", gin.H{"review": review})
}

// DeleteReview removes a review
func DeleteReview(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID", nil)
		return
	}

	var review models.Review
	if err := config.DB.First(&review, reviewID).Error; err != nil {
		utils.NotFound(c, "Review not found")
		return
	}

	if err := config.DB.Delete(&review).Error; err != nil {
		utils.LogError("Failed to delete review %d: %v", reviewID, err)
		utils.InternalServerError(c, "Failed to delete review", nil)
		return
	}

	utils.Success(c, "Review deleted", nil)
}
