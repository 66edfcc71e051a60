package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminListUsers lists registered users for the back office
func AdminListUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + utils.SanitizeString(search) + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if blocked := c.Query("blocked"); blocked == "true" {
		query = query.Where("is_blocked = ?", true)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, gin.H{
			"id":            u.ID,
			"username":      u.Username,
			"email":         u.Email,
			"is_blocked":    u.IsBlocked,
			"is_verified":   u.IsVerified,
			"last_login_at": u.LastLoginAt,
			"created_at":    u.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Users fetched successfully", items, total, pagination.Page, pagination.Limit)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	message := "User unblocked successfully"
	if blocked {
		message = "User blocked successfully"
		utils.LogInfo("User %d blocked", user.ID)
	} else {
		utils.LogInfo("User %d unblocked", user.ID)
	}
	utils.Success(c, message, gin.H{"user_id": user.ID, "is_blocked": blocked})
}

// BlockUser blocks a user; blocked users cannot log in
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser lifts a user's block
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}
