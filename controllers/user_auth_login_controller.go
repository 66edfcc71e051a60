package controllers

import (
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login for unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	if !user.IsVerified {
		utils.Forbidden(c, "Please verify your email before logging in")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Invalid password for user: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}
