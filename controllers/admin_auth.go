package controllers

import (
	"os"
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminLoginRequest represents the admin login request body
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an administrator and returns a JWT
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid admin login request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin attempted login: %s", req.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to generate admin token: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&admin).Update("last_login", time.Now())

	utils.LogInfo("Admin %d logged in", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":         admin.ID,
			"email":      admin.Email,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
		},
	})
}

// AdminLogout ends the admin session. Token invalidation is client-side;
// the endpoint exists so the frontend has a consistent logout call.
func AdminLogout(c *gin.Context) {
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin seeds an initial administrator when none exists
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" {
		email = "admin@shopsphere.local"
	}
	if password == "" {
		password = "Admin@123"
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  hashed,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Seeded initial admin account: %s", email)
	return nil
}
