package controllers

import (
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RegistrationData is the pending registration kept in the session until
// the email OTP is verified. Registered with gob in main.
type RegistrationData struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	OTP       string
	ExpiresAt time.Time
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register validates the registration, emails an OTP and parks the
// pending registration in the session. The user row is only created
// after OTP verification.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Username = utils.SanitizeString(req.Username)
	if err := utils.ValidateUsername(req.Username); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration for existing email/username: %s", req.Email)
		utils.BadRequest(c, "Email or username already registered", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to process registration", nil)
		return
	}

	otp := utils.GenerateOTP()
	if err := utils.SendOTP(req.Email, otp); err != nil {
		utils.LogError("Failed to send OTP to %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send verification email", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("registration", RegistrationData{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		OTP:       otp,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save registration session: %v", err)
		utils.InternalServerError(c, "Failed to process registration", nil)
		return
	}

	utils.LogInfo("Registration OTP sent to %s", req.Email)
	utils.Success(c, "Verification code sent to your email", gin.H{
		"email": req.Email,
	})
}

// VerifyOTPRequest represents the OTP verification request body
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyRegistrationOTP completes a pending registration
func VerifyRegistrationOTP(c *gin.Context) {
	utils.LogInfo("VerifyRegistrationOTP called")

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	session := sessions.Default(c)
	raw := session.Get("registration")
	pending, ok := raw.(RegistrationData)
	if !ok {
		utils.LogError("No pending registration in session for %s", req.Email)
		utils.BadRequest(c, "No pending registration found", nil)
		return
	}

	if pending.Email != req.Email {
		utils.BadRequest(c, "Email does not match pending registration", nil)
		return
	}
	if time.Now().After(pending.ExpiresAt) {
		utils.BadRequest(c, "Verification code has expired", nil)
		return
	}
	if pending.OTP != req.OTP {
		utils.LogError("Wrong OTP for %s", req.Email)
		utils.BadRequest(c, "Invalid verification code", nil)
		return
	}

	user := models.User{
		Username:   pending.Username,
		Email:      pending.Email,
		Password:   pending.Password,
		FirstName:  pending.FirstName,
		LastName:   pending.LastName,
		Phone:      pending.Phone,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	session.Delete("registration")
	_ = session.Save()

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for new user: %v", err)
		utils.InternalServerError(c, "Account created, please login", nil)
		return
	}

	utils.LogInfo("User %d registered and verified", user.ID)
	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
