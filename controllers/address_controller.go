package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// AddressRequest represents the create/update address request body
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

// AddAddress creates a new address for the user
func AddAddress(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if req.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
	}

	address := models.Address{
		UserID:     userID,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Created(c, "Address added successfully", gin.H{"address": address})
}

// GetAddresses lists the user's addresses
func GetAddresses(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", userID).Order("is_default desc, id").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}

	utils.Success(c, "Addresses fetched successfully", gin.H{"addresses": addresses})
}

// UpdateAddress edits one of the user's addresses
func UpdateAddress(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if req.IsDefault && !address.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
	}

	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.Country = req.Country
	address.PostalCode = req.PostalCode
	address.IsDefault = req.IsDefault
	if err := tx.Save(&address).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Success(c, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress removes one of the user's addresses
func DeleteAddress(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	if err := config.DB.Delete(&address).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}
