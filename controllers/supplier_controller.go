package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// SupplierRequest represents the create/update supplier request body
type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// CreateSupplier creates a new supplier
func CreateSupplier(c *gin.Context) {
	utils.LogInfo("CreateSupplier called")

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
	}

	supplier := models.Supplier{
		Name:          utils.SanitizeString(req.Name),
		ContactPerson: utils.SanitizeString(req.ContactPerson),
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       utils.SanitizeString(req.Address),
		IsActive:      true,
	}
	if err := config.DB.Create(&supplier).Error; err != nil {
		utils.LogError("Failed to create supplier: %v", err)
		utils.InternalServerError(c, "Failed to create supplier", nil)
		return
	}

	utils.LogInfo("Created supplier %d: %s", supplier.ID, supplier.Name)
	utils.Created(c, "Supplier created successfully", gin.H{"supplier": supplier})
}

// GetSuppliers lists suppliers with pagination
func GetSuppliers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Supplier{})
	if active := c.Query("active"); active == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	query.Count(&total)

	var suppliers []models.Supplier
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&suppliers).Error; err != nil {
		utils.LogError("Failed to fetch suppliers: %v", err)
		utils.InternalServerError(c, "Failed to fetch suppliers", nil)
		return
	}

	utils.SuccessWithPagination(c, "Suppliers fetched successfully", suppliers, total, pagination.Page, pagination.Limit)
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c *gin.Context) {
	utils.LogInfo("UpdateSupplier called")

	supplierID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid supplier ID", nil)
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var supplier models.Supplier
	if err := config.DB.First(&supplier, supplierID).Error; err != nil {
		utils.NotFound(c, "Supplier not found")
		return
	}

	supplier.Name = utils.SanitizeString(req.Name)
	supplier.ContactPerson = utils.SanitizeString(req.ContactPerson)
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = utils.SanitizeString(req.Address)

	if err := config.DB.Save(&supplier).Error; err != nil {
		utils.LogError("Failed to update supplier %d: %v", supplierID, err)
		utils.InternalServerError(c, "Failed to update supplier", nil)
		return
	}

	utils.Success(c, "Supplier updated successfully", gin.H{"supplier": supplier})
}

// DeactivateSupplier marks a supplier inactive. Products keep their
// reference so purchase history stays intact.
func DeactivateSupplier(c *gin.Context) {
	supplierID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid supplier ID", nil)
		return
	}

	var supplier models.Supplier
	if err := config.DB.First(&supplier, supplierID).Error; err != nil {
		utils.NotFound(c, "Supplier not found")
		return
	}

	supplier.IsActive = false
	config.DB.Save(&supplier)
	utils.Success(c, "Supplier deactivated", gin.H{"supplier": supplier})
}
