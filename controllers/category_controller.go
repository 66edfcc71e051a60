package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a new category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	req.Name = utils.SanitizeString(req.Name)

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", req.Name).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Category already exists", nil)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.LogInfo("Created category %d: %s", category.ID, category.Name)
	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// GetCategories lists categories with pagination
func GetCategories(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var categories []models.Category
	var total int64
	config.DB.Model(&models.Category{}).Count(&total)
	if err := config.DB.Offset(pagination.Offset).Limit(pagination.Limit).Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	utils.SuccessWithPagination(c, "Categories fetched successfully", categories, total, pagination.Page, pagination.Limit)
}

// UpdateCategory updates an existing category
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Name = utils.SanitizeString(req.Name)
	category.Description = utils.SanitizeString(req.Description)
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", categoryID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory soft deletes a category without products
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	config.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&productCount)
	if productCount > 0 {
		utils.BadRequest(c, "Cannot delete a category that still has products", nil)
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category %d: %v", categoryID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}

// BlockCategory blocks/unlists a category
func BlockCategory(c *gin.Context) {
	setCategoryBlocked(c, true, "Category blocked/unlisted")
}

// UnblockCategory unblocks a category
func UnblockCategory(c *gin.Context) {
	setCategoryBlocked(c, false, "Category unblocked/listed")
}

func setCategoryBlocked(c *gin.Context, blocked bool, message string) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}
	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}
	category.Blocked = blocked
	config.DB.Save(&category)
	utils.Success(c, message, gin.H{"category": category})
}
