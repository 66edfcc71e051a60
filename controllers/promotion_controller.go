package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromotionRequest represents the create/update promotion request body
type PromotionRequest struct {
	Code                 string               `json:"code" binding:"required"`
	Type                 models.PromotionType `json:"type" binding:"required,oneof=percentage fixed_amount free_shipping"`
	DiscountValue        decimal.Decimal      `json:"discount_value"`
	MaxDiscountAmount    *decimal.Decimal     `json:"max_discount_amount"`
	MinimumOrderValue    decimal.Decimal      `json:"minimum_order_value"`
	MaxUsageCount        *int                 `json:"max_usage_count"`
	MaxUsagePerUser      int                  `json:"max_usage_per_user"`
	StartDate            time.Time            `json:"start_date" binding:"required"`
	EndDate              time.Time            `json:"end_date" binding:"required"`
	IsActive             bool                 `json:"is_active"`
	IsApplicableToAll    bool                 `json:"is_applicable_to_all"`
	ApplicableProducts   []uint               `json:"applicable_products"`
	ApplicableCategories []string             `json:"applicable_categories"`
}

func (r *PromotionRequest) validate() error {
	if r.Type != models.PromotionTypeFreeShipping {
		if err := utils.ValidatePromotionValue(r.Type, r.DiscountValue); err != nil {
			return err
		}
	}
	if err := utils.ValidatePromotionWindow(r.StartDate, r.EndDate); err != nil {
		return err
	}
	if r.MinimumOrderValue.IsNegative() {
		return utils.BadRequestError("minimum order value must not be negative", nil)
	}
	if r.MaxUsageCount != nil && *r.MaxUsageCount <= 0 {
		return utils.BadRequestError("max usage count must be greater than zero", nil)
	}
	if r.MaxUsagePerUser <= 0 {
		r.MaxUsagePerUser = 1
	}
	if !r.IsApplicableToAll && len(r.ApplicableProducts) == 0 && len(r.ApplicableCategories) == 0 {
		return utils.BadRequestError("a scoped promotion needs at least one product or category", nil)
	}
	return nil
}

// CreatePromotion creates a new promotion
func CreatePromotion(c *gin.Context) {
	utils.LogInfo("CreatePromotion called")

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var existing models.Promotion
	if err := tx.Where("LOWER(code) = LOWER(?)", req.Code).First(&existing).Error; err == nil {
		tx.Rollback()
		utils.BadRequest(c, "Promotion code already exists", nil)
		return
	}

	promo := models.Promotion{
		Code:              req.Code,
		Type:              req.Type,
		DiscountValue:     req.DiscountValue,
		MinimumOrderValue: req.MinimumOrderValue,
		MaxUsageCount:     req.MaxUsageCount,
		MaxUsagePerUser:   req.MaxUsagePerUser,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          req.IsActive,
		IsApplicableToAll: req.IsApplicableToAll,
	}
	if req.MaxDiscountAmount != nil {
		promo.MaxDiscountAmount = decimal.NewNullDecimal(*req.MaxDiscountAmount)
	}

	if err := tx.Create(&promo).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create promotion: %v", err)
		utils.InternalServerError(c, "Failed to create promotion", err.Error())
		return
	}

	if err := replacePromotionScope(tx, &promo, req.ApplicableProducts, req.ApplicableCategories); err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to save promotion scope", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Created promotion %d (%s)", promo.ID, promo.Code)
	utils.Created(c, "Promotion created successfully", gin.H{"promotion": promo})
}

// UpdatePromotion edits an existing promotion. The usage counter is
// never writable from here; it only moves through redemption.
func UpdatePromotion(c *gin.Context) {
	utils.LogInfo("UpdatePromotion called")

	promoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var promo models.Promotion
	if err := tx.First(&promo, promoID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Promotion not found")
		return
	}

	promo.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	promo.Type = req.Type
	promo.DiscountValue = req.DiscountValue
	promo.MinimumOrderValue = req.MinimumOrderValue
	promo.MaxUsageCount = req.MaxUsageCount
	promo.MaxUsagePerUser = req.MaxUsagePerUser
	promo.StartDate = req.StartDate
	promo.EndDate = req.EndDate
	promo.IsActive = req.IsActive
	promo.IsApplicableToAll = req.IsApplicableToAll
	if req.MaxDiscountAmount != nil {
		promo.MaxDiscountAmount = decimal.NewNullDecimal(*req.MaxDiscountAmount)
	} else {
		promo.MaxDiscountAmount = decimal.NullDecimal{}
	}

	if err := tx.Save(&promo).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update promotion %d: %v", promoID, err)
		utils.InternalServerError(c, "Failed to update promotion", nil)
		return
	}

	if err := replacePromotionScope(tx, &promo, req.ApplicableProducts, req.ApplicableCategories); err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to save promotion scope", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Success(c, "Promotion updated successfully", gin.H{"promotion": promo})
}

// DeletePromotion soft deletes a promotion. Historical orders keep the
// code they were placed with; the row stays behind the deleted_at flag.
func DeletePromotion(c *gin.Context) {
	promoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var promo models.Promotion
	if err := config.DB.First(&promo, promoID).Error; err != nil {
		utils.NotFound(c, "Promotion not found")
		return
	}

	if err := config.DB.Delete(&promo).Error; err != nil {
		utils.LogError("Failed to delete promotion %d: %v", promoID, err)
		utils.InternalServerError(c, "Failed to delete promotion", nil)
		return
	}

	utils.Success(c, "Promotion deleted successfully", nil)
}

// GetPromotions lists promotions for the back office
func GetPromotions(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Promotion{})
	if active := c.Query("active"); active == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	query.Count(&total)

	var promos []models.Promotion
	if err := query.Preload("ApplicableProducts").Preload("ApplicableCategories").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&promos).Error; err != nil {
		utils.LogError("Failed to fetch promotions: %v", err)
		utils.InternalServerError(c, "Failed to fetch promotions", nil)
		return
	}

	now := nowFunc()
	items := make([]gin.H, 0, len(promos))
	for _, p := range promos {
		items = append(items, gin.H{
			"promotion":  p,
			"is_expired": now.After(p.EndDate),
		})
	}

	utils.SuccessWithPagination(c, "Promotions fetched successfully", items, total, pagination.Page, pagination.Limit)
}

func replacePromotionScope(tx *gorm.DB, promo *models.Promotion, productIDs []uint, categories []string) error {
	if err := tx.Where("promotion_id = ?", promo.ID).Delete(&models.PromotionProduct{}).Error; err != nil {
		return err
	}
	if err := tx.Where("promotion_id = ?", promo.ID).Delete(&models.PromotionCategory{}).Error; err != nil {
		return err
	}
	if promo.IsApplicableToAll {
		return nil
	}
	for _, id := range productIDs {
		if err := tx.Create(&models.PromotionProduct{PromotionID: promo.ID, ProductID: id}).Error; err != nil {
			return err
		}
	}
	for _, name := range categories {
		if err := tx.Create(&models.PromotionCategory{PromotionID: promo.ID, CategoryName: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
