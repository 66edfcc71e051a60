package controllers

import (
	"errors"
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// InitializeInventoryRequest represents the request body for creating an
// inventory record for a product that does not have one yet.
type InitializeInventoryRequest struct {
	ProductID     uint `json:"product_id" binding:"required"`
	MinStockLevel int  `json:"min_stock_level"`
	ReorderPoint  int  `json:"reorder_point"`
	MaxStockLevel int  `json:"max_stock_level"`
}

// InitializeInventory creates the inventory record for a product
func InitializeInventory(c *gin.Context) {
	utils.LogInfo("InitializeInventory called")

	var req InitializeInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateStockLevels(req.MinStockLevel, req.ReorderPoint, req.MaxStockLevel); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Inventory
	if err := config.DB.Where("product_id = ?", req.ProductID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Inventory record already exists for this product", nil)
		return
	}

	inventory := models.Inventory{
		ProductID:     req.ProductID,
		CurrentStock:  0,
		MinStockLevel: req.MinStockLevel,
		ReorderPoint:  req.ReorderPoint,
		MaxStockLevel: req.MaxStockLevel,
	}
	if err := config.DB.Create(&inventory).Error; err != nil {
		utils.LogError("Failed to create inventory for product %d: %v", req.ProductID, err)
		utils.InternalServerError(c, "Failed to create inventory record", nil)
		return
	}

	utils.LogInfo("Initialized inventory for product %d", req.ProductID)
	utils.Created(c, "Inventory initialized", gin.H{
		"inventory": inventory,
		"status":    utils.DeriveStockStatus(inventory.CurrentStock, inventory.ReorderPoint),
	})
}

// AdjustInventory applies one stock mutation through the ledger. The
// whole read-modify-write runs in a transaction holding the inventory
// row FOR UPDATE, so concurrent adjustments of the same product
// serialize instead of clobbering each other.
func AdjustInventory(c *gin.Context) {
	utils.LogInfo("AdjustInventory called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var adj utils.StockAdjustment
	if err := c.ShouldBindJSON(&adj); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var inventory models.Inventory
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&inventory).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Inventory record not found")
		return
	}

	updated, movement, err := utils.AdjustStock(inventory, adj, nowFunc())
	if err != nil {
		tx.Rollback()
		switch {
		case errors.Is(err, utils.ErrInsufficientStock):
			utils.LogError("Insufficient stock for product %d: have %d, remove %d", productID, inventory.CurrentStock, adj.Quantity)
			utils.BadRequest(c, "Insufficient stock", gin.H{
				"current_stock": inventory.CurrentStock,
				"requested":     adj.Quantity,
			})
		case errors.Is(err, utils.ErrInvalidQuantity):
			utils.BadRequest(c, "Invalid quantity", nil)
		case errors.Is(err, utils.ErrMissingReason):
			utils.BadRequest(c, "A reason is required for every stock adjustment", nil)
		default:
			utils.BadRequest(c, err.Error(), nil)
		}
		return
	}

	if err := tx.Model(&models.Inventory{}).Where("id = ?", inventory.ID).
		Update("current_stock", updated.CurrentStock).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update stock for product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to update stock", nil)
		return
	}
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to append stock movement for product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to record stock movement", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Adjusted stock for product %d: delta %d, now %d", productID, movement.Delta, updated.CurrentStock)
	utils.Success(c, "Stock adjusted successfully", gin.H{
		"product_id":    updated.ProductID,
		"current_stock": updated.CurrentStock,
		"status":        utils.DeriveStockStatus(updated.CurrentStock, updated.ReorderPoint),
		"movement":      movement,
	})
}

// UpdateStockLevelsRequest represents the threshold update request body
type UpdateStockLevelsRequest struct {
	MinStockLevel int `json:"min_stock_level"`
	ReorderPoint  int `json:"reorder_point"`
	MaxStockLevel int `json:"max_stock_level"`
}

// UpdateStockLevels changes the min/reorder/max thresholds
func UpdateStockLevels(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req UpdateStockLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateStockLevels(req.MinStockLevel, req.ReorderPoint, req.MaxStockLevel); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var inventory models.Inventory
	if err := config.DB.Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		utils.NotFound(c, "Inventory record not found")
		return
	}

	inventory.MinStockLevel = req.MinStockLevel
	inventory.ReorderPoint = req.ReorderPoint
	inventory.MaxStockLevel = req.MaxStockLevel
	if err := config.DB.Save(&inventory).Error; err != nil {
		utils.InternalServerError(c, "Failed to update stock levels", nil)
		return
	}

	utils.Success(c, "Stock levels updated", gin.H{
		"inventory": inventory,
		"status":    utils.DeriveStockStatus(inventory.CurrentStock, inventory.ReorderPoint),
	})
}

// ListInventory shows stock positions with derived status, optionally
// only the ones at or below the reorder point.
func ListInventory(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Inventory{}).Preload("Product")
	if c.Query("low_stock") == "true" {
		query = query.Where("current_stock <= reorder_point")
	}

	var total int64
	query.Count(&total)

	var records []models.Inventory
	if err := query.Order("product_id").Offset(pagination.Offset).Limit(pagination.Limit).Find(&records).Error; err != nil {
		utils.LogError("Failed to fetch inventory: %v", err)
		utils.InternalServerError(c, "Failed to fetch inventory", nil)
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, rec := range records {
		items = append(items, gin.H{
			"product_id":      rec.ProductID,
			"product_name":    rec.Product.Name,
			"sku":             rec.Product.SKU,
			"current_stock":   rec.CurrentStock,
			"min_stock_level": rec.MinStockLevel,
			"reorder_point":   rec.ReorderPoint,
			"max_stock_level": rec.MaxStockLevel,
			"status":          utils.DeriveStockStatus(rec.CurrentStock, rec.ReorderPoint),
		})
	}

	utils.SuccessWithPagination(c, "Inventory fetched successfully", items, total, pagination.Page, pagination.Limit)
}

// GetStockMovements lists the audit trail for one product, newest first
func GetStockMovements(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}
	pagination := utils.NewPagination(c)

	var inventory models.Inventory
	if err := config.DB.Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		utils.NotFound(c, "Inventory record not found")
		return
	}

	var total int64
	config.DB.Model(&models.StockMovement{}).Where("inventory_id = ?", inventory.ID).Count(&total)

	var movements []models.StockMovement
	if err := config.DB.Where("inventory_id = ?", inventory.ID).
		Order("created_at desc, id desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&movements).Error; err != nil {
		utils.LogError("Failed to fetch stock movements for product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to fetch stock movements", nil)
		return
	}

	utils.SuccessWithPagination(c, "Stock movements fetched successfully", movements, total, pagination.Page, pagination.Limit)
}
