package controllers

import (
	"strconv"
	"strings"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest represents the create/update product request body
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	SupplierID  uint            `json:"supplier_id" binding:"required"`
	ImageURL    string          `json:"image_url"`
	IsFeatured  bool            `json:"is_featured"`

	// Initial inventory configuration, used only on create.
	InitialStock  int `json:"initial_stock"`
	MinStockLevel int `json:"min_stock_level"`
	ReorderPoint  int `json:"reorder_point"`
	MaxStockLevel int `json:"max_stock_level"`
}

// CreateProduct creates a product together with its inventory record,
// so every product has exactly one stock position from the start.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Price.LessThanOrEqual(decimal.Zero) {
		utils.BadRequest(c, "Price must be greater than zero", nil)
		return
	}
	if req.InitialStock < 0 {
		utils.BadRequest(c, "Initial stock must not be negative", nil)
		return
	}
	if err := utils.ValidateStockLevels(req.MinStockLevel, req.ReorderPoint, req.MaxStockLevel); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}
	var supplier models.Supplier
	if err := config.DB.First(&supplier, req.SupplierID).Error; err != nil {
		utils.NotFound(c, "Supplier not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	product := models.Product{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		SKU:         strings.ToUpper(strings.TrimSpace(req.SKU)),
		Price:       utils.RoundMoney(req.Price),
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		IsFeatured:  req.IsFeatured,
	}
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	inventory := models.Inventory{
		ProductID:     product.ID,
		CurrentStock:  0,
		MinStockLevel: req.MinStockLevel,
		ReorderPoint:  req.ReorderPoint,
		MaxStockLevel: req.MaxStockLevel,
	}
	if err := tx.Create(&inventory).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create inventory for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create inventory record", nil)
		return
	}

	if req.InitialStock > 0 {
		updated, movement, err := utils.AdjustStock(inventory, utils.StockAdjustment{
			Kind:     utils.StockAdjustAdd,
			Quantity: req.InitialStock,
			Reason:   models.StockReasonPurchase,
			Notes:    "initial stock",
		}, nowFunc())
		if err != nil {
			tx.Rollback()
			utils.BadRequest(c, "Invalid initial stock", err.Error())
			return
		}
		if err := tx.Model(&models.Inventory{}).Where("id = ?", inventory.ID).
			Update("current_stock", updated.CurrentStock).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to set initial stock", nil)
			return
		}
		if err := tx.Create(&movement).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to record stock movement", nil)
			return
		}
		inventory = updated
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Created product %d (%s) with stock %d", product.ID, product.SKU, inventory.CurrentStock)
	utils.Created(c, "Product created successfully", gin.H{
		"product": product,
		"inventory": gin.H{
			"current_stock": inventory.CurrentStock,
			"status":        utils.DeriveStockStatus(inventory.CurrentStock, inventory.ReorderPoint),
		},
	})
}

// UpdateProduct updates product fields. Stock is never edited here; it
// only moves through the inventory adjustment endpoints.
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		utils.BadRequest(c, "Price must be greater than zero", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	product.Name = utils.SanitizeString(req.Name)
	product.Description = utils.SanitizeString(req.Description)
	product.Price = utils.RoundMoney(req.Price)
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID
	product.ImageURL = req.ImageURL
	product.IsFeatured = req.IsFeatured

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// GetProducts lists active products for the storefront with filtering,
// sorting and pagination. Stock status is derived per row.
func GetProducts(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).
		Where("is_active = ? AND blocked = ?", true, false).
		Preload("Category").Preload("Supplier")

	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if featured := c.Query("featured"); featured == "true" {
		query = query.Where("is_featured = ?", true)
	}

	sort := c.DefaultQuery("sort", "id desc")
	switch sort {
	case "price_asc":
		query = query.Order("price asc")
	case "price_desc":
		query = query.Order("price desc")
	case "name":
		query = query.Order("name asc")
	default:
		query = query.Order("id desc")
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, p := range products {
		items = append(items, gin.H{
			"product":      p,
			"stock_status": productStockStatus(p.ID),
		})
	}

	utils.SuccessWithPagination(c, "Products fetched successfully", items, total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns one product with reviews and derived stock
// status
func GetProductDetails(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").Preload("Supplier").
		Preload("Reviews", "is_approved = ?", true).
		Preload("Reviews.User").
		First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	config.DB.Model(&product).UpdateColumn("views", product.Views+1)

	utils.Success(c, "Product fetched successfully", gin.H{
		"product":      product,
		"stock_status": productStockStatus(product.ID),
	})
}

// BlockProduct blocks/unlists a product
func BlockProduct(c *gin.Context) {
	setProductBlocked(c, true, "Product blocked/unlisted")
}

// UnblockProduct unblocks a product
func UnblockProduct(c *gin.Context) {
	setProductBlocked(c, false, "Product unblocked/listed")
}

func setProductBlocked(c *gin.Context, blocked bool, message string) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}
	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	product.Blocked = blocked
	config.DB.Save(&product)
	utils.Success(c, message, gin.H{"product": product})
}

// productStockStatus derives the status from the product's inventory
// record. Missing inventory reads as out of stock rather than an error.
func productStockStatus(productID uint) string {
	var inventory models.Inventory
	if err := config.DB.Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		return models.StockStatusOutOfStock
	}
	return utils.DeriveStockStatus(inventory.CurrentStock, inventory.ReorderPoint)
}
