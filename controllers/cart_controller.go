package controllers

import (
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddToCartRequest represents the add-to-cart request body
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart adds a product to the user's cart, capped by available stock
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if product.Blocked || !product.IsActive {
		utils.BadRequest(c, "Product is not available", nil)
		return
	}

	var inventory models.Inventory
	if err := config.DB.Where("product_id = ?", req.ProductID).First(&inventory).Error; err != nil {
		utils.BadRequest(c, "Product is out of stock", nil)
		return
	}

	var cartItem models.Cart
	requested := req.Quantity
	if err := config.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&cartItem).Error; err == nil {
		requested += cartItem.Quantity
	}
	if requested > inventory.CurrentStock {
		utils.BadRequest(c, "Not enough stock available", gin.H{
			"available": inventory.CurrentStock,
		})
		return
	}

	if cartItem.ID != 0 {
		cartItem.Quantity = requested
		if err := config.DB.Save(&cartItem).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
	} else {
		cartItem = models.Cart{UserID: userID, ProductID: req.ProductID, Quantity: req.Quantity}
		if err := config.DB.Create(&cartItem).Error; err != nil {
			utils.InternalServerError(c, "Failed to add to cart", nil)
			return
		}
	}

	utils.LogInfo("User %d cart updated: product %d x%d", userID, req.ProductID, cartItem.Quantity)
	utils.Success(c, "Product added to cart", gin.H{"item": cartItem})
}

// UpdateCartItem changes the quantity of a cart line
func UpdateCartItem(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var cartItem models.Cart
	if err := config.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&cartItem).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	var inventory models.Inventory
	if err := config.DB.Where("product_id = ?", cartItem.ProductID).First(&inventory).Error; err == nil {
		if req.Quantity > inventory.CurrentStock {
			utils.BadRequest(c, "Not enough stock available", gin.H{
				"available": inventory.CurrentStock,
			})
			return
		}
	}

	cartItem.Quantity = req.Quantity
	if err := config.DB.Save(&cartItem).Error; err != nil {
		utils.InternalServerError(c, "Failed to update cart item", nil)
		return
	}

	utils.Success(c, "Cart item updated", gin.H{"item": cartItem})
}

// RemoveCartItem deletes a cart line
func RemoveCartItem(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	if err := config.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.Cart{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to remove cart item", nil)
		return
	}

	utils.Success(c, "Cart item removed", nil)
}

// GetCart lists the user's cart with line totals and the subtotal
func GetCart(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var cartItems []models.Cart
	if err := config.DB.Where("user_id = ?", userID).Preload("Product").Preload("Product.Category").Find(&cartItems).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	subtotal := decimal.Zero
	items := make([]gin.H, 0, len(cartItems))
	for _, item := range cartItems {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, gin.H{
			"id":         item.ID,
			"product_id": item.ProductID,
			"name":       item.Product.Name,
			"category":   item.Product.Category.Name,
			"quantity":   item.Quantity,
			"unit_price": utils.MoneyString(item.Product.Price),
			"total":      utils.MoneyString(lineTotal),
		})
	}

	utils.Success(c, "Cart fetched successfully", gin.H{
		"items":    items,
		"subtotal": utils.MoneyString(utils.RoundMoney(subtotal)),
	})
}
