package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. Stock is tracked in the
// Inventory record, one per product, never on the product row itself.
type Product struct {
	gorm.Model
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku" gorm:"uniqueIndex"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	CategoryID    uint            `json:"category_id"`
	Category      Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SupplierID    uint            `json:"supplier_id"`
	Supplier      Supplier        `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	IsFeatured    bool            `json:"is_featured" gorm:"default:false"`
	Blocked       bool            `json:"blocked" gorm:"default:false"`
	Views         int             `json:"views" gorm:"default:0"`
	AverageRating float64         `json:"average_rating" gorm:"default:0"`
	TotalReviews  int             `json:"total_reviews" gorm:"default:0"`
	Reviews       []Review        `json:"reviews,omitempty"`
}
