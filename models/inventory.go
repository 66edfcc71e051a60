package models

import (
	"time"

	"gorm.io/gorm"
)

// Stock status values derived from current stock vs the reorder point.
// Never persisted as ground truth; recomputed on every read.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Stock movement reason codes. The ledger itself only requires a
// non-empty reason; these are the values the admin UI offers.
const (
	StockReasonPurchase   = "purchase"
	StockReasonOrder      = "order"
	StockReasonReturn     = "return"
	StockReasonDamaged    = "damaged"
	StockReasonCorrection = "correction"
	StockReasonStocktake  = "stocktake"
)

// Inventory holds the stock position for a single product.
// Thresholds satisfy 0 <= min_stock_level <= reorder_point <= max_stock_level.
type Inventory struct {
	gorm.Model
	ProductID     uint    `gorm:"uniqueIndex" json:"product_id"`
	Product       Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CurrentStock  int     `json:"current_stock"`
	MinStockLevel int     `json:"min_stock_level"`
	ReorderPoint  int     `json:"reorder_point"`
	MaxStockLevel int     `json:"max_stock_level"`
}

// StockMovement is one entry in the append-only stock audit trail.
// Rows are only ever inserted, never updated or deleted.
type StockMovement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InventoryID    uint      `gorm:"index" json:"inventory_id"`
	ProductID      uint      `gorm:"index" json:"product_id"`
	Delta          int       `json:"delta"`
	Reason         string    `json:"reason"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	ResultingStock int       `json:"resulting_stock"`
	CreatedAt      time.Time `json:"created_at"`
}
