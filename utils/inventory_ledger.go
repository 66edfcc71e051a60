package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
)

// Stock adjustment kinds.
const (
	StockAdjustAdd    = "add"
	StockAdjustRemove = "remove"
	StockAdjustSet    = "set"
)

// Ledger validation failures. Returned as values; when any of these comes
// back the record was not touched and no audit entry was produced.
var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrMissingReason     = errors.New("reason is required")
	ErrInvalidAdjustment = errors.New("unknown adjustment kind")
	ErrConflict          = errors.New("record was modified concurrently")
)

// StockAdjustment describes one requested stock mutation.
type StockAdjustment struct {
	Kind      string `json:"kind"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// AdjustStock validates adj against rec and, on success, returns the
// updated record together with the single audit entry to append. The
// input record is taken by value so a failed adjustment cannot leave a
// partial write behind.
func AdjustStock(rec models.Inventory, adj StockAdjustment, now time.Time) (models.Inventory, models.StockMovement, error) {
	if strings.TrimSpace(adj.Reason) == "" {
		return rec, models.StockMovement{}, ErrMissingReason
	}

	var newStock int
	switch adj.Kind {
	case StockAdjustAdd:
		if adj.Quantity <= 0 {
			return rec, models.StockMovement{}, ErrInvalidQuantity
		}
		newStock = rec.CurrentStock + adj.Quantity
	case StockAdjustRemove:
		if adj.Quantity <= 0 {
			return rec, models.StockMovement{}, ErrInvalidQuantity
		}
		if rec.CurrentStock-adj.Quantity < 0 {
			return rec, models.StockMovement{}, ErrInsufficientStock
		}
		newStock = rec.CurrentStock - adj.Quantity
	case StockAdjustSet:
		if adj.Quantity < 0 {
			return rec, models.StockMovement{}, ErrInvalidQuantity
		}
		newStock = adj.Quantity
	default:
		return rec, models.StockMovement{}, ErrInvalidAdjustment
	}

	movement := models.StockMovement{
		InventoryID:    rec.ID,
		ProductID:      rec.ProductID,
		Delta:          newStock - rec.CurrentStock,
		Reason:         adj.Reason,
		Reference:      adj.Reference,
		Notes:          adj.Notes,
		ResultingStock: newStock,
		CreatedAt:      now,
	}
	rec.CurrentStock = newStock
	return rec, movement, nil
}

// DeriveStockStatus computes the stock status from the current stock and
// the reorder point. Depends on nothing else, so two records with the
// same values always get the same status regardless of history.
func DeriveStockStatus(currentStock, reorderPoint int) string {
	switch {
	case currentStock <= 0:
		return models.StockStatusOutOfStock
	case currentStock <= reorderPoint:
		return models.StockStatusLowStock
	default:
		return models.StockStatusInStock
	}
}

// ValidateStockLevels enforces 0 <= min <= reorderPoint <= max.
func ValidateStockLevels(minLevel, reorderPoint, maxLevel int) error {
	if minLevel < 0 {
		return fmt.Errorf("min stock level must not be negative")
	}
	if reorderPoint < minLevel {
		return fmt.Errorf("reorder point must not be below min stock level")
	}
	if maxLevel < reorderPoint {
		return fmt.Errorf("max stock level must not be below reorder point")
	}
	return nil
}
