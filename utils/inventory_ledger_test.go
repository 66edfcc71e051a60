package utils

import (
	"testing"
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func stockRecord(current int) models.Inventory {
	return models.Inventory{
		ProductID:     42,
		CurrentStock:  current,
		MinStockLevel: 2,
		ReorderPoint:  5,
		MaxStockLevel: 100,
	}
}

func TestAdjustStockAdd(t *testing.T) {
	rec := stockRecord(10)
	updated, movement, err := AdjustStock(rec, StockAdjustment{
		Kind:     StockAdjustAdd,
		Quantity: 5,
		Reason:   models.StockReasonPurchase,
	}, ledgerNow)

	require.NoError(t, err)
	assert.Equal(t, 15, updated.CurrentStock)
	assert.Equal(t, 5, movement.Delta)
	assert.Equal(t, 15, movement.ResultingStock)
	assert.Equal(t, models.StockReasonPurchase, movement.Reason)
	assert.Equal(t, ledgerNow, movement.CreatedAt)
}

func TestAdjustStockRemove(t *testing.T) {
	rec := stockRecord(10)
	updated, movement, err := AdjustStock(rec, StockAdjustment{
		Kind:      StockAdjustRemove,
		Quantity:  4,
		Reason:    models.StockReasonOrder,
		Reference: "order-17",
	}, ledgerNow)

	require.NoError(t, err)
	assert.Equal(t, 6, updated.CurrentStock)
	assert.Equal(t, -4, movement.Delta)
	assert.Equal(t, 6, movement.ResultingStock)
	assert.Equal(t, "order-17", movement.Reference)
}

func TestAdjustStockSet(t *testing.T) {
	rec := stockRecord(10)
	updated, movement, err := AdjustStock(rec, StockAdjustment{
		Kind:     StockAdjustSet,
		Quantity: 3,
		Reason:   models.StockReasonStocktake,
	}, ledgerNow)

	require.NoError(t, err)
	assert.Equal(t, 3, updated.CurrentStock)
	assert.Equal(t, -7, movement.Delta)
	assert.Equal(t, 3, movement.ResultingStock)
}

func TestAdjustStockSetToZero(t *testing.T) {
	rec := stockRecord(10)
	updated, _, err := AdjustStock(rec, StockAdjustment{
		Kind:     StockAdjustSet,
		Quantity: 0,
		Reason:   models.StockReasonCorrection,
	}, ledgerNow)

	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)
}

func TestAdjustStockRejections(t *testing.T) {
	tests := []struct {
		name string
		adj  StockAdjustment
		want error
	}{
		{
			name: "remove below zero",
			adj:  StockAdjustment{Kind: StockAdjustRemove, Quantity: 11, Reason: models.StockReasonOrder},
			want: ErrInsufficientStock,
		},
		{
			name: "add zero quantity",
			adj:  StockAdjustment{Kind: StockAdjustAdd, Quantity: 0, Reason: models.StockReasonPurchase},
			want: ErrInvalidQuantity,
		},
		{
			name: "add negative quantity",
			adj:  StockAdjustment{Kind: StockAdjustAdd, Quantity: -3, Reason: models.StockReasonPurchase},
			want: ErrInvalidQuantity,
		},
		{
			name: "remove zero quantity",
			adj:  StockAdjustment{Kind: StockAdjustRemove, Quantity: 0, Reason: models.StockReasonOrder},
			want: ErrInvalidQuantity,
		},
		{
			name: "set negative",
			adj:  StockAdjustment{Kind: StockAdjustSet, Quantity: -1, Reason: models.StockReasonCorrection},
			want: ErrInvalidQuantity,
		},
		{
			name: "missing reason",
			adj:  StockAdjustment{Kind: StockAdjustAdd, Quantity: 5, Reason: "   "},
			want: ErrMissingReason,
		},
		{
			name: "unknown kind",
			adj:  StockAdjustment{Kind: "increment", Quantity: 5, Reason: models.StockReasonPurchase},
			want: ErrInvalidAdjustment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := stockRecord(10)
			updated, movement, err := AdjustStock(rec, tt.adj, ledgerNow)

			require.ErrorIs(t, err, tt.want)
			// A failed adjustment leaves the record untouched and
			// produces no audit entry.
			assert.Equal(t, 10, updated.CurrentStock)
			assert.Equal(t, models.StockMovement{}, movement)
		})
	}
}

func TestAdjustStockRemoveAllIsAllowed(t *testing.T) {
	rec := stockRecord(10)
	updated, _, err := AdjustStock(rec, StockAdjustment{
		Kind:     StockAdjustRemove,
		Quantity: 10,
		Reason:   models.StockReasonOrder,
	}, ledgerNow)

	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)
}

func TestDeriveStockStatus(t *testing.T) {
	tests := []struct {
		stock        int
		reorderPoint int
		want         string
	}{
		{0, 5, models.StockStatusOutOfStock},
		{1, 5, models.StockStatusLowStock},
		{5, 5, models.StockStatusLowStock},
		{6, 5, models.StockStatusInStock},
		{100, 5, models.StockStatusInStock},
		{0, 0, models.StockStatusOutOfStock},
		{1, 0, models.StockStatusInStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveStockStatus(tt.stock, tt.reorderPoint),
			"stock=%d reorder=%d", tt.stock, tt.reorderPoint)
	}
}

func TestValidateStockLevels(t *testing.T) {
	assert.NoError(t, ValidateStockLevels(0, 0, 0))
	assert.NoError(t, ValidateStockLevels(2, 5, 100))
	assert.Error(t, ValidateStockLevels(-1, 5, 100))
	assert.Error(t, ValidateStockLevels(10, 5, 100))
	assert.Error(t, ValidateStockLevels(2, 5, 4))
}
