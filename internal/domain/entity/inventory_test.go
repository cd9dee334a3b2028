package entity

import (
	"testing"

	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidScale(t *testing.T) {
	assert.True(t, ValidScale(decimal.RequireFromString("12")))
	assert.True(t, ValidScale(decimal.RequireFromString("0.0001")))
	assert.True(t, ValidScale(decimal.RequireFromString("3.1400000")))
	assert.False(t, ValidScale(decimal.RequireFromString("0.00005")))
}

func TestInventoryApply_MirrorsStockGuards(t *testing.T) {
	inv := &Inventory{AvailableQty: decimal.NewFromInt(10)}

	assert.ErrorIs(t, inv.Apply(StockReserve, decimal.NewFromInt(11)), domain.ErrInsufficientStock)
	assert.ErrorIs(t, inv.Apply(StockRelease, decimal.NewFromInt(1)), domain.ErrInsufficientReservation)
	assert.ErrorIs(t, inv.Apply(StockReserve, decimal.RequireFromString("0.00001")), domain.ErrInvalidInput)
	assert.True(t, inv.AvailableQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, inv.ReservedQty.IsZero())

	assert.NoError(t, inv.Apply(StockReserve, decimal.NewFromInt(4)))
	assert.NoError(t, inv.Apply(StockRelease, decimal.NewFromInt(4)))
	assert.True(t, inv.AvailableQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, inv.ReservedQty.IsZero())
}
