package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryMovementRepository define el puerto de persistencia del diario del ledger.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// ConsumptionByMaterial suma los consumos (OUT) desde `since`, agrupados por material.
	ConsumptionByMaterial(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}
