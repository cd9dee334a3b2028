package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento del diario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, inventory_id, material_id, type, quantity,
			available_before, available_after, reserved_before, reserved_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.InventoryID, movement.MaterialID, movement.Type, movement.Quantity,
		movement.AvailableBefore, movement.AvailableAfter, movement.ReservedBefore, movement.ReservedAfter,
		movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByInventory lista los movimientos de una fila, más reciente primero.
func (r *InventoryMovementRepo) ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, inventory_id, material_id, type, quantity,
			available_before, available_after, reserved_before, reserved_after, created_by, created_at
		FROM inventory_movements WHERE inventory_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.MaterialID, &m.Type, &m.Quantity,
			&m.AvailableBefore, &m.AvailableAfter, &m.ReservedBefore, &m.ReservedAfter,
			&m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ConsumptionByMaterial suma las salidas (OUT) desde since, por material.
func (r *InventoryMovementRepo) ConsumptionByMaterial(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT material_id, COALESCE(SUM(quantity), 0)
		FROM inventory_movements
		WHERE type = $1 AND created_at >= $2
		GROUP BY material_id`
	rows, err := r.q.Query(ctx, query, entity.MovementTypeOUT, since)
	if err != nil {
		return nil, fmt.Errorf("consumption by material: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			materialID string
			qty        decimal.Decimal
		)
		if err := rows.Scan(&materialID, &qty); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		out[materialID] = qty
	}
	return out, rows.Err()
}
