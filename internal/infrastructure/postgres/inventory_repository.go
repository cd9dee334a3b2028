package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// Nombres de los CHECK del ledger (ver migrations/00001_init.sql).
const (
	availableCheck = "inventories_available_qty_check"
	reservedCheck  = "inventories_reserved_qty_check"
)

const inventorySelect = `
	SELECT i.id, i.material_id, i.location, i.available_qty, i.reserved_qty, i.optimized_data,
		i.created_at, i.updated_at,
		m.id, m.code, m.name, m.category, m.unit, m.cost_per_unit
	FROM inventories i
	JOIN materials m ON m.id = i.material_id`

// stockUpdates sentencia condicional por operación: $1 id, $2 cantidad.
// La condición del WHERE es la precondición del ledger.
var stockUpdates = map[entity.StockOperation]string{
	entity.StockIncrease: `available_qty = available_qty + $2`,
	entity.StockDecrease: `available_qty = available_qty - $2`,
	entity.StockReserve:  `available_qty = available_qty - $2, reserved_qty = reserved_qty + $2`,
	entity.StockRelease:  `reserved_qty = reserved_qty - $2, available_qty = available_qty + $2`,
}

var stockGuards = map[entity.StockOperation]string{
	entity.StockDecrease: ` AND available_qty >= $2`,
	entity.StockReserve:  ` AND available_qty >= $2`,
	entity.StockRelease:  ` AND reserved_qty >= $2`,
}

// InventoryRepo ledger de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta una fila. Par (material, ubicación) repetido -> domain.ErrDuplicate;
// material inexistente -> domain.ErrNotFound.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (id, material_id, location, available_qty, reserved_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.MaterialID, inv.Location, inv.AvailableQty, inv.ReservedQty, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case checkViolation(err) != "":
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene la fila con su material; (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, inventorySelect+` WHERE i.id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, inventorySelect+` WHERE i.id = $1 FOR UPDATE OF i`, id)
}

func (r *InventoryRepo) getOne(ctx context.Context, query, id string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// List filtra por material y/o ubicación (sin distinguir mayúsculas).
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.Inventory, error) {
	var (
		where []string
		args  []any
	)
	if filter.MaterialID != "" {
		args = append(args, filter.MaterialID)
		where = append(where, fmt.Sprintf("i.material_id = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		where = append(where, fmt.Sprintf("lower(i.location) = lower($%d)", len(args)))
	}
	query := inventorySelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY m.name, i.location`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update reemplaza material, ubicación y contadores.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventories SET material_id = $2, location = $3, available_qty = $4, reserved_qty = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.MaterialID, inv.Location, inv.AvailableQty, inv.ReservedQty, inv.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case checkViolation(err) != "":
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila y la devuelve; nil si no existía.
func (r *InventoryRepo) Delete(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `
		DELETE FROM inventories WHERE id = $1
		RETURNING id, material_id, location, available_qty, reserved_qty, created_at, updated_at`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.MaterialID, &inv.Location, &inv.AvailableQty, &inv.ReservedQty, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete inventory: %w", err)
	}
	return &inv, nil
}

// ApplyStock una sola sentencia UPDATE ... WHERE <precondición> RETURNING. Si no devuelve
// filas se distingue entre fila inexistente y precondición fallida con un segundo SELECT.
func (r *InventoryRepo) ApplyStock(ctx context.Context, id string, op entity.StockOperation, qty decimal.Decimal) (*entity.Inventory, error) {
	set, ok := stockUpdates[op]
	if !ok || !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	query := `
		WITH i AS (
			UPDATE inventories SET ` + set + `, updated_at = NOW()
			WHERE id = $1` + stockGuards[op] + `
			RETURNING *
		)
		SELECT i.id, i.material_id, i.location, i.available_qty, i.reserved_qty, i.optimized_data,
			i.created_at, i.updated_at,
			m.id, m.code, m.name, m.category, m.unit, m.cost_per_unit
		FROM i JOIN materials m ON m.id = i.material_id`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id, qty))
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		switch checkViolation(err) {
		case availableCheck:
			return nil, domain.ErrInsufficientStock
		case reservedCheck:
			return nil, domain.ErrInsufficientReservation
		}
		return nil, fmt.Errorf("apply stock %s: %w", op, err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventories WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("probe inventory: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	if op == entity.StockRelease {
		return nil, domain.ErrInsufficientReservation
	}
	return nil, domain.ErrInsufficientStock
}

// SetOptimizedData sobrescribe la anotación; domain.ErrNotFound si la fila ya no existe.
func (r *InventoryRepo) SetOptimizedData(ctx context.Context, id string, data *entity.OptimizedData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal optimized data: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `UPDATE inventories SET optimized_data = $2, updated_at = NOW() WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("set optimized data: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var (
		inv entity.Inventory
		ref entity.MaterialRef
		raw []byte
	)
	err := row.Scan(
		&inv.ID, &inv.MaterialID, &inv.Location, &inv.AvailableQty, &inv.ReservedQty, &raw,
		&inv.CreatedAt, &inv.UpdatedAt,
		&ref.ID, &ref.Code, &ref.Name, &ref.Category, &ref.Unit, &ref.CostPerUnit,
	)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		var data entity.OptimizedData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode optimized data: %w", err)
		}
		inv.OptimizedData = &data
	}
	inv.Material = &ref
	return &inv, nil
}
