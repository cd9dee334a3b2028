package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

var _ repository.ProcurementOrderRepository = (*ProcurementOrderRepo)(nil)

const procurementColumns = `id, project_id, material_id, vendor_id, order_date, delivery_date,
		quantity, unit_price, total_cost, status, remarks, created_at, updated_at`

// ProcurementOrderRepo implementación sobre PostgreSQL.
type ProcurementOrderRepo struct {
	q Querier
}

// NewProcurementOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcurementOrderRepository(q Querier) *ProcurementOrderRepo {
	return &ProcurementOrderRepo{q: q}
}

// Create persiste una orden de compra.
func (r *ProcurementOrderRepo) Create(ctx context.Context, o *entity.ProcurementOrder) error {
	query := `INSERT INTO procurement_orders (` + procurementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.ProjectID, o.MaterialID, o.VendorID, o.OrderDate, o.DeliveryDate,
		o.Quantity, o.UnitPrice, o.TotalCost, o.Status, o.Remarks, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert procurement order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; (nil, nil) si no existe.
func (r *ProcurementOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProcurementOrder, error) {
	o, err := scanProcurementOrder(r.q.QueryRow(ctx, `SELECT `+procurementColumns+` FROM procurement_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get procurement order: %w", err)
	}
	return o, nil
}

// List lista órdenes, opcionalmente de un proyecto, más reciente primero.
func (r *ProcurementOrderRepo) List(ctx context.Context, filter repository.ProcurementOrderFilter) ([]*entity.ProcurementOrder, error) {
	query := `SELECT ` + procurementColumns + ` FROM procurement_orders`
	var args []any
	if filter.ProjectID != "" {
		query += ` WHERE project_id = $1`
		args = append(args, filter.ProjectID)
	}
	query += ` ORDER BY order_date DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list procurement orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProcurementOrder
	for rows.Next() {
		o, err := scanProcurementOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan procurement order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables y el total ya recalculado.
func (r *ProcurementOrderRepo) Update(ctx context.Context, o *entity.ProcurementOrder) error {
	query := `
		UPDATE procurement_orders SET vendor_id = $2, order_date = $3, delivery_date = $4, quantity = $5,
			unit_price = $6, total_cost = $7, status = $8, remarks = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.VendorID, o.OrderDate, o.DeliveryDate, o.Quantity,
		o.UnitPrice, o.TotalCost, o.Status, o.Remarks, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update procurement order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una orden.
func (r *ProcurementOrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM procurement_orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete procurement order: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanProcurementOrder(row pgx.Row) (*entity.ProcurementOrder, error) {
	var o entity.ProcurementOrder
	err := row.Scan(
		&o.ID, &o.ProjectID, &o.MaterialID, &o.VendorID, &o.OrderDate, &o.DeliveryDate,
		&o.Quantity, &o.UnitPrice, &o.TotalCost, &o.Status, &o.Remarks, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
