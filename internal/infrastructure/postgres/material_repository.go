package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, code, name, category, unit, cost_per_unit, description,
		supplier_name, supplier_contact, supplier_address, lead_time_days, criticality, created_at, updated_at`

// MaterialRepo implementación del catálogo sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. Código repetido -> domain.ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Category, m.Unit, m.CostPerUnit, m.Description,
		m.SupplierInfo.Name, m.SupplierInfo.Contact, m.SupplierInfo.Address,
		m.LeadTimeDays, m.Criticality, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetByCode obtiene un material por código; (nil, nil) si no existe.
func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, arg string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales con filtro opcional de categoría y búsqueda por nombre, más reciente primero.
func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	query := `SELECT ` + materialColumns + ` FROM materials`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza un material existente.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET code = $2, name = $3, category = $4, unit = $5, cost_per_unit = $6,
			description = $7, supplier_name = $8, supplier_contact = $9, supplier_address = $10,
			lead_time_days = $11, criticality = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Category, m.Unit, m.CostPerUnit, m.Description,
		m.SupplierInfo.Name, m.SupplierInfo.Contact, m.SupplierInfo.Address,
		m.LeadTimeDays, m.Criticality, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el material y lo retira de las listas de proveedores en la misma sentencia.
// Las FK de inventario, asignaciones y órdenes lo impiden si sigue en uso (domain.ErrReferenced).
func (r *MaterialRepo) Delete(ctx context.Context, id string) (bool, error) {
	query := `
		WITH pulled AS (
			UPDATE vendors SET materials_supplied = array_remove(materials_supplied, $1), updated_at = NOW()
			WHERE $1 = ANY(materials_supplied)
		)
		DELETE FROM materials WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrReferenced
		}
		return false, fmt.Errorf("delete material: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CostSummary costo unitario promedio, mínimo y máximo por categoría.
func (r *MaterialRepo) CostSummary(ctx context.Context) ([]entity.MaterialCostSummary, error) {
	query := `
		SELECT category, COUNT(*), AVG(cost_per_unit), MIN(cost_per_unit), MAX(cost_per_unit)
		FROM materials GROUP BY category ORDER BY category`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("material cost summary: %w", err)
	}
	defer rows.Close()
	var out []entity.MaterialCostSummary
	for rows.Next() {
		var s entity.MaterialCostSummary
		if err := rows.Scan(&s.Category, &s.TotalMaterials, &s.AvgCost, &s.MinCost, &s.MaxCost); err != nil {
			return nil, fmt.Errorf("scan cost summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.Unit, &m.CostPerUnit, &m.Description,
		&m.SupplierInfo.Name, &m.SupplierInfo.Contact, &m.SupplierInfo.Address,
		&m.LeadTimeDays, &m.Criticality, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// escapeLike escapa los comodines de LIKE en la entrada del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
