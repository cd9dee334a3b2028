package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProjectMaterialRepository = (*ProjectMaterialRepo)(nil)

const projectMaterialSelect = `
	SELECT pm.id, pm.project_id, pm.material_id, pm.required_qty, pm.allocated_qty, pm.procured_qty,
		pm.remarks, pm.created_at, pm.updated_at,
		m.id, m.code, m.name, m.category, m.unit, m.cost_per_unit
	FROM project_materials pm
	JOIN materials m ON m.id = pm.material_id`

// ProjectMaterialRepo implementación sobre PostgreSQL.
type ProjectMaterialRepo struct {
	q Querier
}

// NewProjectMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectMaterialRepository(q Querier) *ProjectMaterialRepo {
	return &ProjectMaterialRepo{q: q}
}

// Create persiste una asignación; material inexistente -> domain.ErrNotFound.
func (r *ProjectMaterialRepo) Create(ctx context.Context, pm *entity.ProjectMaterial) error {
	query := `
		INSERT INTO project_materials (id, project_id, material_id, required_qty, allocated_qty, procured_qty,
			remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		pm.ID, pm.ProjectID, pm.MaterialID, pm.RequiredQty, pm.AllocatedQty, pm.ProcuredQty,
		pm.Remarks, pm.CreatedAt, pm.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert project material: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación con su material; (nil, nil) si no existe.
func (r *ProjectMaterialRepo) GetByID(ctx context.Context, id string) (*entity.ProjectMaterial, error) {
	pm, err := scanProjectMaterial(r.q.QueryRow(ctx, projectMaterialSelect+` WHERE pm.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project material: %w", err)
	}
	return pm, nil
}

// List lista asignaciones, opcionalmente de un proyecto.
func (r *ProjectMaterialRepo) List(ctx context.Context, filter repository.ProjectMaterialFilter) ([]*entity.ProjectMaterial, error) {
	query := projectMaterialSelect
	var args []any
	if filter.ProjectID != "" {
		query += ` WHERE pm.project_id = $1`
		args = append(args, filter.ProjectID)
	}
	query += ` ORDER BY pm.created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list project materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectMaterial
	for rows.Next() {
		pm, err := scanProjectMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project material: %w", err)
		}
		list = append(list, pm)
	}
	return list, rows.Err()
}

// Update actualiza cantidades y observaciones.
func (r *ProjectMaterialRepo) Update(ctx context.Context, pm *entity.ProjectMaterial) error {
	query := `
		UPDATE project_materials SET required_qty = $2, allocated_qty = $3, procured_qty = $4,
			remarks = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, pm.ID, pm.RequiredQty, pm.AllocatedQty, pm.ProcuredQty, pm.Remarks, pm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la asignación y la devuelve; nil si no existía.
func (r *ProjectMaterialRepo) Delete(ctx context.Context, id string) (*entity.ProjectMaterial, error) {
	query := `
		DELETE FROM project_materials WHERE id = $1
		RETURNING id, project_id, material_id, required_qty, allocated_qty, procured_qty, remarks, created_at, updated_at`
	var pm entity.ProjectMaterial
	err := r.q.QueryRow(ctx, query, id).Scan(
		&pm.ID, &pm.ProjectID, &pm.MaterialID, &pm.RequiredQty, &pm.AllocatedQty, &pm.ProcuredQty,
		&pm.Remarks, &pm.CreatedAt, &pm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete project material: %w", err)
	}
	return &pm, nil
}

// OutstandingDemandByMaterial suma la demanda pendiente por material.
func (r *ProjectMaterialRepo) OutstandingDemandByMaterial(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT material_id, SUM(GREATEST(required_qty - allocated_qty, 0))
		FROM project_materials GROUP BY material_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("outstanding demand: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			materialID string
			qty        decimal.Decimal
		)
		if err := rows.Scan(&materialID, &qty); err != nil {
			return nil, fmt.Errorf("scan demand: %w", err)
		}
		out[materialID] = qty
	}
	return out, rows.Err()
}

func scanProjectMaterial(row pgx.Row) (*entity.ProjectMaterial, error) {
	var (
		pm  entity.ProjectMaterial
		ref entity.MaterialRef
	)
	err := row.Scan(
		&pm.ID, &pm.ProjectID, &pm.MaterialID, &pm.RequiredQty, &pm.AllocatedQty, &pm.ProcuredQty,
		&pm.Remarks, &pm.CreatedAt, &pm.UpdatedAt,
		&ref.ID, &ref.Code, &ref.Name, &ref.Category, &ref.Unit, &ref.CostPerUnit,
	)
	if err != nil {
		return nil, err
	}
	pm.Material = &ref
	return &pm, nil
}
