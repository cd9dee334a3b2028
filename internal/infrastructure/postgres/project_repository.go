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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, name, location, budget, start_date, end_date, status, image_url,
		asset_ids, material_ids, created_at, updated_at`

// ProjectRepo implementación sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Location, p.Budget, p.StartDate, p.EndDate, p.Status, p.ImageURL,
		nonNil(p.AssetIDs), nonNil(p.MaterialIDs), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID; (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List lista proyectos, más reciente primero.
func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	rows, err := r.q.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables. Las listas de referencias se mantienen con Add*/Remove*.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, location = $3, budget = $4, start_date = $5, end_date = $6,
			status = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Location, p.Budget, p.StartDate, p.EndDate, p.Status, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proyecto. Activos y asignaciones quedan huérfanos.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddAssetID agrega el activo a la lista si no estaba.
func (r *ProjectRepo) AddAssetID(ctx context.Context, projectID, assetID string) (bool, error) {
	return r.push(ctx, "asset_ids", projectID, assetID)
}

// RemoveAssetID quita el activo de la lista.
func (r *ProjectRepo) RemoveAssetID(ctx context.Context, projectID, assetID string) error {
	return r.pull(ctx, "asset_ids", projectID, assetID)
}

// AddMaterialID agrega la asignación a la lista si no estaba.
func (r *ProjectRepo) AddMaterialID(ctx context.Context, projectID, projectMaterialID string) (bool, error) {
	return r.push(ctx, "material_ids", projectID, projectMaterialID)
}

// RemoveMaterialID quita la asignación de la lista.
func (r *ProjectRepo) RemoveMaterialID(ctx context.Context, projectID, projectMaterialID string) error {
	return r.pull(ctx, "material_ids", projectID, projectMaterialID)
}

// push devuelve false solo si el proyecto no existe; si el ID ya estaba no hay cambio.
func (r *ProjectRepo) push(ctx context.Context, column, projectID, id string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE projects SET
			%[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
			updated_at = NOW()
		WHERE id = $1`, column)
	cmd, err := r.q.Exec(ctx, query, projectID, id)
	if err != nil {
		return false, fmt.Errorf("push project %s: %w", column, err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ProjectRepo) pull(ctx context.Context, column, projectID, id string) error {
	query := fmt.Sprintf(`UPDATE projects SET %[1]s = array_remove(%[1]s, $2), updated_at = NOW() WHERE id = $1`, column)
	if _, err := r.q.Exec(ctx, query, projectID, id); err != nil {
		return fmt.Errorf("pull project %s: %w", column, err)
	}
	return nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Location, &p.Budget, &p.StartDate, &p.EndDate, &p.Status, &p.ImageURL,
		&p.AssetIDs, &p.MaterialIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// nonNil las columnas TEXT[] son NOT NULL: un slice nil se enviaría como NULL.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
