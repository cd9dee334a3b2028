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

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, project_id, name, type, location, capacity, created_at, updated_at`

// AssetRepo implementación sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `INSERT INTO assets (` + assetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, a.ID, a.ProjectID, a.Name, a.Type, a.Location, a.Capacity, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo; (nil, nil) si no existe.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// List lista activos filtrando por proyecto y/o tipo.
func (r *AssetRepo) List(ctx context.Context, filter repository.AssetFilter) ([]*entity.Asset, error) {
	var (
		where []string
		args  []any
	)
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where = append(where, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza un activo. El proyecto dueño no cambia.
func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	query := `UPDATE assets SET name = $2, type = $3, location = $4, capacity = $5, updated_at = $6 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Type, a.Location, a.Capacity, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un activo.
func (r *AssetRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete asset: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	if err := row.Scan(&a.ID, &a.ProjectID, &a.Name, &a.Type, &a.Location, &a.Capacity, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
