package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProjectMaterialFilter filtros del listado de asignaciones.
type ProjectMaterialFilter struct {
	ProjectID string
}

// ProjectMaterialRepository define el puerto de persistencia para las asignaciones proyecto-material.
type ProjectMaterialRepository interface {
	Create(ctx context.Context, pm *entity.ProjectMaterial) error
	GetByID(ctx context.Context, id string) (*entity.ProjectMaterial, error)
	// List devuelve las asignaciones con el material poblado.
	List(ctx context.Context, filter ProjectMaterialFilter) ([]*entity.ProjectMaterial, error)
	Update(ctx context.Context, pm *entity.ProjectMaterial) error
	// Delete devuelve la asignación eliminada (nil si no existía) para poder hacer pull en el proyecto.
	Delete(ctx context.Context, id string) (*entity.ProjectMaterial, error)
	// OutstandingDemandByMaterial suma max(requerido - asignado, 0) por material.
	OutstandingDemandByMaterial(ctx context.Context) (map[string]decimal.Decimal, error)
}
