package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// MaterialFilter filtros del listado de catálogo.
type MaterialFilter struct {
	Category string
	Search   string // coincidencia parcial sin distinguir mayúsculas sobre el nombre
}

// MaterialRepository define el puerto de persistencia para el catálogo de materiales (DIP).
type MaterialRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe.
	Create(ctx context.Context, material *entity.Material) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	// Delete devuelve domain.ErrReferenced si alguna fila de inventario, asignación u orden lo usa.
	Delete(ctx context.Context, id string) (bool, error)
	CostSummary(ctx context.Context) ([]entity.MaterialCostSummary, error)
}
