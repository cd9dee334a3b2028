package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// AssetFilter filtros del listado de activos.
type AssetFilter struct {
	ProjectID string
	Type      string
}

// AssetRepository define el puerto de persistencia para Asset.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]*entity.Asset, error)
	Update(ctx context.Context, asset *entity.Asset) error
	Delete(ctx context.Context, id string) (bool, error)
}
