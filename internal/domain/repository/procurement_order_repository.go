package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// ProcurementOrderFilter filtros del listado de órdenes.
type ProcurementOrderFilter struct {
	ProjectID string
}

// ProcurementOrderRepository define el puerto de persistencia para órdenes de compra.
type ProcurementOrderRepository interface {
	Create(ctx context.Context, order *entity.ProcurementOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProcurementOrder, error)
	List(ctx context.Context, filter ProcurementOrderFilter) ([]*entity.ProcurementOrder, error)
	Update(ctx context.Context, order *entity.ProcurementOrder) error
	Delete(ctx context.Context, id string) (bool, error)
}
