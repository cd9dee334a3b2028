package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para Report.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context) ([]*entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id string) (bool, error)
}
