package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (raíz del agregado).
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) (bool, error)

	// Push/pull de referencias. Add* no duplica; devuelven false si el proyecto no existe.
	AddAssetID(ctx context.Context, projectID, assetID string) (bool, error)
	RemoveAssetID(ctx context.Context, projectID, assetID string) error
	AddMaterialID(ctx context.Context, projectID, projectMaterialID string) (bool, error)
	RemoveMaterialID(ctx context.Context, projectID, projectMaterialID string) error
}
