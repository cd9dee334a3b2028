package usecase

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// ProjectTxRunner ejecuta una función en una transacción con los repositorios del agregado
// Project: el push/pull de referencias en el proyecto y la fila hija se confirman juntos.
type ProjectTxRunner interface {
	RunProject(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		assetRepo repository.AssetRepository,
		pmRepo repository.ProjectMaterialRepository,
	) error) error
}
