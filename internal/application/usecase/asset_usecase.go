package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// AssetUseCase casos de uso de activos. Alta y baja mantienen la lista de activos del proyecto.
type AssetUseCase struct {
	txRunner ProjectTxRunner
	repo     repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(txRunner ProjectTxRunner, repo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{txRunner: txRunner, repo: repo}
}

// Create crea el activo y lo agrega al proyecto en la misma transacción.
func (uc *AssetUseCase) Create(ctx context.Context, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.Project == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.AssetOther
	}
	if !entity.ValidAssetType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Asset{
		ID:        uuid.New().String(),
		ProjectID: in.Project,
		Name:      strings.TrimSpace(in.Name),
		Type:      in.Type,
		Location:  in.Location,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunProject(ctx, func(projectRepo repository.ProjectRepository, assetRepo repository.AssetRepository, _ repository.ProjectMaterialRepository) error {
		p, err := projectRepo.GetByID(ctx, in.Project)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := assetRepo.Create(ctx, a); err != nil {
			return err
		}
		_, err = projectRepo.AddAssetID(ctx, p.ID, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(a), nil
}

// List lista activos, opcionalmente por proyecto y/o tipo.
func (uc *AssetUseCase) List(ctx context.Context, filter repository.AssetFilter) (*dto.AssetListResponse, error) {
	if filter.Type != "" && !entity.ValidAssetType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un activo.
func (uc *AssetUseCase) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(a), nil
}

// Update edición parcial del activo.
func (uc *AssetUseCase) Update(ctx context.Context, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		if !entity.ValidAssetType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		a.Type = *in.Type
	}
	if in.Location != nil {
		a.Location = *in.Location
	}
	if in.Capacity != nil {
		a.Capacity = *in.Capacity
	}
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAssetResponse(a), nil
}

// Delete elimina el activo y lo quita de la lista del proyecto.
func (uc *AssetUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunProject(ctx, func(projectRepo repository.ProjectRepository, assetRepo repository.AssetRepository, _ repository.ProjectMaterialRepository) error {
		a, err := assetRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if _, err := assetRepo.Delete(ctx, id); err != nil {
			return err
		}
		return projectRepo.RemoveAssetID(ctx, a.ProjectID, id)
	})
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:        a.ID,
		Project:   a.ProjectID,
		Name:      a.Name,
		Type:      a.Type,
		Location:  a.Location,
		Capacity:  a.Capacity,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
