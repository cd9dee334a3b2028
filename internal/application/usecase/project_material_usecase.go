package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProjectMaterialUseCase asignaciones proyecto-material (lado demanda).
// allocatedQty se mantiene a mano: no hay reconciliación con reservedQty del ledger.
type ProjectMaterialUseCase struct {
	txRunner     ProjectTxRunner
	repo         repository.ProjectMaterialRepository
	materialRepo repository.MaterialRepository
}

// NewProjectMaterialUseCase construye el caso de uso.
func NewProjectMaterialUseCase(
	txRunner ProjectTxRunner,
	repo repository.ProjectMaterialRepository,
	materialRepo repository.MaterialRepository,
) *ProjectMaterialUseCase {
	return &ProjectMaterialUseCase{
		txRunner:     txRunner,
		repo:         repo,
		materialRepo: materialRepo,
	}
}

// Create registra la necesidad de material de un proyecto y la agrega a su lista.
// ErrNotFound si el proyecto o el material no existen; si el proyecto no existe la
// transacción se revierte y la asignación no queda creada.
func (uc *ProjectMaterialUseCase) Create(ctx context.Context, in dto.CreateProjectMaterialRequest) (*dto.ProjectMaterialResponse, error) {
	if in.Project == "" || in.Material == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, q := range []decimal.Decimal{in.RequiredQty, in.AllocatedQty, in.ProcuredQty} {
		if q.IsNegative() || !entity.ValidScale(q) {
			return nil, domain.ErrInvalidInput
		}
	}
	material, err := uc.materialRepo.GetByID(ctx, in.Material)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	pm := &entity.ProjectMaterial{
		ID:           uuid.New().String(),
		ProjectID:    in.Project,
		MaterialID:   material.ID,
		RequiredQty:  in.RequiredQty,
		AllocatedQty: in.AllocatedQty,
		ProcuredQty:  in.ProcuredQty,
		Remarks:      in.Remarks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.RunProject(ctx, func(projectRepo repository.ProjectRepository, _ repository.AssetRepository, pmRepo repository.ProjectMaterialRepository) error {
		if err := pmRepo.Create(ctx, pm); err != nil {
			return err
		}
		ok, err := projectRepo.AddMaterialID(ctx, pm.ProjectID, pm.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	pm.Material = &entity.MaterialRef{
		ID:          material.ID,
		Code:        material.Code,
		Name:        material.Name,
		Category:    material.Category,
		Unit:        material.Unit,
		CostPerUnit: material.CostPerUnit,
	}
	return toProjectMaterialResponse(pm), nil
}

// List todas las asignaciones, o solo las de un proyecto si filter.ProjectID no es vacío.
func (uc *ProjectMaterialUseCase) List(ctx context.Context, filter repository.ProjectMaterialFilter) (*dto.ProjectMaterialListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectMaterialResponse, 0, len(list))
	for _, pm := range list {
		items = append(items, *toProjectMaterialResponse(pm))
	}
	return &dto.ProjectMaterialListResponse{Items: items, Total: len(items)}, nil
}

// Update edición parcial de cantidades y observaciones.
func (uc *ProjectMaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateProjectMaterialRequest) (*dto.ProjectMaterialResponse, error) {
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	set := func(dst *decimal.Decimal, v *decimal.Decimal) bool {
		if v == nil {
			return true
		}
		if v.IsNegative() || !entity.ValidScale(*v) {
			return false
		}
		*dst = *v
		return true
	}
	if !set(&pm.RequiredQty, in.RequiredQty) || !set(&pm.AllocatedQty, in.AllocatedQty) || !set(&pm.ProcuredQty, in.ProcuredQty) {
		return nil, domain.ErrInvalidInput
	}
	if in.Remarks != nil {
		pm.Remarks = *in.Remarks
	}
	pm.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return toProjectMaterialResponse(pm), nil
}

// Delete elimina la asignación y la quita de la lista del proyecto dueño.
func (uc *ProjectMaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunProject(ctx, func(projectRepo repository.ProjectRepository, _ repository.AssetRepository, pmRepo repository.ProjectMaterialRepository) error {
		deleted, err := pmRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return domain.ErrNotFound
		}
		return projectRepo.RemoveMaterialID(ctx, deleted.ProjectID, id)
	})
}

func toProjectMaterialResponse(pm *entity.ProjectMaterial) *dto.ProjectMaterialResponse {
	return &dto.ProjectMaterialResponse{
		ID:           pm.ID,
		Project:      pm.ProjectID,
		Material:     toMaterialRefResponse(pm.Material, pm.MaterialID),
		RequiredQty:  pm.RequiredQty,
		AllocatedQty: pm.AllocatedQty,
		ProcuredQty:  pm.ProcuredQty,
		Remarks:      pm.Remarks,
		CreatedAt:    pm.CreatedAt,
		UpdatedAt:    pm.UpdatedAt,
	}
}
