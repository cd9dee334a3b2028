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
	"github.com/shopspring/decimal"
)

// ProjectUseCase casos de uso de proyectos.
type ProjectUseCase struct {
	repo      repository.ProjectRepository
	assetRepo repository.AssetRepository
	pmRepo    repository.ProjectMaterialRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	repo repository.ProjectRepository,
	assetRepo repository.AssetRepository,
	pmRepo repository.ProjectMaterialRepository,
) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, assetRepo: assetRepo, pmRepo: pmRepo}
}

// Create crea un proyecto. Estado por defecto Planned; startDate por defecto hoy.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.ProjectPlanned
	}
	if !entity.ValidProjectStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	budget := decimal.Zero
	if in.Budget != nil {
		if in.Budget.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		budget = *in.Budget
	}
	now := time.Now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil && in.EndDate.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Project{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		Budget:      budget,
		StartDate:   start,
		EndDate:     in.EndDate,
		Status:      in.Status,
		ImageURL:    in.ImageURL,
		AssetIDs:    []string{},
		MaterialIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List lista los proyectos (sin poblar activos ni asignaciones).
func (uc *ProjectUseCase) List(ctx context.Context) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{Items: items, Total: len(items)}, nil
}

// GetByID devuelve el proyecto con sus activos y asignaciones poblados.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, assets, materials, err := uc.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProjectResponse(p)
	out.Assets = make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out.Assets = append(out.Assets, *toAssetResponse(a))
	}
	out.Materials = make([]dto.ProjectMaterialResponse, 0, len(materials))
	for _, pm := range materials {
		out.Materials = append(out.Materials, *toProjectMaterialResponse(pm))
	}
	return out, nil
}

// Detail datos resueltos del proyecto para reportes.
func (uc *ProjectUseCase) Detail(ctx context.Context, id string) (*entity.Project, []*entity.Asset, []*entity.ProjectMaterial, error) {
	return uc.loadDetail(ctx, id)
}

func (uc *ProjectUseCase) loadDetail(ctx context.Context, id string) (*entity.Project, []*entity.Asset, []*entity.ProjectMaterial, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if p == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	assets := make([]*entity.Asset, 0, len(p.AssetIDs))
	for _, assetID := range p.AssetIDs {
		a, err := uc.assetRepo.GetByID(ctx, assetID)
		if err != nil {
			return nil, nil, nil, err
		}
		if a != nil {
			assets = append(assets, a)
		}
	}
	materials, err := uc.pmRepo.List(ctx, repository.ProjectMaterialFilter{ProjectID: id})
	if err != nil {
		return nil, nil, nil, err
	}
	return p, assets, materials, nil
}

// Update edición parcial del proyecto.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Budget != nil {
		if in.Budget.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Budget = *in.Budget
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != nil {
		if !entity.ValidProjectStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		p.Status = *in.Status
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Delete elimina el proyecto. No arrastra activos ni asignaciones.
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// LinkAsset vincula un activo existente al proyecto (sin duplicar).
func (uc *ProjectUseCase) LinkAsset(ctx context.Context, projectID, assetID string) (*dto.ProjectResponse, error) {
	if assetID == "" {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.repo.AddAssetID(ctx, projectID, assetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.reload(ctx, projectID)
}

// LinkMaterial vincula un registro de asignación existente al proyecto (sin duplicar).
func (uc *ProjectUseCase) LinkMaterial(ctx context.Context, projectID, projectMaterialID string) (*dto.ProjectResponse, error) {
	if projectMaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	pm, err := uc.pmRepo.GetByID(ctx, projectMaterialID)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.repo.AddMaterialID(ctx, projectID, projectMaterialID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.reload(ctx, projectID)
}

// Summary resumen del proyecto: conteos de activos y asignaciones vinculadas.
func (uc *ProjectUseCase) Summary(ctx context.Context, id string) (*dto.ProjectSummaryResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ProjectSummaryResponse{
		ProjectName:    p.Name,
		TotalAssets:    len(p.AssetIDs),
		TotalMaterials: len(p.MaterialIDs),
		Status:         p.Status,
		Budget:         p.Budget,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
	}, nil
}

func (uc *ProjectUseCase) reload(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(p), nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	assetIDs := p.AssetIDs
	if assetIDs == nil {
		assetIDs = []string{}
	}
	materialIDs := p.MaterialIDs
	if materialIDs == nil {
		materialIDs = []string{}
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location,
		Budget:      p.Budget,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		ImageURL:    p.ImageURL,
		AssetIDs:    assetIDs,
		MaterialIDs: materialIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
