package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MaterialUseCase casos de uso del catálogo de materiales. Las lecturas por ID pasan por la
// caché cuando está configurada; toda escritura la invalida.
type MaterialUseCase struct {
	repo  repository.MaterialRepository
	cache ports.MaterialCache
}

// NewMaterialUseCase construye el caso de uso. cache puede ser nil.
func NewMaterialUseCase(repo repository.MaterialRepository, cache ports.MaterialCache) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, cache: cache}
}

// Create crea un material. ErrDuplicate si el código ya existe.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" || in.Category == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	cost := decimal.Zero
	if in.CostPerUnit != nil {
		cost = *in.CostPerUnit
	}
	if cost.IsNegative() || in.LeadTimeDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Criticality == "" {
		in.Criticality = entity.CriticalityMedium
	}
	if !entity.ValidCriticality(in.Criticality) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Material{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		CostPerUnit:  cost,
		Description:  in.Description,
		SupplierInfo: entity.SupplierInfo(in.SupplierInfo),
		LeadTimeDays: in.LeadTimeDays,
		Criticality:  in.Criticality,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List lista el catálogo, más reciente primero.
func (uc *MaterialUseCase) List(ctx context.Context, filter repository.MaterialFilter) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un material (caché de lectura primero).
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Update edición parcial. Si cambia el código se vuelve a verificar la unicidad.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != m.Code {
			other, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		m.Code = code
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
	}
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		m.CostPerUnit = *in.CostPerUnit
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.SupplierInfo != nil {
		m.SupplierInfo = entity.SupplierInfo(*in.SupplierInfo)
	}
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		m.LeadTimeDays = *in.LeadTimeDays
	}
	if in.Criticality != nil {
		if !entity.ValidCriticality(*in.Criticality) {
			return nil, domain.ErrInvalidInput
		}
		m.Criticality = *in.Criticality
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return toMaterialResponse(m), nil
}

// Delete elimina un material. ErrReferenced si todavía lo usa el ledger, una asignación o una orden.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.invalidate(ctx, id)
	return nil
}

// CostSummary agregados de costo unitario por categoría.
func (uc *MaterialUseCase) CostSummary(ctx context.Context) ([]dto.MaterialCostSummaryResponse, error) {
	rows, err := uc.repo.CostSummary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialCostSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MaterialCostSummaryResponse{
			Category:       r.Category,
			TotalMaterials: r.TotalMaterials,
			AvgCost:        r.AvgCost.Round(2),
			MinCost:        r.MinCost,
			MaxCost:        r.MaxCost,
		})
	}
	return out, nil
}

func (uc *MaterialUseCase) load(ctx context.Context, id string) (*entity.Material, error) {
	if uc.cache != nil {
		if m, ok := uc.cache.Get(ctx, id); ok {
			return m, nil
		}
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, m)
	}
	return m, nil
}

func (uc *MaterialUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, id)
	}
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Category:     m.Category,
		Unit:         m.Unit,
		CostPerUnit:  m.CostPerUnit,
		Description:  m.Description,
		SupplierInfo: dto.SupplierInfoDTO(m.SupplierInfo),
		LeadTimeDays: m.LeadTimeDays,
		Criticality:  m.Criticality,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMaterialRefResponse(ref *entity.MaterialRef, id string) *dto.MaterialRefResponse {
	if ref == nil {
		return &dto.MaterialRefResponse{ID: id}
	}
	return &dto.MaterialRefResponse{
		ID:          ref.ID,
		Code:        ref.Code,
		Name:        ref.Name,
		Category:    ref.Category,
		Unit:        ref.Unit,
		CostPerUnit: ref.CostPerUnit,
	}
}
