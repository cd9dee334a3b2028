package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// ProcurementUseCase casos de uso de órdenes de compra. TotalCost se recalcula en cada guardado.
// Marcar una orden como Delivered no toca el ledger: la entrada de stock es un increase aparte.
type ProcurementUseCase struct {
	repo         repository.ProcurementOrderRepository
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	vendorRepo   repository.VendorRepository
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(
	repo repository.ProcurementOrderRepository,
	projectRepo repository.ProjectRepository,
	materialRepo repository.MaterialRepository,
	vendorRepo repository.VendorRepository,
) *ProcurementUseCase {
	return &ProcurementUseCase{
		repo:         repo,
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		vendorRepo:   vendorRepo,
	}
}

// Create crea una orden. Proyecto, material y proveedor deben existir.
func (uc *ProcurementUseCase) Create(ctx context.Context, in dto.CreateProcurementOrderRequest) (*dto.ProcurementOrderResponse, error) {
	if in.Project == "" || in.Material == "" || in.Vendor == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() || in.UnitPrice.IsNegative() ||
		!entity.ValidScale(in.Quantity) || !entity.ValidScale(in.UnitPrice) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.OrderPending
	}
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.Project, in.Material, in.Vendor); err != nil {
		return nil, err
	}
	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	o := &entity.ProcurementOrder{
		ID:           uuid.New().String(),
		ProjectID:    in.Project,
		MaterialID:   in.Material,
		VendorID:     in.Vendor,
		OrderDate:    orderDate,
		DeliveryDate: in.DeliveryDate,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Status:       in.Status,
		Remarks:      in.Remarks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.RecalculateTotal()
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return toProcurementOrderResponse(o), nil
}

// List todas las órdenes, o las de un proyecto.
func (uc *ProcurementUseCase) List(ctx context.Context, filter repository.ProcurementOrderFilter) (*dto.ProcurementOrderListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProcurementOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toProcurementOrderResponse(o))
	}
	return &dto.ProcurementOrderListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene una orden.
func (uc *ProcurementUseCase) GetByID(ctx context.Context, id string) (*dto.ProcurementOrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toProcurementOrderResponse(o), nil
}

// Update edición parcial; el total se recalcula siempre.
func (uc *ProcurementUseCase) Update(ctx context.Context, id string, in dto.UpdateProcurementOrderRequest) (*dto.ProcurementOrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if in.Vendor != nil && *in.Vendor != o.VendorID {
		v, err := uc.vendorRepo.GetByID(ctx, *in.Vendor)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.ErrNotFound
		}
		o.VendorID = v.ID
	}
	if in.OrderDate != nil {
		o.OrderDate = *in.OrderDate
	}
	if in.DeliveryDate != nil {
		o.DeliveryDate = in.DeliveryDate
	}
	if in.Quantity != nil {
		if !in.Quantity.IsPositive() || !entity.ValidScale(*in.Quantity) {
			return nil, domain.ErrInvalidInput
		}
		o.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() || !entity.ValidScale(*in.UnitPrice) {
			return nil, domain.ErrInvalidInput
		}
		o.UnitPrice = *in.UnitPrice
	}
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		o.Status = *in.Status
	}
	if in.Remarks != nil {
		o.Remarks = *in.Remarks
	}
	o.RecalculateTotal()
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return toProcurementOrderResponse(o), nil
}

// Delete elimina una orden.
func (uc *ProcurementUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ProcurementUseCase) checkRefs(ctx context.Context, projectID, materialID, vendorID string) error {
	p, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	m, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	v, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if p == nil || m == nil || v == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProcurementOrderResponse(o *entity.ProcurementOrder) *dto.ProcurementOrderResponse {
	return &dto.ProcurementOrderResponse{
		ID:           o.ID,
		Project:      o.ProjectID,
		Material:     o.MaterialID,
		Vendor:       o.VendorID,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice,
		TotalCost:    o.TotalCost,
		Status:       o.Status,
		Remarks:      o.Remarks,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
