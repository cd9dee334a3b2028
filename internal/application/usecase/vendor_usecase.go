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

// VendorUseCase casos de uso CRUD para proveedores.
type VendorUseCase struct {
	repo         repository.VendorRepository
	materialRepo repository.MaterialRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, materialRepo repository.MaterialRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo, materialRepo: materialRepo}
}

// Create crea un proveedor. Los materiales suministrados que no existen se descartan.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	materials, err := uc.existingMaterials(ctx, in.MaterialsSupplied)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Location:      in.Location,
		GSTNumber:     in.GSTNumber,
		ContactPerson: in.ContactPerson,
		ContactEmail:  in.ContactEmail,
		ContactPhone:  in.ContactPhone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	v.AddMaterials(materials)
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// List lista proveedores.
func (uc *VendorUseCase) List(ctx context.Context) (*dto.VendorListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un proveedor.
func (uc *VendorUseCase) GetByID(ctx context.Context, id string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(v), nil
}

// Update edición parcial de datos de contacto.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		v.Location = *in.Location
	}
	if in.GSTNumber != nil {
		v.GSTNumber = *in.GSTNumber
	}
	if in.ContactPerson != nil {
		v.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		v.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		v.ContactPhone = *in.ContactPhone
	}
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// Delete elimina un proveedor.
func (uc *VendorUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// AssignMaterials vincula materiales al proveedor. ErrNotFound si ninguno de los IDs existe;
// los ya vinculados no se duplican.
func (uc *VendorUseCase) AssignMaterials(ctx context.Context, id string, in dto.AssignMaterialsRequest) (*dto.VendorResponse, error) {
	if len(in.MaterialIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	materials, err := uc.existingMaterials(ctx, in.MaterialIDs)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, domain.ErrNotFound
	}
	if v.AddMaterials(materials) > 0 {
		v.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, v); err != nil {
			return nil, err
		}
	}
	return toVendorResponse(v), nil
}

func (uc *VendorUseCase) existingMaterials(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		m, err := uc.materialRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m != nil {
			out = append(out, m.ID)
		}
	}
	return out, nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	supplied := v.MaterialsSupplied
	if supplied == nil {
		supplied = []string{}
	}
	return &dto.VendorResponse{
		ID:                v.ID,
		Name:              v.Name,
		Location:          v.Location,
		GSTNumber:         v.GSTNumber,
		ContactPerson:     v.ContactPerson,
		ContactEmail:      v.ContactEmail,
		ContactPhone:      v.ContactPhone,
		MaterialsSupplied: supplied,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}
