package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type procurementFixture struct {
	store     *testutil.Store
	orders    *usecase.ProcurementUseCase
	vendors   *usecase.VendorUseCase
	projectID string
	vendorID  string
}

func newProcurementFixture(t *testing.T) *procurementFixture {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewStore()
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{ID: "mat-cable", Code: "CBL01", Name: "ACSR Cable", Category: "Conductor", Unit: "m", CreatedAt: time.Now()}))

	projects := usecase.NewProjectUseCase(store.Projects(), store.Assets(), store.ProjectMaterials())
	p, err := projects.Create(ctx, dto.CreateProjectRequest{Name: "Substation Pune", Location: "Pune"})
	require.NoError(t, err)

	vendors := usecase.NewVendorUseCase(store.Vendors(), store.Materials())
	v, err := vendors.Create(ctx, dto.CreateVendorRequest{Name: "Sterlite Power", GSTNumber: "27AAACS1234F1Z5"})
	require.NoError(t, err)

	return &procurementFixture{
		store:     store,
		orders:    usecase.NewProcurementUseCase(store.ProcurementOrders(), store.Projects(), store.Materials(), store.Vendors()),
		vendors:   vendors,
		projectID: p.ID,
		vendorID:  v.ID,
	}
}

func (f *procurementFixture) order(qty, price int64) dto.CreateProcurementOrderRequest {
	return dto.CreateProcurementOrderRequest{
		Project:   f.projectID,
		Material:  "mat-cable",
		Vendor:    f.vendorID,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}
}

func TestProcurementCreate_ComputesTotal(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	o, err := f.orders.Create(ctx, f.order(1200, 115))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.True(t, o.TotalCost.Equal(decimal.NewFromInt(138000)), "total=%s", o.TotalCost)
	assert.False(t, o.OrderDate.IsZero())

	qty := decimal.NewFromInt(1000)
	status := entity.OrderApproved
	o, err = f.orders.Update(ctx, o.ID, dto.UpdateProcurementOrderRequest{Quantity: &qty, Status: &status})
	require.NoError(t, err)
	assert.True(t, o.TotalCost.Equal(decimal.NewFromInt(115000)))
	assert.Equal(t, entity.OrderApproved, o.Status)
}

func TestProcurementCreate_References(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	for _, mutate := range []func(*dto.CreateProcurementOrderRequest){
		func(r *dto.CreateProcurementOrderRequest) { r.Project = "ghost" },
		func(r *dto.CreateProcurementOrderRequest) { r.Material = "ghost" },
		func(r *dto.CreateProcurementOrderRequest) { r.Vendor = "ghost" },
	} {
		req := f.order(1, 1)
		mutate(&req)
		_, err := f.orders.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}

	req := f.order(0, 1)
	_, err := f.orders.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = f.order(1, 1)
	req.Quantity = decimal.RequireFromString("1.00001")
	_, err = f.orders.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = f.order(1, 1)
	req.Status = "Lost"
	_, err = f.orders.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcurementListByProjectAndDelete(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	o, err := f.orders.Create(ctx, f.order(10, 5))
	require.NoError(t, err)

	list, err := f.orders.List(ctx, repository.ProcurementOrderFilter{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	list, err = f.orders.List(ctx, repository.ProcurementOrderFilter{ProjectID: "other"})
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	// El proveedor no se puede borrar mientras tenga órdenes.
	assert.ErrorIs(t, f.vendors.Delete(ctx, f.vendorID), domain.ErrReferenced)

	require.NoError(t, f.orders.Delete(ctx, o.ID))
	assert.ErrorIs(t, f.orders.Delete(ctx, o.ID), domain.ErrNotFound)
	require.NoError(t, f.vendors.Delete(ctx, f.vendorID))
}

func TestVendorAssignMaterials(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	v, err := f.vendors.AssignMaterials(ctx, f.vendorID, dto.AssignMaterialsRequest{MaterialIDs: []string{"mat-cable", "mat-cable", "ghost"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"mat-cable"}, v.MaterialsSupplied)

	_, err = f.vendors.AssignMaterials(ctx, f.vendorID, dto.AssignMaterialsRequest{MaterialIDs: []string{"ghost"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.vendors.AssignMaterials(ctx, f.vendorID, dto.AssignMaterialsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.vendors.AssignMaterials(ctx, "ghost", dto.AssignMaterialsRequest{MaterialIDs: []string{"mat-cable"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
