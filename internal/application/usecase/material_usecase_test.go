package usecase_test

import (
	"context"
	"testing"

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

type mapCache struct {
	items       map[string]*entity.Material
	hits        int
	invalidated []string
}

func newMapCache() *mapCache { return &mapCache{items: map[string]*entity.Material{}} }

func (c *mapCache) Get(_ context.Context, id string) (*entity.Material, bool) {
	m, ok := c.items[id]
	if ok {
		c.hits++
	}
	return m, ok
}

func (c *mapCache) Set(_ context.Context, m *entity.Material) { c.items[m.ID] = m }

func (c *mapCache) Invalidate(_ context.Context, id string) {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func steelRequest() dto.CreateMaterialRequest {
	return dto.CreateMaterialRequest{
		Code:         " STL01 ",
		Name:         "Steel",
		Category:     "Structural",
		Unit:         "kg",
		CostPerUnit:  decPtr(65),
		LeadTimeDays: 14,
	}
}

func TestMaterialCreate_DefaultsAndDuplicate(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewMaterialUseCase(store.Materials(), nil)
	ctx := context.Background()

	m, err := uc.Create(ctx, steelRequest())
	require.NoError(t, err)
	assert.Equal(t, "STL01", m.Code)
	assert.Equal(t, entity.CriticalityMedium, m.Criticality)

	_, err = uc.Create(ctx, steelRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialCreate_Validation(t *testing.T) {
	uc := usecase.NewMaterialUseCase(testutil.NewStore().Materials(), nil)
	ctx := context.Background()

	missing := steelRequest()
	missing.Unit = ""
	_, err := uc.Create(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := steelRequest()
	negative.CostPerUnit = decPtr(-1)
	_, err = uc.Create(ctx, negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badCriticality := steelRequest()
	badCriticality.Criticality = "urgent"
	_, err = uc.Create(ctx, badCriticality)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterialUpdate_CodeCollision(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewMaterialUseCase(store.Materials(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, steelRequest())
	require.NoError(t, err)
	cable, err := uc.Create(ctx, dto.CreateMaterialRequest{Code: "CBL01", Name: "ACSR Cable", Category: "Conductor", Unit: "m"})
	require.NoError(t, err)

	code := "STL01"
	_, err = uc.Update(ctx, cable.ID, dto.UpdateMaterialRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "ghost", dto.UpdateMaterialRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialReads_UseCacheAndWritesInvalidate(t *testing.T) {
	store := testutil.NewStore()
	cache := newMapCache()
	uc := usecase.NewMaterialUseCase(store.Materials(), cache)
	ctx := context.Background()

	m, err := uc.Create(ctx, steelRequest())
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	_, err = uc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	name := "Galvanized Steel"
	updated, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, []string{m.ID}, cache.invalidated)

	got, err := uc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
}

func TestMaterialDelete_ReferencedByLedger(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewMaterialUseCase(store.Materials(), nil)
	ctx := context.Background()

	m, err := uc.Create(ctx, steelRequest())
	require.NoError(t, err)
	require.NoError(t, store.Inventories().Create(ctx, &entity.Inventory{ID: "inv-1", MaterialID: m.ID, Location: "Delhi"}))

	assert.ErrorIs(t, uc.Delete(ctx, m.ID), domain.ErrReferenced)

	_, err = store.Inventories().Delete(ctx, "inv-1")
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, m.ID))
	assert.ErrorIs(t, uc.Delete(ctx, m.ID), domain.ErrNotFound)
}

func TestMaterialDelete_PullsFromVendors(t *testing.T) {
	store := testutil.NewStore()
	materials := usecase.NewMaterialUseCase(store.Materials(), nil)
	vendors := usecase.NewVendorUseCase(store.Vendors(), store.Materials())
	ctx := context.Background()

	m, err := materials.Create(ctx, steelRequest())
	require.NoError(t, err)
	v, err := vendors.Create(ctx, dto.CreateVendorRequest{Name: "Tata Steel", MaterialsSupplied: []string{m.ID, "ghost"}})
	require.NoError(t, err)
	assert.Equal(t, []string{m.ID}, v.MaterialsSupplied)

	require.NoError(t, materials.Delete(ctx, m.ID))
	v, err = vendors.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, v.MaterialsSupplied)
}

func TestMaterialListAndCostSummary(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewMaterialUseCase(store.Materials(), nil)
	ctx := context.Background()

	for _, req := range []dto.CreateMaterialRequest{
		{Code: "STL01", Name: "Steel Angle", Category: "Structural", Unit: "kg", CostPerUnit: decPtr(60)},
		{Code: "STL02", Name: "Steel Plate", Category: "Structural", Unit: "kg", CostPerUnit: decPtr(80)},
		{Code: "INS01", Name: "Disc Insulator", Category: "Insulator", Unit: "pcs", CostPerUnit: decPtr(450)},
	} {
		_, err := uc.Create(ctx, req)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, repository.MaterialFilter{Search: "steel"})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	summary, err := uc.CostSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "Insulator", summary[0].Category)
	structural := summary[1]
	assert.Equal(t, 2, structural.TotalMaterials)
	assert.True(t, structural.AvgCost.Equal(decimal.NewFromInt(70)))
	assert.True(t, structural.MinCost.Equal(decimal.NewFromInt(60)))
	assert.True(t, structural.MaxCost.Equal(decimal.NewFromInt(80)))
}
