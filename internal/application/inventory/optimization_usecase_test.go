package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOptimizer struct {
	got  *dto.OptimizerRequest
	resp *dto.OptimizerResponse
	err  error
}

func (f *fakeOptimizer) Optimize(_ context.Context, req dto.OptimizerRequest) (*dto.OptimizerResponse, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type optimizationFixture struct {
	store  *testutil.Store
	ledger *inventory.LedgerUseCase
	delhi  string
	mumbai string
	cable  string
}

func newOptimizationFixture(t *testing.T) *optimizationFixture {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewStore()
	for _, m := range []*entity.Material{
		{ID: "mat-steel", Code: "STL01", Name: "Steel", Category: "Structural", Unit: "kg", CostPerUnit: decimal.NewFromInt(65), LeadTimeDays: 14, CreatedAt: time.Now()},
		{ID: "mat-cable", Code: "CBL01", Name: "ACSR Cable", Category: "Conductor", Unit: "m", CostPerUnit: decimal.NewFromInt(120), LeadTimeDays: 30, Criticality: entity.CriticalityHigh, CreatedAt: time.Now()},
	} {
		require.NoError(t, store.Materials().Create(ctx, m))
	}
	ledger := inventory.NewLedgerUseCase(store.TxRunner(), store.Inventories(), store.Movements(), store.Materials(), nil)
	mk := func(material, location string, qty int64) string {
		res, err := ledger.Create(ctx, "user-1", dto.CreateInventoryRequest{Material: material, Location: location, AvailableQty: decimal.NewFromInt(qty)})
		require.NoError(t, err)
		return res.ID
	}
	return &optimizationFixture{
		store:  store,
		ledger: ledger,
		delhi:  mk("mat-steel", "Delhi", 1000),
		mumbai: mk("mat-steel", "Mumbai", 500),
		cable:  mk("mat-cable", "Delhi", 200),
	}
}

func (f *optimizationFixture) useCase(opt *fakeOptimizer) *inventory.OptimizationUseCase {
	return inventory.NewOptimizationUseCase(
		f.store.Inventories(), f.store.Materials(), f.store.Movements(), f.store.ProjectMaterials(), opt, nil,
	)
}

func TestOptimizationRun_ExportsAggregatedMaterials(t *testing.T) {
	f := newOptimizationFixture(t)
	ctx := context.Background()
	_, err := f.ledger.Decrease(ctx, "user-1", f.delhi, decimal.NewFromInt(300))
	require.NoError(t, err)

	opt := &fakeOptimizer{resp: &dto.OptimizerResponse{Scenario: "monsoon"}}
	res, err := f.useCase(opt).Run(ctx, "monsoon")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Exported)

	require.NotNil(t, opt.got)
	assert.Equal(t, "monsoon", opt.got.SimulationScenario)
	require.Len(t, opt.got.Materials, 2)
	// Orden por nombre: "ACSR Cable" antes que "Steel".
	cable, steel := opt.got.Materials[0], opt.got.Materials[1]
	assert.Equal(t, "ACSR Cable", cable.Name)
	assert.Equal(t, "high", cable.Criticality)
	assert.Equal(t, 30, cable.LeadTimeDays)
	assert.Equal(t, "Steel", steel.Name)
	assert.Equal(t, "medium", steel.Criticality)
	assert.True(t, steel.CurrentStock.Equal(decimal.NewFromInt(1200)), "current_stock=%s", steel.CurrentStock)
	assert.True(t, steel.AvgMonthlyConsumption.Equal(decimal.NewFromInt(100)), "avg=%s", steel.AvgMonthlyConsumption)
}

func TestOptimizationRun_AppliesByCaseFoldedName(t *testing.T) {
	f := newOptimizationFixture(t)
	ctx := context.Background()
	opt := &fakeOptimizer{resp: &dto.OptimizerResponse{
		Scenario: "default",
		OptimizedInventory: []dto.OptimizerRecommendation{
			{Name: "STEEL", RecommendedReorderPoint: decimal.NewFromInt(400), OptimalStockLevel: decimal.NewFromInt(1500), SafetyStock: decimal.NewFromInt(200), Comment: "reponer antes del monzón", PriceTrendInfo: "alza"},
			{Name: "Porcelain Insulator", RecommendedReorderPoint: decimal.NewFromInt(10)},
		},
	}}

	res, err := f.useCase(opt).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultScenario, opt.got.SimulationScenario)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, []string{"Porcelain Insulator"}, res.Unmatched)

	for _, id := range []string{f.delhi, f.mumbai} {
		data, err := f.ledger.GetOptimization(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.True(t, data.OptimalStockLevel.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, "reponer antes del monzón", data.Comment)
		assert.Equal(t, "default", data.Scenario)
		assert.False(t, data.LastOptimizationDate.IsZero())
	}
	data, err := f.ledger.GetOptimization(ctx, f.cable)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestOptimizationRun_AnnotationDoesNotAffectLedger(t *testing.T) {
	f := newOptimizationFixture(t)
	ctx := context.Background()
	opt := &fakeOptimizer{resp: &dto.OptimizerResponse{OptimizedInventory: []dto.OptimizerRecommendation{
		{Name: "Steel", SafetyStock: decimal.NewFromInt(5000)},
	}}}
	_, err := f.useCase(opt).Run(ctx, "default")
	require.NoError(t, err)

	res, err := f.ledger.Reserve(ctx, "user-1", f.delhi, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, res.AvailableQty.IsZero())
	require.NotNil(t, res.OptimizedData)
	assert.True(t, res.OptimizedData.SafetyStock.Equal(decimal.NewFromInt(5000)))
}

func TestOptimizationRun_UpstreamFailure(t *testing.T) {
	f := newOptimizationFixture(t)
	opt := &fakeOptimizer{err: errors.New("connection refused")}

	_, err := f.useCase(opt).Run(context.Background(), "default")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	data, err := f.ledger.GetOptimization(context.Background(), f.delhi)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestOptimizationRun_EmptyLedgerSkipsOptimizer(t *testing.T) {
	store := testutil.NewStore()
	opt := &fakeOptimizer{}
	uc := inventory.NewOptimizationUseCase(store.Inventories(), store.Materials(), store.Movements(), store.ProjectMaterials(), opt, nil)

	res, err := uc.Run(context.Background(), "default")
	require.NoError(t, err)
	assert.Zero(t, res.Exported)
	assert.Nil(t, opt.got)
}
