package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var inventoryCols = []string{
	"id", "material_id", "location", "available_qty", "reserved_qty", "optimized_data",
	"created_at", "updated_at",
	"id", "code", "name", "category", "unit", "cost_per_unit",
}

type InventoryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    *InventoryRepo
	context context.Context
	now     time.Time
}

func (suite *InventoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewInventoryRepository(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *InventoryRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInventoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepoTestSuite))
}

func (suite *InventoryRepoTestSuite) row(available, reserved int64, optimized []byte) *pgxmock.Rows {
	return pgxmock.NewRows(inventoryCols).AddRow(
		"inv-1", "mat-1", "Delhi", decimal.NewFromInt(available), decimal.NewFromInt(reserved), optimized,
		suite.now, suite.now,
		"mat-1", "STL01", "Steel", "Structural", "kg", decimal.NewFromInt(55),
	)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_ReserveSuccess() {
	suite.mock.ExpectQuery(`UPDATE inventories SET available_qty = available_qty - \$2, reserved_qty = reserved_qty \+ \$2`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnRows(suite.row(700, 300, nil))

	inv, err := suite.repo.ApplyStock(suite.context, "inv-1", entity.StockReserve, decimal.NewFromInt(300))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), inv.AvailableQty.Equal(decimal.NewFromInt(700)))
	assert.True(suite.T(), inv.ReservedQty.Equal(decimal.NewFromInt(300)))
	assert.Equal(suite.T(), "STL01", inv.Material.Code)
	assert.Nil(suite.T(), inv.OptimizedData)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_DecreaseGuardedByAvailable() {
	suite.mock.ExpectQuery(`WHERE id = \$1 AND available_qty >= \$2`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(inventoryCols))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("inv-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.repo.ApplyStock(suite.context, "inv-1", entity.StockDecrease, decimal.NewFromInt(1))
	assert.ErrorIs(suite.T(), err, domain.ErrInsufficientStock)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_ReleaseGuardedByReserved() {
	suite.mock.ExpectQuery(`WHERE id = \$1 AND reserved_qty >= \$2`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(inventoryCols))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("inv-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.repo.ApplyStock(suite.context, "inv-1", entity.StockRelease, decimal.NewFromInt(5))
	assert.ErrorIs(suite.T(), err, domain.ErrInsufficientReservation)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_NotFound() {
	suite.mock.ExpectQuery(`UPDATE inventories SET available_qty = available_qty \+ \$2`).
		WithArgs("missing", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(inventoryCols))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := suite.repo.ApplyStock(suite.context, "missing", entity.StockIncrease, decimal.NewFromInt(5))
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_CheckConstraintMapsToInsufficient() {
	suite.mock.ExpectQuery(`UPDATE inventories`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: codeCheckViolation, ConstraintName: availableCheck})

	_, err := suite.repo.ApplyStock(suite.context, "inv-1", entity.StockReserve, decimal.NewFromInt(5))
	assert.ErrorIs(suite.T(), err, domain.ErrInsufficientStock)
}

func (suite *InventoryRepoTestSuite) TestApplyStock_RejectsNonPositive() {
	_, err := suite.repo.ApplyStock(suite.context, "inv-1", entity.StockIncrease, decimal.Zero)
	assert.ErrorIs(suite.T(), err, domain.ErrInvalidInput)
}

func (suite *InventoryRepoTestSuite) TestGetByID_DecodesOptimizedData() {
	raw := []byte(`{"recommendedReorderPoint":120,"optimalStockLevel":900,"safetyStock":80,"comment":"ok","scenario":"monsoon"}`)
	suite.mock.ExpectQuery(`FROM inventories i\s+JOIN materials m ON m.id = i.material_id WHERE i.id = \$1`).
		WithArgs("inv-1").
		WillReturnRows(suite.row(1000, 0, raw))

	inv, err := suite.repo.GetByID(suite.context, "inv-1")
	assert.NoError(suite.T(), err)
	if assert.NotNil(suite.T(), inv.OptimizedData) {
		assert.Equal(suite.T(), "monsoon", inv.OptimizedData.Scenario)
		assert.True(suite.T(), inv.OptimizedData.OptimalStockLevel.Equal(decimal.NewFromInt(900)))
	}
}

func (suite *InventoryRepoTestSuite) TestGetByID_Missing() {
	suite.mock.ExpectQuery(`WHERE i.id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(inventoryCols))

	inv, err := suite.repo.GetByID(suite.context, "missing")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), inv)
}

func (suite *InventoryRepoTestSuite) TestCreate_DuplicatePair() {
	inv := &entity.Inventory{ID: "inv-2", MaterialID: "mat-1", Location: "Delhi", CreatedAt: suite.now, UpdatedAt: suite.now}
	suite.mock.ExpectExec(`INSERT INTO inventories`).
		WithArgs(inv.ID, inv.MaterialID, inv.Location, inv.AvailableQty, inv.ReservedQty, inv.CreatedAt, inv.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "inventories_material_location_key"})

	err := suite.repo.Create(suite.context, inv)
	assert.ErrorIs(suite.T(), err, domain.ErrDuplicate)
}

func (suite *InventoryRepoTestSuite) TestList_FiltersByMaterialAndLocation() {
	suite.mock.ExpectQuery(`WHERE i.material_id = \$1 AND lower\(i.location\) = lower\(\$2\)`).
		WithArgs("mat-1", "delhi").
		WillReturnRows(suite.row(10, 2, nil))

	list, err := suite.repo.List(suite.context, repository.InventoryFilter{MaterialID: "mat-1", Location: "delhi"})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list, 1)
}

func (suite *InventoryRepoTestSuite) TestSetOptimizedData_RowGone() {
	suite.mock.ExpectExec(`UPDATE inventories SET optimized_data = \$2`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetOptimizedData(suite.context, "inv-1", &entity.OptimizedData{Scenario: "default"})
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *InventoryRepoTestSuite) TestDelete_ReturnsRow() {
	suite.mock.ExpectQuery(`DELETE FROM inventories WHERE id = \$1`).
		WithArgs("inv-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "material_id", "location", "available_qty", "reserved_qty", "created_at", "updated_at"}).
			AddRow("inv-1", "mat-1", "Delhi", decimal.NewFromInt(5), decimal.NewFromInt(3), suite.now, suite.now))

	inv, err := suite.repo.Delete(suite.context, "inv-1")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), inv.ReservedQty.Equal(decimal.NewFromInt(3)))
}
