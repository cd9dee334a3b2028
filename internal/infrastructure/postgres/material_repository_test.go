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

type MaterialRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    *MaterialRepo
	context context.Context
}

func (suite *MaterialRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewMaterialRepository(mock)
	suite.context = context.Background()
}

func (suite *MaterialRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMaterialRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MaterialRepoTestSuite))
}

func (suite *MaterialRepoTestSuite) TestCreate_DuplicateCode() {
	now := time.Now()
	m := &entity.Material{ID: "mat-1", Code: "STL01", Name: "Steel", Category: "Structural", Unit: "kg",
		CostPerUnit: decimal.NewFromInt(55), Criticality: entity.CriticalityHigh, CreatedAt: now, UpdatedAt: now}
	suite.mock.ExpectExec(`INSERT INTO materials`).
		WithArgs(anyArgs(14)...).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "materials_code_key"})

	err := suite.repo.Create(suite.context, m)
	assert.ErrorIs(suite.T(), err, domain.ErrDuplicate)
}

func (suite *MaterialRepoTestSuite) TestDelete_Referenced() {
	suite.mock.ExpectExec(`DELETE FROM materials WHERE id = \$1`).
		WithArgs("mat-1").
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})

	ok, err := suite.repo.Delete(suite.context, "mat-1")
	assert.False(suite.T(), ok)
	assert.ErrorIs(suite.T(), err, domain.ErrReferenced)
}

func (suite *MaterialRepoTestSuite) TestDelete_PullsFromVendors() {
	suite.mock.ExpectExec(`array_remove\(materials_supplied, \$1\)`).
		WithArgs("mat-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	ok, err := suite.repo.Delete(suite.context, "mat-1")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
}

func (suite *MaterialRepoTestSuite) TestList_EscapesSearch() {
	cols := []string{"id", "code", "name", "category", "unit", "cost_per_unit", "description",
		"supplier_name", "supplier_contact", "supplier_address", "lead_time_days", "criticality", "created_at", "updated_at"}
	now := time.Now()
	suite.mock.ExpectQuery(`WHERE category = \$1 AND name ILIKE \$2`).
		WithArgs("Conductor", `%50\%%`).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			"mat-2", "ACSR50", "ACSR 50% Al", "Conductor", "m", decimal.NewFromInt(3), "",
			"Hindalco", "", "", 14, entity.CriticalityMedium, now, now,
		))

	list, err := suite.repo.List(suite.context, repository.MaterialFilter{Category: "Conductor", Search: "50%"})
	assert.NoError(suite.T(), err)
	if assert.Len(suite.T(), list, 1) {
		assert.Equal(suite.T(), "Hindalco", list[0].SupplierInfo.Name)
		assert.Equal(suite.T(), 14, list[0].LeadTimeDays)
	}
}
