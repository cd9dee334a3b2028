package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anyArgs n comodines, uno por parámetro posicional.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO inventory_movements`).
		WithArgs(anyArgs(11)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = NewTxRunner(mock).Run(context.Background(), func(_ repository.InventoryRepository, movRepo repository.InventoryMovementRepository) error {
		return movRepo.Create(context.Background(), &entity.InventoryMovement{
			InventoryID: "inv-1", MaterialID: "mat-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollsBackAndMarksTransient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE inventories`).
		WithArgs("inv-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: codeSerializationFailure})
	mock.ExpectRollback()

	err = NewTxRunner(mock).Run(context.Background(), func(invRepo repository.InventoryRepository, _ repository.InventoryMovementRepository) error {
		_, err := invRepo.ApplyStock(context.Background(), "inv-1", entity.StockReserve, decimal.NewFromInt(1))
		return err
	})
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_DomainErrorIsNotTransient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = NewTxRunner(mock).RunProject(context.Background(), func(repository.ProjectRepository, repository.AssetRepository, repository.ProjectMaterialRepository) error {
		return domain.ErrNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrTransient))
	assert.NoError(t, mock.ExpectationsWereMet())
}
