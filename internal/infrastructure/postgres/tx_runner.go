package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.ProjectTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ProjectTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryRepository(tx), NewInventoryMovementRepository(tx))
	})
}

// RunProject inicia una transacción con los repos del agregado Project.
func (r *TxRunner) RunProject(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	assetRepo repository.AssetRepository,
	pmRepo repository.ProjectMaterialRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewProjectRepository(tx), NewAssetRepository(tx), NewProjectMaterialRepository(tx))
	})
}

// inTx los errores reintentables (serialización, deadlock, conexión) salen como domain.ErrTransient.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classify(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return classify(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
