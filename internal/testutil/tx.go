package testutil

import (
	"context"
	"maps"

	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// TxRunner transacciones en memoria: serializa y, si fn falla, restaura el estado previo.
type TxRunner struct {
	s *Store
}

var (
	_ inventory.TxRunner      = (*TxRunner)(nil)
	_ usecase.ProjectTxRunner = (*TxRunner)(nil)
)

func (t *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return t.inTx(func() error { return fn(t.s.Inventories(), t.s.Movements()) })
}

func (t *TxRunner) RunProject(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	assetRepo repository.AssetRepository,
	pmRepo repository.ProjectMaterialRepository,
) error) error {
	return t.inTx(func() error { return fn(t.s.Projects(), t.s.Assets(), t.s.ProjectMaterials()) })
}

type snapshot struct {
	inventories      map[string]*entity.Inventory
	movements        []*entity.InventoryMovement
	projects         map[string]*entity.Project
	assets           map[string]*entity.Asset
	projectMaterials map[string]*entity.ProjectMaterial
}

func (t *TxRunner) inTx(fn func() error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.TxCalls++
	if t.s.TxTransientFailures > 0 {
		t.s.TxTransientFailures--
		return domain.ErrTransient
	}

	t.s.mu.Lock()
	snap := snapshot{
		inventories:      maps.Clone(t.s.inventories),
		movements:        append([]*entity.InventoryMovement(nil), t.s.movements...),
		projects:         maps.Clone(t.s.projects),
		assets:           maps.Clone(t.s.assets),
		projectMaterials: maps.Clone(t.s.projectMaterials),
	}
	t.s.mu.Unlock()

	if err := fn(); err != nil {
		t.s.mu.Lock()
		t.s.inventories = snap.inventories
		t.s.movements = snap.movements
		t.s.projects = snap.projects
		t.s.assets = snap.assets
		t.s.projectMaterials = snap.projectMaterials
		t.s.mu.Unlock()
		return err
	}
	return nil
}
