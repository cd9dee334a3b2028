// Package testutil repositorios en memoria para tests de casos de uso y handlers.
// Reproducen la semántica observable de los repositorios PostgreSQL: (nil, nil) cuando no
// existe, ErrDuplicate/ErrReferenced/ErrNotFound donde la BD aplicaría la restricción y
// mutaciones de stock condicionales.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado compartido por todos los repositorios en memoria.
// Las filas guardadas nunca se mutan en su lugar: cada escritura reemplaza el puntero,
// lo que permite que TxRunner haga rollback restaurando copias superficiales de los mapas.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	materials        map[string]*entity.Material
	inventories      map[string]*entity.Inventory
	movements        []*entity.InventoryMovement
	projects         map[string]*entity.Project
	assets           map[string]*entity.Asset
	projectMaterials map[string]*entity.ProjectMaterial
	vendors          map[string]*entity.Vendor
	orders           map[string]*entity.ProcurementOrder
	reports          map[string]*entity.Report
	users            map[string]*entity.User

	// TransientFailures hace que las próximas N llamadas a ApplyStock devuelvan ErrTransient.
	TransientFailures int
	// ApplyStockCalls cuenta las llamadas a ApplyStock (incluidas las fallidas).
	ApplyStockCalls int
	// TxTransientFailures hace que las próximas N transacciones fallen con ErrTransient
	// antes de ejecutar su función.
	TxTransientFailures int
	// TxCalls cuenta las transacciones iniciadas.
	TxCalls int
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		materials:        map[string]*entity.Material{},
		inventories:      map[string]*entity.Inventory{},
		projects:         map[string]*entity.Project{},
		assets:           map[string]*entity.Asset{},
		projectMaterials: map[string]*entity.ProjectMaterial{},
		vendors:          map[string]*entity.Vendor{},
		orders:           map[string]*entity.ProcurementOrder{},
		reports:          map[string]*entity.Report{},
		users:            map[string]*entity.User{},
	}
}

// Repositorios.
func (s *Store) Materials() *MaterialRepo                 { return &MaterialRepo{s: s} }
func (s *Store) Inventories() *InventoryRepo              { return &InventoryRepo{s: s} }
func (s *Store) Movements() *MovementRepo                 { return &MovementRepo{s: s} }
func (s *Store) Projects() *ProjectRepo                   { return &ProjectRepo{s: s} }
func (s *Store) Assets() *AssetRepo                       { return &AssetRepo{s: s} }
func (s *Store) ProjectMaterials() *ProjectMaterialRepo   { return &ProjectMaterialRepo{s: s} }
func (s *Store) Vendors() *VendorRepo                     { return &VendorRepo{s: s} }
func (s *Store) ProcurementOrders() *ProcurementOrderRepo { return &ProcurementOrderRepo{s: s} }
func (s *Store) Reports() *ReportRepo                     { return &ReportRepo{s: s} }
func (s *Store) Users() *UserRepo                         { return &UserRepo{s: s} }
func (s *Store) TxRunner() *TxRunner                      { return &TxRunner{s: s} }

// AllMovements copia del diario en orden de inserción.
func (s *Store) AllMovements() []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.InventoryMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

func (s *Store) materialRef(id string) *entity.MaterialRef {
	m, ok := s.materials[id]
	if !ok {
		return nil
	}
	return &entity.MaterialRef{ID: m.ID, Code: m.Code, Name: m.Name, Category: m.Category, Unit: m.Unit, CostPerUnit: m.CostPerUnit}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ─── Materials ───────────────────────────────────────────────────────────────

type MaterialRepo struct{ s *Store }

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.materials {
		if existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *MaterialRepo) GetByCode(_ context.Context, code string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.materials {
		if m.Code == code {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MaterialRepo) List(_ context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(filter.Search)
	var out []*entity.Material
	for _, m := range r.s.materials {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.materials {
		if existing.ID != m.ID && existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *MaterialRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[id]; !ok {
		return false, nil
	}
	for _, inv := range r.s.inventories {
		if inv.MaterialID == id {
			return false, domain.ErrReferenced
		}
	}
	for _, pm := range r.s.projectMaterials {
		if pm.MaterialID == id {
			return false, domain.ErrReferenced
		}
	}
	for _, o := range r.s.orders {
		if o.MaterialID == id {
			return false, domain.ErrReferenced
		}
	}
	for vid, v := range r.s.vendors {
		kept := make([]string, 0, len(v.MaterialsSupplied))
		for _, mid := range v.MaterialsSupplied {
			if mid != id {
				kept = append(kept, mid)
			}
		}
		if len(kept) != len(v.MaterialsSupplied) {
			c := *v
			c.MaterialsSupplied = kept
			r.s.vendors[vid] = &c
		}
	}
	delete(r.s.materials, id)
	return true, nil
}

func (r *MaterialRepo) CostSummary(_ context.Context) ([]entity.MaterialCostSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byCategory := map[string]*entity.MaterialCostSummary{}
	sums := map[string]decimal.Decimal{}
	for _, m := range r.s.materials {
		s, ok := byCategory[m.Category]
		if !ok {
			s = &entity.MaterialCostSummary{Category: m.Category, MinCost: m.CostPerUnit, MaxCost: m.CostPerUnit}
			byCategory[m.Category] = s
		}
		s.TotalMaterials++
		sums[m.Category] = sums[m.Category].Add(m.CostPerUnit)
		if m.CostPerUnit.LessThan(s.MinCost) {
			s.MinCost = m.CostPerUnit
		}
		if m.CostPerUnit.GreaterThan(s.MaxCost) {
			s.MaxCost = m.CostPerUnit
		}
	}
	out := make([]entity.MaterialCostSummary, 0, len(byCategory))
	for cat, s := range byCategory {
		s.AvgCost = sums[cat].Div(decimal.NewFromInt(int64(s.TotalMaterials)))
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ─── Inventory ledger ────────────────────────────────────────────────────────

type InventoryRepo struct{ s *Store }

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

func (r *InventoryRepo) withMaterial(inv *entity.Inventory) *entity.Inventory {
	c := *inv
	c.Material = r.s.materialRef(inv.MaterialID)
	if inv.OptimizedData != nil {
		d := *inv.OptimizedData
		c.OptimizedData = &d
	}
	return &c
}

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[inv.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	if inv.AvailableQty.IsNegative() || inv.ReservedQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, existing := range r.s.inventories {
		if existing.MaterialID == inv.MaterialID && existing.Location == inv.Location {
			return domain.ErrDuplicate
		}
	}
	c := *inv
	c.Material = nil
	r.s.inventories[inv.ID] = &c
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	return r.withMaterial(inv), nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) List(_ context.Context, filter repository.InventoryFilter) ([]*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range r.s.inventories {
		if filter.MaterialID != "" && inv.MaterialID != filter.MaterialID {
			continue
		}
		if filter.Location != "" && !strings.EqualFold(inv.Location, filter.Location) {
			continue
		}
		out = append(out, r.withMaterial(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := "", ""
		if out[i].Material != nil {
			ni = out[i].Material.Name
		}
		if out[j].Material != nil {
			nj = out[j].Material.Name
		}
		if ni != nj {
			return ni < nj
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func (r *InventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.inventories[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.materials[inv.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	if inv.AvailableQty.IsNegative() || inv.ReservedQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, existing := range r.s.inventories {
		if existing.ID != inv.ID && existing.MaterialID == inv.MaterialID && existing.Location == inv.Location {
			return domain.ErrDuplicate
		}
	}
	c := *inv
	c.Material = nil
	c.OptimizedData = current.OptimizedData
	r.s.inventories[inv.ID] = &c
	return nil
}

func (r *InventoryRepo) Delete(_ context.Context, id string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.inventories, id)
	return r.withMaterial(inv), nil
}

// ApplyStock aplica la operación bajo el mutex: equivalente al UPDATE condicional.
func (r *InventoryRepo) ApplyStock(_ context.Context, id string, op entity.StockOperation, qty decimal.Decimal) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ApplyStockCalls++
	if r.s.TransientFailures > 0 {
		r.s.TransientFailures--
		return nil, domain.ErrTransient
	}
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *inv
	if err := c.Apply(op, qty); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()
	r.s.inventories[id] = &c
	return r.withMaterial(&c), nil
}

func (r *InventoryRepo) SetOptimizedData(_ context.Context, id string, data *entity.OptimizedData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c := *inv
	d := *data
	c.OptimizedData = &d
	r.s.inventories[id] = &c
	return nil
}

// ─── Movements ───────────────────────────────────────────────────────────────

type MovementRepo struct{ s *Store }

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *MovementRepo) ListByInventory(_ context.Context, inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.InventoryMovement
	// Más reciente primero: recorre el diario al revés.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].InventoryID == inventoryID {
			c := *r.s.movements[i]
			all = append(all, &c)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MovementRepo) ConsumptionByMaterial(_ context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, m := range r.s.movements {
		if m.Type == entity.MovementTypeOUT && !m.CreatedAt.Before(since) {
			out[m.MaterialID] = out[m.MaterialID].Add(m.Quantity)
		}
	}
	return out, nil
}

// ─── Projects ────────────────────────────────────────────────────────────────

type ProjectRepo struct{ s *Store }

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

func cloneProject(p *entity.Project) *entity.Project {
	c := *p
	c.AssetIDs = cloneStrings(p.AssetIDs)
	c.MaterialIDs = cloneStrings(p.MaterialIDs)
	return &c
}

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return cloneProject(p), nil
}

func (r *ProjectRepo) List(_ context.Context) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.projects[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneProject(p)
	c.AssetIDs = cloneStrings(current.AssetIDs)
	c.MaterialIDs = cloneStrings(current.MaterialIDs)
	r.s.projects[p.ID] = c
	return nil
}

func (r *ProjectRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return false, nil
	}
	delete(r.s.projects, id)
	return true, nil
}

func (r *ProjectRepo) AddAssetID(_ context.Context, projectID, assetID string) (bool, error) {
	return r.push(projectID, func(p *entity.Project) {
		if !p.HasAsset(assetID) {
			p.AssetIDs = append(p.AssetIDs, assetID)
		}
	})
}

func (r *ProjectRepo) RemoveAssetID(_ context.Context, projectID, assetID string) error {
	_, err := r.push(projectID, func(p *entity.Project) { p.AssetIDs = without(p.AssetIDs, assetID) })
	return err
}

func (r *ProjectRepo) AddMaterialID(_ context.Context, projectID, projectMaterialID string) (bool, error) {
	return r.push(projectID, func(p *entity.Project) {
		if !p.HasMaterial(projectMaterialID) {
			p.MaterialIDs = append(p.MaterialIDs, projectMaterialID)
		}
	})
}

func (r *ProjectRepo) RemoveMaterialID(_ context.Context, projectID, projectMaterialID string) error {
	_, err := r.push(projectID, func(p *entity.Project) { p.MaterialIDs = without(p.MaterialIDs, projectMaterialID) })
	return err
}

func (r *ProjectRepo) push(projectID string, mutate func(p *entity.Project)) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[projectID]
	if !ok {
		return false, nil
	}
	c := cloneProject(p)
	mutate(c)
	r.s.projects[projectID] = c
	return true, nil
}

func without(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ─── Assets ──────────────────────────────────────────────────────────────────

type AssetRepo struct{ s *Store }

var _ repository.AssetRepository = (*AssetRepo)(nil)

func (r *AssetRepo) Create(_ context.Context, a *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	r.s.assets[a.ID] = &c
	return nil
}

func (r *AssetRepo) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assets[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *AssetRepo) List(_ context.Context, filter repository.AssetFilter) ([]*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.s.assets {
		if filter.ProjectID != "" && a.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AssetRepo) Update(_ context.Context, a *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.assets[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *a
	c.ProjectID = current.ProjectID
	r.s.assets[a.ID] = &c
	return nil
}

func (r *AssetRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[id]; !ok {
		return false, nil
	}
	delete(r.s.assets, id)
	return true, nil
}

// ─── Project materials ───────────────────────────────────────────────────────

type ProjectMaterialRepo struct{ s *Store }

var _ repository.ProjectMaterialRepository = (*ProjectMaterialRepo)(nil)

func (r *ProjectMaterialRepo) withMaterial(pm *entity.ProjectMaterial) *entity.ProjectMaterial {
	c := *pm
	c.Material = r.s.materialRef(pm.MaterialID)
	return &c
}

func (r *ProjectMaterialRepo) Create(_ context.Context, pm *entity.ProjectMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[pm.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	c := *pm
	c.Material = nil
	r.s.projectMaterials[pm.ID] = &c
	return nil
}

func (r *ProjectMaterialRepo) GetByID(_ context.Context, id string) (*entity.ProjectMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pm, ok := r.s.projectMaterials[id]
	if !ok {
		return nil, nil
	}
	return r.withMaterial(pm), nil
}

func (r *ProjectMaterialRepo) List(_ context.Context, filter repository.ProjectMaterialFilter) ([]*entity.ProjectMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProjectMaterial
	for _, pm := range r.s.projectMaterials {
		if filter.ProjectID != "" && pm.ProjectID != filter.ProjectID {
			continue
		}
		out = append(out, r.withMaterial(pm))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectMaterialRepo) Update(_ context.Context, pm *entity.ProjectMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projectMaterials[pm.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *pm
	c.Material = nil
	r.s.projectMaterials[pm.ID] = &c
	return nil
}

func (r *ProjectMaterialRepo) Delete(_ context.Context, id string) (*entity.ProjectMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pm, ok := r.s.projectMaterials[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.projectMaterials, id)
	return r.withMaterial(pm), nil
}

func (r *ProjectMaterialRepo) OutstandingDemandByMaterial(_ context.Context) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, pm := range r.s.projectMaterials {
		out[pm.MaterialID] = out[pm.MaterialID].Add(pm.OutstandingQty())
	}
	return out, nil
}

// ─── Vendors ─────────────────────────────────────────────────────────────────

type VendorRepo struct{ s *Store }

var _ repository.VendorRepository = (*VendorRepo)(nil)

func cloneVendor(v *entity.Vendor) *entity.Vendor {
	c := *v
	c.MaterialsSupplied = cloneStrings(v.MaterialsSupplied)
	return &c
}

func (r *VendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vendors[v.ID] = cloneVendor(v)
	return nil
}

func (r *VendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, nil
	}
	return cloneVendor(v), nil
}

func (r *VendorRepo) List(_ context.Context) ([]*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Vendor, 0, len(r.s.vendors))
	for _, v := range r.s.vendors {
		out = append(out, cloneVendor(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *VendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vendors[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.vendors[v.ID] = cloneVendor(v)
	return nil
}

func (r *VendorRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vendors[id]; !ok {
		return false, nil
	}
	for _, o := range r.s.orders {
		if o.VendorID == id {
			return false, domain.ErrReferenced
		}
	}
	delete(r.s.vendors, id)
	return true, nil
}

// ─── Procurement orders ──────────────────────────────────────────────────────

type ProcurementOrderRepo struct{ s *Store }

var _ repository.ProcurementOrderRepository = (*ProcurementOrderRepo)(nil)

func (r *ProcurementOrderRepo) Create(_ context.Context, o *entity.ProcurementOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[o.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.vendors[o.VendorID]; !ok {
		return domain.ErrNotFound
	}
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *ProcurementOrderRepo) GetByID(_ context.Context, id string) (*entity.ProcurementOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *ProcurementOrderRepo) List(_ context.Context, filter repository.ProcurementOrderFilter) ([]*entity.ProcurementOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProcurementOrder
	for _, o := range r.s.orders {
		if filter.ProjectID != "" && o.ProjectID != filter.ProjectID {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *ProcurementOrderRepo) Update(_ context.Context, o *entity.ProcurementOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.vendors[o.VendorID]; !ok {
		return domain.ErrNotFound
	}
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *ProcurementOrderRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return false, nil
	}
	delete(r.s.orders, id)
	return true, nil
}

// ─── Reports ─────────────────────────────────────────────────────────────────

type ReportRepo struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepo)(nil)

func (r *ReportRepo) Create(_ context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *rep
	r.s.reports[rep.ID] = &c
	return nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	c := *rep
	return &c, nil
}

func (r *ReportRepo) List(_ context.Context) ([]*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Report, 0, len(r.s.reports))
	for _, rep := range r.s.reports {
		c := *rep
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReportRepo) Update(_ context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *rep
	r.s.reports[rep.ID] = &c
	return nil
}

func (r *ReportRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[id]; !ok {
		return false, nil
	}
	delete(r.s.reports, id)
	return true, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.ActiveProjects = cloneStrings(u.ActiveProjects)
	if u.OTPExpiresAt != nil {
		t := *u.OTPExpiresAt
		c.OTPExpiresAt = &t
	}
	return &c
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}
