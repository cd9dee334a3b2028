package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// DefaultScenario escenario que se envía cuando el cliente no indica uno.
const DefaultScenario = "default"

// consumptionWindow ventana de consumo histórico usada para el promedio mensual.
const consumptionWindow = 90 * 24 * time.Hour

var consumptionMonths = decimal.NewFromInt(3)

// OptimizationUseCase exporta el estado del ledger al optimizador externo y guarda sus
// recomendaciones como anotación (optimizedData) de las filas. La anotación es informativa:
// nunca participa en las precondiciones del ledger.
type OptimizationUseCase struct {
	invRepo      repository.InventoryRepository
	materialRepo repository.MaterialRepository
	movRepo      repository.InventoryMovementRepository
	pmRepo       repository.ProjectMaterialRepository
	optimizer    ports.InventoryOptimizer
	metrics      ports.LedgerMetrics
	now          func() time.Time
}

// NewOptimizationUseCase construye el caso de uso. metrics puede ser nil.
func NewOptimizationUseCase(
	invRepo repository.InventoryRepository,
	materialRepo repository.MaterialRepository,
	movRepo repository.InventoryMovementRepository,
	pmRepo repository.ProjectMaterialRepository,
	optimizer ports.InventoryOptimizer,
	metrics ports.LedgerMetrics,
) *OptimizationUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &OptimizationUseCase{
		invRepo:      invRepo,
		materialRepo: materialRepo,
		movRepo:      movRepo,
		pmRepo:       pmRepo,
		optimizer:    optimizer,
		metrics:      metrics,
		now:          time.Now,
	}
}

// exportedMaterial agregado por material de todas sus filas del ledger.
type exportedMaterial struct {
	input        dto.OptimizerMaterialInput
	inventoryIDs []string
}

// Run ejecuta una corrida completa: exportar, llamar al optimizador y aplicar.
// Las escrituras no son transaccionales entre filas: si una falla, las anteriores quedan aplicadas.
func (uc *OptimizationUseCase) Run(ctx context.Context, scenario string) (*dto.OptimizeInventoryResponse, error) {
	if scenario == "" {
		scenario = DefaultScenario
	}
	exported, err := uc.export(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.OptimizeInventoryResponse{Scenario: scenario, Exported: len(exported), Unmatched: []string{}}
	if len(exported) == 0 {
		log.Info().Str("scenario", scenario).Msg("optimización: ledger vacío, nada que exportar")
		return out, nil
	}

	req := dto.OptimizerRequest{SimulationScenario: scenario, Materials: make([]dto.OptimizerMaterialInput, 0, len(exported))}
	for _, e := range exported {
		req.Materials = append(req.Materials, e.input)
	}
	start := time.Now()
	result, err := uc.optimizer.Optimize(ctx, req)
	uc.metrics.OptimizerRequest(time.Since(start), err)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}
	if result.Scenario != "" {
		out.Scenario = result.Scenario
	}

	fold := cases.Fold()
	// Los nombres no son únicos en el catálogo: un nombre puede cubrir varios materiales.
	byName := make(map[string][]string, len(exported))
	for _, e := range exported {
		key := fold.String(e.input.Name)
		byName[key] = append(byName[key], e.inventoryIDs...)
	}
	stamp := uc.now().UTC()
	for _, rec := range result.OptimizedInventory {
		targets, ok := byName[fold.String(rec.Name)]
		if !ok {
			out.Unmatched = append(out.Unmatched, rec.Name)
			continue
		}
		data := &entity.OptimizedData{
			RecommendedReorderPoint: rec.RecommendedReorderPoint,
			OptimalStockLevel:       rec.OptimalStockLevel,
			SafetyStock:             rec.SafetyStock,
			Comment:                 rec.Comment,
			PriceTrendInfo:          rec.PriceTrendInfo,
			LastOptimizationDate:    stamp,
			Scenario:                out.Scenario,
		}
		for _, invID := range targets {
			if err := uc.invRepo.SetOptimizedData(ctx, invID, data); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// La fila se eliminó entre la exportación y la escritura.
					continue
				}
				log.Error().Err(err).Str("inventory_id", invID).Int("applied", out.Applied).
					Msg("optimización: error guardando anotación, corrida interrumpida")
				return nil, err
			}
			out.Applied++
		}
	}

	log.Info().
		Str("scenario", out.Scenario).
		Int("exported", out.Exported).
		Int("applied", out.Applied).
		Int("unmatched", len(out.Unmatched)).
		Msg("optimización aplicada")
	return out, nil
}

// export agrega el ledger por material: stock disponible sumado entre ubicaciones, consumo
// mensual promedio (OUT de los últimos 90 días / 3) y demanda pendiente de las asignaciones.
func (uc *OptimizationUseCase) export(ctx context.Context) ([]*exportedMaterial, error) {
	rows, err := uc.invRepo.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	materials, err := uc.materialRepo.List(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}
	materialByID := make(map[string]*entity.Material, len(materials))
	for _, m := range materials {
		materialByID[m.ID] = m
	}
	consumption, err := uc.movRepo.ConsumptionByMaterial(ctx, uc.now().Add(-consumptionWindow))
	if err != nil {
		return nil, err
	}
	demand, err := uc.pmRepo.OutstandingDemandByMaterial(ctx)
	if err != nil {
		return nil, err
	}

	byMaterial := make(map[string]*exportedMaterial)
	for _, inv := range rows {
		e, ok := byMaterial[inv.MaterialID]
		if !ok {
			m := materialByID[inv.MaterialID]
			if m == nil {
				continue
			}
			criticality := m.Criticality
			if criticality == "" {
				criticality = entity.CriticalityMedium
			}
			e = &exportedMaterial{input: dto.OptimizerMaterialInput{
				Name:                    m.Name,
				CurrentStock:            decimal.Zero,
				AvgMonthlyConsumption:   consumption[m.ID].Div(consumptionMonths).Round(2),
				ForecastDemandNextMonth: demand[m.ID],
				LeadTimeDays:            m.LeadTimeDays,
				CostPerUnit:             m.CostPerUnit,
				Criticality:             criticality,
			}}
			byMaterial[inv.MaterialID] = e
		}
		e.input.CurrentStock = e.input.CurrentStock.Add(inv.AvailableQty)
		e.inventoryIDs = append(e.inventoryIDs, inv.ID)
	}

	out := make([]*exportedMaterial, 0, len(byMaterial))
	for _, e := range byMaterial {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].input.Name < out[j].input.Name })
	return out, nil
}
