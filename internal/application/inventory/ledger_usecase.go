package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerUseCase casos de uso del ledger de inventario: alta, lectura, edición, borrado y
// las cuatro mutaciones de stock (increase, decrease, reserve, release).
//
// Cada mutación de stock es una actualización condicional atómica en la BD más su
// movimiento en el diario, dentro de la misma transacción. Dos reservas concurrentes
// sobre la misma fila no pueden sobre-reservar: la segunda ve el contador ya descontado.
type LedgerUseCase struct {
	txRunner     TxRunner
	invRepo      repository.InventoryRepository
	movRepo      repository.InventoryMovementRepository
	materialRepo repository.MaterialRepository
	metrics      ports.LedgerMetrics
	retry        RetryPolicy
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	materialRepo repository.MaterialRepository,
	metrics ports.LedgerMetrics,
) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		invRepo:      invRepo,
		movRepo:      movRepo,
		materialRepo: materialRepo,
		metrics:      metrics,
		retry:        DefaultRetryPolicy,
		now:          time.Now,
	}
}

// WithRetryPolicy reemplaza la política de reintentos (tests).
func (uc *LedgerUseCase) WithRetryPolicy(p RetryPolicy) *LedgerUseCase {
	uc.retry = p
	return uc
}

// Create da de alta una fila (material, ubicación). ErrNotFound si el material no existe,
// ErrDuplicate si ya hay fila para el par.
func (uc *LedgerUseCase) Create(ctx context.Context, userID string, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Material == "" || in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	reserved := decimal.Zero
	if in.ReservedQty != nil {
		reserved = *in.ReservedQty
	}
	if in.AvailableQty.IsNegative() || reserved.IsNegative() ||
		!entity.ValidScale(in.AvailableQty) || !entity.ValidScale(reserved) {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(ctx, in.Material)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	inv := &entity.Inventory{
		ID:           uuid.New().String(),
		MaterialID:   material.ID,
		Location:     in.Location,
		AvailableQty: in.AvailableQty,
		ReservedQty:  reserved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.retry.Do(ctx, "create", func() error {
		return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.InventoryMovementRepository) error {
			if err := invRepo.Create(ctx, inv); err != nil {
				return err
			}
			return movRepo.Create(ctx, &entity.InventoryMovement{
				ID:              uuid.New().String(),
				InventoryID:     inv.ID,
				MaterialID:      inv.MaterialID,
				Type:            entity.MovementTypeCREATE,
				Quantity:        inv.TotalQty(),
				AvailableBefore: decimal.Zero,
				AvailableAfter:  inv.AvailableQty,
				ReservedBefore:  decimal.Zero,
				ReservedAfter:   inv.ReservedQty,
				CreatedBy:       userID,
				CreatedAt:       now,
			})
		})
	})
	if err != nil {
		uc.metrics.LedgerOperation("create", outcomeOf(err))
		return nil, err
	}
	uc.metrics.LedgerOperation("create", ports.OutcomeSuccess)
	inv.Material = refOf(material)
	return toInventoryResponse(inv), nil
}

// List devuelve las filas del ledger, opcionalmente filtradas por material y/o ubicación.
func (uc *LedgerUseCase) List(ctx context.Context, filter repository.InventoryFilter) (*dto.InventoryListResponse, error) {
	list, err := uc.invRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInventoryResponse(inv))
	}
	return &dto.InventoryListResponse{Items: items, Total: len(items)}, nil
}

// GetByID devuelve la fila con el material poblado.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(inv), nil
}

// Update edición parcial de material, ubicación y contadores. optimizedData no es editable aquí.
// La fila se bloquea durante la edición; si cambian los contadores queda un movimiento ADJUSTMENT.
func (uc *LedgerUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Location != nil && *in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, q := range []*decimal.Decimal{in.AvailableQty, in.ReservedQty} {
		if q != nil && (q.IsNegative() || !entity.ValidScale(*q)) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Material != nil {
		material, err := uc.materialRepo.GetByID(ctx, *in.Material)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
	}

	var updated *entity.Inventory
	err := uc.retry.Do(ctx, "update", func() error {
		return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.InventoryMovementRepository) error {
			inv, err := invRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			availBefore, reservedBefore := inv.AvailableQty, inv.ReservedQty
			if in.Material != nil {
				inv.MaterialID = *in.Material
			}
			if in.Location != nil {
				inv.Location = *in.Location
			}
			if in.AvailableQty != nil {
				inv.AvailableQty = *in.AvailableQty
			}
			if in.ReservedQty != nil {
				inv.ReservedQty = *in.ReservedQty
			}
			inv.UpdatedAt = uc.now()
			if err := invRepo.Update(ctx, inv); err != nil {
				return err
			}
			if !availBefore.Equal(inv.AvailableQty) || !reservedBefore.Equal(inv.ReservedQty) {
				delta := inv.TotalQty().Sub(availBefore.Add(reservedBefore))
				if err := movRepo.Create(ctx, &entity.InventoryMovement{
					ID:              uuid.New().String(),
					InventoryID:     inv.ID,
					MaterialID:      inv.MaterialID,
					Type:            entity.MovementTypeADJUSTMENT,
					Quantity:        delta.Abs(),
					AvailableBefore: availBefore,
					AvailableAfter:  inv.AvailableQty,
					ReservedBefore:  reservedBefore,
					ReservedAfter:   inv.ReservedQty,
					CreatedBy:       userID,
					CreatedAt:       inv.UpdatedAt,
				}); err != nil {
					return err
				}
			}
			updated = inv
			return nil
		})
	})
	uc.metrics.LedgerOperation("update", outcomeOf(err))
	if err != nil {
		return nil, err
	}
	// Relectura para devolver el material poblado (pudo cambiar).
	return uc.GetByID(ctx, updated.ID)
}

// Delete elimina la fila sin condiciones. Si tenía stock reservado la reserva se descarta
// y queda un warning en el log.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	var deleted *entity.Inventory
	err := uc.retry.Do(ctx, "delete", func() error {
		return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.InventoryMovementRepository) error {
			var err error
			deleted, err = invRepo.Delete(ctx, id)
			return err
		})
	})
	if err != nil {
		uc.metrics.LedgerOperation("delete", outcomeOf(err))
		return err
	}
	if deleted == nil {
		uc.metrics.LedgerOperation("delete", ports.OutcomeNotFound)
		return domain.ErrNotFound
	}
	if deleted.ReservedQty.IsPositive() {
		log.Warn().
			Str("inventory_id", deleted.ID).
			Str("material_id", deleted.MaterialID).
			Str("location", deleted.Location).
			Str("reserved_qty", deleted.ReservedQty.String()).
			Msg("ledger: fila eliminada con stock reservado pendiente")
	}
	uc.metrics.LedgerOperation("delete", ports.OutcomeSuccess)
	return nil
}

// Increase availableQty += qty. Sin cota superior.
func (uc *LedgerUseCase) Increase(ctx context.Context, userID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	return uc.applyStock(ctx, userID, id, entity.StockIncrease, qty)
}

// Decrease availableQty -= qty; ErrInsufficientStock si availableQty < qty.
func (uc *LedgerUseCase) Decrease(ctx context.Context, userID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	return uc.applyStock(ctx, userID, id, entity.StockDecrease, qty)
}

// Reserve mueve qty de disponible a reservado; ErrInsufficientStock si availableQty < qty.
func (uc *LedgerUseCase) Reserve(ctx context.Context, userID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	return uc.applyStock(ctx, userID, id, entity.StockReserve, qty)
}

// Release inverso exacto de Reserve; ErrInsufficientReservation si reservedQty < qty.
func (uc *LedgerUseCase) Release(ctx context.Context, userID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	return uc.applyStock(ctx, userID, id, entity.StockRelease, qty)
}

func (uc *LedgerUseCase) applyStock(ctx context.Context, userID, id string, op entity.StockOperation, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	if !op.Valid() || !qty.IsPositive() || !entity.ValidScale(qty) {
		uc.metrics.LedgerOperation(string(op), ports.OutcomeRejected)
		return nil, domain.ErrInvalidInput
	}
	var after *entity.Inventory
	err := uc.retry.Do(ctx, string(op), func() error {
		return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.InventoryMovementRepository) error {
			row, err := invRepo.ApplyStock(ctx, id, op, qty)
			if err != nil {
				return err
			}
			availBefore, reservedBefore := countersBefore(row, op, qty)
			if err := movRepo.Create(ctx, &entity.InventoryMovement{
				ID:              uuid.New().String(),
				InventoryID:     row.ID,
				MaterialID:      row.MaterialID,
				Type:            op.MovementType(),
				Quantity:        qty,
				AvailableBefore: availBefore,
				AvailableAfter:  row.AvailableQty,
				ReservedBefore:  reservedBefore,
				ReservedAfter:   row.ReservedQty,
				CreatedBy:       userID,
				CreatedAt:       row.UpdatedAt,
			}); err != nil {
				return err
			}
			after = row
			return nil
		})
	})
	uc.metrics.LedgerOperation(string(op), outcomeOf(err))
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(after), nil
}

// GetOptimization devuelve la anotación del optimizador; (nil, nil) si la fila aún no tiene.
func (uc *LedgerUseCase) GetOptimization(ctx context.Context, id string) (*dto.OptimizedDataResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toOptimizedDataResponse(inv.OptimizedData), nil
}

// Movements página del diario de una fila, más reciente primero.
func (uc *LedgerUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) (*dto.InventoryMovementListResponse, error) {
	page.DefaultPage()
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByInventory(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.InventoryMovementResponse{
			ID:              m.ID,
			InventoryID:     m.InventoryID,
			MaterialID:      m.MaterialID,
			Type:            m.Type,
			Quantity:        m.Quantity,
			AvailableBefore: m.AvailableBefore,
			AvailableAfter:  m.AvailableAfter,
			ReservedBefore:  m.ReservedBefore,
			ReservedAfter:   m.ReservedAfter,
			CreatedBy:       m.CreatedBy,
			CreatedAt:       m.CreatedAt,
		})
	}
	return &dto.InventoryMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// countersBefore reconstruye los contadores previos a partir de la fila ya actualizada.
func countersBefore(after *entity.Inventory, op entity.StockOperation, qty decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	avail, reserved := after.AvailableQty, after.ReservedQty
	switch op {
	case entity.StockIncrease:
		return avail.Sub(qty), reserved
	case entity.StockDecrease:
		return avail.Add(qty), reserved
	case entity.StockReserve:
		return avail.Add(qty), reserved.Sub(qty)
	case entity.StockRelease:
		return avail.Sub(qty), reserved.Add(qty)
	}
	return avail, reserved
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return ports.OutcomeSuccess
	case errors.Is(err, domain.ErrNotFound):
		return ports.OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInsufficientReservation):
		return ports.OutcomeRejected
	}
	return ports.OutcomeError
}

func refOf(m *entity.Material) *entity.MaterialRef {
	return &entity.MaterialRef{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    m.Category,
		Unit:        m.Unit,
		CostPerUnit: m.CostPerUnit,
	}
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	out := &dto.InventoryResponse{
		ID:            inv.ID,
		Location:      inv.Location,
		AvailableQty:  inv.AvailableQty,
		ReservedQty:   inv.ReservedQty,
		OptimizedData: toOptimizedDataResponse(inv.OptimizedData),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.Material != nil {
		out.Material = &dto.MaterialRefResponse{
			ID:          inv.Material.ID,
			Code:        inv.Material.Code,
			Name:        inv.Material.Name,
			Category:    inv.Material.Category,
			Unit:        inv.Material.Unit,
			CostPerUnit: inv.Material.CostPerUnit,
		}
	} else {
		out.Material = &dto.MaterialRefResponse{ID: inv.MaterialID}
	}
	return out
}

func toOptimizedDataResponse(d *entity.OptimizedData) *dto.OptimizedDataResponse {
	if d == nil {
		return nil
	}
	return &dto.OptimizedDataResponse{
		RecommendedReorderPoint: d.RecommendedReorderPoint,
		OptimalStockLevel:       d.OptimalStockLevel,
		SafetyStock:             d.SafetyStock,
		Comment:                 d.Comment,
		PriceTrendInfo:          d.PriceTrendInfo,
		LastOptimizationDate:    d.LastOptimizationDate,
		Scenario:                d.Scenario,
	}
}
