package entity

import (
	"time"

	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/shopspring/decimal"
)

// QuantityScale decimales que admiten las columnas de cantidad (NUMERIC(18,4)).
const QuantityScale = 4

// ValidScale indica si q cabe en QuantityScale decimales sin redondeo.
func ValidScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale))
}

// Inventory es una fila del ledger: stock de un material en una ubicación.
// Invariante: AvailableQty >= 0 y ReservedQty >= 0.
type Inventory struct {
	ID            string
	MaterialID    string
	Location      string
	AvailableQty  decimal.Decimal
	ReservedQty   decimal.Decimal
	OptimizedData *OptimizedData // anotación externa; nunca participa en las invariantes
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Material se llena en lecturas (JOIN con materials); nil si no se pidió.
	Material *MaterialRef
}

// MaterialRef campos descriptivos del material que acompañan una fila del ledger.
type MaterialRef struct {
	ID          string
	Code        string
	Name        string
	Category    string
	Unit        string
	CostPerUnit decimal.Decimal
}

// OptimizedData recomendación calculada por el optimizador externo (solo informativa).
type OptimizedData struct {
	RecommendedReorderPoint decimal.Decimal `json:"recommendedReorderPoint"`
	OptimalStockLevel       decimal.Decimal `json:"optimalStockLevel"`
	SafetyStock             decimal.Decimal `json:"safetyStock"`
	Comment                 string          `json:"comment"`
	PriceTrendInfo          string          `json:"priceTrendInfo"`
	LastOptimizationDate    time.Time       `json:"lastOptimizationDate"`
	Scenario                string          `json:"scenario"`
}

// StockOperation tipo de mutación sobre una fila del ledger.
type StockOperation string

const (
	StockIncrease StockOperation = "increase"
	StockDecrease StockOperation = "decrease"
	StockReserve  StockOperation = "reserve"
	StockRelease  StockOperation = "release"
)

// Valid indica si la operación es conocida.
func (op StockOperation) Valid() bool {
	switch op {
	case StockIncrease, StockDecrease, StockReserve, StockRelease:
		return true
	}
	return false
}

// MovementType tipo de movimiento que deja la operación en el diario.
func (op StockOperation) MovementType() string {
	switch op {
	case StockIncrease:
		return MovementTypeIN
	case StockDecrease:
		return MovementTypeOUT
	case StockReserve:
		return MovementTypeRESERVE
	case StockRelease:
		return MovementTypeRELEASE
	}
	return ""
}

// Apply es el espejo en memoria de los guards SQL de InventoryRepo.ApplyStock; lo usan los
// repositorios en memoria de testutil. Si la precondición falla no modifica nada.
func (inv *Inventory) Apply(op StockOperation, qty decimal.Decimal) error {
	if !qty.IsPositive() || !ValidScale(qty) {
		return domain.ErrInvalidInput
	}
	switch op {
	case StockIncrease:
		inv.AvailableQty = inv.AvailableQty.Add(qty)
	case StockDecrease:
		if inv.AvailableQty.LessThan(qty) {
			return domain.ErrInsufficientStock
		}
		inv.AvailableQty = inv.AvailableQty.Sub(qty)
	case StockReserve:
		if inv.AvailableQty.LessThan(qty) {
			return domain.ErrInsufficientStock
		}
		inv.AvailableQty = inv.AvailableQty.Sub(qty)
		inv.ReservedQty = inv.ReservedQty.Add(qty)
	case StockRelease:
		if inv.ReservedQty.LessThan(qty) {
			return domain.ErrInsufficientReservation
		}
		inv.ReservedQty = inv.ReservedQty.Sub(qty)
		inv.AvailableQty = inv.AvailableQty.Add(qty)
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// TotalQty stock total propio (disponible + reservado).
func (inv *Inventory) TotalQty() decimal.Decimal {
	return inv.AvailableQty.Add(inv.ReservedQty)
}
