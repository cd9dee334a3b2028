package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del diario del ledger.
const (
	MovementTypeCREATE     = "CREATE"     // alta de la fila
	MovementTypeIN         = "IN"         // entrada (entrega de compra)
	MovementTypeOUT        = "OUT"        // consumo
	MovementTypeRESERVE    = "RESERVE"    // disponible -> reservado
	MovementTypeRELEASE    = "RELEASE"    // reservado -> disponible
	MovementTypeADJUSTMENT = "ADJUSTMENT" // edición manual de contadores
)

// InventoryMovement registro inmutable de un cambio sobre una fila del ledger,
// con los contadores antes y después.
type InventoryMovement struct {
	ID              string
	InventoryID     string
	MaterialID      string
	Type            string
	Quantity        decimal.Decimal
	AvailableBefore decimal.Decimal
	AvailableAfter  decimal.Decimal
	ReservedBefore  decimal.Decimal
	ReservedAfter   decimal.Decimal
	CreatedBy       string
	CreatedAt       time.Time
}
