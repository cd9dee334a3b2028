package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectMaterial registro de asignación (lado demanda): cuánto material necesita un
// proyecto frente a cuánto se ha asignado y comprado. No se reconcilia con el ledger.
type ProjectMaterial struct {
	ID           string
	ProjectID    string
	MaterialID   string
	RequiredQty  decimal.Decimal
	AllocatedQty decimal.Decimal
	ProcuredQty  decimal.Decimal
	Remarks      string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Material *MaterialRef
}

// OutstandingQty demanda pendiente: requerido menos asignado, nunca negativo.
func (pm *ProjectMaterial) OutstandingQty() decimal.Decimal {
	d := pm.RequiredQty.Sub(pm.AllocatedQty)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
