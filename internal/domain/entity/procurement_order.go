package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderPending   = "Pending"
	OrderApproved  = "Approved"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// ProcurementOrder orden de compra de un material a un proveedor para un proyecto.
type ProcurementOrder struct {
	ID           string
	ProjectID    string
	MaterialID   string
	VendorID     string
	OrderDate    time.Time
	DeliveryDate *time.Time
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalCost    decimal.Decimal
	Status       string
	Remarks      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidOrderStatus indica si el estado es válido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderApproved, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// RecalculateTotal TotalCost = UnitPrice * Quantity. Se llama en cada guardado.
func (o *ProcurementOrder) RecalculateTotal() {
	o.TotalCost = o.UnitPrice.Mul(o.Quantity).Round(QuantityScale)
}
