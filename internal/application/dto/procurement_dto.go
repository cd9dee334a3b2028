package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProcurementOrderRequest entrada para crear una orden de compra.
type CreateProcurementOrderRequest struct {
	Project      string          `json:"project"`
	Material     string          `json:"material"`
	Vendor       string          `json:"vendor"`
	OrderDate    *time.Time      `json:"orderDate"`
	DeliveryDate *time.Time      `json:"deliveryDate"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Status       string          `json:"status"`
	Remarks      string          `json:"remarks"`
}

// UpdateProcurementOrderRequest actualización parcial de una orden.
type UpdateProcurementOrderRequest struct {
	Vendor       *string          `json:"vendor"`
	OrderDate    *time.Time       `json:"orderDate"`
	DeliveryDate *time.Time       `json:"deliveryDate"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	Status       *string          `json:"status"`
	Remarks      *string          `json:"remarks"`
}

// ProcurementOrderResponse salida de una orden de compra.
type ProcurementOrderResponse struct {
	ID           string          `json:"id"`
	Project      string          `json:"project"`
	Material     string          `json:"material"`
	Vendor       string          `json:"vendor"`
	OrderDate    time.Time       `json:"orderDate"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       string          `json:"status"`
	Remarks      string          `json:"remarks"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProcurementOrderListResponse listado de órdenes.
type ProcurementOrderListResponse struct {
	Items []ProcurementOrderResponse `json:"items"`
	Total int                        `json:"total"`
}
