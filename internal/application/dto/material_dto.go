package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInfoDTO datos de contacto del proveedor habitual del material.
type SupplierInfoDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// CreateMaterialRequest entrada para crear un material del catálogo.
type CreateMaterialRequest struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	CostPerUnit  *decimal.Decimal `json:"costPerUnit"`
	Description  string           `json:"description"`
	SupplierInfo SupplierInfoDTO  `json:"supplierInfo"`
	LeadTimeDays int              `json:"leadTimeDays"`
	Criticality  string           `json:"criticality"`
}

// UpdateMaterialRequest actualización parcial; nil = no cambia.
type UpdateMaterialRequest struct {
	Code         *string          `json:"code"`
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	CostPerUnit  *decimal.Decimal `json:"costPerUnit"`
	Description  *string          `json:"description"`
	SupplierInfo *SupplierInfoDTO `json:"supplierInfo"`
	LeadTimeDays *int             `json:"leadTimeDays"`
	Criticality  *string          `json:"criticality"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	Description  string          `json:"description"`
	SupplierInfo SupplierInfoDTO `json:"supplierInfo"`
	LeadTimeDays int             `json:"leadTimeDays"`
	Criticality  string          `json:"criticality"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MaterialListResponse listado del catálogo.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int                `json:"total"`
}

// MaterialCostSummaryResponse agregado de costos por categoría.
type MaterialCostSummaryResponse struct {
	Category       string          `json:"category"`
	TotalMaterials int             `json:"totalMaterials"`
	AvgCost        decimal.Decimal `json:"avgCost"`
	MinCost        decimal.Decimal `json:"minCost"`
	MaxCost        decimal.Decimal `json:"maxCost"`
}

// MaterialRefResponse campos del material embebidos en otras respuestas.
type MaterialRefResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
}
