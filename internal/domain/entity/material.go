package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Criticidad de un material para la planificación de inventario.
const (
	CriticalityLow    = "low"
	CriticalityMedium = "medium"
	CriticalityHigh   = "high"
)

// SupplierInfo datos de contacto del proveedor habitual del material.
type SupplierInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// Material representa un ítem del catálogo (acero, conductor, aisladores...).
// Code es la identidad estable; las filas de inventario lo referencian por ID.
type Material struct {
	ID           string
	Code         string // único en todo el catálogo
	Name         string
	Category     string
	Unit         string
	CostPerUnit  decimal.Decimal
	Description  string
	SupplierInfo SupplierInfo
	LeadTimeDays int
	Criticality  string // low, medium, high
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCriticality indica si el valor es una criticidad soportada.
func ValidCriticality(c string) bool {
	switch c {
	case CriticalityLow, CriticalityMedium, CriticalityHigh:
		return true
	}
	return false
}

// MaterialCostSummary agregado de costos por categoría.
type MaterialCostSummary struct {
	Category       string
	TotalMaterials int
	AvgCost        decimal.Decimal
	MinCost        decimal.Decimal
	MaxCost        decimal.Decimal
}
