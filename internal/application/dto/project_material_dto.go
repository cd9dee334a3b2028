package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectMaterialRequest body para POST /api/project-materials.
type CreateProjectMaterialRequest struct {
	Project      string          `json:"project"`
	Material     string          `json:"material"`
	RequiredQty  decimal.Decimal `json:"requiredQty"`
	AllocatedQty decimal.Decimal `json:"allocatedQty"`
	ProcuredQty  decimal.Decimal `json:"procuredQty"`
	Remarks      string          `json:"remarks"`
}

// UpdateProjectMaterialRequest actualización parcial de una asignación.
type UpdateProjectMaterialRequest struct {
	RequiredQty  *decimal.Decimal `json:"requiredQty"`
	AllocatedQty *decimal.Decimal `json:"allocatedQty"`
	ProcuredQty  *decimal.Decimal `json:"procuredQty"`
	Remarks      *string          `json:"remarks"`
}

// ProjectMaterialResponse salida de una asignación con el material poblado.
type ProjectMaterialResponse struct {
	ID           string               `json:"id"`
	Project      string               `json:"project"`
	Material     *MaterialRefResponse `json:"material"`
	RequiredQty  decimal.Decimal      `json:"requiredQty"`
	AllocatedQty decimal.Decimal      `json:"allocatedQty"`
	ProcuredQty  decimal.Decimal      `json:"procuredQty"`
	Remarks      string               `json:"remarks"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ProjectMaterialListResponse listado de asignaciones.
type ProjectMaterialListResponse struct {
	Items []ProjectMaterialResponse `json:"items"`
	Total int                       `json:"total"`
}
