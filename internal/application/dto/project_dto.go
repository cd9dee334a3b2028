package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name      string           `json:"name"`
	Location  string           `json:"location"`
	Budget    *decimal.Decimal `json:"budget"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	Status    string           `json:"status"`
	ImageURL  string           `json:"imageUrl"`
}

// UpdateProjectRequest actualización parcial de un proyecto.
type UpdateProjectRequest struct {
	Name      *string          `json:"name"`
	Location  *string          `json:"location"`
	Budget    *decimal.Decimal `json:"budget"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	Status    *string          `json:"status"`
	ImageURL  *string          `json:"imageUrl"`
}

// LinkAssetRequest body para POST /api/projects/:id/assets.
type LinkAssetRequest struct {
	AssetID string `json:"assetId"`
}

// LinkMaterialRequest body para POST /api/projects/:id/materials.
type LinkMaterialRequest struct {
	MaterialID string `json:"materialId"`
}

// ProjectResponse salida de un proyecto. Assets y Materials solo se llenan en el detalle.
type ProjectResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Location    string                    `json:"location"`
	Budget      decimal.Decimal           `json:"budget"`
	StartDate   time.Time                 `json:"startDate"`
	EndDate     *time.Time                `json:"endDate,omitempty"`
	Status      string                    `json:"status"`
	ImageURL    string                    `json:"imageUrl"`
	AssetIDs    []string                  `json:"assetIds"`
	MaterialIDs []string                  `json:"materialIds"`
	Assets      []AssetResponse           `json:"assets,omitempty"`
	Materials   []ProjectMaterialResponse `json:"materials,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// ProjectListResponse listado de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Total int               `json:"total"`
}

// ProjectSummaryResponse resumen de GET /api/projects/:id/summary.
type ProjectSummaryResponse struct {
	ProjectName    string          `json:"projectName"`
	TotalAssets    int             `json:"totalAssets"`
	TotalMaterials int             `json:"totalMaterials"`
	Status         string          `json:"status"`
	Budget         decimal.Decimal `json:"budget"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
}
