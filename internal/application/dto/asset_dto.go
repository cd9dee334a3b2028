package dto

import "time"

// CreateAssetRequest entrada para crear un activo.
type CreateAssetRequest struct {
	Project  string `json:"project"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Capacity string `json:"capacity"`
}

// UpdateAssetRequest actualización parcial de un activo (el proyecto no cambia).
type UpdateAssetRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Location *string `json:"location"`
	Capacity *string `json:"capacity"`
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Capacity  string    `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssetListResponse listado de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Total int             `json:"total"`
}
