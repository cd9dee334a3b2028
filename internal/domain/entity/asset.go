package entity

import "time"

// Tipos de activo de red.
const (
	AssetTower       = "Tower"
	AssetSubstation  = "Substation"
	AssetLine        = "Line"
	AssetTransformer = "Transformer"
	AssetOther       = "Other"
)

// Asset activo físico construido dentro de un proyecto.
type Asset struct {
	ID        string
	ProjectID string
	Name      string
	Type      string
	Location  string
	Capacity  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAssetType indica si el tipo es válido.
func ValidAssetType(t string) bool {
	switch t {
	case AssetTower, AssetSubstation, AssetLine, AssetTransformer, AssetOther:
		return true
	}
	return false
}
