package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un proyecto.
const (
	ProjectPlanned   = "Planned"
	ProjectOngoing   = "Ongoing"
	ProjectCompleted = "Completed"
)

// Project es la raíz del agregado: guarda las referencias a sus activos y a sus
// registros de asignación de materiales (push al crear, pull al eliminar).
type Project struct {
	ID          string
	Name        string
	Location    string
	Budget      decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
	Status      string
	ImageURL    string
	AssetIDs    []string
	MaterialIDs []string // IDs de ProjectMaterial
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidProjectStatus indica si el estado es válido.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanned, ProjectOngoing, ProjectCompleted:
		return true
	}
	return false
}

// HasAsset indica si el activo ya está vinculado.
func (p *Project) HasAsset(id string) bool { return contains(p.AssetIDs, id) }

// HasMaterial indica si el registro de asignación ya está vinculado.
func (p *Project) HasMaterial(id string) bool { return contains(p.MaterialIDs, id) }

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
