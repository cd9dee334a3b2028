package entity

import "time"

// Vendor proveedor de materiales.
type Vendor struct {
	ID                string
	Name              string
	Location          string
	GSTNumber         string
	ContactPerson     string
	ContactEmail      string
	ContactPhone      string
	MaterialsSupplied []string // IDs de Material
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AddMaterials agrega IDs sin duplicar los ya vinculados. Devuelve cuántos se agregaron.
func (v *Vendor) AddMaterials(ids []string) int {
	added := 0
	for _, id := range ids {
		if contains(v.MaterialsSupplied, id) {
			continue
		}
		v.MaterialsSupplied = append(v.MaterialsSupplied, id)
		added++
	}
	return added
}
