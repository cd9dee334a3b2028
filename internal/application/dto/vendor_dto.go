package dto

import "time"

// CreateVendorRequest entrada para crear un proveedor.
type CreateVendorRequest struct {
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	GSTNumber         string   `json:"gstNumber"`
	ContactPerson     string   `json:"contactPerson"`
	ContactEmail      string   `json:"contactEmail"`
	ContactPhone      string   `json:"contactPhone"`
	MaterialsSupplied []string `json:"materialsSupplied"`
}

// UpdateVendorRequest actualización parcial de un proveedor.
type UpdateVendorRequest struct {
	Name          *string `json:"name"`
	Location      *string `json:"location"`
	GSTNumber     *string `json:"gstNumber"`
	ContactPerson *string `json:"contactPerson"`
	ContactEmail  *string `json:"contactEmail"`
	ContactPhone  *string `json:"contactPhone"`
}

// AssignMaterialsRequest body para PUT /api/vendors/:id/assign-materials.
type AssignMaterialsRequest struct {
	MaterialIDs []string `json:"materialIds"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	GSTNumber         string    `json:"gstNumber"`
	ContactPerson     string    `json:"contactPerson"`
	ContactEmail      string    `json:"contactEmail"`
	ContactPhone      string    `json:"contactPhone"`
	MaterialsSupplied []string  `json:"materialsSupplied"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VendorListResponse listado de proveedores.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Total int              `json:"total"`
}
