package entity

import "time"

// Report documento generado (PDF/XLSX) asociado opcionalmente a un proyecto.
type Report struct {
	ID               string
	Name             string
	Description      string
	FileLink         string
	PDFFile          string // llave del objeto en el almacenamiento
	ExcelFile        string
	GeneratedBy      string
	RelatedProjectID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
