package dto

import "time"

// CreateReportRequest entrada para registrar un reporte existente.
type CreateReportRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	FileLink         string `json:"fileLink"`
	PDFFile          string `json:"pdfFile"`
	ExcelFile        string `json:"excelFile"`
	RelatedProjectID string `json:"relatedProject"`
}

// UpdateReportRequest actualización parcial de un reporte.
type UpdateReportRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FileLink    *string `json:"fileLink"`
	PDFFile     *string `json:"pdfFile"`
	ExcelFile   *string `json:"excelFile"`
}

// GenerateReportRequest body para POST /api/reports/generate.
type GenerateReportRequest struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReportResponse salida de un reporte.
type ReportResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	FileLink         string    `json:"fileLink"`
	PDFFile          string    `json:"pdfFile"`
	ExcelFile        string    `json:"excelFile"`
	GeneratedBy      string    `json:"generatedBy"`
	RelatedProjectID string    `json:"relatedProject,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ReportListResponse listado de reportes.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
	Total int              `json:"total"`
}
