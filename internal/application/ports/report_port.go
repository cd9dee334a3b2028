package ports

import (
	"context"
	"time"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// ProjectReportData datos ya resueltos que se vuelcan en un reporte de proyecto.
type ProjectReportData struct {
	Project     *entity.Project
	Assets      []*entity.Asset
	Materials   []*entity.ProjectMaterial
	GeneratedBy string
	GeneratedAt time.Time
}

// ReportRenderer genera el documento binario de un reporte de proyecto.
type ReportRenderer interface {
	Render(ctx context.Context, data ProjectReportData) ([]byte, error)
	ContentType() string
	Extension() string
}
