package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// Formatos de reporte soportados.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatXLSX = "xlsx"
)

// projectDetailer fuente de los datos resueltos de un proyecto.
type projectDetailer interface {
	Detail(ctx context.Context, id string) (*entity.Project, []*entity.Asset, []*entity.ProjectMaterial, error)
}

// RenderedReport documento listo para enviar al cliente.
type RenderedReport struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ReportUseCase registros de reportes y generación de reportes de proyecto (PDF/XLSX).
type ReportUseCase struct {
	repo      repository.ReportRepository
	projects  projectDetailer
	renderers map[string]ports.ReportRenderer
	storage   ports.ObjectStorage
}

// NewReportUseCase construye el caso de uso. storage puede ser nil: en ese caso los reportes
// generados enlazan al endpoint de descarga directa en lugar de a un objeto almacenado.
func NewReportUseCase(
	repo repository.ReportRepository,
	projects projectDetailer,
	pdf ports.ReportRenderer,
	xlsx ports.ReportRenderer,
	storage ports.ObjectStorage,
) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		projects:  projects,
		renderers: map[string]ports.ReportRenderer{ReportFormatPDF: pdf, ReportFormatXLSX: xlsx},
		storage:   storage,
	}
}

// Render genera el reporte del proyecto en el formato pedido sin guardarlo.
func (uc *ReportUseCase) Render(ctx context.Context, projectID, format, generatedBy string) (*RenderedReport, error) {
	if format == "" {
		format = ReportFormatPDF
	}
	renderer, ok := uc.renderers[strings.ToLower(format)]
	if !ok || renderer == nil {
		return nil, domain.ErrInvalidInput
	}
	data, err := uc.reportData(ctx, projectID, generatedBy)
	if err != nil {
		return nil, err
	}
	doc, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", format, err)
	}
	return &RenderedReport{
		Data:        doc,
		ContentType: renderer.ContentType(),
		FileName:    reportFileName(data.Project, renderer.Extension()),
	}, nil
}

// Generate genera PDF y XLSX del proyecto, los sube al almacenamiento (si existe) y registra el reporte.
func (uc *ReportUseCase) Generate(ctx context.Context, userID string, in dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	if in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	data, err := uc.reportData(ctx, in.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	now := data.GeneratedAt
	r := &entity.Report{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Description:      in.Description,
		GeneratedBy:      userID,
		RelatedProjectID: in.ProjectID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if r.Name == "" {
		r.Name = fmt.Sprintf("Reporte %s %s", data.Project.Name, now.Format("2006-01-02"))
	}

	if uc.storage == nil {
		r.FileLink = fmt.Sprintf("/api/projects/%s/report?format=%s", in.ProjectID, ReportFormatPDF)
	} else {
		for _, format := range []string{ReportFormatPDF, ReportFormatXLSX} {
			renderer := uc.renderers[format]
			doc, err := renderer.Render(ctx, data)
			if err != nil {
				return nil, fmt.Errorf("reporte %s: %w", format, err)
			}
			key := fmt.Sprintf("reports/%s/%s.%s", in.ProjectID, r.ID, renderer.Extension())
			stored, err := uc.storage.Put(ctx, key, renderer.ContentType(), doc)
			if err != nil {
				return nil, err
			}
			if format == ReportFormatPDF {
				r.PDFFile = stored
			} else {
				r.ExcelFile = stored
			}
		}
		link, err := uc.storage.URL(ctx, r.PDFFile)
		if err != nil {
			log.Warn().Err(err).Str("key", r.PDFFile).Msg("reportes: no se pudo firmar el enlace de descarga")
		}
		r.FileLink = link
	}

	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	log.Info().Str("report_id", r.ID).Str("project_id", in.ProjectID).Msg("reporte generado")
	return toReportResponse(r), nil
}

// Create registra un reporte existente.
func (uc *ReportUseCase) Create(ctx context.Context, userID string, in dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Report{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		FileLink:         in.FileLink,
		PDFFile:          in.PDFFile,
		ExcelFile:        in.ExcelFile,
		GeneratedBy:      userID,
		RelatedProjectID: in.RelatedProjectID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReportResponse(r), nil
}

// List lista reportes, más reciente primero.
func (uc *ReportUseCase) List(ctx context.Context) (*dto.ReportListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReportResponse(r))
	}
	return &dto.ReportListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un reporte.
func (uc *ReportUseCase) GetByID(ctx context.Context, id string) (*dto.ReportResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toReportResponse(r), nil
}

// Update edición parcial del registro.
func (uc *ReportUseCase) Update(ctx context.Context, id string, in dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.FileLink != nil {
		r.FileLink = *in.FileLink
	}
	if in.PDFFile != nil {
		r.PDFFile = *in.PDFFile
	}
	if in.ExcelFile != nil {
		r.ExcelFile = *in.ExcelFile
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReportResponse(r), nil
}

// Delete elimina el registro (los objetos almacenados se conservan).
func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ReportUseCase) reportData(ctx context.Context, projectID, generatedBy string) (ports.ProjectReportData, error) {
	p, assets, materials, err := uc.projects.Detail(ctx, projectID)
	if err != nil {
		return ports.ProjectReportData{}, err
	}
	return ports.ProjectReportData{
		Project:     p,
		Assets:      assets,
		Materials:   materials,
		GeneratedBy: generatedBy,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func reportFileName(p *entity.Project, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, p.Name)
	if name == "" {
		name = p.ID
	}
	return fmt.Sprintf("proyecto_%s.%s", name, ext)
}

func toReportResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		FileLink:         r.FileLink,
		PDFFile:          r.PDFFile,
		ExcelFile:        r.ExcelFile,
		GeneratedBy:      r.GeneratedBy,
		RelatedProjectID: r.RelatedProjectID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
