package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

const reportColumns = `id, name, description, file_link, pdf_file, excel_file, generated_by,
		related_project_id, created_at, updated_at`

// ReportRepo implementación sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste un reporte.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	query := `INSERT INTO reports (` + reportColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.Name, rep.Description, rep.FileLink, rep.PDFFile, rep.ExcelFile, rep.GeneratedBy,
		rep.RelatedProjectID, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte; (nil, nil) si no existe.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	rep, err := scanReport(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// List lista reportes, más reciente primero.
func (r *ReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	rows, err := r.q.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// Update actualiza un reporte.
func (r *ReportRepo) Update(ctx context.Context, rep *entity.Report) error {
	query := `
		UPDATE reports SET name = $2, description = $3, file_link = $4, pdf_file = $5, excel_file = $6,
			related_project_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rep.ID, rep.Name, rep.Description, rep.FileLink, rep.PDFFile, rep.ExcelFile,
		rep.RelatedProjectID, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un reporte. Los objetos en el almacenamiento no se borran.
func (r *ReportRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rep entity.Report
	err := row.Scan(
		&rep.ID, &rep.Name, &rep.Description, &rep.FileLink, &rep.PDFFile, &rep.ExcelFile, &rep.GeneratedBy,
		&rep.RelatedProjectID, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
