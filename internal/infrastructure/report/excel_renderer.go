package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/xuri/excelize/v2"
)

var _ ports.ReportRenderer = (*ExcelRenderer)(nil)

// Hojas del libro.
const (
	sheetSummary   = "Proyecto"
	sheetAssets    = "Activos"
	sheetMaterials = "Materiales"
)

// ExcelRenderer genera el reporte de proyecto como libro XLSX con excelize.
type ExcelRenderer struct{}

// NewExcelRenderer construye el generador.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render genera el libro y devuelve sus bytes.
func (r *ExcelRenderer) Render(_ context.Context, data ports.ProjectReportData) ([]byte, error) {
	if data.Project == nil {
		return nil, fmt.Errorf("xlsx: reporte sin proyecto")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "005E50"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6F2EF"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	p := data.Project
	end := ""
	if p.EndDate != nil {
		end = p.EndDate.Format("2006-01-02")
	}
	summary := [][]any{
		{"Proyecto", p.Name},
		{"Ubicación", p.Location},
		{"Estado", p.Status},
		{"Presupuesto", p.Budget.InexactFloat64()},
		{"Inicio", p.StartDate.Format("2006-01-02")},
		{"Fin", end},
		{"Activos", len(data.Assets)},
		{"Materiales", len(data.Materials)},
		{"Costo estimado de materiales", estimatedCost(data.Materials).InexactFloat64()},
		{"Generado por", data.GeneratedBy},
		{"Emitido", data.GeneratedAt.Format("2006-01-02 15:04")},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo resumen: %w", err)
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 30)
	_ = f.SetColWidth(sheetSummary, "B", "B", 40)

	assets := [][]any{{"Nombre", "Tipo", "Ubicación", "Capacidad"}}
	for _, a := range data.Assets {
		assets = append(assets, []any{a.Name, a.Type, a.Location, a.Capacity})
	}
	if err := addTable(f, sheetAssets, assets, bold); err != nil {
		return nil, err
	}

	materials := [][]any{{"Código", "Material", "Unidad", "Requerido", "Asignado", "Comprado", "Pendiente", "Costo unitario", "Observaciones"}}
	for _, pm := range data.Materials {
		code, name, unit, cost := pm.MaterialID, "", "", 0.0
		if pm.Material != nil {
			code, name, unit, cost = pm.Material.Code, pm.Material.Name, pm.Material.Unit, pm.Material.CostPerUnit.InexactFloat64()
		}
		materials = append(materials, []any{
			code, name, unit,
			pm.RequiredQty.InexactFloat64(),
			pm.AllocatedQty.InexactFloat64(),
			pm.ProcuredQty.InexactFloat64(),
			pm.OutstandingQty().InexactFloat64(),
			cost,
			pm.Remarks,
		})
	}
	if err := addTable(f, sheetMaterials, materials, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// addTable crea la hoja, vuelca las filas (la primera es cabecera) y congela la cabecera.
func addTable(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: crear hoja %s: %w", sheet, err)
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
	lastCol := last[:len(last)-1]
	_ = f.SetColWidth(sheet, "A", lastCol, 16)
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, values := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		v := values
		if err := f.SetSheetRow(sheet, start, &v); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
