// Package report genera los documentos de reporte de proyecto (PDF y XLSX).
//
// Layout del PDF (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Ubicación  │  Estado + Fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Presupuesto / Inicio / Fin / Generado por            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTIVOS: Nombre | Tipo | Ubicación | Capacidad              │
//	│  MATERIALES: Código | Material | Req. | Asig. | Comp. | Pend.│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Costo estimado / Presupuesto                       │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

var _ ports.ReportRenderer = (*PDFRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFRenderer implementa ports.ReportRenderer usando Maroto v2.
type PDFRenderer struct{}

// NewPDFRenderer construye el generador.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *PDFRenderer) Render(_ context.Context, data ports.ProjectReportData) ([]byte, error) {
	if data.Project == nil {
		return nil, fmt.Errorf("pdf: reporte sin proyecto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de proyecto: "+data.Project.Name, true).
		WithAuthor(nonEmpty(data.GeneratedBy, "GridAura"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(projectInfoRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("ACTIVOS (%d)", len(data.Assets))))
	m.AddRows(assetHeaderRow())
	m.AddRows(assetRows(data.Assets)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("MATERIALES (%d)", len(data.Materials))))
	m.AddRows(materialHeaderRow())
	m.AddRows(materialRows(data.Materials)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.ProjectReportData) core.Row {
	p := data.Project
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Location, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE PROYECTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(p.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func projectInfoRow(data ports.ProjectReportData) core.Row {
	p := data.Project
	end := "-"
	if p.EndDate != nil {
		end = p.EndDate.Format("02/01/2006")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL PROYECTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Presupuesto: %s   |   Inicio: %s   |   Fin: %s   |   Generado por: %s",
				formatAmount(p.Budget, 2),
				p.StartDate.Format("02/01/2006"),
				end,
				nonEmpty(data.GeneratedBy, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func assetHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Nombre", 4, align.Left),
		headerCell("Tipo", 2, align.Left),
		headerCell("Ubicación", 4, align.Left),
		headerCell("Capacidad", 2, align.Right),
	)
}

func assetRows(assets []*entity.Asset) []core.Row {
	if len(assets) == 0 {
		return []core.Row{emptyRow("Sin activos registrados")}
	}
	rows := make([]core.Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, row.New(6).Add(
			cell(a.Name, 4, align.Left),
			cell(a.Type, 2, align.Left),
			cell(nonEmpty(a.Location, "-"), 4, align.Left),
			cell(nonEmpty(a.Capacity, "-"), 2, align.Right),
		))
	}
	return rows
}

func materialHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Material", 3, align.Left),
		headerCell("Req.", 2, align.Right),
		headerCell("Asig.", 2, align.Right),
		headerCell("Comp.", 1, align.Right),
		headerCell("Pend.", 2, align.Right),
	)
}

func materialRows(materials []*entity.ProjectMaterial) []core.Row {
	if len(materials) == 0 {
		return []core.Row{emptyRow("Sin materiales asignados")}
	}
	rows := make([]core.Row, 0, len(materials))
	for _, pm := range materials {
		code, name := pm.MaterialID, ""
		if pm.Material != nil {
			code, name = pm.Material.Code, pm.Material.Name+" ("+pm.Material.Unit+")"
		}
		rows = append(rows, row.New(6).Add(
			cell(code, 2, align.Left),
			cell(name, 3, align.Left),
			cell(formatAmount(pm.RequiredQty, 2), 2, align.Right),
			cell(formatAmount(pm.AllocatedQty, 2), 2, align.Right),
			cell(formatAmount(pm.ProcuredQty, 2), 1, align.Right),
			cell(formatAmount(pm.OutstandingQty(), 2), 2, align.Right),
		))
	}
	return rows
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func totalsRow(data ports.ProjectReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Costo estimado de materiales:"),
			label("Presupuesto:"),
		),
		col.New(3).Add(
			value(formatAmount(estimatedCost(data.Materials), 2)),
			value(formatAmount(data.Project.Budget, 2)),
		),
	)
}
