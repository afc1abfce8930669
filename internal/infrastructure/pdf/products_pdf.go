// Package pdf exporta la página visible de la tabla de productos con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + búsqueda     │  Página N de M + fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: solo las columnas visibles del operador             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
)

// gridSize columnas de la grilla de Maroto.
const gridSize = 12

// ErrSinColumnas no hay columnas visibles que exportar.
var ErrSinColumnas = errors.New("pdf: no hay columnas visibles")

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ProductsReport contenido de la exportación: celdas ya formateadas por la vista.
type ProductsReport struct {
	Negocio     string
	Search      string
	Pagination  dto.PageView
	Header      []string
	Rows        [][]string
	GeneratedAt time.Time
}

// ProductsExporter genera el PDF de la tabla de productos.
type ProductsExporter struct{}

// NewProductsExporter construye el exportador.
func NewProductsExporter() *ProductsExporter { return &ProductsExporter{} }

// Export genera el PDF y devuelve sus bytes.
func (g *ProductsExporter) Export(_ context.Context, r ProductsReport) ([]byte, error) {
	if len(r.Header) == 0 {
		return nil, ErrSinColumnas
	}
	if len(r.Header) > gridSize {
		return nil, fmt.Errorf("pdf: máximo %d columnas, se pidieron %d", gridSize, len(r.Header))
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Productos", true).
		WithAuthor(nonEmpty(r.Negocio, "Consola de negocios"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := widths(len(r.Header))
	m.AddRows(tableHeaderRow(r.Header, sizes))
	for _, cells := range r.Rows {
		m.AddRows(tableDetailRow(cells, sizes))
	}
	if len(r.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin productos en esta página", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r ProductsReport) core.Row {
	sub := "Todos los productos"
	if r.Search != "" {
		sub = "Búsqueda: " + r.Search
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(r.Negocio, "Productos"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(sub, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Página %d de %d", r.Pagination.Page, r.Pagination.PageCount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(cells []string, sizes []int) core.Row {
	cols := make([]core.Col, len(sizes))
	for i := range sizes {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		cols[i] = col.New(sizes[i]).Add(text.New(v, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(cols...)
}

func footerRow(r ProductsReport) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("%d productos en total, %d por página", r.Pagination.Total, r.Pagination.Limit), props.Text{
			Size: 7, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// widths reparte la grilla entre n columnas; el sobrante va a las primeras.
// Ej: 5 columnas → [3 3 2 2 2].
func widths(n int) []int {
	out := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range out {
		out[i] = base
		if i < rest {
			out[i]++
		}
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
