package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

var _ catalog.LabelRenderer = (*LabelPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// labelsPerRow etiquetas por fila en A4 (12 columnas de la grilla / 4).
const labelsPerRow = 3

// LabelPDFGenerator etiquetas de código de barras de las variantes en A4.
// Es seguro para uso concurrente: cada Render arma su propio Caser.
type LabelPDFGenerator struct{}

// NewLabelPDFGenerator construye el generador. Los textos se imprimen en mayúsculas pt-BR.
func NewLabelPDFGenerator() *LabelPDFGenerator {
	return &LabelPDFGenerator{}
}

// Render genera el PDF y devuelve sus bytes.
func (g *LabelPDFGenerator) Render(product *entity.Product, labels []catalog.Label) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiquetas "+product.Reference, true).
		Build()

	upper := cases.Upper(language.BrazilianPortuguese)
	m := maroto.New(cfg)
	m.AddRows(g.headerRow(upper, product, len(labels)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	for i := 0; i < len(labels); i += labelsPerRow {
		end := i + labelsPerRow
		if end > len(labels) {
			end = len(labels)
		}
		m.AddRows(g.labelRow(upper, labels[i:end]))
		m.AddRows(line.NewRow(2))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *LabelPDFGenerator) headerRow(upper cases.Caser, product *entity.Product, n int) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New(product.Reference, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(upper.String(product.Description), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d etiquetas", n), props.Text{Align: align.Right, Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func (g *LabelPDFGenerator) labelRow(upper cases.Caser, labels []catalog.Label) core.Row {
	cols := make([]core.Col, 0, labelsPerRow)
	for _, l := range labels {
		caption := upper.String(fmt.Sprintf("%s %s · %s", l.ColorCode, l.ColorName, l.SizeLabel))
		cols = append(cols, col.New(4).Add(
			text.New(l.Reference, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
			text.New(caption, props.Text{Size: 7, Top: 4, Align: align.Center}),
			code.NewBar(l.Barcode, props.Barcode{Top: 8, Percent: 70, Center: true}),
			text.New(l.Barcode, props.Text{Size: 7, Top: 22, Align: align.Center}),
			text.New("R$ "+l.UnitPrice.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 9, Top: 26, Align: align.Center}),
		))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(4))
	}
	return row.New(32).Add(cols...)
}
