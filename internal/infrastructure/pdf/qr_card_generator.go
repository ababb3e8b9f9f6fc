// Package pdf genera la tarjeta imprimible del QR de mesa.
//
// Layout de la tarjeta A5:
//
//	┌───────────────────────────────┐
//	│        Nombre del local       │
//	│  ───────────────────────────  │
//	│                               │
//	│          [ QR  mesa ]         │
//	│                               │
//	│           Mesa N              │
//	│   Escanea para ver el menú    │
//	└───────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// QrCardGenerator implementa usecase.QrCardGenerator usando Maroto v2.
type QrCardGenerator struct{}

// NewQrCardGenerator construye el generador.
func NewQrCardGenerator() *QrCardGenerator { return &QrCardGenerator{} }

// GenerateCard genera la tarjeta PDF de una mesa y devuelve sus bytes.
func (g *QrCardGenerator) GenerateCard(venueName, tableLabel, menuURL string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(20).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Menú QR", true).
		WithAuthor(venueName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(venueName, props.Text{
			Style: fontstyle.Bold, Size: 18, Align: align.Center, Color: colorPrimary,
		}),
	)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8))

	m.AddRows(row.New(90).Add(
		col.New(2),
		col.New(8).Add(code.NewQr(menuURL, props.Rect{
			Percent: 100,
			Center:  true,
		})),
		col.New(2),
	))

	m.AddRows(row.New(6))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(tableLabel, props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary,
		}),
	)))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Escanea el código para ver el menú", props.Text{
			Size: 10, Align: align.Center, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tarjeta: %w", err)
	}
	return doc.GetBytes(), nil
}
