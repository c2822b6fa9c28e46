package export

import (
	"fmt"
	"io"

	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/go-pdf/fpdf"
)

const pdfTitle = "Records Export"

var pdfColumnWidths = []float64{50, 110, 200, 110, 140}

// WritePDF writes records as an A4 landscape table. Each body row is filled with
// the colour of its genre.
func WritePDF(w io.Writer, records []model.Record, palette []string) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	pdf, tr := newPDF()
	pdf.SetMargins(40, 40, 40)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(40, 40, tr(pdfTitle))
	pdf.SetXY(40, 60)

	const lineHeight = 20

	hr, hg, hb, err := view.HexToRGB(view.HeaderColor)
	if err != nil {
		return err
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(hr, hg, hb)
	pdf.SetTextColor(255, 255, 255)
	for i, c := range Columns {
		pdf.CellFormat(pdfColumnWidths[i], lineHeight, tr(c), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(lineHeight)

	colors := view.BuildGenreColors(records, palette)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range Rows(records) {
		r, g, b, err := view.HexToRGB(colors.Color(records[i].Genre))
		if err != nil {
			return err
		}
		pdf.SetFillColor(r, g, b)
		for j, cell := range row {
			pdf.CellFormat(pdfColumnWidths[j], lineHeight, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(lineHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// newPDF returns an A4 landscape document and the translator from UTF-8 to the
// cp1252 encoding the core fonts expect.
func newPDF() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("L", "pt", "A4", "")
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}
