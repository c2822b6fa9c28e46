package export

import (
	"fmt"
	"io"
	"strings"

	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Records"

var columnWidths = []float64{6, 14, 20, 12, 16}

// WriteXLSX writes records as a workbook with one sheet. Each data row is filled
// with the colour of its genre.
func WriteXLSX(w io.Writer, records []model.Record, palette []string) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(view.HeaderColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCell(1), headerStyle); err != nil {
		return err
	}

	colors := view.BuildGenreColors(records, palette)
	styles := make(map[string]int)

	for i, r := range records {
		row := i + 2
		cells := []interface{}{r.ID, r.CustomerID, r.CustomerLastName, r.Format, r.Genre}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return err
		}

		color := colors.Color(r.Genre)
		style, ok := styles[color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(color)}},
				Alignment: &excelize.Alignment{Vertical: "center"},
			})
			if err != nil {
				return fmt.Errorf("row style: %w", err)
			}
			styles[color] = style
		}
		if err := f.SetCellStyle(SheetName, start, lastCell(row), style); err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func lastCell(row int) string {
	cell, _ := excelize.CoordinatesToCellName(len(Columns), row)
	return cell
}

func hexColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}
