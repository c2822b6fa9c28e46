package main

import (
	"fmt"
	"io"
	"strconv"

	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(view.HeaderColor))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#111827"))
	labelStyle = lipgloss.NewStyle().Bold(true).Width(20)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

var listHeaders = []string{"Id", "Customer ID", "Customer Last Name", "Format", "Genre", "Stock"}

// renderTable draws records with each row tinted by its genre colour.
func renderTable(records []model.Record) string {
	colors := view.BuildGenreColors(records, view.DefaultPalette)

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.ID),
			r.CustomerID,
			r.CustomerLastName,
			r.Format,
			view.GenreKey(r.Genre),
			model.StockStatus(r.StockQty),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(listHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle.Background(lipgloss.Color(colors.Color(records[row].Genre)))
		})
	return t.Render()
}

func renderRecord(w io.Writer, r model.Record) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Record #%d", r.ID)))
	fields := [][2]string{
		{"Title", r.Title},
		{"Artist", r.Artist},
		{"Format", r.Format},
		{"Genre", r.Genre},
		{"Release year", strconv.Itoa(r.ReleaseYear)},
		{"Price", r.Price.StringFixed(2)},
		{"Stock", fmt.Sprintf("%d (%s)", r.StockQty, model.StockStatus(r.StockQty))},
		{"Customer ID", r.CustomerID},
		{"Customer first name", r.CustomerFirstName},
		{"Customer last name", r.CustomerLastName},
		{"Customer contact", r.CustomerContact},
		{"Customer email", r.CustomerEmail},
	}
	for _, f := range fields {
		fmt.Fprintln(w, labelStyle.Render(f[0])+f[1])
	}
}
