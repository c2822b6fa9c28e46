// Package export renders the current record view as a spreadsheet or a PDF.
package export

import (
	"errors"
	"strconv"

	"go-recordshop/internal/model"
)

var ErrNothingToExport = errors.New("no records to export")

// Columns is the header row of every export.
var Columns = []string{"Id", "Customer ID", "Customer Last Name", "Format", "Genre"}

// Rows flattens records into export cells, one row per record, in the given order.
func Rows(records []model.Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.ID),
			r.CustomerID,
			r.CustomerLastName,
			r.Format,
			r.Genre,
		}
	}
	return rows
}
