package export

import (
	"bytes"
	"testing"

	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() []model.Record {
	return []model.Record{
		{ID: 2, CustomerID: "5A", CustomerLastName: "Ng", Format: "CD", Genre: "Pop"},
		{ID: 1, Format: "Vinyl", Genre: "Rock"},
	}
}

func TestRows(t *testing.T) {
	assert.Equal(t, [][]string{
		{"2", "5A", "Ng", "CD", "Pop"},
		{"1", "", "", "Vinyl", "Rock"},
	}, Rows(sample()))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample(), view.DefaultPalette))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"2", "5A", "Ng", "CD", "Pop"}, rows[1])
	assert.Equal(t, "Rock", rows[2][4])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sample(), view.DefaultPalette))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_NonASCII(t *testing.T) {
	_, tr := newPDF()
	assert.Equal(t, "M\xfcller", tr("Müller"))
	assert.Equal(t, "Fran\xe7oise \x80", tr("Françoise €"))

	recs := []model.Record{{ID: 1, CustomerLastName: "Müller", Format: "CD", Genre: "Électronique"}}
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, recs, view.DefaultPalette))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteXLSX(&buf, nil, view.DefaultPalette), ErrNothingToExport)
	assert.ErrorIs(t, WritePDF(&buf, nil, view.DefaultPalette), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}
