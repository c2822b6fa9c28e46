package model

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers (9.99), not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is one inventory item together with the optional customer it was sold to.
type Record struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Artist      string          `gorm:"type:varchar(255);not null" json:"artist"`
	Format      string          `gorm:"type:varchar(50)" json:"format"`
	Genre       string          `gorm:"type:varchar(50)" json:"genre"`
	ReleaseYear int             `json:"releaseYear"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	StockQty    int             `gorm:"default:0" json:"stockQty"`

	// Customer annotation. Always present, empty when the record has not been sold.
	CustomerID        string `gorm:"type:varchar(50)" json:"customerId"`
	CustomerFirstName string `gorm:"type:varchar(100)" json:"customerFirstName"`
	CustomerLastName  string `gorm:"type:varchar(100)" json:"customerLastName"`
	CustomerContact   string `gorm:"type:varchar(50)" json:"customerContact"`
	CustomerEmail     string `gorm:"type:varchar(255)" json:"customerEmail"`
}

// TableName specifies the table name for GORM
func (Record) TableName() string {
	return "records"
}

// RecordFields is everything a caller may set on a record. The id is always owned by the store.
type RecordFields struct {
	Title       string
	Artist      string
	Format      string
	Genre       string
	ReleaseYear int
	Price       decimal.Decimal
	StockQty    int

	CustomerID        string
	CustomerFirstName string
	CustomerLastName  string
	CustomerContact   string
	CustomerEmail     string
}

// NewRecord builds a record with the given id from fields.
// Every field is overwritten; nothing from a previous version survives except the id.
func NewRecord(id int, f RecordFields) Record {
	return Record{
		ID:                id,
		Title:             f.Title,
		Artist:            f.Artist,
		Format:            f.Format,
		Genre:             f.Genre,
		ReleaseYear:       f.ReleaseYear,
		Price:             f.Price,
		StockQty:          f.StockQty,
		CustomerID:        f.CustomerID,
		CustomerFirstName: f.CustomerFirstName,
		CustomerLastName:  f.CustomerLastName,
		CustomerContact:   f.CustomerContact,
		CustomerEmail:     f.CustomerEmail,
	}
}

// Fields returns the settable part of the record.
func (r Record) Fields() RecordFields {
	return RecordFields{
		Title:             r.Title,
		Artist:            r.Artist,
		Format:            r.Format,
		Genre:             r.Genre,
		ReleaseYear:       r.ReleaseYear,
		Price:             r.Price,
		StockQty:          r.StockQty,
		CustomerID:        r.CustomerID,
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerContact:   r.CustomerContact,
		CustomerEmail:     r.CustomerEmail,
	}
}

// Stock status labels
const (
	StockOut = "Out of Stock"
	StockLow = "Low Stock"
	StockIn  = "In Stock"
)

// StockStatus classifies a stock quantity for display.
func StockStatus(qty int) string {
	switch {
	case qty <= 0:
		return StockOut
	case qty <= 3:
		return StockLow
	default:
		return StockIn
	}
}

// DefaultRecords is the catalogue the in-memory store starts with.
var DefaultRecords = []RecordFields{
	{Title: "Californication", Artist: "Red Hot Chili Peppers", Format: "Vinyl", Genre: "Rock", ReleaseYear: 1999, Price: decimal.RequireFromString("29.99"), StockQty: 8},
	{Title: "Black Summer", Artist: "Red Hot Chili Peppers", Format: "CD", Genre: "Rock", ReleaseYear: 2022, Price: decimal.RequireFromString("14.99"), StockQty: 12},
	{Title: "Audioslave", Artist: "Audioslave", Format: "Vinyl", Genre: "Rock", ReleaseYear: 2002, Price: decimal.RequireFromString("27.99"), StockQty: 6},
	{Title: "Stony Hill", Artist: "Damian Marley", Format: "CD", Genre: "Reggae", ReleaseYear: 2017, Price: decimal.RequireFromString("12.99"), StockQty: 9},
	{Title: "The Bends", Artist: "Radiohead", Format: "Vinyl", Genre: "Alternative", ReleaseYear: 1995, Price: decimal.RequireFromString("26.99"), StockQty: 5},
	{Title: "OK Computer", Artist: "Radiohead", Format: "Vinyl", Genre: "Alternative", ReleaseYear: 1997, Price: decimal.RequireFromString("28.99"), StockQty: 4},
}
