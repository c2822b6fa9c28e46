// Package form validates record input typed by a user before it is sent to the API.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"go-recordshop/internal/client"
	"go-recordshop/internal/model"
	"go-recordshop/pkg/validator"

	"github.com/shopspring/decimal"
)

// RecordForm holds raw field values as entered. Every field is required.
type RecordForm struct {
	Title       string `json:"title" validate:"required"`
	Artist      string `json:"artist" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	Format      string `json:"format" validate:"required"`
	ReleaseYear string `json:"releaseYear" validate:"required,number"`
	Price       string `json:"price" validate:"required,numeric"`
	StockQty    string `json:"stockQty" validate:"required,number"`

	CustomerID        string `json:"customerId" validate:"required,customer_id"`
	CustomerFirstName string `json:"customerFirstName" validate:"required"`
	CustomerLastName  string `json:"customerLastName" validate:"required"`
	CustomerContact   string `json:"customerContact" validate:"required,contact"`
	CustomerEmail     string `json:"customerEmail" validate:"required,email"`
}

// FromRecord pre-fills the edit form.
func FromRecord(r model.Record) RecordForm {
	return RecordForm{
		Title:             r.Title,
		Artist:            r.Artist,
		Genre:             r.Genre,
		Format:            r.Format,
		ReleaseYear:       strconv.Itoa(r.ReleaseYear),
		Price:             r.Price.String(),
		StockQty:          strconv.Itoa(r.StockQty),
		CustomerID:        r.CustomerID,
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerContact:   r.CustomerContact,
		CustomerEmail:     r.CustomerEmail,
	}
}

// FieldError is one failed field with the message shown next to it.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is every failed field of one submission.
type Errors []FieldError

func (errs Errors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

var messages = map[string]string{
	"required":    "is required",
	"number":      "must be a whole number",
	"numeric":     "must be a number",
	"customer_id": "must be digits followed by one letter (e.g. 123A)",
	"contact":     "must be at least 8 digits",
	"email":       "must be a valid email address",
}

// Normalize trims surrounding space from every field.
func (f *RecordForm) Normalize() {
	for _, p := range []*string{
		&f.Title, &f.Artist, &f.Genre, &f.Format, &f.ReleaseYear, &f.Price, &f.StockQty,
		&f.CustomerID, &f.CustomerFirstName, &f.CustomerLastName, &f.CustomerContact, &f.CustomerEmail,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// Validate normalizes the form and reports every failing field, nil when valid.
func (f *RecordForm) Validate() Errors {
	f.Normalize()
	var out Errors
	for _, e := range validator.ValidateStruct(f) {
		msg, ok := messages[e.Tag]
		if !ok {
			msg = "is invalid"
		}
		out = append(out, FieldError{Field: e.FailedField, Message: msg})
	}
	return out
}

// Payload validates the form and converts it for the API.
func (f *RecordForm) Payload() (client.RecordPayload, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return client.RecordPayload{}, errs
	}

	year, err := strconv.Atoi(f.ReleaseYear)
	if err != nil {
		return client.RecordPayload{}, Errors{{Field: "releaseYear", Message: messages["number"]}}
	}
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return client.RecordPayload{}, Errors{{Field: "price", Message: messages["numeric"]}}
	}
	qty, err := strconv.Atoi(f.StockQty)
	if err != nil {
		return client.RecordPayload{}, Errors{{Field: "stockQty", Message: messages["number"]}}
	}

	return client.RecordPayload{
		Title:             f.Title,
		Artist:            f.Artist,
		Format:            f.Format,
		Genre:             f.Genre,
		ReleaseYear:       year,
		Price:             price,
		StockQty:          qty,
		CustomerID:        f.CustomerID,
		CustomerFirstName: f.CustomerFirstName,
		CustomerLastName:  f.CustomerLastName,
		CustomerContact:   f.CustomerContact,
		CustomerEmail:     f.CustomerEmail,
	}, nil
}

// CheckChoice reports a value outside the reference list the API offered.
func CheckChoice(field, value string, choices []string) error {
	for _, c := range choices {
		if c == value {
			return nil
		}
	}
	return FieldError{Field: field, Message: fmt.Sprintf("must be one of %s", strings.Join(choices, ", "))}
}
