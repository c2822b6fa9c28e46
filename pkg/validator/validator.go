package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Customer field formats used by the record forms.
var (
	CustomerIDRX = regexp.MustCompile(`^[0-9]+[A-Za-z]$`)
	ContactRX    = regexp.MustCompile(`^[0-9]{8,}$`)
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// Report json names so messages match what the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// customer_id: one or more digits followed by exactly one letter
	validate.RegisterValidation("customer_id", func(fl validator.FieldLevel) bool {
		return CustomerIDRX.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	// contact: eight or more digits
	validate.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return ContactRX.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := validate.Struct(data)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, err := range verrs {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			out = append(out, &element)
		}
	}
	return out
}
