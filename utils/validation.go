package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// JSONFieldName reports struct fields by their JSON key so validation
// messages use the names clients send.
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

var registerOnce sync.Once

// RegisterBindingFieldNames makes gin's binding validator report JSON keys.
// Safe to call more than once.
func RegisterBindingFieldNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(JSONFieldName)
		}
	})
}

// ValidationMessages splits validator errors into the names of missing
// required fields and the remaining field-level messages.
func ValidationMessages(err error) (missing []string, other []string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, nil
	}

	for _, fe := range validationErrors {
		field := fieldName(fe)
		switch fe.Tag() {
		case "required":
			missing = append(missing, field)
		case "min":
			other = append(other, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			other = append(other, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "hexcolor":
			other = append(other, fmt.Sprintf("%s must be a hex color such as #D4A574", field))
		case "gt":
			other = append(other, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "uuid", "uuid4":
			other = append(other, fmt.Sprintf("%s must be a valid id", field))
		default:
			other = append(other, fmt.Sprintf("%s is invalid", field))
		}
	}
	return missing, other
}

// FormatValidationMessages joins the output of ValidationMessages into one
// client-facing string.
func FormatValidationMessages(missing, other []string) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	parts = append(parts, other...)
	if len(parts) == 0 {
		return "Invalid request body"
	}
	return strings.Join(parts, "; ")
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Decoding errors mention Go types, never echo them
		return "Invalid request body"
	}

	return FormatValidationMessages(ValidationMessages(err))
}

func fieldName(fe validator.FieldError) string {
	field := fe.Field()
	if field == fe.StructField() && field != "" {
		// No tag name func registered, fall back to lower camel case
		return strings.ToLower(field[:1]) + field[1:]
	}
	return field
}
