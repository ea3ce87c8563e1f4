package dtos

import (
	"regexp"

	"furniture-catalog/utils"

	"github.com/go-playground/validator/v10"
)

var (
	validate    = newValidator()
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(utils.JSONFieldName)
	return v
}

// ValidationError is returned by the Validate methods. Message is safe to
// show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// checker accumulates tag and custom failures into one ValidationError.
type checker struct {
	missing []string
	other   []string
}

func (c *checker) structTags(s interface{}) {
	if err := validate.Struct(s); err != nil {
		missing, other := utils.ValidationMessages(err)
		if missing == nil && other == nil {
			other = []string{"Invalid request body"}
		}
		c.missing = append(c.missing, missing...)
		c.other = append(c.other, other...)
	}
}

func (c *checker) require(field string, ok bool) {
	if !ok {
		c.missing = append(c.missing, field)
	}
}

func (c *checker) check(ok bool, msg string) {
	if !ok {
		c.other = append(c.other, msg)
	}
}

func (c *checker) slug(s *string) {
	if s != nil && *s != "" {
		c.check(slugPattern.MatchString(*s), "slug must contain only lowercase letters, numbers and single hyphens")
	}
}

func (c *checker) hexColor(field string, f Field[string]) {
	if f.Valid {
		c.check(validate.Var(f.Value, "hexcolor") == nil, field+" must be a hex color such as #D4A574")
	}
}

func (c *checker) positive(field string, f Field[float64]) {
	if f.Valid {
		c.check(f.Value > 0, field+" must be greater than 0")
	}
}

func (c *checker) err() error {
	if len(c.missing) == 0 && len(c.other) == 0 {
		return nil
	}
	return &ValidationError{Message: utils.FormatValidationMessages(c.missing, c.other)}
}

// NoFieldsMessage is returned for an update payload that names no field.
const NoFieldsMessage = "No fields to update"
