// Package validation checks request payloads against their `validate` struct
// tags and turns failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"DOIT_BACK-END/internal/common"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names so clients can match them up
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Struct validates s and returns nil or a *common.ValidationError holding the
// first failed rule of every offending field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = Message(fe)
		}
	}
	return &common.ValidationError{Fields: fields}
}

// Message renders one rule failure, e.g. "Title cannot be blank".
func Message(fe validator.FieldError) string {
	label := capitalize(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " cannot be blank"
	case "email":
		return label + " should be valid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
