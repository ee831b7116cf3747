package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their json names, so the
// error envelope speaks the same dialect as the request payload.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Messages converts a validator error into the field->messages map carried
// by the error envelope.
func Messages(err error) map[string][]string {
	out := make(map[string][]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = []string{"The request payload is invalid."}
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = append(out[e.Field()], message(e))
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", e.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", e.Field())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", e.Field(), e.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", e.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", e.Field())
	}
}
