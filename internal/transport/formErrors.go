package transport

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// noErrors keeps the form templates' error lookups valid on clean renders.
var noErrors = map[string]string{}

// formErrors turns binding failures into per-field messages for the form
// templates. Validation runs entirely client-side of the API: a failed
// bind never reaches the network.
func formErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["Form"] = "Please check the submitted values"
		return out
	}

	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "url":
		return "Please enter a valid URL"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return "Invalid value"
	}
}
