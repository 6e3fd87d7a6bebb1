package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one failed binding constraint on a request field.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// BindingErrors turns a gin binding failure into per-field errors.
// Non-validator errors (syntax errors, wrong types) yield nil and the
// caller falls back to the raw message.
func BindingErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: errorMessage(fe),
		})
	}
	return out
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must have at least " + err.Param() + " entries"
	case "max":
		return err.Field() + " must have at most " + err.Param() + " entries"
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}
