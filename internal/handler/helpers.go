package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

// validationError turns validator failures into a 400 naming the offending fields.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return appErrors.Clone(appErrors.ErrValidation, "missing or invalid fields: "+strings.Join(fields, ", "))
	}
	return appErrors.Clone(appErrors.ErrValidation, "validation failed")
}
