package dto

import (
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/pkg/validator"
)

// Validate aplica las etiquetas `validate` y traduce a domain.ValidationError.
func Validate(in interface{}) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return domain.NewValidationError(validator.Fields(errs)...)
	}
	return nil
}
