package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	if e.Param == "" {
		return fmt.Sprintf("%s:%s", e.Field, e.Tag)
	}
	return fmt.Sprintf("%s:%s=%s", e.Field, e.Tag, e.Param)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct valida las etiquetas `validate` del struct. Devuelve nil si todo es válido.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// Fields versión en texto de los errores, útil para mensajes.
func Fields(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}
