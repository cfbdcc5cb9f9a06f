package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/pkg/validator"
)

type line struct {
	PartID   string `validate:"required"`
	Quantity int    `validate:"min=1"`
}

type cart struct {
	CustomerID string `validate:"required"`
	Items      []line `validate:"required,min=1,dive"`
}

func TestValidateStruct_Valido(t *testing.T) {
	errs := validator.ValidateStruct(cart{CustomerID: "c", Items: []line{{PartID: "p", Quantity: 1}}})
	assert.Nil(t, errs)
}

func TestValidateStruct_CantidadMenorAUno(t *testing.T) {
	errs := validator.ValidateStruct(cart{CustomerID: "c", Items: []line{{PartID: "p", Quantity: 0}}})
	require.Len(t, errs, 1)
	assert.Equal(t, "cart.Items[0].Quantity:min=1", errs[0].String())
}

func TestValidateStruct_CarritoVacio(t *testing.T) {
	errs := validator.ValidateStruct(cart{})
	assert.Equal(t, []string{"cart.CustomerID:required", "cart.Items:required"}, validator.Fields(errs))
}
