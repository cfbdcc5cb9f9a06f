package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
)

func item(partID string, qty int) entity.InvoiceItem {
	return entity.InvoiceItem{PartID: partID, Quantity: qty}
}

func TestConsume_SumaLineasRepetidas(t *testing.T) {
	d := inventory.Consume([]entity.InvoiceItem{item("a", 2), item("b", 1), item("a", 3)})
	assert.Equal(t, inventory.Deltas{"a": -5, "b": -1}, d)
}

// Editar {a:3} -> {a:5} consume exactamente 2 unidades más.
func TestReconcile_AumentoDeCantidad(t *testing.T) {
	d := inventory.Reconcile([]entity.InvoiceItem{item("a", 3)}, []entity.InvoiceItem{item("a", 5)})
	assert.Equal(t, -2, d["a"])
}

func TestReconcile_RepuestoQuitadoYAgregado(t *testing.T) {
	d := inventory.Reconcile(
		[]entity.InvoiceItem{item("a", 3), item("b", 1)},
		[]entity.InvoiceItem{item("b", 1), item("c", 4)},
	)
	assert.Equal(t, 3, d["a"], "el repuesto retirado devuelve su cantidad")
	assert.Equal(t, 0, d["b"], "sin cambio neto")
	assert.Equal(t, -4, d["c"], "el repuesto nuevo consume su cantidad")
	assert.Equal(t, []string{"a", "b", "c"}, d.PartIDs(), "los IDs con delta cero también se leen")
	assert.Equal(t, inventory.Deltas{"a": 3, "c": -4}, d.NonZero())
}

func TestValidate_StockSuficiente(t *testing.T) {
	parts := map[string]*entity.Part{"a": {ID: "a", Stock: 7}}
	require.NoError(t, inventory.Validate(parts, inventory.Deltas{"a": -7}))
}

func TestValidate_StockInsuficienteIdentificaRepuesto(t *testing.T) {
	parts := map[string]*entity.Part{
		"a": {ID: "a", Name: "Filtro", Stock: 10},
		"b": {ID: "b", Name: "Bujía", Stock: 1},
	}
	err := inventory.Validate(parts, inventory.Deltas{"a": -2, "b": -3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "b", stockErr.PartID)
	assert.Equal(t, "Bujía", stockErr.PartName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
}

func TestValidate_RepuestoInexistente(t *testing.T) {
	err := inventory.Validate(map[string]*entity.Part{}, inventory.Deltas{"x": -1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
