package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain/billing"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func openInvoice(id string, daysAgo int, balance int64) *entity.Invoice {
	total := decimal.NewFromInt(balance)
	return &entity.Invoice{
		ID:          id,
		InvoiceDate: base.AddDate(0, 0, -daysAgo),
		Total:       total,
		PaidAmount:  decimal.Zero,
		BalanceDue:  total,
		Status:      entity.InvoiceStatusUnpaid,
	}
}

// Saldos [30, 50] (más antigua primero) y pago de 70: 30 a la primera, 40 a la segunda.
func TestAllocate_AgotaEnOrden(t *testing.T) {
	first := openInvoice("INV-1", 10, 30)
	second := openInvoice("INV-2", 5, 50)

	res := billing.Allocate([]*entity.Invoice{first, second}, decimal.NewFromInt(70))

	require.Len(t, res.Applications, 2)
	assert.True(t, res.Applications[0].Applied.Equal(decimal.NewFromInt(30)))
	assert.True(t, res.Applications[1].Applied.Equal(decimal.NewFromInt(40)))
	assert.True(t, first.BalanceDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, first.Status)
	assert.True(t, second.BalanceDue.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.InvoiceStatusUnpaid, second.Status)
	assert.True(t, res.Overpayment.IsZero(), "no debe haber sobrepago")
}

func TestAllocate_Sobrepago(t *testing.T) {
	inv := openInvoice("INV-1", 1, 20)
	res := billing.Allocate([]*entity.Invoice{inv}, decimal.NewFromInt(25))

	assert.True(t, inv.BalanceDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, res.Overpayment.Equal(decimal.NewFromInt(5)))
}

func TestAllocate_SinFacturasTodoEsSobrepago(t *testing.T) {
	res := billing.Allocate(nil, decimal.NewFromInt(12))
	assert.Empty(t, res.Applications)
	assert.True(t, res.Overpayment.Equal(decimal.NewFromInt(12)))
}

func TestAllocate_SeDetieneAlAgotarElMonto(t *testing.T) {
	first := openInvoice("INV-1", 3, 40)
	second := openInvoice("INV-2", 2, 40)
	res := billing.Allocate([]*entity.Invoice{first, second}, decimal.NewFromInt(40))

	require.Len(t, res.Applications, 1)
	assert.True(t, second.PaidAmount.IsZero(), "la segunda factura no se toca")
}

func TestAllocate_ConservaOverdueConSaldo(t *testing.T) {
	inv := openInvoice("INV-1", 60, 100)
	inv.Status = entity.InvoiceStatusOverdue
	billing.Allocate([]*entity.Invoice{inv}, decimal.NewFromInt(10))
	assert.Equal(t, entity.InvoiceStatusOverdue, inv.Status)
	assert.True(t, inv.BalanceDue.Equal(inv.Total.Sub(inv.PaidAmount)))
}

func TestSortOldestFirst_DesempatePorID(t *testing.T) {
	a := openInvoice("INV-2", 5, 10)
	b := openInvoice("INV-1", 5, 99)
	c := openInvoice("INV-3", 9, 10)
	list := []*entity.Invoice{a, b, c}

	billing.SortOldestFirst(list)

	assert.Equal(t, []string{"INV-3", "INV-1", "INV-2"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
