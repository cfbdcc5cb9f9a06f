package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func TestCustomerUseCase_CreaYCalculaSaldo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.part(t, "p1", 1, 100)
	uc := billing.NewCustomerUseCase(f.store, f.store.Customers(), f.store.Invoices(), logger.Nop())

	c, err := uc.Create(ctx, actor, dto.CreateCustomerRequest{Name: "  Taller Ruiz ", Phone: "300"})
	require.NoError(t, err)
	assert.Equal(t, "Taller Ruiz", c.Name)
	assert.True(t, c.Balance.IsZero())

	f.invoiceOn(t, c.ID, time.Now().AddDate(0, 0, -1), 40)
	f.invoiceOn(t, c.ID, time.Now(), 15)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(55)), "saldo esperado 55, obtenido %s", got.Balance)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Balance.Equal(decimal.NewFromInt(55)))

	invoices, err := uc.ListInvoices(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.True(t, invoices[0].InvoiceDate.Before(invoices[1].InvoiceDate), "más antiguas primero")

	logs, err := f.store.ActivityLogs().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Contains(t, logs[len(logs)-1].Description, "registró al cliente Taller Ruiz")
}

func TestCustomerUseCase_Errores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := billing.NewCustomerUseCase(f.store, f.store.Customers(), f.store.Invoices(), logger.Nop())

	_, err := uc.Create(ctx, actor, dto.CreateCustomerRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nadie")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListInvoices(ctx, "nadie")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceNumberer_EstrictamenteCreciente(t *testing.T) {
	n := billing.NewInvoiceNumberer("")
	at := time.UnixMilli(1718000000000)

	assert.Equal(t, "INV-1718000000000", n.Next(at))
	assert.Equal(t, "INV-1718000000001", n.Next(at), "mismo milisegundo avanza uno")
	assert.Equal(t, "INV-1718000000002", n.Next(at.Add(-time.Second)), "un reloj que retrocede no repite números")
}
