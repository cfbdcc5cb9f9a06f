package billing

import (
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Application monto aplicado a una factura durante una asignación de pago.
type Application struct {
	InvoiceID  string
	Applied    decimal.Decimal
	BalanceDue decimal.Decimal // saldo resultante
	Status     string
}

// Allocation resultado de repartir un pago entre facturas abiertas.
type Allocation struct {
	Applications []Application
	Overpayment  decimal.Decimal
}

// SortOldestFirst ordena por InvoiceDate ascendente y, en empate, por ID ascendente.
func SortOldestFirst(invoices []*entity.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		a, b := invoices[i], invoices[j]
		if !a.InvoiceDate.Equal(b.InvoiceDate) {
			return a.InvoiceDate.Before(b.InvoiceDate)
		}
		return a.ID < b.ID
	})
}

// Allocate aplica amount sobre las facturas (ya ordenadas) mutándolas en sitio:
// aplicado = min(restante, saldo); suma a PaidAmount, resta a BalanceDue y marca Paid al llegar a 0.
// Las facturas sin saldo positivo se omiten. Lo que sobra es sobrepago y no modifica ninguna factura.
func Allocate(invoices []*entity.Invoice, amount decimal.Decimal) Allocation {
	remaining := amount
	var out Allocation
	for _, inv := range invoices {
		if !remaining.IsPositive() {
			break
		}
		if !inv.BalanceDue.IsPositive() {
			continue
		}
		applied := decimal.Min(remaining, inv.BalanceDue)
		inv.PaidAmount = inv.PaidAmount.Add(applied)
		inv.RefreshBalance()
		remaining = remaining.Sub(applied)
		out.Applications = append(out.Applications, Application{
			InvoiceID:  inv.ID,
			Applied:    applied,
			BalanceDue: inv.BalanceDue,
			Status:     inv.Status,
		})
	}
	if remaining.IsPositive() {
		out.Overpayment = remaining
	} else {
		out.Overpayment = decimal.Zero
	}
	return out
}
