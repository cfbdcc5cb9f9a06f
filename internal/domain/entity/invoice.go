package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusUnpaid  = "Unpaid"
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusOverdue = "Overdue" // referenciado, no se calcula automáticamente
)

// InvoiceItem línea de factura; copia privada embebida en la factura.
type InvoiceItem struct {
	PartID     string          `json:"partId"`
	PartName   string          `json:"partName"`
	PartNumber string          `json:"partNumber"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Total      decimal.Decimal `json:"total"`
}

// Invoice cabecera con el snapshot del cliente al momento de la venta.
type Invoice struct {
	ID              string // número de factura legible, ej. INV-1718000000000
	CustomerID      string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	InvoiceDate     time.Time
	DueDate         time.Time
	Items           []InvoiceItem
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceDue      decimal.Decimal
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SnapshotCustomer copia por valor los datos del cliente; la factura no guarda una referencia viva.
func (inv *Invoice) SnapshotCustomer(c Customer) {
	inv.CustomerID = c.ID
	inv.CustomerName = c.Name
	inv.CustomerAddress = c.Address
	inv.CustomerPhone = c.Phone
}

// Recalculate recalcula totales de línea, subtotal, total, saldo y estado.
// Mantiene BalanceDue == Total - PaidAmount y Status == Paid sii BalanceDue <= 0.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Total = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(it.Total)
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal
	inv.RefreshBalance()
}

// RefreshBalance recalcula saldo y estado a partir de Total y PaidAmount.
// Un saldo pendiente conserva Overdue si ya lo tenía.
func (inv *Invoice) RefreshBalance() {
	inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)
	switch {
	case !inv.BalanceDue.IsPositive():
		inv.Status = InvoiceStatusPaid
	case inv.Status == InvoiceStatusOverdue:
	default:
		inv.Status = InvoiceStatusUnpaid
	}
}

// Clone copia profunda (los ítems no se comparten entre copias).
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]InvoiceItem(nil), inv.Items...)
	return out
}
