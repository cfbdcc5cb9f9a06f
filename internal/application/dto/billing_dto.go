package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=300"`
}

// CustomerResponse cliente con saldo derivado.
type CustomerResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	Address string          `json:"address,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// InvoiceDate y DueDate son opcionales: por defecto ahora y ahora + días de crédito.
type CreateInvoiceRequest struct {
	CustomerID  string               `json:"customer_id" validate:"required"`
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount  decimal.Decimal      `json:"paid_amount"`
	InvoiceDate *time.Time           `json:"invoice_date,omitempty"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
}

// EditInvoiceRequest body para PUT /api/invoices/:id. PaidAmount nil conserva el monto pagado.
type EditInvoiceRequest struct {
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount *decimal.Decimal     `json:"paid_amount,omitempty"`
	DueDate    *time.Time           `json:"due_date,omitempty"`
}

// InvoiceItemRequest línea de factura. UnitPrice nil toma el precio de venta del repuesto.
type InvoiceItemRequest struct {
	PartID    string           `json:"part_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura con sus líneas.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerAddress string                `json:"customer_address,omitempty"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	DueDate         time.Time             `json:"due_date"`
	Items           []InvoiceItemResponse `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Total           decimal.Decimal       `json:"total"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	BalanceDue      decimal.Decimal       `json:"balance_due"`
	Status          string                `json:"status"`
}

// InvoiceItemResponse línea en la respuesta.
type InvoiceItemResponse struct {
	PartID     string          `json:"part_id"`
	PartName   string          `json:"part_name"`
	PartNumber string          `json:"part_number"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
}

// PaymentRequest body para registrar un pago (cliente o factura).
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse resultado de la asignación del pago.
type PaymentResponse struct {
	CustomerID   string                       `json:"customer_id"`
	Amount       decimal.Decimal              `json:"amount"`
	Applications []PaymentApplicationResponse `json:"applications"`
	Overpayment  decimal.Decimal              `json:"overpayment"`
}

// PaymentApplicationResponse monto aplicado a una factura.
type PaymentApplicationResponse struct {
	InvoiceID  string          `json:"invoice_id"`
	Applied    decimal.Decimal `json:"applied"`
	BalanceDue decimal.Decimal `json:"balance_due"`
	Status     string          `json:"status"`
}
