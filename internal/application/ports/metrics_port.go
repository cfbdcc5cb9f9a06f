package ports

import "github.com/shopspring/decimal"

// Metrics define el puerto de salida para métricas de negocio.
// El adaptador Prometheus lo implementa; NopMetrics sirve para tests y herramientas.
type Metrics interface {
	InvoiceCreated(total decimal.Decimal)
	InvoiceEdited()
	PaymentRecorded(applied, overpayment decimal.Decimal)
	// StockRejected se llama cuando una operación aborta por stock insuficiente.
	StockRejected()
	// TxRetried se llama cada vez que una transacción se reintenta por conflicto.
	TxRetried()
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) InvoiceCreated(decimal.Decimal)                   {}
func (NopMetrics) InvoiceEdited()                                   {}
func (NopMetrics) PaymentRecorded(decimal.Decimal, decimal.Decimal) {}
func (NopMetrics) StockRejected()                                   {}
func (NopMetrics) TxRetried()                                       {}
