package billing

import (
	"fmt"
	"sync"
	"time"
)

// InvoiceNumberer genera números de factura PREFIJO-<milisegundos> estrictamente crecientes
// dentro del proceso, aunque dos ventas caigan en el mismo milisegundo.
type InvoiceNumberer struct {
	prefix string
	mu     sync.Mutex
	last   int64
}

// NewInvoiceNumberer construye el generador; prefijo vacío usa "INV".
func NewInvoiceNumberer(prefix string) *InvoiceNumberer {
	if prefix == "" {
		prefix = "INV"
	}
	return &InvoiceNumberer{prefix: prefix}
}

// Next devuelve el siguiente número para el instante now.
func (n *InvoiceNumberer) Next(now time.Time) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ts := now.UnixMilli()
	if ts <= n.last {
		ts = n.last + 1
	}
	n.last = ts
	return fmt.Sprintf("%s-%d", n.prefix, ts)
}
