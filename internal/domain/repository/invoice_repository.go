package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceRepository define el puerto de persistencia para Invoice (ítems embebidos).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate lee la factura y la bloquea hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// Update reemplaza ítems, totales, pagos, estado y fechas.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// ListOpenByCustomerForUpdate facturas con balance_due > 0 del cliente, bloqueadas.
	ListOpenByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// SumBalanceByCustomer saldo derivado del cliente.
	SumBalanceByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
}
