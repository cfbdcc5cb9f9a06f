package billing

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	domaininv "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con repos de catálogo, clientes, facturas y bitácora.
// Todas las lecturas deben ocurrir antes de la primera escritura; ante conflicto la función se reintenta completa.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error) error
}

// StockLedger integración facturación-inventario en dos fases dentro de la tx del caller.
// Si Prepare retorna error (ej: ErrInsufficientStock) no hubo escrituras y el caller aborta.
type StockLedger interface {
	Prepare(ctx context.Context, partRepo repository.PartRepository, deltas domaininv.Deltas) (*inventory.StockPlan, error)
	Commit(ctx context.Context, partRepo repository.PartRepository, plan *inventory.StockPlan) error
}

var _ StockLedger = (*inventory.StockLedger)(nil)
