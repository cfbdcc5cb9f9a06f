package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// Ensure TxRunner implements inventory.TxRunner and billing.BillingTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SERIALIZABLE.
// Si PostgreSQL aborta por conflicto (40001/40P01) la función se ejecuta de nuevo desde cero,
// hasta maxRetries intentos; agotados, devuelve domain.ErrConflict.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	metrics    ports.Metrics
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, metrics ports.Metrics, log *logger.Logger) *TxRunner {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries, metrics: metrics, log: log.Component("tx")}
}

// Run ejecuta fn con repos de catálogo, settings y bitácora atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	settingsRepo repository.SettingsRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewSettingsRepository(tx), NewActivityLogRepository(tx))
	})
}

// RunBilling ejecuta fn con repos de catálogo, clientes, facturas y bitácora atados a la tx.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewCustomerRepository(tx), NewInvoiceRepository(tx), NewActivityLogRepository(tx))
	})
}

func (r *TxRunner) withRetry(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
		r.metrics.TxRetried()
		r.log.Debug().Int("attempt", attempt).Err(err).Msg("conflicto de transacción, reintentando")

		backoff := time.Duration(attempt*attempt) * 10 * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%w: %d intentos: %v", domain.ErrConflict, r.maxRetries, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
