package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	domainbilling "github.com/jhoicas/Repuestos-api/internal/domain/billing"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// PaymentAllocator registra pagos sueltos y los reparte entre facturas abiertas, la más antigua primero.
// El excedente se registra en la bitácora y no se guarda como crédito.
type PaymentAllocator struct {
	txRunner BillingTxRunner
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewPaymentAllocator construye el caso de uso.
func NewPaymentAllocator(txRunner BillingTxRunner, metrics ports.Metrics, log *logger.Logger) *PaymentAllocator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PaymentAllocator{txRunner: txRunner, metrics: metrics, log: log.Component("payments")}
}

// RecordPayment aplica amount a las facturas con saldo del cliente en una sola transacción.
func (a *PaymentAllocator) RecordPayment(ctx context.Context, actor, customerID string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() || !pricing.IsMoney(in.Amount) {
		return nil, domain.NewValidationError("amount:gt=0,max_places=2")
	}
	var alloc domainbilling.Allocation

	err := a.txRunner.RunBilling(ctx, func(
		_ repository.PartRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFoundError("customer", customerID)
		}
		open, err := invoiceRepo.ListOpenByCustomerForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		domainbilling.SortOldestFirst(open)
		alloc = domainbilling.Allocate(open, in.Amount)
		return a.persist(ctx, actor, customer.Name, open, alloc, invoiceRepo, activityRepo)
	})
	if err != nil {
		return nil, err
	}
	a.report(customerID, in.Amount, alloc)
	return toPaymentResponse(customerID, in.Amount, alloc), nil
}

// PayInvoice aplica amount a una sola factura; lo que exceda su saldo es sobrepago.
func (a *PaymentAllocator) PayInvoice(ctx context.Context, actor, invoiceID string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() || !pricing.IsMoney(in.Amount) {
		return nil, domain.NewValidationError("amount:gt=0,max_places=2")
	}
	var alloc domainbilling.Allocation
	var customerID string

	err := a.txRunner.RunBilling(ctx, func(
		_ repository.PartRepository,
		_ repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NewNotFoundError("invoice", invoiceID)
		}
		customerID = inv.CustomerID
		open := []*entity.Invoice{inv}
		alloc = domainbilling.Allocate(open, in.Amount)
		return a.persist(ctx, actor, inv.CustomerName, open, alloc, invoiceRepo, activityRepo)
	})
	if err != nil {
		return nil, err
	}
	a.report(customerID, in.Amount, alloc)
	return toPaymentResponse(customerID, in.Amount, alloc), nil
}

// persist escribe solo las facturas que recibieron abono y deja constancia en la bitácora.
func (a *PaymentAllocator) persist(
	ctx context.Context,
	actor, customerName string,
	invoices []*entity.Invoice,
	alloc domainbilling.Allocation,
	invoiceRepo repository.InvoiceRepository,
	activityRepo repository.ActivityLogRepository,
) error {
	byID := make(map[string]*entity.Invoice, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
	}
	now := time.Now()
	for _, app := range alloc.Applications {
		inv := byID[app.InvoiceID]
		inv.UpdatedAt = now
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}
	for _, app := range alloc.Applications {
		if err := activityRepo.Append(ctx, fmt.Sprintf("%s registró un abono de %s a la factura %s de %s (saldo %s)",
			actor, app.Applied.StringFixed(2), app.InvoiceID, customerName, app.BalanceDue.StringFixed(2))); err != nil {
			return err
		}
	}
	if alloc.Overpayment.IsPositive() {
		return activityRepo.Append(ctx, fmt.Sprintf("%s registró un sobrepago de %s de %s sin facturas pendientes",
			actor, alloc.Overpayment.StringFixed(2), customerName))
	}
	return nil
}

func (a *PaymentAllocator) report(customerID string, amount decimal.Decimal, alloc domainbilling.Allocation) {
	applied := amount.Sub(alloc.Overpayment)
	a.metrics.PaymentRecorded(applied, alloc.Overpayment)
	a.log.Info().
		Str("customer_id", customerID).
		Str("amount", amount.StringFixed(2)).
		Int("invoices", len(alloc.Applications)).
		Msg("pago registrado")
	if alloc.Overpayment.IsPositive() {
		a.log.Warn().
			Str("customer_id", customerID).
			Str("overpayment", alloc.Overpayment.StringFixed(2)).
			Msg("sobrepago sin aplicar")
	}
}

func toPaymentResponse(customerID string, amount decimal.Decimal, alloc domainbilling.Allocation) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		CustomerID:   customerID,
		Amount:       amount,
		Overpayment:  alloc.Overpayment,
		Applications: make([]dto.PaymentApplicationResponse, 0, len(alloc.Applications)),
	}
	for _, app := range alloc.Applications {
		resp.Applications = append(resp.Applications, dto.PaymentApplicationResponse{
			InvoiceID:  app.InvoiceID,
			Applied:    app.Applied,
			BalanceDue: app.BalanceDue,
			Status:     app.Status,
		})
	}
	return resp
}
