package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// EditInvoice reemplaza las líneas y el monto pagado de una factura existente.
// Sin paid_amount se conserva lo ya pagado (incluidos abonos registrados después de crearla).
// El stock se reconcilia con un solo mapa de deltas netos: se devuelve lo de la versión original
// y se consume lo de la nueva, de modo que un repuesto presente en ambas solo mueve la diferencia.
// Lee la factura y todos los repuestos de ambas versiones antes de escribir cualquier cosa.
func (uc *InvoiceUseCase) EditInvoice(ctx context.Context, actor, invoiceID string, in dto.EditInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validateRequest(in, in.Items); err != nil {
		return nil, err
	}
	if in.PaidAmount != nil {
		if err := validatePaid(*in.PaidAmount); err != nil {
			return nil, err
		}
	}

	requested := requestedItems(in.Items)
	var inv *entity.Invoice
	var deltas domaininv.Deltas

	err := uc.txRunner.RunBilling(ctx, func(
		partRepo repository.PartRepository,
		_ repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NewNotFoundError("invoice", invoiceID)
		}
		if in.DueDate != nil && !in.DueDate.IsZero() {
			if in.DueDate.Before(inv.InvoiceDate) {
				return domain.NewValidationError("due_date:gte=invoice_date")
			}
			inv.DueDate = *in.DueDate
		}

		deltas = domaininv.Reconcile(inv.Items, requested)
		plan, err := uc.ledger.Prepare(ctx, partRepo, deltas)
		if err != nil {
			return err
		}

		inv.Items = buildItems(in.Items, plan.Parts, inv.Items)
		if in.PaidAmount != nil {
			inv.PaidAmount = *in.PaidAmount
		}
		inv.UpdatedAt = time.Now()
		inv.Recalculate()

		if err := uc.ledger.Commit(ctx, partRepo, plan); err != nil {
			return err
		}
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s editó la factura %s: total %s, pagado %s, saldo %s",
			actor, inv.ID, inv.Total.StringFixed(2), inv.PaidAmount.StringFixed(2), inv.BalanceDue.StringFixed(2)))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice", invoiceID).Msg("edición de factura rechazada")
		return nil, err
	}

	uc.metrics.InvoiceEdited()
	uc.log.Info().
		Str("invoice", inv.ID).
		Int("parts_moved", len(deltas.NonZero())).
		Str("total", inv.Total.StringFixed(2)).
		Str("status", inv.Status).
		Msg("factura editada")
	return toInvoiceResponse(inv), nil
}
