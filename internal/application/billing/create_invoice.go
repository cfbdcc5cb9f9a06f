package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceConfig valores por defecto de facturación.
type InvoiceConfig struct {
	DueDays int // días de crédito si no se indica fecha de vencimiento
}

// InvoiceUseCase ciclo de vida de la factura: crear y editar descontando/reconciliando inventario
// en una sola transacción, y consultas.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	ledger      StockLedger
	invoiceRepo repository.InvoiceRepository
	numberer    *InvoiceNumberer
	cfg         InvoiceConfig
	metrics     ports.Metrics
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	ledger StockLedger,
	invoiceRepo repository.InvoiceRepository,
	numberer *InvoiceNumberer,
	cfg InvoiceConfig,
	metrics ports.Metrics,
	log *logger.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		invoiceRepo: invoiceRepo,
		numberer:    numberer,
		cfg:         cfg,
		metrics:     metrics,
		log:         log.Component("billing"),
	}
}

// CreateInvoice valida la entrada, y en una transacción lee cliente y repuestos, valida stock,
// descuenta cada línea e inserta la factura. Si algo falla no se escribe nada.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, actor string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validateRequest(in, in.Items); err != nil {
		return nil, err
	}
	if err := validatePaid(in.PaidAmount); err != nil {
		return nil, err
	}
	now := time.Now()
	invoiceDate := now
	if in.InvoiceDate != nil && !in.InvoiceDate.IsZero() {
		invoiceDate = *in.InvoiceDate
	}
	dueDate := invoiceDate.AddDate(0, 0, uc.cfg.DueDays)
	if in.DueDate != nil && !in.DueDate.IsZero() {
		dueDate = *in.DueDate
	}
	if dueDate.Before(invoiceDate) {
		return nil, domain.NewValidationError("due_date:gte=invoice_date")
	}

	requested := requestedItems(in.Items)
	number := uc.numberer.Next(now)
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		partRepo repository.PartRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		// 1) Lecturas: cliente y todos los repuestos del carrito en un lote
		customer, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFoundError("customer", in.CustomerID)
		}
		plan, err := uc.ledger.Prepare(ctx, partRepo, domaininv.Consume(requested))
		if err != nil {
			return err
		}

		// 2) Factura con snapshot del cliente y de cada repuesto
		inv = &entity.Invoice{
			ID:          number,
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			PaidAmount:  in.PaidAmount,
			Status:      entity.InvoiceStatusUnpaid,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		inv.SnapshotCustomer(*customer)
		inv.Items = buildItems(in.Items, plan.Parts, nil)
		inv.Recalculate()

		// 3) Escrituras: stock, factura, bitácora
		if err := uc.ledger.Commit(ctx, partRepo, plan); err != nil {
			return err
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s creó la factura %s para %s por %s (pagado %s)",
			actor, inv.ID, inv.CustomerName, inv.Total.StringFixed(2), inv.PaidAmount.StringFixed(2)))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("customer_id", in.CustomerID).Msg("factura rechazada")
		return nil, err
	}

	uc.metrics.InvoiceCreated(inv.Total)
	uc.log.Info().
		Str("invoice", inv.ID).
		Str("customer_id", inv.CustomerID).
		Str("total", inv.Total.StringFixed(2)).
		Str("status", inv.Status).
		Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// GetInvoice obtiene una factura por número.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewNotFoundError("invoice", id)
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista facturas, más recientes primero.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// validateRequest aplica las etiquetas del request y rechaza precios unitarios negativos.
func validateRequest(in interface{}, items []dto.InvoiceItemRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	for i, it := range items {
		if it.UnitPrice != nil && (it.UnitPrice.IsNegative() || !pricing.IsMoney(*it.UnitPrice)) {
			return domain.NewValidationError(fmt.Sprintf("items[%d].unit_price:gte=0,max_places=2", i))
		}
	}
	return nil
}

func validatePaid(paid decimal.Decimal) error {
	if paid.IsNegative() || !pricing.IsMoney(paid) {
		return domain.NewValidationError("paid_amount:gte=0,max_places=2")
	}
	return nil
}

// requestedItems solo repuesto y cantidad, para calcular deltas antes de leer el catálogo.
func requestedItems(items []dto.InvoiceItemRequest) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	for i, it := range items {
		out[i] = entity.InvoiceItem{PartID: it.PartID, Quantity: it.Quantity}
	}
	return out
}

// buildItems arma las líneas con snapshot del repuesto. Precio: el indicado, si no el de la línea
// original para ese repuesto (edición), si no el precio de venta vigente.
func buildItems(items []dto.InvoiceItemRequest, parts map[string]*entity.Part, original []entity.InvoiceItem) []entity.InvoiceItem {
	originalPrice := make(map[string]entity.InvoiceItem, len(original))
	for _, it := range original {
		if _, ok := originalPrice[it.PartID]; !ok {
			originalPrice[it.PartID] = it
		}
	}
	out := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		part := parts[it.PartID]
		line := entity.InvoiceItem{
			PartID:     it.PartID,
			PartName:   part.Name,
			PartNumber: part.PartNumber,
			Quantity:   it.Quantity,
			UnitPrice:  part.ExFactPrice,
		}
		if prev, ok := originalPrice[it.PartID]; ok {
			line.UnitPrice = prev.UnitPrice
		}
		if it.UnitPrice != nil {
			line.UnitPrice = *it.UnitPrice
		}
		out = append(out, line)
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		CustomerPhone:   inv.CustomerPhone,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Subtotal:        inv.Subtotal,
		Total:           inv.Total,
		PaidAmount:      inv.PaidAmount,
		BalanceDue:      inv.BalanceDue,
		Status:          inv.Status,
		Items:           make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			PartID:     it.PartID,
			PartName:   it.PartName,
			PartNumber: it.PartNumber,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Total:      it.Total,
		})
	}
	return resp
}

func toInvoiceResponses(list []*entity.Invoice) []*dto.InvoiceResponse {
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out
}
