package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// StockPlan resultado de la fase de lectura+validación: repuestos leídos y deltas aprobados.
type StockPlan struct {
	Parts  map[string]*entity.Part
	Deltas domaininv.Deltas
}

// StockLedger aplica deltas de stock dentro de la transacción del caller.
// Fase 1 (Prepare): lectura en lote y validación. Fase 2 (Commit): escritura. Nunca escribe si la validación falla.
type StockLedger struct {
	metrics ports.Metrics
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(metrics ports.Metrics) *StockLedger {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &StockLedger{metrics: metrics}
}

// Prepare lee de una vez todos los repuestos tocados por deltas (incluidos los de delta cero)
// y valida que ningún stock resultante sea negativo.
func (l *StockLedger) Prepare(ctx context.Context, partRepo repository.PartRepository, deltas domaininv.Deltas) (*StockPlan, error) {
	parts, err := partRepo.GetManyForUpdate(ctx, deltas.PartIDs())
	if err != nil {
		return nil, err
	}
	if err := domaininv.Validate(parts, deltas); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			l.metrics.StockRejected()
		}
		return nil, err
	}
	return &StockPlan{Parts: parts, Deltas: deltas}, nil
}

// Commit escribe el stock resultante de cada delta distinto de cero y actualiza los repuestos del plan.
func (l *StockLedger) Commit(ctx context.Context, partRepo repository.PartRepository, plan *StockPlan) error {
	for _, id := range plan.Deltas.NonZero().PartIDs() {
		p := plan.Parts[id]
		p.Stock += plan.Deltas[id]
		if err := partRepo.UpdateStock(ctx, id, p.Stock); err != nil {
			return err
		}
	}
	return nil
}

// ApplyInTx Prepare + Commit para callers que no necesitan leer nada más entre ambas fases.
func (l *StockLedger) ApplyInTx(ctx context.Context, partRepo repository.PartRepository, deltas domaininv.Deltas) (*StockPlan, error) {
	plan, err := l.Prepare(ctx, partRepo, deltas)
	if err != nil {
		return nil, err
	}
	if err := l.Commit(ctx, partRepo, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
