package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ billing.BillingTxRunner = (*Store)(nil)

// state todos los documentos del almacén.
type state struct {
	parts     map[string]entity.Part
	customers map[string]entity.Customer
	invoices  map[string]entity.Invoice
	logs      []entity.ActivityLog
	settings  *entity.Settings
}

func newState() *state {
	return &state{
		parts:     make(map[string]entity.Part),
		customers: make(map[string]entity.Customer),
		invoices:  make(map[string]entity.Invoice),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.parts {
		out.parts[k] = v
	}
	for k, v := range s.customers {
		out.customers[k] = v
	}
	for k, v := range s.invoices {
		out.invoices[k] = v.Clone()
	}
	out.logs = append([]entity.ActivityLog(nil), s.logs...)
	if s.settings != nil {
		cp := *s.settings
		out.settings = &cp
	}
	return out
}

// access cómo un repo llega al estado: directo con el mutex del Store, o a través de una tx.
type access interface {
	read(ctx context.Context, fn func(*state) error) error
	write(ctx context.Context, fn func(*state) error) error
}

// Store almacén de documentos en memoria (modo desarrollo y tests).
// Las transacciones trabajan sobre una copia del estado que solo se publica si la función termina sin error,
// y se ejecutan de a una, de modo que nunca hay conflictos que reintentar.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Parts repo de repuestos fuera de transacción.
func (s *Store) Parts() *PartRepo { return &PartRepo{a: s} }

// Customers repo de clientes fuera de transacción.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{a: s} }

// Invoices repo de facturas fuera de transacción.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{a: s} }

// ActivityLogs bitácora fuera de transacción.
func (s *Store) ActivityLogs() *ActivityLogRepo { return &ActivityLogRepo{a: s} }

// Settings documento de configuración fuera de transacción.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{a: s} }

// Run ejecuta fn con repos de catálogo, settings y bitácora atados a una tx.
func (s *Store) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	settingsRepo repository.SettingsRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	return s.inTx(ctx, func(t *tx) error {
		return fn(&PartRepo{a: t}, &SettingsRepo{a: t}, &ActivityLogRepo{a: t})
	})
}

// RunBilling ejecuta fn con repos de catálogo, clientes, facturas y bitácora atados a una tx.
func (s *Store) RunBilling(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	return s.inTx(ctx, func(t *tx) error {
		return fn(&PartRepo{a: t}, &CustomerRepo{a: t}, &InvoiceRepo{a: t}, &ActivityLogRepo{a: t})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(t *tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{st: s.st.clone()}
	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = t.st
	return nil
}

// tx copia de trabajo de una transacción. Una vez que hubo una escritura, cualquier lectura falla.
type tx struct {
	st    *state
	wrote bool
}

func (t *tx) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.wrote {
		return domain.ErrReadAfterWrite
	}
	return fn(t.st)
}

func (t *tx) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.wrote = true
	return fn(t.st)
}
