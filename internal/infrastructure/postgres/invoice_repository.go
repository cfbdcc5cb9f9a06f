package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, customer_id, customer_name, customer_address, customer_phone,
	invoice_date, due_date, items, subtotal, total, paid_amount, balance_due, status, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las líneas se guardan embebidas en la columna JSONB items.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura completa.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, inv.CustomerName, inv.CustomerAddress, inv.CustomerPhone,
		inv.InvoiceDate, inv.DueDate, items, inv.Subtotal, inv.Total, inv.PaidAmount, inv.BalanceDue,
		inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, inv.ID)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por número; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetForUpdate obtiene la factura y bloquea la fila.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

// Update reemplaza líneas, totales, pagos, estado y vencimiento.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	query := `
		UPDATE invoices
		SET items = $2, subtotal = $3, total = $4, paid_amount = $5, balance_due = $6,
		    status = $7, due_date = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, items, inv.Subtotal, inv.Total, inv.PaidAmount, inv.BalanceDue, inv.Status, inv.DueDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("invoice", inv.ID)
	}
	return nil
}

// ListOpenByCustomerForUpdate facturas con saldo del cliente, más antiguas primero, bloqueadas.
func (r *InvoiceRepo) ListOpenByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE customer_id = $1 AND balance_due > 0
		ORDER BY invoice_date, id FOR UPDATE`
	return r.queryInvoices(ctx, "list open invoices", query, customerID)
}

// ListByCustomer todas las facturas del cliente, más antiguas primero.
func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY invoice_date, id`
	return r.queryInvoices(ctx, "list customer invoices", query, customerID)
}

// List facturas más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY invoice_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.queryInvoices(ctx, "list invoices", query, limit, offset)
}

// SumBalanceByCustomer suma de balance_due de las facturas del cliente.
func (r *InvoiceRepo) SumBalanceByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(balance_due), 0) FROM invoices WHERE customer_id = $1`, customerID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum customer balance: %w", err)
	}
	return sum, nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) queryInvoices(ctx context.Context, op, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.CustomerName, &inv.CustomerAddress, &inv.CustomerPhone,
		&inv.InvoiceDate, &inv.DueDate, &items, &inv.Subtotal, &inv.Total, &inv.PaidAmount, &inv.BalanceDue,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal invoice items: %w", err)
	}
	return &inv, nil
}
