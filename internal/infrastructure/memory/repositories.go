package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.PartRepository        = (*PartRepo)(nil)
	_ repository.CustomerRepository    = (*CustomerRepo)(nil)
	_ repository.InvoiceRepository     = (*InvoiceRepo)(nil)
	_ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)
	_ repository.SettingsRepository    = (*SettingsRepo)(nil)
)

// PartRepo repuestos en memoria. Devuelve copias: mutar el resultado no altera el almacén.
type PartRepo struct{ a access }

func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.parts[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.parts[p.ID] = *p
		return nil
	})
}

func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.read(ctx, func(st *state) error {
		if p, ok := st.parts[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Part, error) {
	out := make(map[string]*entity.Part, len(ids))
	err := r.a.read(ctx, func(st *state) error {
		for _, id := range ids {
			if p, ok := st.parts[id]; ok {
				out[id] = &p
			}
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) ListAllForUpdate(ctx context.Context) ([]*entity.Part, error) {
	return r.List(ctx, repository.PartFilter{})
}

// List ordena por nombre e ID. Limit 0 devuelve todo.
func (r *PartRepo) List(ctx context.Context, f repository.PartFilter) ([]*entity.Part, error) {
	var list []*entity.Part
	err := r.a.read(ctx, func(st *state) error {
		search := strings.ToLower(f.Search)
		for _, p := range st.parts {
			if search != "" && !matchesPart(p, search) {
				continue
			}
			p := p
			list = append(list, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	return r.a.write(ctx, func(st *state) error {
		cur, ok := st.parts[p.ID]
		if !ok {
			return domain.NewNotFoundError("part", p.ID)
		}
		upd := *p
		upd.Stock = cur.Stock
		st.parts[p.ID] = upd
		return nil
	})
}

func (r *PartRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	return r.a.write(ctx, func(st *state) error {
		cur, ok := st.parts[id]
		if !ok {
			return domain.NewNotFoundError("part", id)
		}
		if stock < 0 {
			return domain.ErrInsufficientStock
		}
		cur.Stock = stock
		cur.UpdatedAt = time.Now()
		st.parts[id] = cur
		return nil
	})
}

func matchesPart(p entity.Part, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.PartNumber), search) ||
		strings.Contains(strings.ToLower(p.PartCode), search)
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ a access }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.read(ctx, func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.a.read(ctx, func(st *state) error {
		for _, c := range st.customers {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), nil
}

// InvoiceRepo facturas en memoria; cada lectura devuelve una copia profunda.
type InvoiceRepo struct{ a access }

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.ErrDuplicate
		}
		st.invoices[inv.ID] = inv.Clone()
		return nil
	})
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.read(ctx, func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			cp := inv.Clone()
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.invoices[inv.ID]; !ok {
			return domain.NewNotFoundError("invoice", inv.ID)
		}
		st.invoices[inv.ID] = inv.Clone()
		return nil
	})
}

func (r *InvoiceRepo) ListOpenByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	return r.filter(ctx, false, func(inv entity.Invoice) bool {
		return inv.CustomerID == customerID && inv.BalanceDue.IsPositive()
	})
}

func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	return r.filter(ctx, false, func(inv entity.Invoice) bool { return inv.CustomerID == customerID })
}

func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	list, err := r.filter(ctx, true, func(entity.Invoice) bool { return true })
	if err != nil {
		return nil, err
	}
	return paginate(list, limit, offset), nil
}

func (r *InvoiceRepo) SumBalanceByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.read(ctx, func(st *state) error {
		for _, inv := range st.invoices {
			if inv.CustomerID == customerID {
				sum = sum.Add(inv.BalanceDue)
			}
		}
		return nil
	})
	return sum, err
}

// filter devuelve copias ordenadas por fecha e ID (ascendente o descendente).
func (r *InvoiceRepo) filter(ctx context.Context, desc bool, keep func(entity.Invoice) bool) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.a.read(ctx, func(st *state) error {
		for _, inv := range st.invoices {
			if keep(inv) {
				cp := inv.Clone()
				list = append(list, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if desc {
			a, b = b, a
		}
		if !a.InvoiceDate.Equal(b.InvoiceDate) {
			return a.InvoiceDate.Before(b.InvoiceDate)
		}
		return a.ID < b.ID
	})
	return list, nil
}

// ActivityLogRepo bitácora en memoria, en orden de inserción.
type ActivityLogRepo struct{ a access }

func (r *ActivityLogRepo) Append(ctx context.Context, description string) error {
	return r.a.write(ctx, func(st *state) error {
		st.logs = append(st.logs, entity.ActivityLog{
			ID:          uuid.New().String(),
			Description: description,
			Date:        time.Now(),
		})
		return nil
	})
}

func (r *ActivityLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	err := r.a.read(ctx, func(st *state) error {
		for i := len(st.logs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			l := st.logs[i]
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

// SettingsRepo documento singleton en memoria.
type SettingsRepo struct{ a access }

func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := r.a.read(ctx, func(st *state) error {
		if st.settings != nil {
			cp := *st.settings
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	return r.a.write(ctx, func(st *state) error {
		cp := *s
		st.settings = &cp
		return nil
	})
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
