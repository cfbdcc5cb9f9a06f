package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, name, part_number, part_code, price, taxable, tax, ex_fact_price, stock, pricing_type, created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.PartNumber, p.PartCode, p.Price, p.Taxable, p.Tax, p.ExFactPrice,
		p.Stock, p.PricingType, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID; nil si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetManyForUpdate lee y bloquea los repuestos en orden de ID para que dos ventas concurrentes
// tomen los bloqueos en el mismo orden.
func (r *PartRepo) GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Part, error) {
	out := make(map[string]*entity.Part, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	list, err := r.queryParts(ctx, "get parts for update", query, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// ListAllForUpdate lee y bloquea todo el catálogo.
func (r *PartRepo) ListAllForUpdate(ctx context.Context) ([]*entity.Part, error) {
	return r.queryParts(ctx, "list parts for update", `SELECT `+partColumns+` FROM parts ORDER BY id FOR UPDATE`)
}

// List lista repuestos por nombre con búsqueda opcional.
func (r *PartRepo) List(ctx context.Context, f repository.PartFilter) ([]*entity.Part, error) {
	if f.Search == "" {
		query := `SELECT ` + partColumns + ` FROM parts ORDER BY name, id LIMIT $1 OFFSET $2`
		return r.queryParts(ctx, "list parts", query, f.Limit, f.Offset)
	}
	query := `
		SELECT ` + partColumns + ` FROM parts
		WHERE name ILIKE $1 OR part_number ILIKE $1 OR part_code ILIKE $1
		ORDER BY name, id LIMIT $2 OFFSET $3`
	return r.queryParts(ctx, "search parts", query, "%"+f.Search+"%", f.Limit, f.Offset)
}

// Update actualiza datos y precios (no el stock).
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	query := `
		UPDATE parts
		SET name = $2, part_number = $3, part_code = $4, price = $5, taxable = $6,
		    tax = $7, ex_fact_price = $8, pricing_type = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.PartNumber, p.PartCode, p.Price, p.Taxable, p.Tax, p.ExFactPrice, p.PricingType, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("part", p.ID)
	}
	return nil
}

// UpdateStock escribe el stock ya validado. El CHECK (stock >= 0) de la tabla es la última barrera.
func (r *PartRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE parts SET stock = $2, updated_at = NOW() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: part %s", domain.ErrInsufficientStock, id)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("part", id)
	}
	return nil
}

func (r *PartRepo) queryParts(ctx context.Context, op, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.ID, &p.Name, &p.PartNumber, &p.PartCode, &p.Price, &p.Taxable, &p.Tax, &p.ExFactPrice,
		&p.Stock, &p.PricingType, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
