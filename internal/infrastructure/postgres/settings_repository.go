package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo documento singleton: una sola fila con id = 1.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve nil si la fila aún no existe. La lectura bloquea la fila para que sembrado y cambio de tasa se serialicen.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx, `SELECT tax_rate, seeded, updated_at FROM settings WHERE id = 1 FOR UPDATE`).
		Scan(&s.TaxRate, &s.Seeded, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save inserta o reemplaza el documento.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings (id, tax_rate, seeded, updated_at) VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET tax_rate = EXCLUDED.tax_rate, seeded = EXCLUDED.seeded, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, s.TaxRate, s.Seeded, s.UpdatedAt); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
