package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora sobre la tabla activity_logs.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append inserta una entrada con la fecha actual.
func (r *ActivityLogRepo) Append(ctx context.Context, description string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_logs (id, description, date) VALUES ($1, $2, $3)`,
		uuid.New().String(), description, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListRecent últimas entradas, más recientes primero.
func (r *ActivityLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx, `SELECT id, description, date FROM activity_logs ORDER BY date DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		if err := rows.Scan(&l.ID, &l.Description, &l.Date); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
