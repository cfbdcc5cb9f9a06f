package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// ActivityLogRepository bitácora de solo anexado.
type ActivityLogRepository interface {
	Append(ctx context.Context, description string) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}
