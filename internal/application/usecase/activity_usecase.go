package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ActivityUseCase consulta de la bitácora de operaciones.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// ListRecent últimas entradas, más recientes primero.
func (uc *ActivityUseCase) ListRecent(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	list, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ActivityLogResponse{
			ID:          l.ID,
			Description: l.Description,
			Date:        l.Date.Format(time.RFC3339),
		})
	}
	return out, nil
}
