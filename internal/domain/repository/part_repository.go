package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PartFilter filtros del listado de repuestos.
type PartFilter struct {
	Search string // coincide con name, part_number o part_code
	Limit  int
	Offset int
}

// PartRepository define el puerto de persistencia para Part (DIP).
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	// GetManyForUpdate lee en un solo lote los repuestos indicados y los bloquea hasta el fin de la tx.
	// Los IDs inexistentes simplemente no aparecen en el mapa.
	GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Part, error)
	// ListAllForUpdate lee todo el catálogo (actualización masiva de precios).
	ListAllForUpdate(ctx context.Context) ([]*entity.Part, error)
	List(ctx context.Context, filter PartFilter) ([]*entity.Part, error)
	// Update actualiza datos descriptivos y de precio; no toca Stock.
	Update(ctx context.Context, part *entity.Part) error
	// UpdateStock escribe el stock ya validado.
	UpdateStock(ctx context.Context, id string, stock int) error
}
