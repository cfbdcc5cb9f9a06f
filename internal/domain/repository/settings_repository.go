package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// SettingsRepository documento singleton de configuración de negocio.
type SettingsRepository interface {
	// Get devuelve nil si el documento aún no existe.
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
