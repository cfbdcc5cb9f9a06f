package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Todas las lecturas deben ocurrir antes de la primera escritura; ante conflicto la función se reintenta completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		settingsRepo repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error) error
}
