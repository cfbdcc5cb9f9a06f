package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// loadSettings lee el documento singleton; si no existe devuelve los valores por defecto.
// La tasa siempre sale como fracción.
func loadSettings(ctx context.Context, repo repository.SettingsRepository, defaults entity.Settings) (entity.Settings, error) {
	s, err := repo.Get(ctx)
	if err != nil {
		return entity.Settings{}, err
	}
	out := defaults
	if s != nil {
		out = *s
	}
	out.TaxRate = pricing.NormalizeRate(out.TaxRate)
	return out, nil
}
