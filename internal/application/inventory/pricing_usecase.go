package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// PricingUseCase administra el documento de settings: tasa de impuesto global y sembrado del catálogo.
type PricingUseCase struct {
	txRunner     TxRunner
	settingsRepo repository.SettingsRepository
	defaults     entity.Settings
	log          *logger.Logger
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(txRunner TxRunner, settingsRepo repository.SettingsRepository, defaults entity.Settings, log *logger.Logger) *PricingUseCase {
	return &PricingUseCase{
		txRunner:     txRunner,
		settingsRepo: settingsRepo,
		defaults:     defaults,
		log:          log.Component("pricing"),
	}
}

// Current devuelve la configuración vigente (o los valores por defecto si aún no existe).
func (uc *PricingUseCase) Current(ctx context.Context) (entity.Settings, error) {
	return loadSettings(ctx, uc.settingsRepo, uc.defaults)
}

// GetSettings versión DTO de Current.
func (uc *PricingUseCase) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{TaxRate: s.TaxRate, Seeded: s.Seeded}, nil
}

// UpdateTaxRate guarda la nueva tasa y recalcula impuesto y precio de venta de todo el catálogo en una sola tx.
func (uc *PricingUseCase) UpdateTaxRate(ctx context.Context, actor string, in dto.UpdateTaxRateRequest) (*dto.TaxRateUpdateResponse, error) {
	if !pricing.ValidRate(in.TaxRate) {
		return nil, domain.NewValidationError("tax_rate:range=0..100,ne=1")
	}
	rate := pricing.NormalizeRate(in.TaxRate)
	var repriced int
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		settingsRepo repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		repriced = 0
		settings, err := loadSettings(ctx, settingsRepo, uc.defaults)
		if err != nil {
			return err
		}
		parts, err := partRepo.ListAllForUpdate(ctx)
		if err != nil {
			return err
		}
		previous := settings.TaxRate
		settings.TaxRate = rate
		settings.UpdatedAt = time.Now()
		if err := settingsRepo.Save(ctx, &settings); err != nil {
			return err
		}
		for _, p := range parts {
			before := p.ExFactPrice
			pricing.Recompute(p, settings)
			if before.Equal(p.ExFactPrice) {
				continue
			}
			p.UpdatedAt = settings.UpdatedAt
			if err := partRepo.Update(ctx, p); err != nil {
				return err
			}
			repriced++
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s cambió la tasa de impuesto de %s a %s (%d repuestos recalculados)",
			actor, previous.String(), rate.String(), repriced))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tax_rate", rate.String()).Int("repriced", repriced).Msg("tasa de impuesto actualizada")
	return &dto.TaxRateUpdateResponse{TaxRate: rate, PartsRepriced: repriced}, nil
}

// SeedCatalog inserta el catálogo inicial una sola vez; la bandera Seeded se lee y se fija en la misma tx.
func (uc *PricingUseCase) SeedCatalog(ctx context.Context, actor string, in dto.SeedCatalogRequest) (*dto.SeedCatalogResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	for _, p := range in.Parts {
		if err := validatePartInput(p); err != nil {
			return nil, err
		}
	}
	out := &dto.SeedCatalogResponse{}
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		settingsRepo repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		*out = dto.SeedCatalogResponse{}
		settings, err := loadSettings(ctx, settingsRepo, uc.defaults)
		if err != nil {
			return err
		}
		if settings.Seeded {
			return nil
		}
		now := time.Now()
		for _, in := range in.Parts {
			if err := partRepo.Create(ctx, newPart(in, settings, now)); err != nil {
				return err
			}
			out.Inserted++
		}
		settings.Seeded = true
		settings.UpdatedAt = now
		if err := settingsRepo.Save(ctx, &settings); err != nil {
			return err
		}
		out.Seeded = true
		return activityRepo.Append(ctx, fmt.Sprintf("%s sembró el catálogo con %d repuestos", actor, out.Inserted))
	})
	if err != nil {
		return nil, err
	}
	if out.Seeded {
		uc.log.Info().Int("inserted", out.Inserted).Msg("catálogo sembrado")
	}
	return out, nil
}
