package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// PartUseCase catálogo de repuestos. El stock solo cambia vía StockLedger.
type PartUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	ledger   *StockLedger
	defaults entity.Settings
	log      *logger.Logger
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(txRunner TxRunner, partRepo repository.PartRepository, ledger *StockLedger, defaults entity.Settings, log *logger.Logger) *PartUseCase {
	return &PartUseCase{
		txRunner: txRunner,
		partRepo: partRepo,
		ledger:   ledger,
		defaults: defaults,
		log:      log.Component("catalog"),
	}
}

// Create crea un repuesto descomponiendo el precio digitado con la tasa vigente.
func (uc *PartUseCase) Create(ctx context.Context, actor string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if err := validatePartInput(in); err != nil {
		return nil, err
	}
	var part *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		settingsRepo repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		settings, err := loadSettings(ctx, settingsRepo, uc.defaults)
		if err != nil {
			return err
		}
		part = newPart(in, settings, time.Now())
		if err := partRepo.Create(ctx, part); err != nil {
			return err
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s creó el repuesto %s (%s) con stock %d", actor, part.Name, part.PartNumber, part.Stock))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("part_id", part.ID).Str("name", part.Name).Msg("repuesto creado")
	return toPartResponse(part), nil
}

// Update actualiza datos y precio. Un cambio de precio, gravado o tipo de precio recalcula impuesto y precio de venta.
func (uc *PartUseCase) Update(ctx context.Context, actor, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price != nil && (in.Price.IsNegative() || !pricing.IsMoney(*in.Price)) {
		return nil, domain.NewValidationError("price:gte=0,max_places=2")
	}
	var part *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		settingsRepo repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		settings, err := loadSettings(ctx, settingsRepo, uc.defaults)
		if err != nil {
			return err
		}
		found, err := partRepo.GetManyForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		part = found[id]
		if part == nil {
			return domain.NewNotFoundError("part", id)
		}
		if in.Name != nil {
			part.Name = *in.Name
		}
		if in.PartNumber != nil {
			part.PartNumber = *in.PartNumber
		}
		if in.PartCode != nil {
			part.PartCode = *in.PartCode
		}
		if in.Taxable != nil {
			part.Taxable = *in.Taxable
		}
		if in.PricingType != nil {
			part.PricingType = *in.PricingType
		}
		if in.Price != nil {
			pricing.Apply(part, *in.Price, settings)
		} else {
			pricing.Recompute(part, settings)
		}
		part.UpdatedAt = time.Now()
		if err := partRepo.Update(ctx, part); err != nil {
			return err
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s actualizó el repuesto %s", actor, part.Name))
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// AdjustStock aplica un delta manual (reposición o merma) en su propia transacción.
func (uc *PartUseCase) AdjustStock(ctx context.Context, actor, id string, in dto.AdjustStockRequest) (*dto.PartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var part *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.SettingsRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		plan, err := uc.ledger.ApplyInTx(ctx, partRepo, domaininv.Deltas{id: in.Delta})
		if err != nil {
			return err
		}
		part = plan.Parts[id]
		desc := fmt.Sprintf("%s ajustó el stock de %s en %+d (nuevo stock %d)", actor, part.Name, in.Delta, part.Stock)
		if in.Reason != "" {
			desc += ": " + in.Reason
		}
		return activityRepo.Append(ctx, desc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("part_id", id).Int("delta", in.Delta).Int("stock", part.Stock).Msg("stock ajustado")
	return toPartResponse(part), nil
}

// GetByID obtiene un repuesto por ID.
func (uc *PartUseCase) GetByID(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.NewNotFoundError("part", id)
	}
	return toPartResponse(part), nil
}

// List lista repuestos con búsqueda opcional y paginación.
func (uc *PartUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.PartListResponse, error) {
	page.DefaultPage()
	list, err := uc.partRepo.List(ctx, repository.PartFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func validatePartInput(in dto.CreatePartRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.Price.IsNegative() || !pricing.IsMoney(in.Price) {
		return domain.NewValidationError("price:gte=0,max_places=2")
	}
	return nil
}

func newPart(in dto.CreatePartRequest, settings entity.Settings, now time.Time) *entity.Part {
	pricingType := in.PricingType
	if !entity.ValidPricingType(pricingType) {
		pricingType = entity.PricingExclusive
	}
	part := &entity.Part{
		ID:          uuid.New().String(),
		Name:        in.Name,
		PartNumber:  in.PartNumber,
		PartCode:    in.PartCode,
		Taxable:     in.Taxable,
		PricingType: pricingType,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pricing.Apply(part, in.Price, settings)
	return part
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:          p.ID,
		Name:        p.Name,
		PartNumber:  p.PartNumber,
		PartCode:    p.PartCode,
		Price:       p.Price,
		Taxable:     p.Taxable,
		Tax:         p.Tax,
		ExFactPrice: p.ExFactPrice,
		Stock:       p.Stock,
		PricingType: p.PricingType,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
