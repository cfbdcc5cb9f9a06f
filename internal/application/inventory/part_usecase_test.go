package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

const actor = "tester"

var defaults = entity.Settings{TaxRate: decimal.NewFromInt(16)}

func newPartUseCase(store *memory.Store) *inventory.PartUseCase {
	return inventory.NewPartUseCase(store, store.Parts(), inventory.NewStockLedger(ports.NopMetrics{}), defaults, logger.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPartUseCase_CreateDescomponePrecio(t *testing.T) {
	ctx := context.Background()
	uc := newPartUseCase(memory.NewStore())

	excl, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: "Bujía", Price: dec("100"), Taxable: true, Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, entity.PricingExclusive, excl.PricingType, "tipo de precio por defecto")
	assert.True(t, excl.Tax.Equal(dec("16")))
	assert.True(t, excl.ExFactPrice.Equal(dec("116")))
	assert.Equal(t, 4, excl.Stock)

	incl, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: "Balata", Price: dec("116"), Taxable: true, PricingType: entity.PricingInclusive})
	require.NoError(t, err)
	assert.True(t, incl.Price.Equal(dec("100")))
	assert.True(t, incl.ExFactPrice.Equal(dec("116")))

	exempt, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: "Manual", Price: dec("50")})
	require.NoError(t, err)
	assert.True(t, exempt.Tax.IsZero())
	assert.True(t, exempt.ExFactPrice.Equal(dec("50")))
}

func TestPartUseCase_CreateInvalido(t *testing.T) {
	ctx := context.Background()
	uc := newPartUseCase(memory.NewStore())

	_, err := uc.Create(ctx, actor, dto.CreatePartRequest{Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")
	_, err = uc.Create(ctx, actor, dto.CreatePartRequest{Name: "x", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
	_, err = uc.Create(ctx, actor, dto.CreatePartRequest{Name: "x", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock negativo")
	_, err = uc.Create(ctx, actor, dto.CreatePartRequest{Name: "x", Price: dec("10.005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio con más de dos decimales")
}

func TestPartUseCase_UpdateRecalculaYNoTocaStock(t *testing.T) {
	ctx := context.Background()
	uc := newPartUseCase(memory.NewStore())
	p, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: "Filtro", Price: dec("10"), Taxable: true, Stock: 3})
	require.NoError(t, err)

	taxable := false
	name := "Filtro de aire"
	out, err := uc.Update(ctx, actor, p.ID, dto.UpdatePartRequest{Name: &name, Taxable: &taxable})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, out.Tax.IsZero())
	assert.True(t, out.ExFactPrice.Equal(dec("10")))
	assert.Equal(t, 3, out.Stock)

	_, err = uc.Update(ctx, actor, "no-existe", dto.UpdatePartRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_AdjustStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newPartUseCase(store)
	p, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: "Banda", Price: dec("5"), Stock: 2})
	require.NoError(t, err)

	out, err := uc.AdjustStock(ctx, actor, p.ID, dto.AdjustStockRequest{Delta: 5, Reason: "compra"})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Stock)

	_, err = uc.AdjustStock(ctx, actor, p.ID, dto.AdjustStockRequest{Delta: -8})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 7, stockErr.Available)
	assert.Equal(t, 8, stockErr.Requested)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock, "un ajuste rechazado no cambia el stock")

	_, err = uc.AdjustStock(ctx, actor, p.ID, dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, actor, "no-existe", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := store.ActivityLogs().ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Description, "+5")
	assert.Contains(t, logs[0].Description, "compra")
}

func TestPartUseCase_ListBusca(t *testing.T) {
	ctx := context.Background()
	uc := newPartUseCase(memory.NewStore())
	for _, n := range []string{"Amortiguador", "Bujía", "Bomba de agua"} {
		_, err := uc.Create(ctx, actor, dto.CreatePartRequest{Name: n, Price: dec("1")})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, " b ", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Page.Limit, "límite por defecto")
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Bomba de agua", out.Items[0].Name)
	assert.Equal(t, "Bujía", out.Items[1].Name)
}
