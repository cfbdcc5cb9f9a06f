package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalizeRate_PorcentajeYFraccion(t *testing.T) {
	assert.True(t, pricing.NormalizeRate(dec("16")).Equal(dec("0.16")))
	assert.True(t, pricing.NormalizeRate(dec("0.16")).Equal(dec("0.16")))
	assert.True(t, pricing.NormalizeRate(decimal.Zero).IsZero())
}

func TestDecompose_Exclusivo(t *testing.T) {
	price, tax := pricing.Decompose(dec("100"), entity.PricingExclusive, true, dec("16"))
	assert.True(t, price.Equal(dec("100")))
	assert.True(t, tax.Equal(dec("16")))
}

func TestDecompose_InclusivoConservaElTotal(t *testing.T) {
	price, tax := pricing.Decompose(dec("116"), entity.PricingInclusive, true, dec("16"))
	assert.True(t, price.Equal(dec("100")))
	assert.True(t, tax.Equal(dec("16")))
	assert.True(t, price.Add(tax).Equal(dec("116")), "base + impuesto debe igualar el precio digitado")
}

func TestDecompose_NoGravado(t *testing.T) {
	price, tax := pricing.Decompose(dec("50"), entity.PricingInclusive, false, dec("16"))
	assert.True(t, price.Equal(dec("50")))
	assert.True(t, tax.IsZero())
}

// Recalcular dos veces seguidas no produce deriva.
func TestRecompute_Idempotente(t *testing.T) {
	settings := entity.Settings{TaxRate: dec("16")}
	p := &entity.Part{Price: dec("33.33"), Taxable: true}

	pricing.Recompute(p, settings)
	first := p.ExFactPrice
	pricing.Recompute(p, settings)

	assert.True(t, first.Equal(p.ExFactPrice), "exFactPrice no debe cambiar al recalcular")
	assert.True(t, p.ExFactPrice.Equal(p.Price.Add(p.Tax)))
	assert.True(t, p.Tax.Equal(dec("5.33")))
}

func TestApply_CambioDeTasa(t *testing.T) {
	p := &entity.Part{Taxable: true, PricingType: entity.PricingExclusive}
	pricing.Apply(p, dec("200"), entity.Settings{TaxRate: dec("10")})
	assert.True(t, p.ExFactPrice.Equal(dec("220")))

	pricing.Recompute(p, entity.Settings{TaxRate: dec("0.2")})
	assert.True(t, p.Price.Equal(dec("200")), "la base no cambia con la tasa")
	assert.True(t, p.ExFactPrice.Equal(dec("240")))
}

func TestIsMoney_DosDecimales(t *testing.T) {
	assert.True(t, pricing.IsMoney(dec("10")))
	assert.True(t, pricing.IsMoney(dec("10.50")))
	assert.True(t, pricing.IsMoney(dec("10.500")), "ceros a la derecha no cuentan")
	assert.False(t, pricing.IsMoney(dec("0.006")))
	assert.False(t, pricing.IsMoney(dec("-1.001")))
}

func TestValidRate_Rangos(t *testing.T) {
	for _, r := range []string{"0", "0.16", "0.075", "7.5", "16", "100", "0.999999"} {
		assert.True(t, pricing.ValidRate(dec(r)), r)
	}
	for _, r := range []string{"-0.01", "1", "100.01", "0.0000001", "7.00005"} {
		assert.False(t, pricing.ValidRate(dec(r)), r)
	}
}
