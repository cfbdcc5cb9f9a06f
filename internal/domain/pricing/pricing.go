package pricing

import (
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2
	// RatePlaces decimales de la tasa guardada como fracción (0.075 = 7.5 %).
	RatePlaces = 6
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// NormalizeRate acepta la tasa como porcentaje (16) o fracción (0.16) y devuelve la fracción.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.Div(hundred)
	}
	return rate
}

// IsMoney indica si d cabe en la escala de los montos guardados (dos decimales).
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyPlaces))
}

// ValidRate acepta una fracción en [0, 1) o un porcentaje en (1, 100]. El 1 es ambiguo
// (1 % o 100 %) y se rechaza; la tasa normalizada debe caber en RatePlaces decimales.
func ValidRate(rate decimal.Decimal) bool {
	if rate.IsNegative() || rate.Equal(one) || rate.GreaterThan(hundred) {
		return false
	}
	r := NormalizeRate(rate)
	return r.Equal(r.Round(RatePlaces))
}

// Decompose separa un precio digitado en base + impuesto según el tipo de precio.
// inclusive: base = entered / (1 + tasa), impuesto = entered - base (base + impuesto == entered).
// exclusive: base = entered, impuesto = base * tasa.
func Decompose(entered decimal.Decimal, pricingType string, taxable bool, rate decimal.Decimal) (price, tax decimal.Decimal) {
	if !taxable {
		return entered, decimal.Zero
	}
	r := NormalizeRate(rate)
	if pricingType == entity.PricingInclusive {
		price = entered.Div(one.Add(r)).Round(moneyPlaces)
		return price, entered.Sub(price)
	}
	return entered, entered.Mul(r).Round(moneyPlaces)
}

// Recompute recalcula Tax y ExFactPrice desde Price con la configuración cargada.
// Es idempotente: Price no cambia.
func Recompute(p *entity.Part, settings entity.Settings) {
	if p.Taxable {
		p.Tax = p.Price.Mul(NormalizeRate(settings.TaxRate)).Round(moneyPlaces)
	} else {
		p.Tax = decimal.Zero
	}
	p.ExFactPrice = p.Price.Add(p.Tax)
}

// Apply fija el precio de un repuesto a partir de un valor digitado y recalcula los derivados.
func Apply(p *entity.Part, entered decimal.Decimal, settings entity.Settings) {
	price, _ := Decompose(entered, p.PricingType, p.Taxable, settings.TaxRate)
	p.Price = price
	Recompute(p, settings)
}
