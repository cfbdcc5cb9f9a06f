package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precio: cómo se interpreta un precio digitado a mano.
const (
	PricingInclusive = "inclusive" // el precio digitado ya incluye el impuesto
	PricingExclusive = "exclusive" // el precio digitado es la base sin impuesto
)

// Part representa un repuesto del catálogo.
// Stock nunca es negativo y solo cambia mediante deltas dentro de una transacción.
type Part struct {
	ID          string
	Name        string
	PartNumber  string
	PartCode    string
	Price       decimal.Decimal // base sin impuesto
	Taxable     bool
	Tax         decimal.Decimal // monto de impuesto derivado
	ExFactPrice decimal.Decimal // Price + Tax, precio de venta
	Stock       int
	PricingType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidPricingType indica si t es uno de los tipos de precio reconocidos.
func ValidPricingType(t string) bool {
	return t == PricingInclusive || t == PricingExclusive
}
