package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings documento singleton con la tasa global de impuesto y la bandera de sembrado.
// Se carga explícitamente y se pasa a las funciones de precio.
type Settings struct {
	TaxRate   decimal.Decimal // 16 o 0.16 representan lo mismo
	Seeded    bool
	UpdatedAt time.Time
}
