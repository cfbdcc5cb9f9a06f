package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del mostrador.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerBalance cliente con su saldo derivado (suma de balanceDue de sus facturas; no se persiste).
type CustomerBalance struct {
	Customer
	Balance decimal.Decimal
}
