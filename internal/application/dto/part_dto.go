package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para crear un repuesto.
// Price es el precio digitado; se interpreta según PricingType (inclusive/exclusive).
type CreatePartRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	PartNumber  string          `json:"part_number" validate:"max=100"`
	PartCode    string          `json:"part_code" validate:"max=100"`
	Price       decimal.Decimal `json:"price"`
	Taxable     bool            `json:"taxable"`
	PricingType string          `json:"pricing_type" validate:"omitempty,oneof=inclusive exclusive"`
	Stock       int             `json:"stock" validate:"min=0"`
}

// UpdatePartRequest entrada para actualizar un repuesto (sin Stock: se maneja vía ajustes).
type UpdatePartRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PartNumber  *string          `json:"part_number" validate:"omitempty,max=100"`
	PartCode    *string          `json:"part_code" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Taxable     *bool            `json:"taxable"`
	PricingType *string          `json:"pricing_type" validate:"omitempty,oneof=inclusive exclusive"`
}

// AdjustStockRequest body para POST /api/parts/:id/stock (delta con signo).
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"ne=0"`
	Reason string `json:"reason" validate:"max=200"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	PartNumber  string          `json:"part_number"`
	PartCode    string          `json:"part_code"`
	Price       decimal.Decimal `json:"price"`
	Taxable     bool            `json:"taxable"`
	Tax         decimal.Decimal `json:"tax"`
	ExFactPrice decimal.Decimal `json:"ex_fact_price"`
	Stock       int             `json:"stock"`
	PricingType string          `json:"pricing_type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PartListResponse lista paginada de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
