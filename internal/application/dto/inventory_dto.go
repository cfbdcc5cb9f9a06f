package dto

import "github.com/shopspring/decimal"

// SettingsResponse configuración de negocio vigente.
type SettingsResponse struct {
	TaxRate decimal.Decimal `json:"tax_rate"`
	Seeded  bool            `json:"seeded"`
}

// UpdateTaxRateRequest body para PUT /api/settings/tax-rate.
type UpdateTaxRateRequest struct {
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// TaxRateUpdateResponse resultado de la actualización masiva de precios.
type TaxRateUpdateResponse struct {
	TaxRate       decimal.Decimal `json:"tax_rate"`
	PartsRepriced int             `json:"parts_repriced"`
}

// SeedCatalogRequest body para POST /api/settings/seed.
type SeedCatalogRequest struct {
	Parts []CreatePartRequest `json:"parts" validate:"required,min=1,dive"`
}

// SeedCatalogResponse Seeded=false si el catálogo ya estaba sembrado (no se insertó nada).
type SeedCatalogResponse struct {
	Seeded   bool `json:"seeded"`
	Inserted int  `json:"inserted"`
}
