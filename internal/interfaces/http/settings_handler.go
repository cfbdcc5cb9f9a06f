package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
)

// SettingsHandler tasa de impuesto, sembrado del catálogo y bitácora (protegido).
type SettingsHandler struct {
	pricing  *inventory.PricingUseCase
	activity *usecase.ActivityUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(pricing *inventory.PricingUseCase, activity *usecase.ActivityUseCase) *SettingsHandler {
	return &SettingsHandler{pricing: pricing, activity: activity}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.pricing.GetSettings(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateTaxRate cambia la tasa y recalcula precios de todo el catálogo.
// PUT /api/settings/tax-rate
func (h *SettingsHandler) UpdateTaxRate(c *fiber.Ctx) error {
	var in dto.UpdateTaxRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pricing.UpdateTaxRate(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Seed POST /api/settings/seed
func (h *SettingsHandler) Seed(c *fiber.Ctx) error {
	var in dto.SeedCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pricing.SeedCatalog(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusCreated
	if !out.Seeded {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(out)
}

// Activity últimas entradas de la bitácora. Query: limit.
// GET /api/activity
func (h *SettingsHandler) Activity(c *fiber.Ctx) error {
	out, err := h.activity.ListRecent(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
