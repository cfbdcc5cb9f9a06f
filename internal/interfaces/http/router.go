package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	PartUC     *inventory.PartUseCase
	PricingUC  *inventory.PricingUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	Payments   *billing.PaymentAllocator
	ActivityUC *usecase.ActivityUseCase
	Metrics    *metrics.Prometheus // nil: sin /metrics
	Log        *logger.Logger
	JWTSecret  string
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	var observer RequestObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	app.Use(RequestLogger(deps.Log, observer))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	parts := api.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Post("/:id/stock", partHandler.AdjustStock)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Payments)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/invoices", customerHandler.ListInvoices)
	customers.Post("/:id/payments", customerHandler.RecordPayment)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.Payments)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Edit)
	invoices.Post("/:id/payments", invoiceHandler.Pay)

	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.PricingUC, deps.ActivityUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/tax-rate", settingsHandler.UpdateTaxRate)
	settings.Post("/seed", settingsHandler.Seed)

	api.Get("/activity", settingsHandler.Activity)
}
