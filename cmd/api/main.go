package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// store repos fuera de transacción más los runners transaccionales del driver elegido.
type store struct {
	parts     repository.PartRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	logs      repository.ActivityLogRepository
	settings  repository.SettingsRepository
	tx        inventory.TxRunner
	billingTx billing.BillingTxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	defaultRate, err := decimal.NewFromString(cfg.Billing.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Billing.DefaultTaxRate).Msg("DEFAULT_TAX_RATE inválido")
	}
	defaults := entity.Settings{TaxRate: defaultRate}

	prom := metrics.New("repuestos")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, prom, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.close()

	ledger := inventory.NewStockLedger(prom)
	partUC := inventory.NewPartUseCase(st.tx, st.parts, ledger, defaults, log)
	pricingUC := inventory.NewPricingUseCase(st.tx, st.settings, defaults, log)
	customerUC := billing.NewCustomerUseCase(st.billingTx, st.customers, st.invoices, log)
	invoiceUC := billing.NewInvoiceUseCase(
		st.billingTx, ledger, st.invoices,
		billing.NewInvoiceNumberer(cfg.Billing.InvoicePrefix),
		billing.InvoiceConfig{DueDays: cfg.Billing.DueDays},
		prom, log,
	)
	payments := billing.NewPaymentAllocator(st.billingTx, prom, log)
	activityUC := usecase.NewActivityUseCase(st.logs)

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas /api responderán 401")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:    cfg.App.Name,
		PartUC:     partUC,
		PricingUC:  pricingUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		Payments:   payments,
		ActivityUC: activityUC,
		Metrics:    prom,
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStore(ctx context.Context, cfg *config.Config, prom *metrics.Prometheus, log *logger.Logger) (*store, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &store{
			parts:     mem.Parts(),
			customers: mem.Customers(),
			invoices:  mem.Invoices(),
			logs:      mem.ActivityLogs(),
			settings:  mem.Settings(),
			tx:        mem,
			billingTx: mem,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxMaxRetries, prom, log)
	return &store{
		parts:     postgres.NewPartRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		logs:      postgres.NewActivityLogRepository(pool),
		settings:  postgres.NewSettingsRepository(pool),
		tx:        txRunner,
		billingTx: txRunner,
		close:     pool.Close,
	}, nil
}
