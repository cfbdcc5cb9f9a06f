package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus adaptador de ports.Metrics con su propio registro (varias instancias no chocan en tests).
type Prometheus struct {
	registry *prometheus.Registry

	invoicesCreated  prometheus.Counter
	invoicesEdited   prometheus.Counter
	invoicedAmount   prometheus.Counter
	paymentsRecorded prometheus.Counter
	paymentsApplied  prometheus.Counter
	overpayments     prometheus.Counter
	stockRejections  prometheus.Counter
	txRetries        prometheus.Counter

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New registra los colectores de negocio, HTTP y del runtime de Go.
func New(namespace string) *Prometheus {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &Prometheus{
		registry:         prometheus.NewRegistry(),
		invoicesCreated:  counter("invoices_created_total", "Facturas creadas"),
		invoicesEdited:   counter("invoices_edited_total", "Facturas editadas"),
		invoicedAmount:   counter("invoiced_amount_total", "Suma de totales facturados"),
		paymentsRecorded: counter("payments_recorded_total", "Pagos registrados"),
		paymentsApplied:  counter("payments_applied_amount_total", "Monto de pagos aplicado a facturas"),
		overpayments:     counter("overpayment_amount_total", "Monto de sobrepagos sin aplicar"),
		stockRejections:  counter("stock_rejections_total", "Operaciones rechazadas por stock insuficiente"),
		txRetries:        counter("tx_retries_total", "Transacciones reintentadas por conflicto"),
		requestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requests HTTP",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de requests HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.invoicesCreated, m.invoicesEdited, m.invoicedAmount,
		m.paymentsRecorded, m.paymentsApplied, m.overpayments,
		m.stockRejections, m.txRetries,
		m.requestCounter, m.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Prometheus) InvoiceCreated(total decimal.Decimal) {
	m.invoicesCreated.Inc()
	m.invoicedAmount.Add(total.InexactFloat64())
}

func (m *Prometheus) InvoiceEdited() { m.invoicesEdited.Inc() }

func (m *Prometheus) PaymentRecorded(applied, overpayment decimal.Decimal) {
	m.paymentsRecorded.Inc()
	m.paymentsApplied.Add(applied.InexactFloat64())
	if overpayment.IsPositive() {
		m.overpayments.Add(overpayment.InexactFloat64())
	}
}

func (m *Prometheus) StockRejected() { m.stockRejections.Inc() }

func (m *Prometheus) TxRetried() { m.txRetries.Inc() }

// ObserveRequest registra un request HTTP ya respondido.
func (m *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry para tests.
func (m *Prometheus) Registry() *prometheus.Registry { return m.registry }
