// Package metrics expone contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

var (
	_ sequence.Metrics = (*Metrics)(nil)
	_ catalog.Metrics  = (*Metrics)(nil)
)

// Metrics agrupa los colectores registrados en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	allocations  *prometheus.CounterVec
	provisional  prometheus.Counter
	batchItems   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// New crea el registro con los colectores del proceso y de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		allocations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sequence_allocations_total",
			Help: "Asignaciones de secuencia por tipo de llave y resultado",
		}, []string{"kind", "status"}),
		provisional: f.NewCounter(prometheus.CounterOpts{
			Name: "barcode_provisional_total",
			Help: "Códigos de barras generados localmente sin el contador",
		}),
		batchItems: f.NewCounterVec(prometheus.CounterOpts{
			Name: "variant_batch_items_total",
			Help: "Ítems de lotes de variantes por resultado",
		}, []string{"result"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP por ruta y código",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Peticiones HTTP en curso",
		}),
	}
}

// Registry devuelve el registro (para tests y para exponerlo).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAllocation cuenta una asignación de secuencia.
func (m *Metrics) ObserveAllocation(key entity.SequenceKey, err error) {
	kind := "reference"
	if key.IsBarcode() {
		kind = "barcode"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.allocations.WithLabelValues(kind, status).Inc()
}

// ObserveProvisionalBarcode cuenta un código provisional.
func (m *Metrics) ObserveProvisionalBarcode() {
	m.provisional.Inc()
}

// ObserveBatchItem cuenta un ítem de lote (created, updated o el código de error).
func (m *Metrics) ObserveBatchItem(result string) {
	m.batchItems.WithLabelValues(result).Inc()
}

// Handler devuelve el handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware mide las peticiones de Fiber. La ruta es el patrón registrado, no la URL.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		code := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(code)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
