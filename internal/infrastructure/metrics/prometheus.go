package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ports.LedgerMetrics = (*Prometheus)(nil)

// Prometheus métricas del servicio sobre un registro propio (no el global).
type Prometheus struct {
	registry     *prometheus.Registry
	ledgerOps    *prometheus.CounterVec
	optimizerDur *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
}

// NewPrometheus registra los colectores del servicio y los del runtime de Go.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		ledgerOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridaura_ledger_operations_total",
			Help: "Operaciones sobre el ledger de inventario por tipo y resultado.",
		}, []string{"operation", "outcome"}),
		optimizerDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridaura_optimizer_request_seconds",
			Help:    "Duración de las llamadas al optimizador externo.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridaura_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridaura_http_request_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	p.registry.MustRegister(
		p.ledgerOps, p.optimizerDur, p.httpRequests, p.httpDur,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// LedgerOperation cuenta una operación del ledger.
func (p *Prometheus) LedgerOperation(operation, outcome string) {
	p.ledgerOps.WithLabelValues(operation, outcome).Inc()
}

// OptimizerRequest observa la duración de una llamada al optimizador.
func (p *Prometheus) OptimizerRequest(elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.optimizerDur.WithLabelValues(result).Observe(elapsed.Seconds())
}

// HTTPRequest registra una petición atendida. route es el patrón de la ruta, no la URL.
func (p *Prometheus) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDur.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de exposición de Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
