// Package metrics colectores Prometheus de la consola: llamadas al backend,
// peticiones a la consola y expiraciones de sesión.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores sobre un registro propio (no el global).
// Un *Metrics nil es válido: todas las observaciones se ignoran.
type Metrics struct {
	Registry *prometheus.Registry

	backendRequests    *prometheus.CounterVec
	backendDuration    *prometheus.HistogramVec
	consoleRequests    *prometheus.CounterVec
	consoleDuration    *prometheus.HistogramVec
	sessionExpirations prometheus.Counter
	notifications      *prometheus.CounterVec
}

// New registra los colectores con el prefijo dado (METRICS_PREFIX).
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		backendRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "backend_requests_total",
			Help:      "Llamadas al backend REST por endpoint, método y status.",
		}, []string{"endpoint", "method", "status"}),
		backendDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "backend_request_duration_seconds",
			Help:      "Duración de las llamadas al backend REST.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		consoleRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Peticiones atendidas por la consola.",
		}, []string{"method", "route", "status"}),
		consoleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones atendidas por la consola.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		sessionExpirations: f.NewCounter(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "session_expirations_total",
			Help:      "Cierres de sesión forzados (timer o 401 del perfil).",
		}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "notifications_total",
			Help:      "Avisos mostrados al operador por tipo.",
		}, []string{"kind"}),
	}
}

// ObserveBackend registra una llamada al backend. status 0 = fallo de red.
func (m *Metrics) ObserveBackend(endpoint, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(endpoint, method, code).Inc()
	m.backendDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}

// ObserveConsole registra una petición atendida por la consola.
func (m *Metrics) ObserveConsole(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.consoleRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.consoleDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SessionExpired cuenta un cierre de sesión forzado.
func (m *Metrics) SessionExpired() {
	if m == nil {
		return
	}
	m.sessionExpirations.Inc()
}

// Notification cuenta un aviso al operador.
func (m *Metrics) Notification(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}

// Handler exposición /metrics del registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
