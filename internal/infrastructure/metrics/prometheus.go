// Package metrics expone contadores de Prometheus para HTTP y para el histórico de patrimonios.
package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// Prometheus agrupa los colectores de la API. Implementa ports.MetricsRecorder.
type Prometheus struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	historyEntries  *prometheus.CounterVec
	mutationsFailed *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Prometheus)(nil)

// New crea los colectores y los registra en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		historyEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patrimonio_history_entries_total",
				Help: "Committed asset history entries by action",
			},
			[]string{"action"},
		),
		mutationsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patrimonio_mutations_failed_total",
				Help: "Rolled back asset mutations by operation",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(p.requestDuration, p.requestTotal, p.historyEntries, p.mutationsFailed)
	return p
}

// NormalizePath reduce la cardinalidad: /api/patrimonios/123 -> /api/patrimonios/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest registra duración y conteo de una petición HTTP.
func (p *Prometheus) RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	p.requestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	p.requestTotal.WithLabelValues(method, path, status).Inc()
}

// HistoryWritten suma n entradas confirmadas de la acción dada.
func (p *Prometheus) HistoryWritten(action string, n int64) {
	if n <= 0 {
		return
	}
	p.historyEntries.WithLabelValues(action).Add(float64(n))
}

// MutationFailed cuenta una operación revertida.
func (p *Prometheus) MutationFailed(op string) {
	p.mutationsFailed.WithLabelValues(op).Inc()
}
