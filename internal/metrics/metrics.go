// Package metrics exposes Prometheus instruments for rendering and storage.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diewo77/hoadon/internal/fonts"
)

// Metrics holds the application instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	documentsRendered prometheus.Counter
	renderFailures    prometheus.Counter
	invoicesSaved     prometheus.Counter
	fontFallback      *prometheus.GaugeVec
}

// New registers the instruments on a fresh registry together with the Go
// runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		documentsRendered: f.NewCounter(prometheus.CounterOpts{
			Namespace: "hoadon",
			Name:      "documents_rendered_total",
			Help:      "Invoice documents rendered successfully.",
		}),
		renderFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "hoadon",
			Name:      "render_failures_total",
			Help:      "Invoice renders that returned an error.",
		}),
		invoicesSaved: f.NewCounter(prometheus.CounterOpts{
			Namespace: "hoadon",
			Name:      "invoices_saved_total",
			Help:      "Invoices appended to the record store.",
		}),
		fontFallback: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hoadon",
			Name:      "font_fallback",
			Help:      "1 when the font role uses the built-in fallback face.",
		}, []string{"role"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// DocumentRendered counts a successful render.
func (m *Metrics) DocumentRendered() {
	if m != nil {
		m.documentsRendered.Inc()
	}
}

// RenderFailed counts a failed render.
func (m *Metrics) RenderFailed() {
	if m != nil {
		m.renderFailures.Inc()
	}
}

// InvoiceSaved counts an appended invoice.
func (m *Metrics) InvoiceSaved() {
	if m != nil {
		m.invoicesSaved.Inc()
	}
}

// ObserveFonts records which roles fell back to the built-in family.
func (m *Metrics) ObserveFonts(set fonts.FontSet) {
	if m == nil {
		return
	}
	for _, role := range []fonts.Role{fonts.Regular, fonts.Bold} {
		v := 0.0
		if set.UsesFallback(role) {
			v = 1
		}
		m.fontFallback.WithLabelValues(role.String()).Set(v)
	}
}
