package server

import (
	"net/http"

	"github.com/mdouchement/resourcekit/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// Each engine owns its registry so several engines can live in the same process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resourcekit",
			Name:      "item_operations_total",
			Help:      "Number of successful item operations.",
		}, []string{"operation", "type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
	)
	return m
}

func (m *metrics) operation(name string, t model.ItemType) {
	m.operations.WithLabelValues(name, string(t)).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
