// Package metrics provides real-time operational visibility for production
// monitoring: a small set of Prometheus counters and gauges registered against
// a private registry, exposed by the admin surface in standard exposition
// format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the operational counters and gauges for one server instance.
// Each server owns its own Registry rather than registering against the global
// default, so multiple Metrics instances (e.g. in tests) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	ConnectionsTotal  prometheus.Counter
	CommandsProcessed prometheus.Counter
	ErrorsTotal       prometheus.Counter
	PackagesIndexed   prometheus.Counter

	IndexedPackages prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indexer_connections_total",
			Help: "Total number of client connections accepted.",
		}),
		CommandsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indexer_commands_processed_total",
			Help: "Total number of request lines received, malformed ones included.",
		}),
		ErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indexer_errors_total",
			Help: "Total number of malformed or internally-faulted requests.",
		}),
		PackagesIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indexer_packages_indexed_total",
			Help: "Total number of successful INDEX operations.",
		}),
		IndexedPackages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "indexer_packages_current",
			Help: "Current number of packages present in the index.",
		}),
	}

	reg.MustRegister(
		m.ConnectionsTotal,
		m.CommandsProcessed,
		m.ErrorsTotal,
		m.PackagesIndexed,
		m.IndexedPackages,
	)

	return m
}
