// Package metrics exposes Prometheus collectors for the ledger host.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/friendledger/internal/ledger"
)

const namespace = "friendledger"

// Metrics holds the collectors, registered on a private registry so several
// instances (tests, embedded hosts) never collide.
type Metrics struct {
	registry *prometheus.Registry

	ledgerEvents *prometheus.CounterVec
	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	openBalances prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ledgerEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "events_total",
			Help:      "Ledger events by kind.",
		}, []string{"kind"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Connect RPCs by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "Connect RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		openBalances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_balances",
			Help:      "Number of settlement suggestions currently outstanding.",
		}),
	}

	m.registry.MustRegister(
		m.ledgerEvents,
		m.rpcRequests,
		m.rpcDuration,
		m.openBalances,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Notify counts a ledger event. Metrics satisfies ledger.Notifier.
func (m *Metrics) Notify(e ledger.Event) {
	m.ledgerEvents.WithLabelValues(string(e.Kind)).Inc()
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// SetOpenBalances sets the outstanding settlement count.
func (m *Metrics) SetOpenBalances(n int) {
	m.openBalances.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
