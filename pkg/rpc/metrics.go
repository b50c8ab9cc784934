package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics emitted by the dispatcher.
type Metrics struct {
	// CallsTotal counts dispatched calls by method and outcome.
	CallsTotal *prometheus.CounterVec
	// CallDuration tracks end-to-end call latency by method.
	CallDuration *prometheus.HistogramVec
}

// NewMetrics initializes and registers metrics on the default
// registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers metrics with a
// custom registry. Passing nil uses the default registerer.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		CallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noderpc_calls_total",
			Help: "Number of RPC calls dispatched, by method and outcome",
		}, []string{"method", "status"}),
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "noderpc_call_duration_seconds",
			Help:    "End-to-end RPC call latency, by method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// observe records one finished call. Nil-safe so the dispatcher works
// without metrics configured.
func (m *Metrics) observe(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(method, status).Inc()
	m.CallDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
