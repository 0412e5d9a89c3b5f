// Package metrics provides Prometheus metrics for the journal tools. The CLI
// runs as a short-lived process, so metrics are written to a node_exporter
// textfile rather than served.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tradejournal"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Registry *prometheus.Registry

	// Trade API metrics
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Source metrics
	TradesLoaded *prometheus.GaugeVec

	// Analytics metrics
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	ReportsBuilt   prometheus.Counter
	ReportDuration prometheus.Histogram

	// Import/export metrics
	TradesImported *prometheus.CounterVec
	TradesExported *prometheus.CounterVec
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Trade API requests by operation and HTTP status",
		}, []string{"op", "code"}),
		APIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Trade API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		TradesLoaded: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "trades_loaded",
			Help:      "Number of trades in the last snapshot by source",
		}, []string{"source"}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "cache_hits_total",
			Help:      "Reports served from the memo cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "cache_misses_total",
			Help:      "Reports that had to be computed",
		}),
		ReportsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "reports_built_total",
			Help:      "Analytics reports produced",
		}),
		ReportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "report_duration_seconds",
			Help:      "Time to produce an analytics report",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),

		TradesImported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "trades_total",
			Help:      "Trades imported by format",
		}, []string{"format"}),
		TradesExported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "trades_total",
			Help:      "Trades written by format",
		}, []string{"format"}),
	}
}

// ObserveRequest records one trade API call. A status of 0 means the request
// never got a response.
func (m *Metrics) ObserveRequest(op string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(op, code).Inc()
	m.APIRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveReport records a finished report.
func (m *Metrics) ObserveReport(elapsed time.Duration) {
	m.ReportsBuilt.Inc()
	m.ReportDuration.Observe(elapsed.Seconds())
}

// CacheHit and CacheMiss match the analytics cache hooks.
func (m *Metrics) CacheHit()  { m.CacheHits.Inc() }
func (m *Metrics) CacheMiss() { m.CacheMisses.Inc() }

// WriteTextfile writes every metric in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
