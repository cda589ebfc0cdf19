package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invoice"

// Metrics holds the collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	persistFailures *prometheus.CounterVec
	insightRequests *prometheus.CounterVec
	storeSize       prometheus.Gauge
}

// New creates the collectors and registers them with registerer.
// A nil registerer falls back to prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of HTTP requests by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status_code"},
		),
		persistFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_persist_failures_total",
				Help:      "Failed reads or writes of the persisted invoice slot.",
			},
			[]string{"operation"},
		),
		insightRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insight_requests_total",
				Help:      "Insight requests by kind and outcome (generated, fallback, skipped).",
			},
			[]string{"kind", "outcome"},
		),
		storeSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_invoices",
				Help:      "Number of invoices currently held by the store.",
			},
		),
	}

	registerer.MustRegister(m.requestDuration, m.persistFailures, m.insightRequests, m.storeSize)
	return m
}

// PersistFailure counts a failed slot operation ("read", "decode", "encode" or "write").
func (m *Metrics) PersistFailure(operation string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(operation).Inc()
}

// InsightRequest counts one insight request outcome.
func (m *Metrics) InsightRequest(kind, outcome string) {
	if m == nil {
		return
	}
	m.insightRequests.WithLabelValues(kind, outcome).Inc()
}

// StoreSize records the current collection length.
func (m *Metrics) StoreSize(n int) {
	if m == nil {
		return
	}
	m.storeSize.Set(float64(n))
}

// GinMiddleware records request latency per route template.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.requestDuration.WithLabelValues(
			strings.ToUpper(c.Request.Method),
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
