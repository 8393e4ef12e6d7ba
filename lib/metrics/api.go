package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	APIEndpoint = "endpoint"
	APIMethod   = "method"
	APIStatus   = "status"
)

// APIMetrics is observed by the http server; requests are labeled by the
// route template, not by the requested path.
type APIMetrics struct {
	Requests metrics.Counter
	Errors   metrics.Counter
	Duration metrics.Histogram

	// Streams is the number of open event streams.
	Streams metrics.Gauge
}

func (m *APIMetrics) Observe(endpoint, method string, status int, elapsed time.Duration) {
	lvs := []string{APIEndpoint, endpoint, APIMethod, method, APIStatus, strconv.Itoa(status)}

	m.Requests.With(lvs...).Add(1)
	if status >= 400 {
		m.Errors.With(lvs...).Add(1)
	}
	m.Duration.With(lvs...).Observe(elapsed.Seconds())
}

func (m *APIMetrics) StreamOpened() {
	m.Streams.Add(1)
}

func (m *APIMetrics) StreamClosed() {
	m.Streams.Add(-1)
}

func PromAPIMetrics() *APIMetrics {
	labels := []string{APIEndpoint, APIMethod, APIStatus}

	return &APIMetrics{
		Requests: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of api requests.",
		}, labels),
		Errors: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of api requests answered with an error status.",
		}, labels),
		Duration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent answering api requests.",
			Buckets:   stdprometheus.DefBuckets,
		}, labels),
		Streams: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "open_streams",
			Help:      "Number of open event streams.",
		}, []string{}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		Requests: discard.NewCounter(),
		Errors:   discard.NewCounter(),
		Duration: discard.NewHistogram(),
		Streams:  discard.NewGauge(),
	}
}
