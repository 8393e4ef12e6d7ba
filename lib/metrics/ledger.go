package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Height       metrics.Gauge
	Pool         metrics.Gauge
	TotalMatched metrics.Gauge
	TotalDonated metrics.Gauge

	OperationsTotal metrics.Counter
}

func (m *LedgerMetrics) SetHeight(height uint64) {
	m.Height.Set(float64(height))
}
func (m *LedgerMetrics) SetPool(pool uint64) {
	m.Pool.Set(float64(pool))
}
func (m *LedgerMetrics) SetTotalMatched(total uint64) {
	m.TotalMatched.Set(float64(total))
}
func (m *LedgerMetrics) SetTotalDonated(total uint64) {
	m.TotalDonated.Set(float64(total))
}

func (m *LedgerMetrics) AddOperation(operation string, err error) {
	result := LedgerSuccess
	if err != nil {
		result = LedgerRejected
	}
	m.OperationsTotal.With(LedgerOperation, operation, LedgerResult, result).Add(1)
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "height",
			Help:      "Last observed block height.",
		}, []string{}),
		Pool: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "pool_borks",
			Help:      "Current pool balance in borks.",
		}, []string{}),
		TotalMatched: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "total_matched_borks",
			Help:      "Borks ever minted into the pool by matching.",
		}, []string{}),
		TotalDonated: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "total_donated_borks",
			Help:      "Borks ever donated to the pool.",
		}, []string{}),
		OperationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "operations_total",
			Help:      "Total number of executed operations.",
		}, []string{LedgerOperation, LedgerResult}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height:       discard.NewGauge(),
		Pool:         discard.NewGauge(),
		TotalMatched: discard.NewGauge(),
		TotalDonated: discard.NewGauge(),

		OperationsTotal: discard.NewCounter(),
	}
}
