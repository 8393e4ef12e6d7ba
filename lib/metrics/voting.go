package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type VotingMetrics struct {
	Status     metrics.Gauge
	CycleID    metrics.Gauge
	Candidates metrics.Gauge
	Votes      metrics.Gauge

	EventsTotal metrics.Counter
}

func (m *VotingMetrics) SetStatus(status uint) {
	m.Status.Set(float64(status))
}
func (m *VotingMetrics) SetCycleID(id uint64) {
	m.CycleID.Set(float64(id))
}
func (m *VotingMetrics) SetCandidates(n int) {
	m.Candidates.Set(float64(n))
}
func (m *VotingMetrics) SetVotes(n uint64) {
	m.Votes.Set(float64(n))
}
func (m *VotingMetrics) AddEvent(eventType string) {
	m.EventsTotal.With(VotingEventType, eventType).Add(1)
}

func PromVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		Status: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "status",
			Help:      "Voting status, 0 inactive, 1 active, 2 tied.",
		}, []string{}),
		CycleID: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "cycle_id",
			Help:      "Number of completed cycles.",
		}, []string{}),
		Candidates: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "candidates",
			Help:      "Number of candidates of the current cycle.",
		}, []string{}),
		Votes: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "votes",
			Help:      "Number of votes of the current cycle.",
		}, []string{}),
		EventsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "events_total",
			Help:      "Total number of voting events.",
		}, []string{VotingEventType}),
	}
}

func NopVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		Status:     discard.NewGauge(),
		CycleID:    discard.NewGauge(),
		Candidates: discard.NewGauge(),
		Votes:      discard.NewGauge(),

		EventsTotal: discard.NewCounter(),
	}
}
