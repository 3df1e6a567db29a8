// Package metrics provides Prometheus instrumentation for the rate collection pipeline.
//
// Metrics exposed:
//   - bankrates_fetch_total: Counter of bank page fetches by bank and outcome
//   - bankrates_cycles_total: Counter of pipeline runs by trigger and result
//   - bankrates_cycle_duration_seconds: Histogram of pipeline run durations by trigger
//   - bankrates_snapshot_banks: Gauge of banks present in the last collected snapshot
//   - bankrates_last_success_timestamp_seconds: Gauge of the last persisted snapshot time
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK           = "ok"
	ResultNoData       = "no_data"
	ResultPersistError = "persistence_error"
)

type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	CyclesTotal   *prometheus.CounterVec
	CycleDuration *prometheus.HistogramVec
	SnapshotBanks prometheus.Gauge
	LastSuccess   prometheus.Gauge
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankrates_fetch_total",
			Help: "Total number of bank page fetches by bank and outcome",
		}, []string{"bank", "outcome"}),

		CyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankrates_cycles_total",
			Help: "Total number of collect-persist-analyze runs by trigger and result",
		}, []string{"trigger", "result"}),

		CycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankrates_cycle_duration_seconds",
			Help:    "Duration of collect-persist-analyze runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"trigger"}),

		SnapshotBanks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bankrates_snapshot_banks",
			Help: "Number of banks in the last collected snapshot",
		}),

		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bankrates_last_success_timestamp_seconds",
			Help: "Unix time of the last successfully persisted snapshot",
		}),
	}
}

func (m *Metrics) RecordFetch(bank, outcome string) {
	m.FetchTotal.WithLabelValues(bank, outcome).Inc()
}

func (m *Metrics) ObserveCycle(trigger, result string, took time.Duration) {
	m.CyclesTotal.WithLabelValues(trigger, result).Inc()
	m.CycleDuration.WithLabelValues(trigger).Observe(took.Seconds())
}

func (m *Metrics) SetSnapshotSize(banks int) {
	m.SnapshotBanks.Set(float64(banks))
}

func (m *Metrics) MarkPersisted(at time.Time) {
	m.LastSuccess.Set(float64(at.Unix()))
}
