package rate

import (
	"context"
	"fmt"
	"slices"
	"time"

	"bankrates/internal/adapters"
	"bankrates/internal/domain"
	"bankrates/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Trigger names what started a pipeline run.
type Trigger string

const (
	TriggerTimer   Trigger = "timer"
	TriggerCommand Trigger = "command"
	TriggerAPI     Trigger = "api"
)

const defaultTrendWindow = 3 * 24 * time.Hour

// Pipeline runs one collect, persist and analyze cycle. Both the timer and on-demand
// requests go through Run.
type Pipeline struct {
	collector   *Collector
	store       adapters.RateStore
	exports     adapters.ExportCache
	endpoints   []domain.BankEndpoint
	trendWindow time.Duration
	metrics     *metrics.Metrics
	now         func() time.Time
}

// Run collects a snapshot, appends it to the store and analyzes it against the rates
// observed during the trend window. An empty snapshot is not persisted and yields a
// no-data report with a nil error.
func (p *Pipeline) Run(ctx context.Context, trigger Trigger) (domain.Report, error) {
	execID := uuid.NewString()
	started := time.Now()
	log := logrus.WithFields(logrus.Fields{"exec_id": execID, "trigger": trigger})

	snapshot := p.collector.Collect(ctx, p.endpoints)
	p.metrics.SetSnapshotSize(len(snapshot))
	if snapshot.Empty() {
		log.Warn("No bank published a usable rate, nothing to store")
		p.observe(trigger, metrics.ResultNoData, started)
		return domain.NoDataReport(), nil
	}

	at := p.now().UTC()
	if err := p.store.Append(ctx, snapshot, at); err != nil {
		p.observe(trigger, metrics.ResultPersistError, started)
		return domain.Report{}, fmt.Errorf("failed to save snapshot %s: %w", execID, err)
	}
	p.metrics.MarkPersisted(at)
	if p.exports != nil {
		p.exports.Clear()
	}

	history, err := p.store.Since(ctx, at.Add(-p.trendWindow))
	if err != nil {
		p.observe(trigger, metrics.ResultPersistError, started)
		return domain.Report{}, fmt.Errorf("failed to load trend history %s: %w", execID, err)
	}

	report := Analyze(snapshot, history)
	report.ObservedAt = at

	log.WithFields(logrus.Fields{
		"banks":    len(snapshot),
		"cheapest": report.Cheapest.Bank,
		"priciest": report.Priciest.Bank,
		"margin":   report.Margin.String(),
	}).Info("Rates collected")
	p.observe(trigger, metrics.ResultOK, started)
	return report, nil
}

// History returns every observation recorded during the last window.
func (p *Pipeline) History(ctx context.Context, window time.Duration) ([]domain.RateObservation, error) {
	history, err := p.store.Since(ctx, p.now().UTC().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to load rates history: %w", err)
	}
	return history, nil
}

func (p *Pipeline) observe(trigger Trigger, result string, started time.Time) {
	p.metrics.ObserveCycle(string(trigger), result, time.Since(started))
}

func NewPipeline(
	collector *Collector,
	store adapters.RateStore,
	exports adapters.ExportCache,
	endpoints []domain.BankEndpoint,
	trendWindow time.Duration,
	m *metrics.Metrics,
) *Pipeline {
	if trendWindow <= 0 {
		trendWindow = defaultTrendWindow
	}
	return &Pipeline{
		collector:   collector,
		store:       store,
		exports:     exports,
		endpoints:   slices.Clone(endpoints),
		trendWindow: trendWindow,
		metrics:     m,
		now:         time.Now,
	}
}
