package rate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bankrates/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCycleRunner struct{ mock.Mock }

func (m *MockCycleRunner) Run(ctx context.Context, trigger Trigger) (domain.Report, error) {
	args := m.Called(ctx, trigger)
	report, _ := args.Get(0).(domain.Report)
	return report, args.Error(1)
}

func TestNewScheduler_Constructs(t *testing.T) {
	s := NewScheduler(new(MockCycleRunner), 10*time.Second)
	require.NotNil(t, s)
	require.Nil(t, s.sched)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := NewScheduler(new(MockCycleRunner), 10*time.Second)
	err := s.Shutdown()
	require.NoError(t, err)
	require.Nil(t, s.sched)
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	runner := new(MockCycleRunner)
	runner.On("Run", mock.Anything, TriggerTimer).Return(domain.NoDataReport(), nil).Maybe()
	s := NewScheduler(runner, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	// Start scheduler
	require.NoError(t, s.Start(ctx))
	require.NotNil(t, s.sched)

	// Cancel and ensure Shutdown is called by goroutine
	cancel()

	// Wait until s.sched becomes nil (Shutdown sets it to nil)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.sched == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.Nil(t, s.sched, "expected scheduler to be shutdown after ctx cancel")
}

func TestScheduler_Shutdown_AfterStart_Idempotent(t *testing.T) {
	runner := new(MockCycleRunner)
	runner.On("Run", mock.Anything, TriggerTimer).Return(domain.NoDataReport(), nil).Maybe()
	s := NewScheduler(runner, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NotNil(t, s.sched)

	// First shutdown should stop scheduler and set field to nil
	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)

	// Second shutdown should be a no-op and return nil
	require.NoError(t, s.Shutdown())
}

func TestScheduler_RunsImmediatelyAndSurvivesErrors(t *testing.T) {
	var calls atomic.Int32
	runner := new(MockCycleRunner)
	runner.On("Run", mock.Anything, TriggerTimer).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(domain.Report{}, domain.ErrPersistence)

	s := NewScheduler(runner, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestScheduler_NoDataDoesNotStopTimer(t *testing.T) {
	var calls atomic.Int32
	runner := new(MockCycleRunner)
	runner.On("Run", mock.Anything, TriggerTimer).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(domain.NoDataReport(), nil)

	s := NewScheduler(runner, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestNewScheduler_UsesProvidedInterval(t *testing.T) {
	s := NewScheduler(new(MockCycleRunner), 42*time.Second)
	require.Equal(t, 42*time.Second, s.checkInterval)
}

func TestNewScheduler_DefaultsIntervalWhenInvalid(t *testing.T) {
	s := NewScheduler(new(MockCycleRunner), 0)
	require.Equal(t, 600*time.Second, s.checkInterval)
}
