package rate

import (
	"context"
	"time"

	"bankrates/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const defaultCheckInterval = 600 * time.Second

// CycleRunner is what the scheduler drives on every tick.
type CycleRunner interface {
	Run(ctx context.Context, trigger Trigger) (domain.Report, error)
}

type Scheduler struct {
	runner        CycleRunner
	checkInterval time.Duration
	// -----
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		report, runErr := s.runner.Run(jobCtx, TriggerTimer)
		if runErr != nil {
			logrus.WithError(runErr).Error("Scheduled rates check failed")
			return
		}
		if !report.Ready() {
			logrus.Info("Scheduled rates check found no data")
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.checkInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(runner CycleRunner, checkInterval time.Duration) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = defaultCheckInterval
	}
	return &Scheduler{runner: runner, checkInterval: checkInterval}
}
