// Package scheduler runs the generate pipeline on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Task is one scheduled unit of work.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler. Every job runs in singleton mode, so a
// run that is still going when the next tick fires makes that tick wait.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	stopOnce  sync.Once
}

// NewScheduler creates a scheduler evaluating cron expressions in UTC.
// At most one job runs at a time; others wait their turn.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLimitConcurrentJobs(1, gocron.LimitModeWait),
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create scheduler").Build()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

// ScheduleCron registers task under name on a five-field cron expression.
func (s *Scheduler) ScheduleCron(name, expr string, task Task) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.ConfigError("invalid cron expression").WithCause(err).
			WithContext("cron", expr).Build()
	}
	return job.ID().String(), nil
}

// ScheduleEvery registers task under name at a fixed interval.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, task Task) (string, error) {
	if interval <= 0 {
		return "", errors.ConfigError("schedule interval must be positive").
			WithContext("interval", interval.String()).Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.ConfigError("failed to schedule job").WithCause(err).Build()
	}
	return job.ID().String(), nil
}

// ScheduleOnce registers task to run once as soon as the scheduler starts.
func (s *Scheduler) ScheduleOnce(name string, task Task) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRuntime, "failed to schedule job").Build()
	}
	return job.ID().String(), nil
}

// NextRun returns when the job with id fires next.
func (s *Scheduler) NextRun(id string) (time.Time, error) {
	jid, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, errors.WrapError(err, errors.CategoryValidation, "invalid job id").Build()
	}
	for _, j := range s.scheduler.Jobs() {
		if j.ID() == jid {
			next, err := j.NextRun()
			if err != nil {
				return time.Time{}, errors.WrapError(err, errors.CategoryRuntime, "failed to compute next run").Build()
			}
			return next, nil
		}
	}
	return time.Time{}, errors.NotFoundError("no such job").WithContext("id", id).Build()
}

func (s *Scheduler) run(name string, task Task) {
	start := time.Now()
	slog.Info("Scheduled run starting", slog.String("job", name))
	if err := task(s.ctx); err != nil {
		slog.Error("Scheduled run failed", slog.String("job", name), slog.String("error", err.Error()))
		return
	}
	slog.Info("Scheduled run finished", slog.String("job", name), slog.Duration("duration", time.Since(start)))
}

// Start begins firing jobs.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop cancels the context handed to running tasks and waits for them to return.
func (s *Scheduler) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		slog.Info("Stopping scheduler")
		s.cancel()
		if serr := s.scheduler.Shutdown(); serr != nil {
			err = errors.WrapError(serr, errors.CategoryRuntime, "scheduler shutdown failed").Build()
		}
	})
	return err
}
