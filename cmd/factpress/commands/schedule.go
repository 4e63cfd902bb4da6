package commands

import (
	"context"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/metrics"
	"git.home.luguber.info/inful/factpress/internal/scheduler"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	Cron        string        `xor:"when" required:"" help:"Five-field cron expression evaluated in UTC, e.g. \"0 6 * * *\""`
	Every       time.Duration `xor:"when" required:"" help:"Run at a fixed interval instead of a cron expression, e.g. 6h"`
	RunNow      bool          `name:"run-now" help:"Also run once right after start"`
	MetricsFile string        `name:"metrics-file" help:"Write run metrics in Prometheus textfile format after each run" type:"path"`
	Commit      bool          `help:"Commit the output directory after each run"`
	EnvFile     string        `name:"env-file" help:"Fallback file for OPENAI_API_KEY and OPENAI_MODEL" default:".env"`
}

func (s *ScheduleCmd) Run(_ *Global, root *CLI) error {
	cfg, logger, err := root.loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	opts := generateOptions{MetricsFile: s.MetricsFile, Commit: s.Commit}
	var rec *metrics.PrometheusRecorder
	if s.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(prom.NewRegistry())
	}
	task := func(ctx context.Context) error {
		// Secrets are re-read so a rotated key is picked up without a restart.
		_, err := runGenerate(ctx, cfg, config.LoadSecrets(s.EnvFile), opts, rec, logger)
		return err
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		return err
	}
	defer func() { _ = sched.Stop() }()
	var id string
	if s.Cron != "" {
		id, err = sched.ScheduleCron("generate", s.Cron, task)
	} else {
		id, err = sched.ScheduleEvery("generate", s.Every, task)
	}
	if err != nil {
		return err
	}
	if s.RunNow {
		if _, err := sched.ScheduleOnce("generate-now", task); err != nil {
			return err
		}
	}
	sched.Start()

	if next, err := sched.NextRun(id); err == nil {
		fmt.Printf("Scheduled generate, next run at %s\n", next.UTC().Format("2006-01-02 15:04 MST"))
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping scheduler")
	return sched.Stop()
}
