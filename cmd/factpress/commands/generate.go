package commands

import (
	"context"
	"fmt"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/metrics"
	"git.home.luguber.info/inful/factpress/internal/publish"
	"git.home.luguber.info/inful/factpress/internal/site"
	"git.home.luguber.info/inful/factpress/internal/topics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Seed        uint64 `help:"Seed for topic selection (0 picks a random seed)" default:"0"`
	MetricsFile string `name:"metrics-file" help:"Write run metrics in Prometheus textfile format" type:"path"`
	Commit      bool   `help:"Commit the output directory to the enclosing git repository"`
	EnvFile     string `name:"env-file" help:"Fallback file for OPENAI_API_KEY and OPENAI_MODEL" default:".env"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, logger, err := root.loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	opts := g.options()
	res, err := runGenerate(ctx, cfg, config.LoadSecrets(g.EnvFile), opts, nil, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d posts (run %s)\n", len(res.Posts), res.RunID)
	for _, p := range res.Posts {
		fmt.Printf("  [%s] %s -> %s\n", p.Lang, p.Title, site.NewLayout(cfg.OutputDir).PostFile(p.Slug))
	}
	if res.Commit.Committed {
		fmt.Printf("Committed %d files (%s)\n", res.Commit.Files, res.Commit.Hash)
	}
	return nil
}

func (g *GenerateCmd) options() generateOptions {
	return generateOptions{Seed: g.Seed, MetricsFile: g.MetricsFile, Commit: g.Commit}
}

// generateOptions are the generate flags shared with the schedule command.
type generateOptions struct {
	Seed        uint64
	MetricsFile string
	Commit      bool
}

// runGenerate wires the production collaborators and executes one run.
// A non-nil rec is reused so counters accumulate across scheduled runs.
func runGenerate(
	ctx context.Context,
	cfg *config.Config,
	secrets config.Secrets,
	opts generateOptions,
	rec *metrics.PrometheusRecorder,
	logger *slog.Logger,
) (*site.Result, error) {
	deps := site.Deps{Logger: logger}
	if opts.Seed != 0 {
		deps.Picker = topics.NewPicker(opts.Seed)
	}
	if opts.Commit {
		deps.Committer = publish.NewCommitter("", "")
	}
	if opts.MetricsFile != "" {
		if rec == nil {
			rec = metrics.NewPrometheusRecorder(prom.NewRegistry())
		}
		deps.Recorder = rec
	}

	res, err := site.NewRunner(cfg, secrets, deps).Run(ctx)

	if rec != nil && opts.MetricsFile != "" {
		if werr := rec.WriteTextfile(opts.MetricsFile); werr != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(werr))
		}
	}
	return res, err
}
