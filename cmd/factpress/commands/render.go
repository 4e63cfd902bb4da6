package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/site"
	"git.home.luguber.info/inful/factpress/internal/watch"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Watch bool `help:"Re-render whenever a template changes"`
}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, logger, err := root.loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	n, err := site.RenderSite(ctx, cfg, site.RenderOptions{Logger: logger})
	if err != nil {
		return err
	}
	fmt.Printf("Rendered index pages and feed for %d posts\n", n)

	if !r.Watch {
		return nil
	}
	w := watch.New([]string{cfg.TemplatesDir}, watch.DefaultDebounce, rerender(cfg, logger))
	return w.Run(ctx)
}

func rerender(cfg *config.Config, logger *slog.Logger) watch.Action {
	return func(ctx context.Context) error {
		n, err := site.RenderSite(ctx, cfg, site.RenderOptions{Logger: logger})
		if err != nil {
			return err
		}
		logger.Info("Site re-rendered", logfields.Count(n))
		return nil
	}
}
