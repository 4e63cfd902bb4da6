package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/feed"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/postindex"
	"git.home.luguber.info/inful/factpress/internal/render"
)

// writeListings renders the index page of every supported language and the
// feed from the full index.
func writeListings(layout Layout, r *render.Renderer, cfg *config.Config, posts []postindex.Post, now time.Time, logger *slog.Logger) error {
	for _, lang := range config.SupportedLanguages {
		page, err := r.RenderIndex(lang, postindex.FilterLanguage(posts, lang))
		if err != nil {
			return err
		}
		rel := layout.IndexFile(lang)
		if err := layout.WriteFile(rel, []byte(page)); err != nil {
			return err
		}
		logger.Debug("Wrote index page", logfields.Language(string(lang)), logfields.Path(rel))
	}

	doc, err := feed.Build(feed.Channel{
		Title:       cfg.SiteName,
		Link:        cfg.BaseURL,
		Description: cfg.SiteName + " – latest posts",
		Limit:       cfg.FeedLimit,
	}, posts, now)
	if err != nil {
		return err
	}
	if err := layout.WriteFile(layout.FeedFile(), doc); err != nil {
		return err
	}
	logger.Debug("Wrote feed", logfields.Path(layout.FeedFile()), logfields.Count(len(posts)))
	return nil
}

// RenderOptions tunes RenderSite. Zero values use time.Now and slog.Default().
type RenderOptions struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// RenderSite rebuilds the index pages and the feed from the stored index
// without generating anything. It returns the number of indexed posts.
func RenderSite(ctx context.Context, cfg *config.Config, opts RenderOptions) (int, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	set, err := render.LoadSet(cfg.TemplatesDir)
	if err != nil {
		return 0, err
	}
	layout := NewLayout(cfg.OutputDir)
	if err := layout.EnsureDirs(); err != nil {
		return 0, err
	}
	if err := layout.CopyAsset(filepath.Join(cfg.AssetsDir, StylesheetName)); err != nil {
		return 0, err
	}

	store, err := postindex.Open(cfg.IndexStore, layout.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = store.Close() }()

	posts, err := store.Load(ctx)
	if err != nil {
		return 0, err
	}

	renderer := render.NewRenderer(set, render.SiteInfoFromConfig(cfg), now)
	if err := writeListings(layout, renderer, cfg, posts, now(), logger); err != nil {
		return 0, err
	}
	logger.Info("Rendered site listings", logfields.Count(len(posts)), logfields.Path(layout.Root))
	return len(posts), nil
}
