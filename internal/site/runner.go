package site

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/factpress/internal/article"
	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/events"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/llm"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/metrics"
	"git.home.luguber.info/inful/factpress/internal/postindex"
	"git.home.luguber.info/inful/factpress/internal/publish"
	"git.home.luguber.info/inful/factpress/internal/render"
	"git.home.luguber.info/inful/factpress/internal/textutil"
	"git.home.luguber.info/inful/factpress/internal/topics"
)

// Deps are the collaborators of a Runner. Nil fields get production defaults.
type Deps struct {
	Completer llm.Completer      // default: OpenAI client built from config and secrets
	Picker    *topics.Picker     // default: randomly seeded picker
	Recorder  metrics.Recorder   // default: NoopRecorder
	Publisher events.Publisher   // default: NATS when nats_url is set, otherwise Noop
	Committer *publish.Committer // nil: do not commit
	Now       func() time.Time
	Logger    *slog.Logger
	RunID     string
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Posts    []postindex.Post
	Indexed  int
	Commit   publish.Result
	Duration time.Duration
}

// Runner executes one generate run.
type Runner struct {
	cfg     *config.Config
	secrets config.Secrets
	deps    Deps
}

func NewRunner(cfg *config.Config, secrets config.Secrets, deps Deps) *Runner {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.NoopRecorder{}
	}
	if deps.RunID == "" {
		deps.RunID = uuid.NewString()
	}
	return &Runner{cfg: cfg, secrets: secrets, deps: deps}
}

// Run generates per-language posts, updates the index and rewrites the listings.
// Files written before a failure stay in place.
func (r *Runner) Run(ctx context.Context) (res *Result, err error) {
	start := r.deps.Now()
	logger := r.deps.Logger.With(logfields.RunID(r.deps.RunID))
	rec := r.deps.Recorder

	defer func() {
		rec.ObserveRunDuration(r.deps.Now().Sub(start))
		switch {
		case err == nil:
			rec.IncRunOutcome(metrics.OutcomeSuccess)
		case ctx.Err() != nil:
			rec.IncRunOutcome(metrics.OutcomeCanceled)
		default:
			rec.IncRunOutcome(metrics.OutcomeFailed)
		}
	}()

	if !r.secrets.HasAPIKey() {
		return nil, errors.AuthError(config.EnvAPIKey+" is not set; export it or add it to "+config.DefaultEnvFile).
			Fatal().UserAction().Build()
	}

	cfg := r.cfg
	set, err := render.LoadSet(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	seeds, err := topics.LoadAll(cfg.TopicsDir, config.SupportedLanguages)
	if err != nil {
		return nil, err
	}

	layout := NewLayout(cfg.OutputDir)
	if err := layout.EnsureDirs(); err != nil {
		return nil, err
	}
	if err := layout.CopyAsset(filepath.Join(cfg.AssetsDir, StylesheetName)); err != nil {
		return nil, err
	}

	generator := llm.NewGenerator(r.completer(), logger)
	picker := r.deps.Picker
	if picker == nil {
		picker = topics.NewPicker(rand.Uint64())
	}
	body := article.NewBodyRenderer(cfg.BodyFormat)
	renderer := render.NewRenderer(set, render.SiteInfoFromConfig(cfg), r.deps.Now)

	perLang := cfg.PerLanguage()
	logger.Info("Starting generate run",
		slog.Any("languages", cfg.LanguageMix),
		slog.Int("per_language", perLang),
		logfields.Model(r.secrets.Model),
		logfields.Path(layout.Root))

	var created []postindex.Post
	for _, lang := range cfg.LanguageMix {
		for range perLang {
			post, err := r.generatePost(ctx, logger, generator, picker, body, renderer, layout, lang, seeds[lang])
			if err != nil {
				return nil, err
			}
			created = append(created, post)
		}
	}

	store, err := postindex.Open(cfg.IndexStore, layout.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	existing, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	all := postindex.Prepend(created, existing)
	if err := store.Save(ctx, all); err != nil {
		return nil, err
	}

	if err := writeListings(layout, renderer, cfg, all, r.deps.Now(), logger); err != nil {
		return nil, err
	}

	r.notify(ctx, logger, created)

	res = &Result{RunID: r.deps.RunID, Posts: created, Indexed: len(all)}
	if r.deps.Committer != nil {
		commit, err := r.deps.Committer.Commit(layout.Root, publish.Message(created))
		if err != nil {
			return nil, err
		}
		res.Commit = commit
	}

	res.Duration = r.deps.Now().Sub(start)
	logger.Info("Generate run finished",
		logfields.Count(len(created)),
		slog.Int("indexed", len(all)),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (r *Runner) generatePost(
	ctx context.Context,
	logger *slog.Logger,
	generator *llm.Generator,
	picker *topics.Picker,
	body article.BodyRenderer,
	renderer *render.Renderer,
	layout Layout,
	lang config.Language,
	seeds []string,
) (postindex.Post, error) {
	topic, err := picker.Pick(seeds)
	if err != nil {
		return postindex.Post{}, errors.WrapError(err, errors.CategoryValidation, "seed topic list is empty").
			WithContext("lang", string(lang)).Fatal().Build()
	}

	started := time.Now()
	raw, err := generator.Generate(ctx, lang, r.cfg.Theme, topic)
	r.deps.Recorder.ObserveGeneration(string(lang), time.Since(started), err == nil)
	if err != nil {
		logger.Error("Article generation failed", logfields.Language(string(lang)), logfields.Topic(topic), logfields.Error(err))
		return postindex.Post{}, err
	}

	a := article.Parse(raw)
	htmlBody, err := body.Render(a.Body)
	if err != nil {
		return postindex.Post{}, err
	}

	slug := textutil.Slugify(a.Title + "-" + topic)
	date := textutil.TodayISO(r.deps.Now())
	page, err := renderer.RenderPost(lang, render.PostPage{
		Title:    a.Title,
		Excerpt:  a.Excerpt,
		HTMLBody: htmlBody,
		Slug:     slug,
		Date:     date,
		ReadMins: textutil.ApproxReadMins(htmlBody),
	})
	if err != nil {
		return postindex.Post{}, err
	}

	rel := layout.PostFile(slug)
	if err := layout.WriteFile(rel, []byte(page)); err != nil {
		return postindex.Post{}, err
	}
	r.deps.Recorder.IncPostsWritten(string(lang))
	logger.Info("Wrote post",
		logfields.Language(string(lang)),
		logfields.Topic(topic),
		logfields.Title(a.Title),
		logfields.Slug(slug))

	return postindex.Post{Lang: lang, Title: a.Title, Slug: slug, Date: date}, nil
}

func (r *Runner) completer() llm.Completer {
	if r.deps.Completer != nil {
		return r.deps.Completer
	}
	return llm.NewClient(llm.ClientOptions{
		BaseURL:     r.cfg.APIBaseURL,
		APIKey:      r.secrets.APIKey,
		Model:       r.secrets.Model,
		Temperature: &r.cfg.Temperature,
		Timeout:     r.cfg.RequestTimeout,
	})
}

// notify publishes one event per new post. Failures are logged, never returned:
// the site is already written.
func (r *Runner) notify(ctx context.Context, logger *slog.Logger, posts []postindex.Post) {
	pub := r.deps.Publisher
	if pub == nil {
		var err error
		pub, err = events.Connect(r.cfg.NATSURL, r.cfg.NATSSubject)
		if err != nil {
			logger.Warn("Post notifications disabled", logfields.Error(err))
			return
		}
		defer func() { _ = pub.Close() }()
	}

	for _, p := range posts {
		ev := events.NewPostPublished(r.deps.RunID, r.cfg.BaseURL, p, r.deps.Now())
		if err := pub.Publish(ctx, ev); err != nil {
			logger.Warn("Failed to publish post notification", logfields.Slug(p.Slug), logfields.Error(err))
		}
	}
}
