package llm

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/logfields"
)

// Generator produces raw article text for a topic.
type Generator struct {
	completer Completer
	logger    *slog.Logger
}

// NewGenerator wraps a Completer. A nil logger uses slog.Default().
func NewGenerator(c Completer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completer: c, logger: logger}
}

// Generate asks for one article about topic in lang.
func (g *Generator) Generate(ctx context.Context, lang config.Language, theme, topic string) (string, error) {
	start := time.Now()
	raw, err := g.completer.Complete(ctx, SystemPrompt(lang), UserPrompt(lang, theme, topic))
	if err != nil {
		return "", err
	}
	g.logger.Debug("Generated article text",
		logfields.Language(string(lang)),
		logfields.Topic(topic),
		logfields.Count(len(raw)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return raw, nil
}
