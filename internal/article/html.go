package article

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// BodyRenderer converts body lines into an HTML fragment.
type BodyRenderer interface {
	Render(lines []string) (string, error)
}

// NewBodyRenderer returns the renderer for format.
func NewBodyRenderer(format config.BodyFormat) BodyRenderer {
	if format == config.BodyFormatMarkdown {
		return NewMarkdownRenderer()
	}
	return LineRenderer{}
}

// BodyToHTML renders each line on its own: headings become h3 and everything
// else a paragraph. Text is HTML-escaped and elements are newline-joined.
func BodyToHTML(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if IsHeading(ln) {
			out = append(out, "<h3>"+html.EscapeString(HeadingText(ln))+"</h3>")
			continue
		}
		out = append(out, "<p>"+html.EscapeString(ln)+"</p>")
	}
	return strings.Join(out, "\n")
}

// LineRenderer is the plain line-per-element renderer.
type LineRenderer struct{}

func (LineRenderer) Render(lines []string) (string, error) {
	return BodyToHTML(lines), nil
}

// MarkdownRenderer renders inline markdown in each line. Raw HTML from the model
// is not passed through.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
	}
}

func (r *MarkdownRenderer) Render(lines []string) (string, error) {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if IsHeading(ln) {
			inner, err := r.inline(HeadingText(ln))
			if err != nil {
				return "", err
			}
			out = append(out, "<h3>"+inner+"</h3>")
			continue
		}
		block, err := r.block(ln)
		if err != nil {
			return "", err
		}
		out = append(out, block)
	}
	return strings.Join(out, "\n"), nil
}

func (r *MarkdownRenderer) block(line string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(line), &buf); err != nil {
		return "", errors.TemplateError("failed to render markdown line").WithCause(err).Build()
	}
	return strings.TrimSpace(buf.String()), nil
}

// inline renders line and drops the paragraph wrapper goldmark adds.
func (r *MarkdownRenderer) inline(line string) (string, error) {
	s, err := r.block(line)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return s, nil
}
