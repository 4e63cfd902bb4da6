// Package article turns raw model output into a title, an excerpt and body lines.
package article

import (
	"strings"

	"git.home.luguber.info/inful/factpress/internal/textutil"
)

const (
	// HeadingPrefix marks a section heading line.
	HeadingPrefix = "## "

	MaxTitleLen   = 90
	MaxExcerptLen = 180
)

// Article is the parsed form of one generated text.
type Article struct {
	Title   string
	Excerpt string
	Body    []string
}

// Parse splits raw into trimmed non-empty lines. The first line is the title
// unless it is a heading, in which case the title stays empty and every line is body.
func Parse(raw string) Article {
	var lines []string
	for _, ln := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	var a Article
	if len(lines) > 0 && !IsHeading(lines[0]) {
		a.Title = textutil.Truncate(lines[0], MaxTitleLen)
		lines = lines[1:]
	}
	a.Body = lines

	for _, ln := range a.Body {
		if !strings.HasPrefix(ln, "##") {
			a.Excerpt = textutil.Truncate(ln, MaxExcerptLen)
			break
		}
	}
	return a
}

// IsHeading reports whether line is a section heading.
func IsHeading(line string) bool {
	return strings.HasPrefix(line, HeadingPrefix)
}

// HeadingText strips the heading marker.
func HeadingText(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, HeadingPrefix))
}
