// Package textutil holds the small text helpers shared by the pipeline:
// slugs, reading time and the date formats used in pages and feeds.
package textutil

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLen is measured in characters, not bytes.
	MaxSlugLen   = 80
	FallbackSlug = "post"

	wordsPerMinute = 180
)

var lower = cases.Lower(language.Und)

// Slugify derives a lowercase, hyphenated identifier from text.
//
// Letters and numbers of any script are kept, so Arabic titles produce Arabic
// slugs. Everything other than letters, numbers, underscore, whitespace and hyphen
// is dropped; runs of whitespace, underscores and hyphens collapse to one hyphen.
// The result is cut to MaxSlugLen characters and is never empty.
func Slugify(text string) string {
	folded := lower.String(norm.NFC.String(text))

	var kept strings.Builder
	kept.Grow(len(folded))
	for _, r := range folded {
		if isWordRune(r) || unicode.IsSpace(r) || r == '-' {
			kept.WriteRune(r)
		}
	}

	// Dropping characters can leave combinable neighbours (e.g. Hangul jamo),
	// so compose again before shaping the slug.
	var b strings.Builder
	inSeparator := false
	for _, r := range strings.TrimSpace(norm.NFC.String(kept.String())) {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			if !inSeparator {
				b.WriteRune('-')
			}
			inSeparator = true
			continue
		}
		inSeparator = false
		b.WriteRune(r)
	}

	slug := truncateRunes(b.String(), MaxSlugLen)
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// ApproxReadMins estimates reading time: word count / 180, rounded down, at least 1.
func ApproxReadMins(text string) int {
	return max(1, CountWords(text)/wordsPerMinute)
}

// CountWords counts maximal runs of letters, numbers and underscores.
func CountWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if isWordRune(r) {
			if !inWord {
				words++
			}
			inWord = true
			continue
		}
		inWord = false
	}
	return words
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	return truncateRunes(s, n)
}

// TodayISO formats the UTC date of now as YYYY-MM-DD.
func TodayISO(now time.Time) string {
	return now.UTC().Format(time.DateOnly)
}

// RFC2822 formats t in UTC the way RSS readers expect.
func RFC2822(t time.Time) string {
	return t.UTC().Format(time.RFC1123Z)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
