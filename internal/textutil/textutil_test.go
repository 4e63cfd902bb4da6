package textutil

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var asciiSlug = regexp.MustCompile(`^[a-z0-9-]{0,80}$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Tea -- History_of   Tea  ", "tea-history-of-tea"},
		{"Why Octopuses Have 3 Hearts-octopus facts", "why-octopuses-have-3-hearts-octopus-facts"},
		{"", FallbackSlug},
		{"   \t ", FallbackSlug},
		{"?!*", FallbackSlug},
		{"Café Crème", "café-crème"},
		{"حقائق عن القهوة", "حقائق-عن-القهوة"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyTruncatesToEightyCharacters(t *testing.T) {
	got := Slugify(strings.Repeat("abcdefghij ", 20))
	assert.Len(t, []rune(got), MaxSlugLen)

	arabic := Slugify(strings.Repeat("قهوة ", 40))
	assert.Len(t, []rune(arabic), MaxSlugLen)
}

func TestSlugifyComposesAfterDroppingPunctuation(t *testing.T) {
	assert.Equal(t, "가", Slugify("ᄀ!ᅡ"))
}

func TestSlugifyIdempotentAndASCIIShape(t *testing.T) {
	inputs := []string{
		"The Bottom Line: 10 Facts About Sleep",
		"  leading and trailing  ",
		"-already-hyphenated-",
		"Mixed___under_scores and--dashes",
		strings.Repeat("word ", 30),
		"!!!",
		"İstanbul Street Food",
		"مدينة الرياض",
		"ᄀ!ᅡ",
		"e\u0301!clair",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", in)
		if isASCII(in) {
			assert.Regexp(t, asciiSlug, once)
		}
	}
}

func TestApproxReadMins(t *testing.T) {
	assert.Equal(t, 1, ApproxReadMins(""))
	assert.Equal(t, 1, ApproxReadMins(strings.Repeat("word ", 179)))
	assert.Equal(t, 1, ApproxReadMins(strings.Repeat("word ", 359)))
	assert.Equal(t, 2, ApproxReadMins(strings.Repeat("word ", 360)))
	assert.Equal(t, 4, ApproxReadMins(strings.Repeat("كلمة ", 720)))

	prev := 0
	for n := 0; n < 1000; n += 37 {
		got := ApproxReadMins(strings.Repeat("w ", n))
		assert.GreaterOrEqual(t, got, prev, "must be non-decreasing in word count")
		assert.GreaterOrEqual(t, got, 1)
		prev = got
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(" \n "))
	assert.Equal(t, 5, CountWords("it's a snake_case word"))
	assert.Equal(t, 3, CountWords("<p>hello</p>"))
}

func TestDates(t *testing.T) {
	ts := time.Date(2026, 3, 4, 23, 30, 0, 0, time.FixedZone("X", -3*3600))
	assert.Equal(t, "2026-03-05", TodayISO(ts))
	assert.Equal(t, "Thu, 05 Mar 2026 02:30:00 +0000", RFC2822(ts))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo world", 5))
	assert.Equal(t, "short", Truncate("short", 90))
	assert.Equal(t, "", Truncate("x", 0))
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
