package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/postindex"
)

func TestBuild(t *testing.T) {
	posts := []postindex.Post{
		{Lang: config.LanguageArabic, Title: "القهوة & الشاي", Slug: "قهوة", Date: "2026-10-17"},
		{Lang: config.LanguageEnglish, Title: "Honey", Slug: "honey", Date: "2026-10-16"},
	}
	built := time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC)

	out, err := Build(Channel{Title: "Site", Link: "https://example.com", Description: "Site – latest posts"}, posts, built)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `<rss version="2.0">`)
	assert.Contains(t, s, "<lastBuildDate>Sat, 17 Oct 2026 06:00:00 +0000</lastBuildDate>")
	assert.Equal(t, 2, strings.Count(s, "<item>"))
	assert.Contains(t, s, "<title>القهوة &amp; الشاي</title>")
	assert.Contains(t, s, `<guid isPermaLink="true">https://example.com/posts/honey/</guid>`)
	assert.Contains(t, s, "<pubDate>Fri, 16 Oct 2026 00:00:00 +0000</pubDate>")
	assert.Contains(t, s, "<category>en</category>")

	var doc rss
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "https://example.com/posts/قهوة/", doc.Channel.Items[0].Link)
	assert.Equal(t, "القهوة & الشاي", doc.Channel.Items[0].Title)
}

func TestBuildLimitAndEmpty(t *testing.T) {
	posts := make([]postindex.Post, 75)
	for i := range posts {
		posts[i] = postindex.Post{Lang: config.LanguageEnglish, Title: "t", Slug: "s", Date: "bad-date"}
	}

	out, err := Build(Channel{Title: "S", Link: "https://e"}, posts, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, strings.Count(string(out), "<item>"))
	assert.NotContains(t, string(out), "<pubDate>")

	out, err = Build(Channel{Title: "S", Link: "https://e", Limit: 3}, posts, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(out), "<item>"))

	out, err = Build(Channel{Title: "S", Link: "https://e"}, nil, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<item>")
	assert.Contains(t, string(out), "<channel>")
}
