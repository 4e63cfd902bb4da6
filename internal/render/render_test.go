package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/postindex"
)

const (
	testBase  = `<html lang="{site_name}"><title>{title}</title><meta name="description" content="{description}"><link rel="canonical" href="{canonical}"><script type="application/ld+json">{json_ld}</script><main>{content}</main><footer>{year} {{c}}</footer></html>`
	testPost  = `<article data-theme="{theme}"><h1>{title}</h1><p class="meta">{date} · {read_mins} min</p><p class="lead">{excerpt}</p>{html_body}</article>`
	testIndex = `<ul>
    {items}
</ul>`
)

func writeTemplates(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for _, lang := range config.SupportedLanguages {
		for kind, body := range map[Kind]string{KindBase: testBase, KindPost: testPost, KindIndex: testIndex} {
			name := FileName(kind, lang)
			if o, ok := overrides[name]; ok {
				body = o
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
		}
	}
	return dir
}

func fixedNow() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	set, err := LoadSet(writeTemplates(t, nil))
	require.NoError(t, err)
	return NewRenderer(set, SiteInfo{Name: "Fact Site", BaseURL: "https://facts.example/", Theme: "facts"}, fixedNow)
}

func TestParseTemplate(t *testing.T) {
	tpl, err := ParseTemplate("t", "a {x} b {{literal}} {y} {x}")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tpl.Placeholders())

	out, err := tpl.Execute(IndexContext{Items: "I"})
	require.Error(t, err)
	assert.Empty(t, out)

	tpl, err = ParseTemplate("t", "<{items}> {{ }}")
	require.NoError(t, err)
	out, err = tpl.Execute(IndexContext{Items: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "<ok> { }", out)
}

func TestParseTemplateMalformed(t *testing.T) {
	for _, text := range []string{"{open", "close}", "{}", "{a{b}}"} {
		_, err := ParseTemplate("bad", text)
		require.Error(t, err, text)
		assert.True(t, errors.HasCategory(err, errors.CategoryTemplate), text)
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	dir := writeTemplates(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "index_ar.html")))

	_, err := LoadSet(dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestLoadSetRejectsUnknownPlaceholder(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"post_en.html": "<h1>{title}</h1>{author}"})

	_, err := LoadSet(dir)
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryTemplate, ce.Category())
	missing, _ := ce.Context().GetString("placeholders")
	assert.Equal(t, "author", missing)
}

func TestLoadSetAllowsUnusedContextFields(t *testing.T) {
	_, err := LoadSet(writeTemplates(t, map[string]string{"base_ar.html": "{content}"}))
	require.NoError(t, err)
}

func TestRenderPost(t *testing.T) {
	r := newTestRenderer(t)
	page, err := r.RenderPost(config.LanguageEnglish, PostPage{
		Title:    `Octopus "hearts" & <blood>`,
		Excerpt:  "Three hearts.",
		HTMLBody: "<p>Three hearts.</p>",
		Slug:     "octopus-hearts",
		Date:     "2026-10-17",
		ReadMins: 4,
	})
	require.NoError(t, err)

	assert.Contains(t, page, `<link rel="canonical" href="https://facts.example/posts/octopus-hearts/">`)
	assert.Contains(t, page, "<title>Octopus &#34;hearts&#34; &amp; &lt;blood&gt;</title>")
	assert.Contains(t, page, `data-theme="facts"`)
	assert.Contains(t, page, "2026-10-17 · 4 min")
	assert.Contains(t, page, "<p>Three hearts.</p></article>")
	assert.Contains(t, page, "<footer>2026 {c}</footer>")

	start := strings.Index(page, `<script type="application/ld+json">`) + len(`<script type="application/ld+json">`)
	end := strings.Index(page, "</script>")
	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(page[start:end]), &ld))
	assert.Equal(t, "Article", ld["@type"])
	assert.Equal(t, `Octopus "hearts" & <blood>`, ld["headline"])
	assert.Equal(t, "2026-10-17", ld["datePublished"])
	assert.Equal(t, "2026-10-17", ld["dateModified"])
	assert.Equal(t, map[string]any{"@type": "Organization", "name": "Fact Site"}, ld["author"])
	assert.Equal(t, map[string]any{"@type": "Organization", "name": "Fact Site"}, ld["publisher"])
	assert.Equal(t, map[string]any{"@type": "WebPage", "@id": "https://facts.example/posts/octopus-hearts/"}, ld["mainEntityOfPage"])
}

func TestRenderPostKeepsArabicInJSONLD(t *testing.T) {
	r := newTestRenderer(t)
	page, err := r.RenderPost(config.LanguageArabic, PostPage{Title: "حقائق القهوة", Slug: "حقائق-القهوة", Date: "2026-10-17", ReadMins: 1})
	require.NoError(t, err)
	assert.Contains(t, page, `"headline":"حقائق القهوة"`)
}

func TestMarshalJSONLDCannotCloseScript(t *testing.T) {
	out, err := marshalJSONLD(newWebSiteLD("</script><b>", "https://x"))
	require.NoError(t, err)
	assert.NotContains(t, out, "</script>")
	var back webSiteLD
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, "</script><b>", back.Name)
}

func TestRenderIndex(t *testing.T) {
	r := newTestRenderer(t)
	posts := []postindex.Post{
		{Lang: config.LanguageEnglish, Title: "New & shiny", Slug: "new", Date: "2026-10-17"},
		{Lang: config.LanguageEnglish, Title: "Old", Slug: "old", Date: "2026-10-01"},
	}
	page, err := r.RenderIndex(config.LanguageEnglish, posts)
	require.NoError(t, err)

	want := `<li class="list-item"><a href="/posts/new/">New &amp; shiny</a> <span class="meta">— 2026-10-17</span></li>` +
		"\n    " +
		`<li class="list-item"><a href="/posts/old/">Old</a> <span class="meta">— 2026-10-01</span></li>`
	assert.Contains(t, page, want)
	assert.Contains(t, page, `href="https://facts.example/index_en.html"`)
	assert.Contains(t, page, `content="Fact Site – latest posts"`)
	assert.Contains(t, page, "<title>Fact Site</title>")
	assert.Contains(t, page, `{"@context":"https://schema.org","@type":"WebSite","name":"Fact Site","url":"https://facts.example"}`)
}

func TestIndexItemsLimit(t *testing.T) {
	posts := make([]postindex.Post, 60)
	for i := range posts {
		posts[i] = postindex.Post{Lang: config.LanguageArabic, Title: "t", Slug: "s", Date: "d"}
	}
	assert.Equal(t, 50, strings.Count(IndexItems(posts, 50), "<li "))
	assert.Equal(t, 60, strings.Count(IndexItems(posts, 0), "<li "))
	assert.Equal(t, "", IndexItems(nil, 50))
}

func TestRenderIndexEmpty(t *testing.T) {
	page, err := newTestRenderer(t).RenderIndex(config.LanguageArabic, nil)
	require.NoError(t, err)
	assert.Contains(t, page, "<ul>\n    \n</ul>")
}
