package linkverify

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

func writeSiteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestExtractLinksFromReader(t *testing.T) {
	base, _ := url.Parse("https://example.com")
	doc := `<html><head>
<link rel="stylesheet" href="/assets/style.css">
<link rel="canonical" href="https://example.com/posts/a/">
<script src="https://cdn.other.org/x.js"></script>
</head><body>
<a href="/posts/a/">A</a> <a href="#top">top</a> <a href="mailto:x@example.com">mail</a>
<img src="img/p.png" alt="p"><a>no href</a>
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc), base)
	require.NoError(t, err)
	require.Len(t, links, 7)

	assert.Equal(t, Link{URL: "/assets/style.css", Tag: "link", Attribute: "href", IsInternal: true}, links[0])
	assert.True(t, links[1].IsInternal)
	assert.False(t, links[2].IsInternal)
	assert.Equal(t, "img", links[6].Tag)

	var verified []string
	for _, l := range links {
		if shouldVerify(l) {
			verified = append(verified, l.URL)
		}
	}
	assert.Equal(t, []string{"/assets/style.css", "https://example.com/posts/a/", "/posts/a/", "img/p.png"}, verified)
}

func TestVerifyReportsDanglingPostLink(t *testing.T) {
	root := t.TempDir()
	writeSiteFile(t, root, "assets/style.css", "body{}")
	writeSiteFile(t, root, "posts/a/index.html",
		`<link href="../../assets/style.css"><link rel="canonical" href="https://example.com/posts/a/"><a href="/index_en.html">home</a>`)
	writeSiteFile(t, root, "index_en.html",
		`<link href="/assets/style.css"><a href="/posts/a/">A</a> <a href="/posts/x/">X</a> <a href="https://elsewhere.org/">ext</a>`)

	v, err := NewVerifier(root, "https://example.com")
	require.NoError(t, err)
	report, err := v.Verify()
	require.NoError(t, err)

	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 6, report.Links)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, BrokenLink{Page: "index_en.html", URL: "/posts/x/", Tag: "a", Target: "posts/x/index.html"}, report.Broken[0])
	assert.False(t, report.OK())

	err = report.Err()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLinks))
}

func TestVerifyCleanSite(t *testing.T) {
	root := t.TempDir()
	writeSiteFile(t, root, "posts/a/index.html", `<a href="/posts/a">self</a>`)

	v, err := NewVerifier(root, "https://example.com/")
	require.NoError(t, err)
	report, err := v.Verify()
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.NoError(t, report.Err())
}

func TestVerifyMissingRoot(t *testing.T) {
	v, err := NewVerifier(filepath.Join(t.TempDir(), "nope"), "https://example.com")
	require.NoError(t, err)
	_, err = v.Verify()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestResolve(t *testing.T) {
	v, err := NewVerifier("/site", "https://example.com/blog")
	require.NoError(t, err)

	tests := []struct {
		page, link, want string
		ok               bool
	}{
		{"posts/a/index.html", "/posts/b/", "posts/b/index.html", true},
		{"posts/a/index.html", "../b/", "posts/b/index.html", true},
		{"posts/a/index.html", "pic.png", "posts/a/pic.png", true},
		{"index_en.html", "https://example.com/blog/posts/c/", "posts/c/index.html", true},
		{"index_en.html", "https://example.com/blog", "index.html", true},
		{"index_en.html", "https://example.com/other/", "", false},
	}
	for _, tt := range tests {
		got, ok := v.resolve(tt.page, tt.link)
		assert.Equal(t, tt.ok, ok, tt.link)
		assert.Equal(t, tt.want, got, tt.link)
	}
}
