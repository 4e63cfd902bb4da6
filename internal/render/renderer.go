// Package render fills the on-disk page templates for posts and language indexes.
package render

import (
	"html"
	"strings"
	"time"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/postindex"
)

const DefaultIndexLimit = 50

// SiteInfo carries the config values every page needs.
type SiteInfo struct {
	Name       string
	BaseURL    string
	Theme      string
	IndexLimit int
}

// SiteInfoFromConfig extracts the page-level settings from cfg.
func SiteInfoFromConfig(cfg *config.Config) SiteInfo {
	return SiteInfo{
		Name:       cfg.SiteName,
		BaseURL:    cfg.BaseURL,
		Theme:      cfg.Theme,
		IndexLimit: cfg.IndexLimit,
	}
}

// PostPage is one article ready to render. HTMLBody is already HTML.
type PostPage struct {
	Title    string
	Excerpt  string
	HTMLBody string
	Slug     string
	Date     string
	ReadMins int
}

// Renderer produces complete HTML pages.
type Renderer struct {
	set  *Set
	site SiteInfo
	now  func() time.Time
}

// NewRenderer returns a renderer. A nil now uses time.Now.
func NewRenderer(set *Set, site SiteInfo, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	if site.IndexLimit <= 0 {
		site.IndexLimit = DefaultIndexLimit
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	return &Renderer{set: set, site: site, now: now}
}

// PostURL is the absolute canonical URL of a post.
func PostURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + PostPath(slug)
}

// PostPath is the site-relative URL of a post.
func PostPath(slug string) string {
	return "/posts/" + slug + "/"
}

// IndexURL is the canonical URL of the index page for lang.
func IndexURL(baseURL string, lang config.Language) string {
	return strings.TrimRight(baseURL, "/") + "/index_" + string(lang) + ".html"
}

// RenderPost renders the full page of one article in lang.
func (r *Renderer) RenderPost(lang config.Language, p PostPage) (string, error) {
	postTpl, err := r.set.Template(lang, KindPost)
	if err != nil {
		return "", err
	}
	content, err := postTpl.Execute(PostContext{
		Title:    html.EscapeString(p.Title),
		Date:     p.Date,
		ReadMins: p.ReadMins,
		Excerpt:  html.EscapeString(p.Excerpt),
		HTMLBody: p.HTMLBody,
		Theme:    html.EscapeString(r.site.Theme),
	})
	if err != nil {
		return "", err
	}

	canonical := PostURL(r.site.BaseURL, p.Slug)
	ld, err := marshalJSONLD(newArticleLD(p.Title, p.Date, r.site.Name, canonical))
	if err != nil {
		return "", err
	}
	return r.base(lang, BaseContext{
		Title:       html.EscapeString(p.Title),
		SiteName:    html.EscapeString(r.site.Name),
		Description: html.EscapeString(p.Excerpt),
		Canonical:   html.EscapeString(canonical),
		JSONLD:      ld,
		Content:     content,
	})
}

// RenderIndex renders the list page of lang from posts, which must already be
// filtered to lang and ordered newest first.
func (r *Renderer) RenderIndex(lang config.Language, posts []postindex.Post) (string, error) {
	indexTpl, err := r.set.Template(lang, KindIndex)
	if err != nil {
		return "", err
	}
	content, err := indexTpl.Execute(IndexContext{Items: IndexItems(posts, r.site.IndexLimit)})
	if err != nil {
		return "", err
	}

	ld, err := marshalJSONLD(newWebSiteLD(r.site.Name, r.site.BaseURL))
	if err != nil {
		return "", err
	}
	name := html.EscapeString(r.site.Name)
	return r.base(lang, BaseContext{
		Title:       name,
		SiteName:    name,
		Description: name + " – latest posts",
		Canonical:   html.EscapeString(IndexURL(r.site.BaseURL, lang)),
		JSONLD:      ld,
		Content:     content,
	})
}

func (r *Renderer) base(lang config.Language, ctx BaseContext) (string, error) {
	baseTpl, err := r.set.Template(lang, KindBase)
	if err != nil {
		return "", err
	}
	ctx.Year = r.now().UTC().Year()
	return baseTpl.Execute(ctx)
}

// IndexItems renders at most limit posts as list items.
func IndexItems(posts []postindex.Post, limit int) string {
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	items := make([]string, 0, len(posts))
	for _, p := range posts {
		items = append(items, `<li class="list-item"><a href="`+html.EscapeString(PostPath(p.Slug))+`">`+
			html.EscapeString(p.Title)+`</a> <span class="meta">— `+html.EscapeString(p.Date)+`</span></li>`)
	}
	return strings.Join(items, "\n    ")
}
