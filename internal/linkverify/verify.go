package linkverify

import (
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/logfields"
)

// BrokenLink is an internal link whose target is missing.
type BrokenLink struct {
	Page   string // page path relative to the site root
	URL    string
	Tag    string
	Target string // resolved path relative to the site root
}

// Report summarizes one verification pass.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Verifier checks the HTML files under a site root.
type Verifier struct {
	root string
	base *url.URL
}

// NewVerifier returns a verifier for the site in root published at baseURL.
func NewVerifier(root, baseURL string) (*Verifier, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.ConfigError("invalid base URL").WithCause(err).
			WithContext("base_url", baseURL).Build()
	}
	return &Verifier{root: root, base: base}, nil
}

// Verify walks every .html file and resolves its internal links.
func (v *Verifier) Verify() (*Report, error) {
	if _, err := os.Stat(v.root); err != nil {
		return nil, errors.NotFoundError("site directory does not exist").WithCause(err).
			WithContext("path", v.root).Build()
	}

	report := &Report{}
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		links, err := ExtractLinks(p, v.base)
		if err != nil {
			return err
		}
		report.Pages++
		for _, l := range links {
			if !shouldVerify(l) {
				continue
			}
			report.Links++
			target, ok := v.resolve(rel, l.URL)
			if !ok {
				continue
			}
			if !v.exists(target) {
				report.Broken = append(report.Broken, BrokenLink{Page: rel, URL: l.URL, Tag: l.Tag, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.FileSystemError("failed to walk site directory").WithCause(err).
			WithContext("path", v.root).Build()
	}

	slices.SortFunc(report.Broken, func(a, b BrokenLink) int {
		if c := strings.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return strings.Compare(a.URL, b.URL)
	})
	slog.Debug("Link verification finished",
		logfields.Count(report.Links),
		slog.Int("pages", report.Pages),
		slog.Int("broken", len(report.Broken)))
	return report, nil
}

// resolve maps a link found on page to a slash-separated path below the root.
// Links that climb out of the base path are not resolvable.
func (v *Verifier) resolve(page, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	p := u.Path
	if u.Host != "" {
		basePath := strings.TrimSuffix(v.base.Path, "/")
		if !strings.HasPrefix(p, basePath+"/") && p != basePath {
			return "", false
		}
		p = strings.TrimPrefix(p, basePath)
		if p == "" {
			p = "/"
		}
	}
	if p == "" {
		p = "/" + page
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/", path.Dir(page), p) + trailingSlash(p)
	}
	clean := path.Clean(p)
	if strings.HasSuffix(p, "/") || clean == "/" {
		clean = path.Join(clean, "index.html")
	}
	return strings.TrimPrefix(clean, "/"), true
}

func trailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return "/"
	}
	return ""
}

// exists accepts a file, or a directory holding index.html.
func (v *Verifier) exists(target string) bool {
	full := filepath.Join(v.root, filepath.FromSlash(target))
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = os.Stat(filepath.Join(full, "index.html"))
	return err == nil
}

// Err returns a links error describing the broken links, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	first := r.Broken[0]
	return errors.NewError(errors.CategoryLinks, "site contains broken internal links").
		WithContext("broken", len(r.Broken)).
		WithContext("first_page", first.Page).
		WithContext("first_url", first.URL).
		Build()
}
