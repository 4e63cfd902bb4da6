// Package linkverify checks that internal links in the generated site resolve
// to files on disk.
package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Link is one URL referenced by an HTML element.
type Link struct {
	URL        string
	Tag        string // a, link, img or script
	Attribute  string // href or src
	IsInternal bool
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string, base *url.URL) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.FileSystemError("failed to open HTML file").WithCause(err).
			WithContext("path", htmlPath).Build()
	}
	defer func() { _ = file.Close() }()

	return ExtractLinksFromReader(file, base)
}

// ExtractLinksFromReader extracts a[href], link[href], img[src] and script[src].
func ExtractLinksFromReader(r io.Reader, base *url.URL) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryLinks, "failed to parse HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr := linkAttribute(n.Data); attr != "" {
				if v := strings.TrimSpace(getAttr(n, attr)); v != "" {
					links = append(links, Link{
						URL:        v,
						Tag:        n.Data,
						Attribute:  attr,
						IsInternal: isInternalLink(v, base),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func linkAttribute(tag string) string {
	switch tag {
	case "a", "link":
		return "href"
	case "img", "script":
		return "src"
	}
	return ""
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// isInternalLink reports whether linkURL points into the site: relative URLs
// and absolute URLs on the base host.
func isInternalLink(linkURL string, base *url.URL) bool {
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return true
	}
	return base != nil && (u.Scheme == "http" || u.Scheme == "https") && strings.EqualFold(u.Host, base.Host)
}

// shouldVerify skips fragments, special schemes and empty links.
func shouldVerify(l Link) bool {
	if !l.IsInternal || l.URL == "" || strings.HasPrefix(l.URL, "#") {
		return false
	}
	for _, p := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(l.URL, p) {
			return false
		}
	}
	return true
}
