// Package site lays out the generated site on disk and runs the generation pipeline.
package site

import (
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/feed"
	"git.home.luguber.info/inful/factpress/internal/fileutil"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/postindex"
)

const (
	postsDir       = "posts"
	assetsDir      = "assets"
	StylesheetName = "style.css"
)

// Layout knows where every output file lives below Root. Relative paths use
// forward slashes.
type Layout struct {
	Root string
}

func NewLayout(root string) Layout { return Layout{Root: root} }

// Path converts a layout-relative path to a filesystem path.
func (l Layout) Path(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

func (l Layout) PostFile(slug string) string { return path.Join(postsDir, slug, "index.html") }

func (l Layout) IndexFile(lang config.Language) string { return "index_" + string(lang) + ".html" }

func (l Layout) IndexJSON() string { return postindex.JSONFileName }

func (l Layout) FeedFile() string { return feed.FileName }

func (l Layout) Stylesheet() string { return path.Join(assetsDir, StylesheetName) }

// EnsureDirs creates the root, posts/ and assets/ directories.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{postsDir, assetsDir} {
		p := l.Path(dir)
		if err := os.MkdirAll(p, 0o750); err != nil {
			return errors.FileSystemError("failed to create output directory").WithCause(err).
				WithContext("path", p).Build()
		}
	}
	return nil
}

// CopyAsset copies the stylesheet at src into assets/ unchanged.
func (l Layout) CopyAsset(src string) error {
	return fileutil.CopyFile(src, l.Path(l.Stylesheet()))
}

// WriteFile atomically writes data at the layout-relative path rel.
func (l Layout) WriteFile(rel string, data []byte) error {
	return fileutil.WriteAtomic(l.Path(rel), data, 0o644)
}
