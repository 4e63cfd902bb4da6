// Package postindex persists the ordered list of published posts.
package postindex

import (
	"context"

	"git.home.luguber.info/inful/factpress/internal/config"
)

const (
	JSONFileName   = "posts_index.json"
	SQLiteFileName = "posts_index.db"
)

// Post is one published article. The JSON keys match indexes written by
// earlier versions of the pipeline.
type Post struct {
	Lang  config.Language `json:"lang"`
	Title string          `json:"title"`
	Slug  string          `json:"slug"`
	Date  string          `json:"date"`
}

// Store loads and saves the whole index, newest post first.
type Store interface {
	Load(ctx context.Context) ([]Post, error)
	Save(ctx context.Context, posts []Post) error
	Close() error
}

// Prepend returns newPosts followed by existing, both in their original order.
func Prepend(newPosts, existing []Post) []Post {
	out := make([]Post, 0, len(newPosts)+len(existing))
	out = append(out, newPosts...)
	return append(out, existing...)
}

// FilterLanguage keeps the posts in lang, preserving order.
func FilterLanguage(posts []Post, lang config.Language) []Post {
	var out []Post
	for _, p := range posts {
		if p.Lang == lang {
			out = append(out, p)
		}
	}
	return out
}
