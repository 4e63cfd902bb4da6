// Package publish commits the generated site into the git repository that contains it.
package publish

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/logfields"
	"git.home.luguber.info/inful/factpress/internal/postindex"
)

const (
	DefaultAuthorName  = "factpress"
	DefaultAuthorEmail = "factpress@localhost"
)

// Result describes what Commit did.
type Result struct {
	Committed bool
	Hash      string
	Files     int
}

// Committer stages and commits one directory of a worktree.
type Committer struct {
	name  string
	email string
	now   func() time.Time
}

// NewCommitter returns a committer signing as name <email>. Empty values use the defaults.
func NewCommitter(name, email string) *Committer {
	if name == "" {
		name = DefaultAuthorName
	}
	if email == "" {
		email = DefaultAuthorEmail
	}
	return &Committer{name: name, email: email, now: time.Now}
}

// Commit stages everything below dir and commits it with message. When
// nothing below dir changed no commit is created. A commit always records the
// whole index, so Commit refuses to run while changes outside dir are staged.
func (c *Committer) Commit(dir, message string) (Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Result{}, errors.FileSystemError("failed to resolve site directory").WithCause(err).
			WithContext("path", dir).Build()
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Result{}, errors.PublishError("site directory is not inside a git repository").WithCause(err).
			WithContext("path", abs).UserAction().Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, errors.PublishError("repository has no worktree").WithCause(err).
			WithContext("path", abs).Build()
	}

	root := wt.Filesystem.Root()
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Result{}, errors.PublishError("site directory is outside the worktree").
			WithContext("path", abs).WithContext("worktree", root).Build()
	}
	rel = filepath.ToSlash(rel)

	if err := wt.AddWithOptions(&git.AddOptions{Path: rel}); err != nil {
		return Result{}, errors.PublishError("failed to stage site directory").WithCause(err).
			WithContext("path", rel).Build()
	}

	status, err := wt.Status()
	if err != nil {
		return Result{}, errors.PublishError("failed to read worktree status").WithCause(err).Build()
	}
	staged := 0
	var outside []string
	for file, st := range status {
		if st.Staging == git.Unmodified || st.Staging == git.Untracked {
			continue
		}
		if !within(file, rel) {
			outside = append(outside, file)
			continue
		}
		staged++
	}
	if len(outside) > 0 {
		sort.Strings(outside)
		return Result{}, errors.PublishError("changes outside the site directory are staged").
			WithContext("path", rel).
			WithContext("outside", strings.Join(outside, ", ")).
			UserAction().Build()
	}
	if staged == 0 {
		slog.Info("Nothing to publish", logfields.Path(rel))
		return Result{}, nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: c.name, Email: c.email, When: c.now()},
	})
	if err != nil {
		return Result{}, errors.PublishError("failed to commit site").WithCause(err).Build()
	}

	slog.Info("Committed site", logfields.Path(rel), logfields.Count(staged), slog.String("commit", hash.String()[:8]))
	return Result{Committed: true, Hash: hash.String(), Files: staged}, nil
}

func within(file, dir string) bool {
	if dir == "." || dir == "" {
		return true
	}
	return file == dir || strings.HasPrefix(file, dir+"/")
}

// Message builds the commit message for a run that added posts.
func Message(posts []postindex.Post) string {
	if len(posts) == 0 {
		return "Re-render site"
	}
	var b strings.Builder
	noun := "posts"
	if len(posts) == 1 {
		noun = "post"
	}
	fmt.Fprintf(&b, "Publish %d %s\n\n", len(posts), noun)
	for _, p := range posts {
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", p.Lang, p.Title, p.Slug)
	}
	return b.String()
}
