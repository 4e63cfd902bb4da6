// Package events publishes a notification for every post a run adds to the site.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/factpress/internal/postindex"
	"git.home.luguber.info/inful/factpress/internal/render"
)

// PostPublished is sent once per new post after the site has been written.
type PostPublished struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Lang        string    `json:"lang"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Date        string    `json:"date"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// NewPostPublished builds the event for p with a fresh ID.
func NewPostPublished(runID, baseURL string, p postindex.Post, at time.Time) PostPublished {
	return PostPublished{
		ID:          uuid.NewString(),
		RunID:       runID,
		Lang:        string(p.Lang),
		Title:       p.Title,
		Slug:        p.Slug,
		Date:        p.Date,
		URL:         render.PostURL(baseURL, p.Slug),
		PublishedAt: at.UTC(),
	}
}

// Publisher delivers PostPublished events.
type Publisher interface {
	Publish(ctx context.Context, ev PostPublished) error
	Close() error
}

// NoopPublisher drops every event (default when no NATS URL is configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, PostPublished) error { return nil }
func (NoopPublisher) Close() error                                 { return nil }
