// Package feed builds the RSS 2.0 document of the published posts.
package feed

import (
	"encoding/xml"
	"time"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/postindex"
	"git.home.luguber.info/inful/factpress/internal/render"
	"git.home.luguber.info/inful/factpress/internal/textutil"
)

const (
	FileName     = "feed.xml"
	DefaultLimit = 50
)

// Channel describes the feed itself.
type Channel struct {
	Title       string
	Link        string
	Description string
	Limit       int
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title    string  `xml:"title"`
	Link     string  `xml:"link"`
	GUID     rssGUID `xml:"guid"`
	PubDate  string  `xml:"pubDate,omitempty"`
	Category string  `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Build returns the feed for posts, newest first, at most ch.Limit items.
func Build(ch Channel, posts []postindex.Post, built time.Time) ([]byte, error) {
	limit := ch.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	doc := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:         ch.Title,
			Link:          ch.Link,
			Description:   ch.Description,
			LastBuildDate: textutil.RFC2822(built),
			Items:         make([]rssItem, 0, len(posts)),
		},
	}
	for _, p := range posts {
		link := render.PostURL(ch.Link, p.Slug)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:    p.Title,
			Link:     link,
			GUID:     rssGUID{IsPermaLink: true, Value: link},
			PubDate:  pubDate(p.Date),
			Category: string(p.Lang),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.TemplateError("failed to encode feed").WithCause(err).Build()
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// pubDate renders a YYYY-MM-DD publish date at midnight UTC. Unparseable dates are omitted.
func pubDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return textutil.RFC2822(t)
}
