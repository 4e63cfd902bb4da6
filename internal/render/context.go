package render

import "strconv"

// Context supplies placeholder values for one page kind.
type Context interface {
	Values() map[string]string
}

// BaseContext fills the outer page shell shared by every page.
type BaseContext struct {
	Title       string
	SiteName    string
	Description string
	Canonical   string
	JSONLD      string
	Content     string
	Year        int
}

func (c BaseContext) Values() map[string]string {
	return map[string]string{
		"title":       c.Title,
		"site_name":   c.SiteName,
		"description": c.Description,
		"canonical":   c.Canonical,
		"json_ld":     c.JSONLD,
		"content":     c.Content,
		"year":        strconv.Itoa(c.Year),
	}
}

// PostContext fills the article body template.
type PostContext struct {
	Title    string
	Date     string
	ReadMins int
	Excerpt  string
	HTMLBody string
	Theme    string
}

func (c PostContext) Values() map[string]string {
	return map[string]string{
		"title":     c.Title,
		"date":      c.Date,
		"read_mins": strconv.Itoa(c.ReadMins),
		"excerpt":   c.Excerpt,
		"html_body": c.HTMLBody,
		"theme":     c.Theme,
	}
}

// IndexContext fills the post list template.
type IndexContext struct {
	Items string
}

func (c IndexContext) Values() map[string]string {
	return map[string]string{"items": c.Items}
}
