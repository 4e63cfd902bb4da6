package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

const schemaContext = "https://schema.org"

type organizationLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type webPageLD struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type articleLD struct {
	Context          string         `json:"@context"`
	Type             string         `json:"@type"`
	Headline         string         `json:"headline"`
	DatePublished    string         `json:"datePublished"`
	DateModified     string         `json:"dateModified"`
	Author           organizationLD `json:"author"`
	MainEntityOfPage webPageLD      `json:"mainEntityOfPage"`
	Publisher        organizationLD `json:"publisher"`
}

type webSiteLD struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

func newArticleLD(headline, date, siteName, canonical string) articleLD {
	org := organizationLD{Type: "Organization", Name: siteName}
	return articleLD{
		Context:          schemaContext,
		Type:             "Article",
		Headline:         headline,
		DatePublished:    date,
		DateModified:     date,
		Author:           org,
		MainEntityOfPage: webPageLD{Type: "WebPage", ID: canonical},
		Publisher:        org,
	}
}

func newWebSiteLD(name, url string) webSiteLD {
	return webSiteLD{Context: schemaContext, Type: "WebSite", Name: name, URL: url}
}

// marshalJSONLD encodes v on one line with non-ASCII and HTML characters kept.
// "</" is written as "<\/" so the value cannot close its script element.
func marshalJSONLD(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", errors.TemplateError("failed to encode JSON-LD").WithCause(err).Build()
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "</", `<\/`), nil
}
