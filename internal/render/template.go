package render

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Template is a text with {name} placeholders. Doubled braces produce literal braces.
type Template struct {
	name  string
	parts []part
}

type part struct {
	text  string
	field bool
}

// ParseTemplate parses text. Unbalanced or empty braces are template errors.
func ParseTemplate(name, text string) (*Template, error) {
	t := &Template{name: name}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(text[i+1:], "{}")
			if end < 0 || text[i+1+end] != '}' {
				return nil, malformed(name, i, "unclosed '{'")
			}
			field := text[i+1 : i+1+end]
			if field == "" {
				return nil, malformed(name, i, "empty placeholder")
			}
			flush()
			t.parts = append(t.parts, part{text: field, field: true})
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, malformed(name, i, "single '}'")
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

func malformed(name string, offset int, reason string) error {
	return errors.TemplateError("malformed template placeholder").
		WithContext("template", name).
		WithContext("offset", offset).
		WithContext("reason", reason).Build()
}

// Name returns the name the template was parsed with.
func (t *Template) Name() string { return t.name }

// Placeholders lists the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	var names []string
	for _, p := range t.parts {
		if p.field && !slices.Contains(names, p.text) {
			names = append(names, p.text)
		}
	}
	return names
}

// Validate checks that ctx supplies every placeholder.
func (t *Template) Validate(ctx Context) error {
	values := ctx.Values()
	var missing []string
	for _, name := range t.Placeholders() {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.TemplateError("template uses placeholders its page context does not supply").
			WithContext("template", t.name).
			WithContext("placeholders", strings.Join(missing, ", ")).Build()
	}
	return nil
}

// Execute substitutes the context values.
func (t *Template) Execute(ctx Context) (string, error) {
	values := ctx.Values()
	var b strings.Builder
	for _, p := range t.parts {
		if !p.field {
			b.WriteString(p.text)
			continue
		}
		v, ok := values[p.text]
		if !ok {
			return "", errors.TemplateError("missing value for placeholder").
				WithContext("template", t.name).
				WithContext("placeholder", p.text).Build()
		}
		b.WriteString(v)
	}
	return b.String(), nil
}
