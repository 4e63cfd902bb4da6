package render

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Kind is a page template kind.
type Kind string

const (
	KindBase  Kind = "base"
	KindPost  Kind = "post"
	KindIndex Kind = "index"
)

var kinds = []struct {
	kind Kind
	ctx  Context
}{
	{KindBase, BaseContext{}},
	{KindPost, PostContext{}},
	{KindIndex, IndexContext{}},
}

// FileName returns the template file name for kind and lang, e.g. post_ar.html.
func FileName(kind Kind, lang config.Language) string {
	return string(kind) + "_" + string(lang) + ".html"
}

// Set holds the validated templates of every supported language.
type Set struct {
	templates map[config.Language]map[Kind]*Template
}

// LoadSet reads and validates all page templates from dir.
func LoadSet(dir string) (*Set, error) {
	s := &Set{templates: make(map[config.Language]map[Kind]*Template)}
	for _, lang := range config.SupportedLanguages {
		s.templates[lang] = make(map[Kind]*Template, len(kinds))
		for _, k := range kinds {
			name := FileName(k.kind, lang)
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(filepath.Clean(path))
			if err != nil {
				return nil, errors.FileSystemError("failed to read template").WithCause(err).
					WithContext("path", path).Build()
			}
			t, err := ParseTemplate(name, string(data))
			if err != nil {
				return nil, err
			}
			if err := t.Validate(k.ctx); err != nil {
				return nil, err
			}
			s.templates[lang][k.kind] = t
		}
	}
	return s, nil
}

// Template returns the template for lang and kind.
func (s *Set) Template(lang config.Language, kind Kind) (*Template, error) {
	t, ok := s.templates[lang][kind]
	if !ok {
		return nil, errors.TemplateError("no template for language").
			WithContext("lang", string(lang)).
			WithContext("kind", string(kind)).Build()
	}
	return t, nil
}
