package config

import "git.home.luguber.info/inful/factpress/internal/foundation/normalization"

// Language is a supported content language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// SupportedLanguages lists every language with prompts, templates and seed topics.
var SupportedLanguages = []Language{LanguageEnglish, LanguageArabic}

var languageNormalizer = normalization.NewNormalizer("language", map[string]Language{
	"en":      LanguageEnglish,
	"english": LanguageEnglish,
	"ar":      LanguageArabic,
	"arabic":  LanguageArabic,
}, LanguageEnglish)

// IndexStoreKind selects the post index backend.
type IndexStoreKind string

const (
	IndexStoreJSON   IndexStoreKind = "json"
	IndexStoreSQLite IndexStoreKind = "sqlite"
)

var indexStoreNormalizer = normalization.NewNormalizer("index store", map[string]IndexStoreKind{
	"json":   IndexStoreJSON,
	"sqlite": IndexStoreSQLite,
}, IndexStoreJSON)

// BodyFormat selects how article body lines become HTML.
type BodyFormat string

const (
	BodyFormatLines    BodyFormat = "lines"
	BodyFormatMarkdown BodyFormat = "markdown"
)

var bodyFormatNormalizer = normalization.NewNormalizer("body format", map[string]BodyFormat{
	"lines":    BodyFormatLines,
	"markdown": BodyFormatMarkdown,
}, BodyFormatLines)
