package config

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Config holds the site settings read from config.yaml.
type Config struct {
	SiteName    string     `yaml:"site_name"`
	BaseURL     string     `yaml:"base_url"`
	PostsPerRun int        `yaml:"posts_per_run"`
	Theme       string     `yaml:"theme"`
	LanguageMix []Language `yaml:"language_mix,flow"`

	OutputDir    string `yaml:"output_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	TopicsDir    string `yaml:"topics_dir"`
	AssetsDir    string `yaml:"assets_dir"`

	IndexLimit int            `yaml:"index_limit"`
	FeedLimit  int            `yaml:"feed_limit"`
	IndexStore IndexStoreKind `yaml:"index_store"`
	BodyFormat BodyFormat     `yaml:"body_format"`

	Temperature    float64       `yaml:"temperature"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	APIBaseURL     string        `yaml:"api_base_url"`

	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`

	LogLevel  LogLevel  `yaml:"log_level"`
	LogFormat LogFormat `yaml:"log_format"`
}

// Defaults returns the configuration used when a key or the whole file is absent.
func Defaults() Config {
	return Config{
		SiteName:       "Site",
		BaseURL:        "https://example.com",
		PostsPerRun:    10,
		Theme:          "facts",
		LanguageMix:    []Language{LanguageEnglish, LanguageArabic},
		OutputDir:      "site",
		TemplatesDir:   "templates",
		TopicsDir:      "topics",
		AssetsDir:      "assets",
		IndexLimit:     50,
		FeedLimit:      50,
		IndexStore:     IndexStoreJSON,
		BodyFormat:     BodyFormatLines,
		Temperature:    0.7,
		RequestTimeout: 120 * time.Second,
		APIBaseURL:     "https://api.openai.com/v1",
		NATSSubject:    "factpress.posts",
		LogLevel:       LogLevelInfo,
		LogFormat:      LogFormatText,
	}
}

// Load reads a line-oriented "key: value" file over the defaults.
//
// A missing file is not an error. Lines without a colon, unknown keys and values
// that do not decode for their key are skipped, keeping the previous value.
// A bracketed language_mix list may span several lines.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigError("failed to read config file").WithCause(err).
			WithContext("path", path).Build()
	}

	if err := parseInto(&cfg, data); err != nil {
		return nil, err
	}
	if len(cfg.LanguageMix) == 0 {
		cfg.LanguageMix = Defaults().LanguageMix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInto(cfg *Config, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var pendingKey string
	var pending strings.Builder

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if pendingKey != "" {
			pending.WriteString(" ")
			pending.WriteString(line)
			if strings.Contains(line, "]") {
				applyValue(cfg, pendingKey, pending.String())
				pendingKey = ""
				pending.Reset()
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.HasPrefix(value, "[") && !strings.Contains(value, "]") {
			pendingKey = key
			pending.WriteString(value)
			continue
		}
		applyValue(cfg, key, value)
	}
	if err := scanner.Err(); err != nil {
		return errors.ConfigError("failed to scan config file").WithCause(err).Build()
	}
	return nil
}

// rawKeys take the rest of the line verbatim, surrounding quotes stripped, so a
// "#" or ": " inside a name is kept.
var rawKeys = map[string]func(*Config, string){
	"site_name":     func(c *Config, v string) { c.SiteName = v },
	"base_url":      func(c *Config, v string) { c.BaseURL = v },
	"theme":         func(c *Config, v string) { c.Theme = v },
	"output_dir":    func(c *Config, v string) { c.OutputDir = v },
	"templates_dir": func(c *Config, v string) { c.TemplatesDir = v },
	"topics_dir":    func(c *Config, v string) { c.TopicsDir = v },
	"assets_dir":    func(c *Config, v string) { c.AssetsDir = v },
	"index_store":   func(c *Config, v string) { c.IndexStore = IndexStoreKind(v) },
	"body_format":   func(c *Config, v string) { c.BodyFormat = BodyFormat(v) },
	"api_base_url":  func(c *Config, v string) { c.APIBaseURL = v },
	"nats_url":      func(c *Config, v string) { c.NATSURL = v },
	"nats_subject":  func(c *Config, v string) { c.NATSSubject = v },
	"log_level":     func(c *Config, v string) { c.LogLevel = LogLevel(v) },
	"log_format":    func(c *Config, v string) { c.LogFormat = LogFormat(v) },
}

// applyValue assigns string keys from the raw value and decodes the rest
// (numbers, durations, language_mix) through yaml.v3 against a copy of cfg,
// so a bad value leaves cfg untouched.
func applyValue(cfg *Config, key, value string) {
	if set, ok := rawKeys[key]; ok {
		set(cfg, strings.Trim(value, `"'`))
		return
	}
	candidate := *cfg
	doc := strconv.Quote(key) + ": " + value
	if err := yaml.Unmarshal([]byte(doc), &candidate); err != nil {
		return
	}
	*cfg = candidate
}

// Validate canonicalizes enum-like fields and rejects values factpress cannot serve.
func (c *Config) Validate() error {
	mix := make([]Language, 0, len(c.LanguageMix))
	for _, raw := range c.LanguageMix {
		lang, err := languageNormalizer.NormalizeWithError(string(raw))
		if err != nil {
			return errors.ConfigError("unsupported language in language_mix").WithCause(err).
				WithContext("language", string(raw)).Build()
		}
		mix = append(mix, lang)
	}
	c.LanguageMix = mix

	store, err := indexStoreNormalizer.NormalizeWithError(string(c.IndexStore))
	if err != nil {
		return errors.ConfigError("invalid index_store").WithCause(err).Build()
	}
	c.IndexStore = store

	format, err := bodyFormatNormalizer.NormalizeWithError(string(c.BodyFormat))
	if err != nil {
		return errors.ConfigError("invalid body_format").WithCause(err).Build()
	}
	c.BodyFormat = format

	c.LogLevel = NormalizeLogLevel(string(c.LogLevel))
	c.LogFormat = NormalizeLogFormat(string(c.LogFormat))
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// PerLanguage is the number of posts generated for each language per run.
func (c *Config) PerLanguage() int {
	return max(1, c.PostsPerRun/max(1, len(c.LanguageMix)))
}
