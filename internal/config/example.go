package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

const exampleHeader = `# factpress site configuration.
# One "key: value" per line; language_mix takes a bracketed list.
# Secrets (OPENAI_API_KEY, OPENAI_MODEL) come from the environment or .env.
`

// WriteExample writes a config file populated with the defaults.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	cfg := Defaults()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.InternalError("failed to marshal example config").WithCause(err).Build()
	}

	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o644); err != nil {
		return errors.FileSystemError("failed to write config file").WithCause(err).
			WithContext("path", path).Build()
	}
	return nil
}
