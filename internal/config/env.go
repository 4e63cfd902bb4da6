package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey = "OPENAI_API_KEY"
	EnvModel  = "OPENAI_MODEL"

	DefaultModel   = "gpt-4o-mini"
	DefaultEnvFile = ".env"
)

// Secrets carries the completion API credentials.
type Secrets struct {
	APIKey string
	Model  string
}

// HasAPIKey reports whether a usable key was found.
func (s Secrets) HasAPIKey() bool {
	return s.APIKey != ""
}

// LoadSecrets reads the API key and model from the environment. When the key is
// absent it falls back to envFile (dotenv syntax). The process environment is
// never modified and a missing or unreadable file only means no fallback.
func LoadSecrets(envFile string) Secrets {
	secrets := Secrets{
		APIKey: strings.TrimSpace(os.Getenv(EnvAPIKey)),
		Model:  strings.TrimSpace(os.Getenv(EnvModel)),
	}

	if secrets.APIKey == "" && envFile != "" {
		if values, err := godotenv.Read(envFile); err == nil {
			secrets.APIKey = strings.TrimSpace(values[EnvAPIKey])
			if secrets.Model == "" {
				secrets.Model = strings.TrimSpace(values[EnvModel])
			}
		}
	}

	if secrets.Model == "" {
		secrets.Model = DefaultModel
	}
	return secrets
}
