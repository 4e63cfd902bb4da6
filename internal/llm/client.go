// Package llm talks to an OpenAI-compatible chat-completion API and builds the
// article prompts sent to it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/textutil"
	"git.home.luguber.info/inful/factpress/internal/version"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultTemperature = 0.7
	DefaultTimeout     = 120 * time.Second

	maxErrorBody = 512
)

// Completer returns the completion text for a system and user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ClientOptions configures a Client. Zero values fall back to the defaults;
// a nil Temperature means DefaultTemperature, so an explicit 0 is kept.
type ClientOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature *float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client issues one chat-completion request per Complete call. It never retries.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
}

// NewClient builds a Client from opts.
func NewClient(opts ClientOptions) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	temp := DefaultTemperature
	if opts.Temperature != nil {
		temp = *opts.Temperature
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:    base + "/chat/completions",
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: temp,
		http:        hc,
	}
}

// Complete sends the prompts and returns the first choice's message content.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", errors.InternalError("failed to encode completion request").WithCause(err).Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", errors.ConfigError("invalid completion endpoint").WithCause(err).
			WithContext("url", c.endpoint).Build()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.NetworkError("completion request failed").WithCause(err).
			WithContext("url", c.endpoint).Build()
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NetworkError("failed to read completion response").WithCause(err).
			WithContext("url", c.endpoint).Build()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b := errors.LLMError("completion API returned an error status").
			WithContext("status", resp.StatusCode).
			WithContext("body", textutil.Truncate(string(body), maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			b = b.RateLimit()
		}
		return "", b.Build()
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", errors.LLMError("failed to decode completion response").WithCause(err).Build()
	}
	if len(cr.Choices) == 0 {
		return "", errors.LLMError("completion response has no choices").Build()
	}
	return cr.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
