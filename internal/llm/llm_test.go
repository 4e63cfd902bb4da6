package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

func TestClientCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Octopus facts\n## Hearts\nThree of them."}}]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL + "/", APIKey: "sk-test", Model: "gpt-4o-mini"})
	out, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)

	assert.Equal(t, "Octopus facts\n## Hearts\nThree of them.", out)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "usr"}, got.Messages[1])
}

func TestClientCompleteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, strings.Repeat("x", 2000), http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(ClientOptions{BaseURL: srv.URL}).Complete(context.Background(), "s", "u")
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryLLM, ce.Category())
	status, _ := ce.Context().Get("status")
	assert.Equal(t, http.StatusInternalServerError, status)
	body, _ := ce.Context().GetString("body")
	assert.LessOrEqual(t, len([]rune(body)), maxErrorBody)
}

func TestClientCompleteKeepsZeroTemperature(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	zero := 0.0
	_, err := NewClient(ClientOptions{BaseURL: srv.URL, Temperature: &zero}).Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Zero(t, got.Temperature)
}

func TestClientCompleteRateLimitedHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(ClientOptions{BaseURL: srv.URL}).Complete(context.Background(), "s", "u")
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryLLM, ce.Category())
	assert.Equal(t, errors.RetryRateLimit, ce.RetryStrategy())
}

func TestClientCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(ClientOptions{BaseURL: srv.URL}).Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLLM))
}

func TestClientCompleteTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(ClientOptions{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNetwork))
}

func TestPrompts(t *testing.T) {
	en := EnglishPrompt("facts", "octopus")
	assert.Contains(t, en, "Topic: octopus")
	assert.Contains(t, en, "Theme: facts")
	assert.Contains(t, en, "max 60 chars")
	assert.Contains(t, en, "600-800 words")
	assert.Contains(t, en, "Bottom line")
	assert.Contains(t, en, "'## '")

	ar := ArabicPrompt("facts", "القهوة")
	assert.Contains(t, ar, "الموضوع: القهوة")
	assert.Contains(t, ar, "الثيمة: facts")
	assert.Contains(t, ar, "'## '")

	assert.Equal(t, englishSystemPrompt, SystemPrompt(config.LanguageEnglish))
	assert.Equal(t, arabicSystemPrompt, SystemPrompt(config.LanguageArabic))
}

type recordingCompleter struct {
	system, user string
}

func (r *recordingCompleter) Complete(_ context.Context, system, user string) (string, error) {
	r.system, r.user = system, user
	return "Title\nBody", nil
}

func TestGeneratorUsesLanguagePrompts(t *testing.T) {
	rc := &recordingCompleter{}
	g := NewGenerator(rc, nil)

	out, err := g.Generate(context.Background(), config.LanguageArabic, "facts", "الشاي")
	require.NoError(t, err)
	assert.Equal(t, "Title\nBody", out)
	assert.Equal(t, arabicSystemPrompt, rc.system)
	assert.Equal(t, ArabicPrompt("facts", "الشاي"), rc.user)
}
