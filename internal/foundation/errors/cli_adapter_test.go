package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"missing api key", AuthError("OPENAI_API_KEY not set").Build(), 5},
		{"bad config", ConfigError("unknown language").Build(), 7},
		{"llm failure", LLMError("status 500").Build(), 8},
		{"network failure", NetworkError("timeout").Build(), 8},
		{"missing template", NotFoundError("template missing").Build(), 11},
		{"placeholder mismatch", TemplateError("unknown placeholder").Build(), 11},
		{"broken links", NewError(CategoryLinks, "2 broken links").Build(), 9},
		{"unclassified", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	auth := AuthError("OPENAI_API_KEY not set").Build()
	assert.Equal(t, "Error: OPENAI_API_KEY not set", quiet.FormatError(auth))
	assert.Contains(t, verbose.FormatError(auth), "[auth:error]")

	internal := InternalError("unexpected state").Build()
	assert.Contains(t, quiet.FormatError(internal), "use -v")

	wrapped := WrapError(errors.New("no such file"), CategoryNotFound, "read template").Build()
	assert.Equal(t, "Error: read template: no such file", quiet.FormatError(wrapped))
	assert.Equal(t, "", quiet.FormatError(nil))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out

	code := adapter.Report(AuthError("OPENAI_API_KEY not set").Build())

	assert.Equal(t, 5, code)
	assert.Equal(t, "Error: OPENAI_API_KEY not set\n", out.String())
	assert.Contains(t, logs.String(), "category=auth")
	assert.NotContains(t, logs.String(), "fatal=true")

	logs.Reset()
	out.Reset()
	code = adapter.Report(ConfigError("unsupported language").Build())
	assert.Equal(t, 7, code)
	assert.Contains(t, logs.String(), "fatal=true")
}
