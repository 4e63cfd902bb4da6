package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder sets fields", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "config.yaml", file)
	})

	t.Run("wrap keeps cause reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := WrapError(cause, CategoryNetwork, "completion request failed").Retryable().Build()

		assert.ErrorIs(t, err, cause)
		assert.True(t, err.CanRetry())
		assert.Contains(t, err.Error(), "[network:error] completion request failed: connection refused")
	})

	t.Run("constructors classify", func(t *testing.T) {
		assert.True(t, ConfigError("x").Build().IsFatal())
		assert.False(t, AuthError("x").Build().CanRetry())
		assert.Equal(t, SeverityWarning, EventsError("x").Build().Severity())
		assert.Equal(t, CategoryTemplate, TemplateError("x").Build().Category())
	})
}

func TestAsClassifiedFindsWrappedError(t *testing.T) {
	inner := IndexError("save failed").Build()
	outer := fmt.Errorf("run: %w", inner)

	got, ok := AsClassified(outer)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, HasCategory(outer, CategoryIndex))
	assert.False(t, HasCategory(errors.New("plain"), CategoryInternal))
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := LLMError("empty completion").WithContext("model", "m").Build()
	derived := base.WithContext("lang", "ar")

	_, ok := base.Context().Get("lang")
	assert.False(t, ok)
	lang, ok := derived.Context().GetString("lang")
	require.True(t, ok)
	assert.Equal(t, "ar", lang)
	assert.ErrorIs(t, derived, base)
}

func TestLogAttrsSorted(t *testing.T) {
	err := NotFoundError("missing").WithContext("path", "b").WithContext("kind", "a").Build()
	attrs := err.LogAttrs()
	require.Len(t, attrs, 3)
	assert.Equal(t, "category", attrs[0].Key)
	assert.Equal(t, "kind", attrs[1].Key)
	assert.Equal(t, "path", attrs[2].Key)
}
