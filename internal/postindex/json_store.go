package postindex

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/fileutil"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// JSONStore keeps the index in a single pretty-printed JSON array.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

// Load returns an empty index when the file does not exist.
func (s *JSONStore) Load(_ context.Context) ([]Post, error) {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if os.IsNotExist(err) {
		return []Post{}, nil
	}
	if err != nil {
		return nil, errors.IndexError("failed to read post index").WithCause(err).
			WithContext("path", s.path).Build()
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, errors.IndexError("post index is not valid JSON").WithCause(err).
			WithContext("path", s.path).Build()
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

// Save rewrites the file atomically. Non-ASCII text is written as is.
func (s *JSONStore) Save(_ context.Context, posts []Post) error {
	data, err := encodeJSON(posts)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o644); err != nil {
		return errors.IndexError("failed to write post index").WithCause(err).
			WithContext("path", s.path).Build()
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func encodeJSON(posts []Post) ([]byte, error) {
	if posts == nil {
		posts = []Post{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return nil, errors.IndexError("failed to encode post index").WithCause(err).Build()
	}
	return buf.Bytes(), nil
}
