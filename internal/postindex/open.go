package postindex

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/config"
)

// Open returns the store selected by kind inside siteDir. Every kind keeps
// posts_index.json current because it is part of the published output.
func Open(kind config.IndexStoreKind, siteDir string) (Store, error) {
	jsonStore := NewJSONStore(filepath.Join(siteDir, JSONFileName))
	if kind != config.IndexStoreSQLite {
		return jsonStore, nil
	}
	db, err := NewSQLiteStore(filepath.Join(siteDir, SQLiteFileName))
	if err != nil {
		return nil, err
	}
	return &exportingStore{primary: db, export: jsonStore}, nil
}

// exportingStore reads from primary and writes to primary and the JSON export.
type exportingStore struct {
	primary Store
	export  *JSONStore
}

// Load falls back to the JSON export while the primary store is still empty,
// which picks up an index written before the database existed.
func (s *exportingStore) Load(ctx context.Context) ([]Post, error) {
	posts, err := s.primary.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		return posts, nil
	}
	return s.export.Load(ctx)
}

func (s *exportingStore) Save(ctx context.Context, posts []Post) error {
	if err := s.primary.Save(ctx, posts); err != nil {
		return err
	}
	return s.export.Save(ctx, posts)
}

func (s *exportingStore) Close() error {
	return s.primary.Close()
}
