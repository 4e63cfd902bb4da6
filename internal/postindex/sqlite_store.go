package postindex

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// SQLiteStore keeps the index in a posts table ordered by position.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and creates if needed) the database at path.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.IndexError("failed to open post index database").WithCause(err).
			WithContext("path", path).Build()
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.IndexError("failed to initialize post index schema").WithCause(err).
			WithContext("path", path).Build()
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		position INTEGER PRIMARY KEY,
		lang TEXT NOT NULL,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_posts_lang ON posts(lang);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lang, title, slug, date FROM posts ORDER BY position")
	if err != nil {
		return nil, errors.IndexError("failed to query posts").WithCause(err).Build()
	}
	defer func() { _ = rows.Close() }()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var lang string
		if err := rows.Scan(&lang, &p.Title, &p.Slug, &p.Date); err != nil {
			return nil, errors.IndexError("failed to scan post").WithCause(err).Build()
		}
		p.Lang = config.Language(lang)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IndexError("failed to iterate posts").WithCause(err).Build()
	}
	return posts, nil
}

// Save replaces the table contents in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, posts []Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.IndexError("failed to begin transaction").WithCause(err).Build()
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM posts"); err != nil {
		return errors.IndexError("failed to clear posts").WithCause(err).Build()
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO posts (position, lang, title, slug, date) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return errors.IndexError("failed to prepare insert").WithCause(err).Build()
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range posts {
		if _, err := stmt.ExecContext(ctx, i, string(p.Lang), p.Title, p.Slug, p.Date); err != nil {
			return errors.IndexError("failed to insert post").WithCause(err).
				WithContext("slug", p.Slug).Build()
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.IndexError("failed to commit posts").WithCause(err).Build()
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
