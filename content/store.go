package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a Provider backed by a SQLite database. Posts are stored
// already rendered; `blogshell import` fills it from a markdown
// directory.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the importer write while the server reads; busy_timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListPosts implements Provider. Unpublished posts are excluded.
func (s *Store) ListPosts(ctx context.Context) ([]PostSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, title, author, date, excerpt FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := s.now()
	var posts []PostSummary
	for rows.Next() {
		var doc Document
		var date string
		if err := rows.Scan(&doc.ID, &doc.Slug, &doc.Title, &doc.Author, &date, &doc.Excerpt); err != nil {
			return nil, err
		}
		if doc.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		posts = append(posts, doc.Summary(now))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost implements Provider.
func (s *Store) GetPost(ctx context.Context, slug string) (Post, error) {
	var doc Document
	var date string
	err := s.db.QueryRowContext(ctx, `SELECT slug, title, date, html FROM posts WHERE slug = ? AND published = 1`, slug).
		Scan(&doc.Slug, &doc.Title, &date, &doc.HTML)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, err
	}
	if doc.Date, err = parseStoredDate(date); err != nil {
		return Post{}, err
	}
	return doc.Post(s.now()), nil
}

// SaveDocument upserts a published post.
func (s *Store) SaveDocument(ctx context.Context, doc Document) error {
	if doc.Slug == "" {
		return fmt.Errorf("content: save: empty slug")
	}
	if doc.ID == "" {
		doc.ID = DocumentID(doc.Slug)
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (slug, id, title, author, date, excerpt, html, published) VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		doc.Slug, doc.ID, doc.Title, doc.Author, doc.Date.UTC().Format(time.RFC3339), doc.Excerpt, doc.HTML)
	return err
}

// Unpublish hides a post without deleting it.
func (s *Store) Unpublish(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE posts SET published = 0 WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Slugs returns the slugs of all published posts.
func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM posts WHERE published = 1 ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func parseStoredDate(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("content: stored date %q: %w", v, err)
	}
	return t, nil
}
