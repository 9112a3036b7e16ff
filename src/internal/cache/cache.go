package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file created inside the cache directory.
const FileName = "certview.db"

// DefaultTTL is how long a resolved record stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

// Store is a SQLite-backed CSL cache.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// Options configures a Store.
type Options struct {
	// TTL is the freshness window; zero means DefaultTTL.
	TTL time.Duration
}

// Open opens or creates the cache database in dir.
func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	dbPath := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{db: db, path: dbPath, ttl: ttl, now: time.Now}
	if err := s.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) createTables(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS csl_records (
	doi        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Get returns the cached document for doi if present and fresh.
func (s *Store) Get(ctx context.Context, doi string) ([]byte, bool, error) {
	var (
		body      []byte
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM csl_records WHERE doi = ?`, key(doi),
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	if s.now().Sub(time.Unix(fetchedAt, 0)) > s.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores or replaces the document for doi.
func (s *Store) Put(ctx context.Context, doi string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO csl_records (doi, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key(doi), data, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Purge deletes expired rows and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM csl_records WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

func key(doi string) string { return strings.ToLower(strings.TrimSpace(doi)) }
