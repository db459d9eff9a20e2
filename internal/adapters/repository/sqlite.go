package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/okian/moniker/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultSeedCount = 200
)

// sampleUsernames seeds a fresh database with common taken handles so a
// demo deployment exercises the availability filter immediately.
var sampleUsernames = []string{
	"john_doe", "jane_smith", "user123", "admin", "test_user",
	"muhammad_ali", "ahmed123", "jose_garcia", "maria_lopez",
	"admin123", "user_001", "test123", "sample_user",
}

// SQLiteStore persists taken usernames in SQLite.
type SQLiteStore struct {
	db        *sql.DB
	seedCount int
}

// Open opens (creating if needed) the username store at path and
// bootstraps the schema. A fresh, empty table is seeded with sample and
// generated usernames so the filter path has data to work against.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOpenStore)
	}

	s := &SQLiteStore{seedCount: defaultSeedCount}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenStore, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrOpenStore, err)
	}

	s.db = db
	if err := s.bootstrap(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) bootstrap(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS usernames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: create schema: %v", ErrOpenStore, err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil // already populated, never reseed
	}
	return s.seed(ctx)
}

// seed inserts the fixed sample list plus generated usernames up to the
// configured count.
func (s *SQLiteStore) seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin seed: %v", ErrOpenStore, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO usernames (username) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare seed: %v", ErrOpenStore, err)
	}
	defer stmt.Close() //nolint:errcheck // statement is tx-scoped

	for _, u := range sampleUsernames {
		if _, err := stmt.ExecContext(ctx, strings.ToLower(u)); err != nil {
			return fmt.Errorf("%w: seed %q: %v", ErrOpenStore, u, err)
		}
	}
	for i := len(sampleUsernames); i < s.seedCount; i++ {
		if _, err := stmt.ExecContext(ctx, strings.ToLower(gofakeit.Username())); err != nil {
			return fmt.Errorf("%w: seed generated username: %v", ErrOpenStore, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit seed: %v", ErrOpenStore, err)
	}
	return nil
}

// Exists reports whether username is already taken.
func (s *SQLiteStore) Exists(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return false, ErrEmptyUsername
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM usernames WHERE username = ? LIMIT 1`, username).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query username: %w", err)
	}
	return true, nil
}

// Taken reports which of the given usernames already exist.
func (s *SQLiteStore) Taken(ctx context.Context, usernames []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(usernames))
	if len(usernames) == 0 {
		return existing, nil
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(usernames)), ",")
	args := make([]any, len(usernames))
	for i, u := range usernames {
		args[i] = strings.ToLower(u)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT username FROM usernames WHERE username IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query usernames: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		existing[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usernames: %w", err)
	}
	return existing, nil
}

// Add records username as taken.
func (s *SQLiteStore) Add(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return ErrEmptyUsername
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO usernames (username) VALUES (?)`, username); err != nil {
		return fmt.Errorf("insert username: %w", err)
	}
	return nil
}

// Count returns the number of stored usernames.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usernames`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usernames: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
