// package store persists the user's bearer token in a durable local slot.
//
// The token is an opaque string obtained from the interactive authorization
// flow. No expiry metadata is kept; callers treat a rejected token the same as
// an absent one and re-authenticate.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"spotsearch/internal/shared"
)

// tokenKey is the fixed slot the user token lives under.
const tokenKey = "spotify_user_token"

// TokenStore defines the uniform interface over the platform credential slot.
type TokenStore interface {
	// Store overwrites the persisted token.
	Store(token string) error
	// Retrieve returns the last written token. The second return is false when
	// no token has been stored.
	Retrieve() (string, bool, error)
	// Clear removes the persisted token.
	Clear() error
}

// SQLiteStore implements [TokenStore] on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the credential database at the specified path.
// The path can be ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", shared.ErrStorage, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", shared.ErrStorage, err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %v", shared.ErrStorage, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Store writes the user token to the fixed slot, replacing any prior value.
func (s *SQLiteStore) Store(token string) error {
	if token == "" {
		return fmt.Errorf("%w: refusing to store empty token", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO credentials (key, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, tokenKey, token, time.Now()); err != nil {
		return fmt.Errorf("%w: failed to write token: %v", shared.ErrStorage, err)
	}

	return nil
}

// Retrieve returns whatever token was last written, with no validity check.
func (s *SQLiteStore) Retrieve() (string, bool, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM credentials WHERE key = ?`, tokenKey).Scan(&token)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read token: %v", shared.ErrStorage, err)
	}

	return token, true, nil
}

// Clear removes the persisted token, used on logout.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, tokenKey); err != nil {
		return fmt.Errorf("%w: failed to clear token: %v", shared.ErrStorage, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ TokenStore = (*SQLiteStore)(nil)
