// Package session implements a durable key-value store for client
// session state: tokens, display language, cached profile. It is the
// local counterpart of what the web client keeps in browser storage.
package session

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Well-known keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyLanguage     = "language"
	KeyProfile      = "profile"
)

// Store implements a SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open a session store at the given path, creating it if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating session table")
	}

	return &Store{db: db}, nil
}

// Close the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get a value. Returns "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "querying session value")
	}
	return value, nil
}

// Set a value.
func (s *Store) Set(key, value string) error {
	// Use REPLACE INTO to handle both insert and update cases
	_, err := s.db.Exec(`REPLACE INTO session (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return errors.Wrap(err, "writing session value")
	}
	return nil
}

// Delete a value.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return errors.Wrap(err, "deleting session value")
	}
	return nil
}

// Tokens returns the cached access and refresh tokens.
// ok is false when no access token has been stored.
func (s *Store) Tokens() (access, refresh string, ok bool) {
	access, err := s.Get(KeyAccessToken)
	if err != nil || access == "" {
		return "", "", false
	}
	refresh, _ = s.Get(KeyRefreshToken)
	return access, refresh, true
}

// SetTokens stores a token pair.
func (s *Store) SetTokens(access, refresh string) error {
	if err := s.Set(KeyAccessToken, access); err != nil {
		return err
	}
	return s.Set(KeyRefreshToken, refresh)
}

// ClearTokens removes any cached tokens.
func (s *Store) ClearTokens() error {
	if err := s.Delete(KeyAccessToken); err != nil {
		return err
	}
	return s.Delete(KeyRefreshToken)
}

// Language returns the persisted display language, defaulting to "en".
func (s *Store) Language() string {
	language, err := s.Get(KeyLanguage)
	if err != nil || language == "" {
		return "en"
	}
	return language
}

// SetLanguage persists the display language.
func (s *Store) SetLanguage(language string) error {
	return s.Set(KeyLanguage, language)
}
