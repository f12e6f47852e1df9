package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"storefront_client/internal/domain"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserData     = "user_data"
)

// Store persists the session across runs: access/refresh tokens plus the
// cached user profile as JSON, keyed like the browser localStorage entries it
// replaces. All three keys are written and cleared together.
type Store struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func OpenStore(dsn string, logger *logrus.Logger) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store at %s: %w", dsn, err)
	}
	// A single connection keeps ":memory:" databases coherent and is plenty
	// for a three-key store.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping session store at %s: %w", dsn, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session(
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to ensure session schema: %w", err)
	}
	return &Store{db: db, log: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the session atomically: tokens and the serialized user in one
// transaction.
func (s *Store) Save(user *domain.User, accessToken, refreshToken string) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user data: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin session save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range [][2]string{
		{keyAccessToken, accessToken},
		{keyRefreshToken, refreshToken},
		{keyUserData, string(userJSON)},
	} {
		if _, err := tx.Exec(`
			INSERT INTO session(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to persist session key %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// Load restores a persisted session into sess. A missing or partial session
// restores nothing; a stored user blob that fails to parse clears the whole
// store, matching the treat-as-signed-out recovery on startup.
func (s *Store) Load(sess *Session) error {
	access, err := s.get(keyAccessToken)
	if err != nil {
		return err
	}
	userRaw, err := s.get(keyUserData)
	if err != nil {
		return err
	}
	if access == "" || userRaw == "" {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.log.Warnf("Session store: stored user data is unreadable, clearing session: %v", err)
		return s.Clear()
	}

	refresh, err := s.get(keyRefreshToken)
	if err != nil {
		return err
	}

	sess.Set(&user, access, refresh)
	s.log.Infof("Session store: restored session for user %s (role %s)", user.Username, user.Role)
	return nil
}

// Clear removes every session key in one transaction.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key IN (?, ?, ?)`,
		keyAccessToken, keyRefreshToken, keyUserData)
	if err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM session WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, nil
}
