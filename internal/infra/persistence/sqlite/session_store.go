// Package sqlite implements the persisted session store on a local SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"booktrader/config"
	"booktrader/internal/domain/entity"
	"booktrader/internal/domain/repository"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// sessionKey is the fixed key of the single persisted session row. Its
// presence or absence is the sole persisted state of this layer.
const sessionKey = "user"

// SessionStore provides load/save/clear over the single session record.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens (or creates) the SQLite database at the configured
// path and applies the schema.
func NewSessionStore(cfg *config.Config) (*SessionStore, error) {
	dbPath := cfg.Store.Path

	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create store dir")
		}
	}

	// Enable busy_timeout and foreign keys.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if err := applySchema(db); err != nil {
		db.Close()

		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func applySchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
        key TEXT PRIMARY KEY,
        user_id INTEGER NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL DEFAULT '',
        location TEXT NOT NULL DEFAULT '',
        auth_token TEXT NOT NULL
    );`)
	if err != nil {
		return errors.Wrap(err, "apply schema")
	}

	return nil
}

// Load reads the persisted session. Returns repository.ErrSessionNotFound
// when nothing is stored.
func (s *SessionStore) Load(ctx context.Context) (*entity.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, location, auth_token FROM sessions WHERE key = ?;`,
		sessionKey,
	)

	var session entity.Session
	err := row.Scan(&session.ID, &session.Name, &session.Email, &session.Location, &session.AuthToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}

	return &session, nil
}

// Save persists the session, replacing any previous record.
func (s *SessionStore) Save(ctx context.Context, session *entity.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (key, user_id, name, email, location, auth_token)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET
            user_id = excluded.user_id,
            name = excluded.name,
            email = excluded.email,
            location = excluded.location,
            auth_token = excluded.auth_token;`,
		sessionKey, session.ID, session.Name, session.Email, session.Location, session.AuthToken,
	)
	if err != nil {
		return errors.Wrap(err, "save session")
	}

	return nil
}

// Clear deletes the persisted session. Deleting an absent session is not
// an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?;`, sessionKey)
	if err != nil {
		return errors.Wrap(err, "clear session")
	}

	return nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
