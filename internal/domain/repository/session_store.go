// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"booktrader/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session record is persisted.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the operations on the single persisted session
// record. The application layer depends on this interface, not the
// concrete implementation. Storage failures are returned as-is; the
// best-effort semantics (swallow on save/clear, treat as absent on load)
// belong to the caller.
type SessionStore interface {
	// Load reads the persisted session. Returns ErrSessionNotFound when
	// nothing is stored.
	Load(ctx context.Context) (*entity.Session, error)

	// Save persists the session, replacing any previous record.
	Save(ctx context.Context, session *entity.Session) error

	// Clear deletes the persisted session. Deleting an absent session is
	// not an error.
	Clear(ctx context.Context) error
}
