package store

import "github.com/planforge/planforge/models"

// SessionStore defines the interface for session persistence.
// Implementations return snapshots: mutating a returned session has no
// effect until it is passed back through Save.
type SessionStore interface {
	// Init creates a fresh, initialized session record. It fails with
	// ErrSessionExists if a record for the id is already present.
	Init(id, description string) (*models.Session, error)

	// Load reads a session record. It fails with ErrSessionNotFound if the
	// record is absent and ErrSessionCorrupted if it cannot be parsed.
	Load(id string) (*models.Session, error)

	// Save persists the session crash-safely: the previous record is never
	// left partially overwritten, even if the process dies mid-write.
	Save(session *models.Session) error

	// Reset deletes the session record outright. Resetting a session that
	// does not exist is not an error.
	Reset(id string) error

	// ListSessions returns the ids of every stored session, sorted.
	ListSessions() ([]string, error)

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
