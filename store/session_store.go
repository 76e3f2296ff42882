package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/planforge/planforge/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"

	// maxSessionIDLength bounds ids before any path is built from them.
	maxSessionIDLength = 100
)

// Sentinel errors surfaced by the session store.
var (
	ErrSessionExists    = errors.New("session already exists")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCorrupted = errors.New("session record is corrupted")
	ErrInvalidSessionID = errors.New("invalid session id")
)

// ValidateSessionID rejects ids that are empty, overlong, or could escape
// the session directory once joined into a path.
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidSessionID)
	}
	if len(id) > maxSessionIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidSessionID, maxSessionIDLength)
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: id must not contain path separators or '..'", ErrInvalidSessionID)
	}
	return nil
}

// FileSessionStore implements SessionStore with one file per session under a
// base directory. It supports JSON, YAML, and TOML serializations and guards
// each session file with a file-level lock.
type FileSessionStore struct {
	baseDir string
	format  string
}

// NewFileSessionStore creates a store rooted at baseDir, creating the
// directory if needed. Format selects the on-disk serialization and defaults
// to JSON when empty.
func NewFileSessionStore(baseDir, format string) (*FileSessionStore, error) {
	if format == "" {
		format = defaultDataFormat
	}
	formatLower := strings.ToLower(format)
	switch formatLower {
	case formatJSON, formatYAML, formatTOML:
	default:
		return nil, fmt.Errorf("unsupported session format: %s. Supported formats are json, yaml, toml", format)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory %s: %w", baseDir, err)
	}
	return &FileSessionStore{baseDir: baseDir, format: formatLower}, nil
}

// sessionPath builds the on-disk path for a validated session id.
func (s *FileSessionStore) sessionPath(id string) string {
	return filepath.Join(s.baseDir, id+"."+s.format)
}

// lockFor returns the flock guarding one session file.
func (s *FileSessionStore) lockFor(id string) *flock.Flock {
	return flock.New(filepath.Join(s.baseDir, id+".lock"))
}

// Init creates a fresh INITIALIZED session record for the id.
func (s *FileSessionStore) Init(id, description string) (*models.Session, error) {
	if err := ValidateSessionID(id); err != nil {
		return nil, err
	}
	flk := s.lockFor(id)
	if err := flk.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock session %s for init: %w", id, err)
	}
	defer func() { _ = flk.Unlock() }()

	path := s.sessionPath(id)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionExists, id)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check session file %s: %w", path, err)
	}

	session := models.NewSession(id, description)
	if err := s.writeSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Load reads and parses a session record, returning a snapshot.
func (s *FileSessionStore) Load(id string) (*models.Session, error) {
	if err := ValidateSessionID(id); err != nil {
		return nil, err
	}
	flk := s.lockFor(id)
	if err := flk.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock session %s for load: %w", id, err)
	}
	defer func() { _ = flk.Unlock() }()

	return s.readSession(id)
}

// Save persists the session via a temporary file followed by an atomic
// rename. On any failure the temporary file is removed and the previously
// persisted record is untouched.
func (s *FileSessionStore) Save(session *models.Session) error {
	if session == nil {
		return fmt.Errorf("cannot save nil session")
	}
	if err := ValidateSessionID(session.ID); err != nil {
		return err
	}
	flk := s.lockFor(session.ID)
	if err := flk.Lock(); err != nil {
		return fmt.Errorf("could not lock session %s for save: %w", session.ID, err)
	}
	defer func() { _ = flk.Unlock() }()

	return s.writeSession(session)
}

// Reset deletes the session record. A missing record is reported as a no-op.
func (s *FileSessionStore) Reset(id string) error {
	if err := ValidateSessionID(id); err != nil {
		return err
	}
	flk := s.lockFor(id)
	if err := flk.Lock(); err != nil {
		return fmt.Errorf("could not lock session %s for reset: %w", id, err)
	}
	defer func() { _ = flk.Unlock() }()

	if err := os.Remove(s.sessionPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file for %s: %w", id, err)
	}
	return nil
}

// ListSessions returns every stored session id, sorted by filename.
func (s *FileSessionStore) ListSessions() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory %s: %w", s.baseDir, err)
	}
	suffix := "." + s.format
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, suffix))
	}
	return ids, nil
}

// Close is a no-op for the file store; locks are scoped per operation.
func (s *FileSessionStore) Close() error {
	return nil
}

// readSession loads a record from disk. Callers hold the session lock.
func (s *FileSessionStore) readSession(id string) (*models.Session, error) {
	path := s.sessionPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	var session models.Session
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &session)
	case formatYAML:
		err = yaml.Unmarshal(data, &session)
	case formatTOML:
		err = toml.Unmarshal(data, &session)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSessionCorrupted, path, err)
	}
	if session.Tasks == nil {
		session.Tasks = map[string]models.Task{}
	}
	if session.WorkItems == nil {
		session.WorkItems = map[string]models.WorkItem{}
	}
	return &session, nil
}

// writeSession marshals and atomically replaces the record on disk.
// Callers hold the session lock.
func (s *FileSessionStore) writeSession(session *models.Session) error {
	var marshaled []byte
	var err error
	switch s.format {
	case formatJSON:
		marshaled, err = json.MarshalIndent(session, "", "  ")
	case formatYAML:
		marshaled, err = yaml.Marshal(session)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(session); encodeErr == nil {
			marshaled = buf.Bytes()
		} else {
			err = encodeErr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to marshal session %s to %s: %w", session.ID, s.format, err)
	}

	path := s.sessionPath(session.ID)
	tempPath := path + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()

	if err := os.WriteFile(tempPath, marshaled, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary session file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary session file %s to %s: %w", tempPath, path, err)
	}
	return nil
}
