package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store reads and writes the JSON documents kept in the server's state
// directory. Readers pass in a value pre-filled with its default so that
// keys missing from the persisted document keep their defaults and unknown
// keys are ignored.
type Store struct {
	dir string
}

// New creates the state directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Load decodes the named document into v. The error is non-nil when the
// file is missing or malformed; callers fall back to their default value.
func (s *Store) Load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Save writes v as the named document. Writes are best-effort: the
// in-memory state stays authoritative, so a failed write is logged at warn
// and otherwise swallowed.
func (s *Store) Save(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("document", name).Msg("failed to encode state document")
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		log.Warn().Err(err).Str("document", name).Msg("state write failed")
	}
}
