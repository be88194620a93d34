// Package state persists the orchestrator's cross-invocation snapshot.
//
// The snapshot is a single record, overwritten on every successful apply and
// read back at the start of every stability-sensitive operation. At most one
// orchestrator process is assumed to touch a given state directory at a
// time; there is no file locking, and a multi-writer deployment would need
// to add it.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// stateFile is the record's file name within the state directory.
const stateFile = "state.json"

// Record is the persisted orchestrator snapshot.
type Record struct {
	SpecHash  string    `json:"spec_hash"`
	Backend   string    `json:"backend"`
	LastGoal  string    `json:"last_goal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store reads and writes the snapshot under a state directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateFile)
}

// Load returns the persisted record, or (nil, nil) when no operation has
// been recorded yet.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", s.Path(), err)
	}
	return &r, nil
}

// Save overwrites the snapshot atomically (temp file plus rename) so a crash
// mid-write never leaves a truncated record behind.
func (s *Store) Save(r Record) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}
