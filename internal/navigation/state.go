package navigation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// PersistedState is the durable navigation record, kept apart from the config file.
type PersistedState struct {
	CurrentProfileIndex int    `toml:"current_profile_index"`
	CurrentPageIndex    int    `toml:"current_page_index"`
	LastUpdated         string `toml:"last_updated"`
}

// Updated parses LastUpdated.
func (s PersistedState) Updated() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s.LastUpdated)
	return t, err == nil
}

// StateStore persists PersistedState. Load returns the zero state with a nil error
// when nothing was saved yet.
type StateStore interface {
	Load() (PersistedState, error)
	Save(PersistedState) error
}

// FileStore keeps the record as TOML.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (PersistedState, error) {
	var st PersistedState
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return PersistedState{}, nil
	}
	if err != nil {
		return PersistedState{}, err
	}
	if _, err := toml.Decode(string(data), &st); err != nil {
		return PersistedState{}, fmt.Errorf("%w: %s: %v", ErrPersistCorrupted, s.path, err)
	}
	if st.LastUpdated != "" {
		if _, ok := st.Updated(); !ok {
			return PersistedState{}, fmt.Errorf("%w: %s: bad last_updated %q", ErrPersistCorrupted, s.path, st.LastUpdated)
		}
	}
	return st, nil
}

// Save replaces the record atomically; a failed write leaves the previous one intact.
func (s *FileStore) Save(st PersistedState) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return err
	}
	return config.WriteFileAtomic(s.path, buf.Bytes())
}

// Delete removes the record; a missing file is not an error.
func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
