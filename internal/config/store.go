package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store reads and writes the YAML config document.
type Store struct {
	path string
}

// NewStore returns a store for <dir>/config.yaml.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, ConfigFilename)}
}

// NewStoreAt returns a store for an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Dir is the directory the config file lives in.
func (s *Store) Dir() string { return filepath.Dir(s.path) }

// Load reads, defaults and clamps the config. It does not validate.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return cfg, nil
}

// LoadOrCreate loads the config, writing the default document first when none exists.
func (s *Store) LoadOrCreate() (Config, error) {
	cfg, err := s.Load()
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("No config at %s, writing defaults", s.path)
		def := DefaultConfig()
		def.ApplyDefaults()
		if werr := s.Save(def); werr != nil {
			return Config{}, werr
		}
		return def, nil
	}
	return cfg, err
}

// Save writes the config atomically (temp file + rename).
func (s *Store) Save(cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return WriteFileAtomic(s.path, data)
}

// WriteFileAtomic replaces path with data through a temp file in the same
// directory, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Parse decodes a YAML document and fills defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	ClampConfig(&cfg)
	return cfg, nil
}

// Marshal encodes the config as YAML with two-space indentation.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
