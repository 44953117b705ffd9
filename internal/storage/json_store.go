package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/roster/internal/models"
)

const jsonFormatVersion = 1

type document struct {
	Version  int             `json:"version"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// JSONStore keeps the roster in a single JSON file. Writes go to a temporary
// file in the same directory and are renamed into place.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Snapshot{}, ErrNotFound
		}
		return models.Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	if len(data) == 0 {
		return models.Snapshot{}, ErrNotFound
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Version > jsonFormatVersion {
		return models.Snapshot{}, fmt.Errorf("%w: format version %d is newer than supported version %d", ErrMalformed, doc.Version, jsonFormatVersion)
	}

	return doc.Snapshot, nil
}

func (s *JSONStore) Save(snapshot models.Snapshot) error {
	data, err := json.MarshalIndent(document{Version: jsonFormatVersion, Snapshot: snapshot}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
