package storage

import (
	"errors"

	"github.com/julianstephens/roster/internal/models"
)

var (
	// ErrNotFound is returned by Load when the backend holds no roster yet
	ErrNotFound = errors.New("no roster stored")
	// ErrMalformed is returned by Load when the stored payload cannot be decoded
	ErrMalformed = errors.New("stored roster is malformed")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists complete roster snapshots. Save replaces whatever was
// stored before; there are no partial writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() (models.Snapshot, error)
	Save(models.Snapshot) error
	Close() error

	// Utils
	GetConfigPath() string
}
