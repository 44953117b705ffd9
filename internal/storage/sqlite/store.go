package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/migration"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/storage"
	"github.com/julianstephens/roster/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// modernc.org/sqlite serialises writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

// Load returns storage.ErrNotFound when the database file does not exist yet.
func (s *Store) Load() (models.Snapshot, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return models.Snapshot{}, storage.ErrNotFound
		}
		if err := s.open(); err != nil {
			return models.Snapshot{}, err
		}
	}

	if err := s.validateSchemaVersion(); err != nil {
		return models.Snapshot{}, err
	}

	return storage.LoadSnapshot(s.db, storage.DialectSQLite)
}

func (s *Store) Save(snapshot models.Snapshot) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	return storage.SaveSnapshot(s.db, storage.DialectSQLite, snapshot)
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "store", s.path)
	})
	return err
}

// Migrate applies pending migrations and reports how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.open(); err != nil {
		return 0, err
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	if current == 0 {
		// The file exists but was never initialised.
		return storage.ErrNotFound
	}
	if current < latest {
		if _, err := runner.ApplyMigrations(nil); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	}
	return runner.ValidateVersion()
}

// SchemaVersion reports the applied and the newest embedded schema version.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if err := s.open(); err != nil {
		return 0, 0, err
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns nil until Init or Load succeeded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
