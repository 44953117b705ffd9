package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/migration"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/storage"
	"github.com/julianstephens/roster/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	connStr string
	db      *sql.DB
}

// New returns a store that keeps its tables in the roster schema.
func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

// IsConnString reports whether config names a PostgreSQL URL rather than a file.
func IsConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

func isURL(connStr string) bool {
	return IsConnString(connStr)
}

// params returns the lower-cased parameter names of a URL or key=value DSN.
func params(connStr string) map[string]string {
	out := map[string]string{}
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return out
		}
		for key, values := range u.Query() {
			if len(values) > 0 {
				out[strings.ToLower(key)] = values[0]
			}
		}
		return out
	}
	for _, field := range strings.Fields(connStr) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) == 2 {
			out[strings.ToLower(strings.TrimSpace(kv[0]))] = kv[1]
		}
	}
	return out
}

func hasParam(connStr, key string) bool {
	_, ok := params(connStr)[key]
	return ok
}

func withSearchPath(connStr string) string {
	if hasParam(connStr, "search_path") {
		return connStr
	}
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// ValidateConnString accepts URL and DSN connection strings that carry no
// password. Credentials belong in the environment, .pgpass or the OS keyring.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if hasParam(connStr, "password") {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	if _, err := s.Migrate(func(msg string) { logger.Debug(msg, "store", "postgresql") }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() (models.Snapshot, error) {
	if err := s.open(); err != nil {
		return models.Snapshot{}, err
	}

	runner, err := s.runner()
	if err != nil {
		return models.Snapshot{}, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return models.Snapshot{}, err
	}
	if current == 0 {
		return models.Snapshot{}, storage.ErrNotFound
	}
	if err := runner.ValidateVersion(); err != nil {
		return models.Snapshot{}, err
	}

	return storage.LoadSnapshot(s.db, storage.DialectPostgres)
}

func (s *Store) Save(snapshot models.Snapshot) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	return storage.SaveSnapshot(s.db, storage.DialectPostgres, snapshot)
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres), nil
}

// Migrate applies pending migrations and reports how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.open(); err != nil {
		return 0, err
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return 0, fmt.Errorf("failed to create schema: %w", err)
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
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

// GetConfigPath never exposes the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
