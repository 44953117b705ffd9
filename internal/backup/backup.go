package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

var (
	ErrNoDatabase    = errors.New("database does not exist")
	ErrInvalidBackup = errors.New("backup is not a roster database")
)

// BackupInfo describes one file in the backup directory
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots a SQLite roster database into <config dir>/backups and
// keeps the newest constants.MaxBackups copies.
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(true)
}

func (m *Manager) createBackup(rotate bool) (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.vacuumInto(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if rotate {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

func (m *Manager) fileName(stamp string) string {
	return constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
}

// nextBackupPath prefers minute precision and falls back to seconds and
// then a numeric suffix when names collide.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	candidates := []string{now.Format(minuteLayout), now.Format(secondLayout)}
	for i := 1; i <= 100; i++ {
		candidates = append(candidates, now.Format(secondLayout)+"-"+strconv.Itoa(i))
	}

	for _, stamp := range candidates {
		path := filepath.Join(m.backupDir, m.fileName(stamp))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) vacuumInto(destPath string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	if err := verify(src); err != nil {
		return fmt.Errorf("source database is not usable: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return err
	}
	return os.Chmod(destPath, 0600)
}

// parseStamp understands the three naming schemes of nextBackupPath.
func parseStamp(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	if ts, err := time.ParseInLocation(minuteLayout, stamp, time.Local); err == nil {
		return ts, true
	}
	if ts, err := time.ParseInLocation(secondLayout, stamp, time.Local); err == nil {
		return ts, true
	}
	if i := strings.LastIndex(stamp, "-"); i > 0 {
		if _, err := strconv.Atoi(stamp[i+1:]); err == nil {
			if ts, err := time.ParseInLocation(secondLayout, stamp[:i], time.Local); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// ListBackups returns the backups newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseStamp(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database,
// if any, is backed up first; that path is returned. The caller must close
// every open handle on the database beforehand.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return "", err
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		previous, err = m.createBackup(false)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Restored database from backup", "backup", backupPath, "previous", previous)
	return previous, nil
}

func (m *Manager) verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return nil
}

// verify checks that db is a migrated roster database.
func verify(db *sql.DB) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('schema_version', 'cells')").Scan(&count)
	if err != nil {
		return err
	}
	if count != 2 {
		return errors.New("roster tables missing")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
