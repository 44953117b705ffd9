package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/julianstephens/roster/internal/backup"
	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/keyring"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/notify"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/session"
	"github.com/julianstephens/roster/internal/storage"
	"github.com/julianstephens/roster/internal/storage/postgres"
	"github.com/julianstephens/roster/internal/storage/sqlite"
)

// KeyringConfig selects the connection string stored in the OS keyring.
const KeyringConfig = "keyring"

// EnvDBConnection names the environment variable holding a PostgreSQL
// connection string. Unlike --config it may carry a password.
const EnvDBConnection = "ROSTER_DB_CONNECTION"

type Context struct {
	Store    storage.Provider
	Holidays holidays.Provider
	Out      io.Writer

	session *session.Session
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// OpenStore picks the storage backend for config: a PostgreSQL URL, the
// keyword "keyring", a .json file or an SQLite database path. A connection
// string from ROSTER_DB_CONNECTION replaces the default path.
func OpenStore(config string, useEnv bool) (storage.Provider, error) {
	if env := os.Getenv(EnvDBConnection); useEnv && env != "" {
		logger.Debug("Using connection string from environment", "var", EnvDBConnection)
		return postgres.New(env), nil
	}

	switch {
	case config == KeyringConfig:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string in keyring, use 'roster keyring set' to store one")
			}
			return nil, err
		}
		return postgres.New(connStr), nil

	case postgres.IsConnString(config):
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use the OS keyring (roster keyring set), %s or a .pgpass file instead", err, EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil

	case strings.EqualFold(filepath.Ext(config), ".json"):
		return storage.NewJSONStore(ExpandPath(config)), nil

	default:
		return sqlite.NewStore(ExpandPath(config)), nil
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Session loads the roster on first use.
func (c *Context) Session(ctx context.Context) (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	s := session.New(session.Options{Store: c.Store, Holidays: c.Holidays})
	if err := s.Initialize(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	c.session = s
	return s, nil
}

func (c *Context) open() (*session.Session, error) {
	return c.Session(context.Background())
}

// Close flushes the session, if one was opened, and closes the store.
func (c *Context) Close() error {
	if c.session != nil {
		err := c.session.Close()
		c.session = nil
		return err
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// reportToasts prints and clears the notifications raised by the last operation.
func (c *Context) reportToasts(s *session.Session) {
	for _, t := range s.Toasts().Drain() {
		c.printf("%s %s\n", toastSymbol(t.Level), t.Message)
	}
}

func toastSymbol(level notify.Level) string {
	switch level {
	case notify.LevelSuccess:
		return "✓"
	case notify.LevelWarning:
		return "⚠"
	case notify.LevelError:
		return "❌"
	default:
		return "ℹ"
	}
}

// BackupManager returns a backup manager for SQLite stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var dayNames = map[string]int{
	"mo": 0, "mon": 0, "montag": 0, "monday": 0,
	"di": 1, "tue": 1, "dienstag": 1, "tuesday": 1,
	"mi": 2, "wed": 2, "mittwoch": 2, "wednesday": 2,
	"do": 3, "thu": 3, "donnerstag": 3, "thursday": 3,
	"fr": 4, "fri": 4, "freitag": 4, "friday": 4,
}

// ParseDay accepts a weekday name or a day index 0-4.
func ParseDay(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if d, ok := dayNames[s]; ok {
		return d, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d >= len(models.WeekdayLabels) {
		return 0, fmt.Errorf("invalid weekday: %s", s)
	}
	return d, nil
}

// ResolveWeek accepts a week id (kw-44-2025), "KW 44" or a bare week number.
func ResolveWeek(r *roster.Roster, ref string) (models.Week, error) {
	if w, ok := r.Week(ref); ok {
		return w, nil
	}
	digits := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(ref)), "KW"))
	n, err := strconv.Atoi(digits)
	if err == nil {
		if w, ok := r.WeekByNumber(n); ok {
			return w, nil
		}
	}
	return models.Week{}, fmt.Errorf("week not in roster: %s", ref)
}

// ResolveEmployee accepts an employee id or exact name.
func ResolveEmployee(r *roster.Roster, ref string) (models.Employee, error) {
	if e, ok := r.FindEmployee(ref); ok {
		return e, nil
	}
	return models.Employee{}, fmt.Errorf("%w: %s", roster.ErrEmployeeNotFound, ref)
}

// ParseValue maps user input onto an assignment. Blank input clears.
func ParseValue(s string) (models.Assignment, error) {
	if strings.TrimSpace(s) == "" {
		return models.AssignmentNone, nil
	}
	v := models.ParseAssignment(s)
	if v.IsEmpty() {
		return "", fmt.Errorf("unknown assignment %q (valid: %s)", s, assignmentList())
	}
	return v, nil
}

func assignmentList() string {
	names := make([]string, len(models.Assignments))
	for i, a := range models.Assignments {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// resolveAddress looks up employee and week references under the session lock.
func resolveAddress(s *session.Session, employee, week, day string) (models.Address, error) {
	dayIndex, err := ParseDay(day)
	if err != nil {
		return models.Address{}, err
	}
	var addr models.Address
	s.View(func(r *roster.Roster) {
		var e models.Employee
		var w models.Week
		if e, err = ResolveEmployee(r, employee); err != nil {
			return
		}
		if w, err = ResolveWeek(r, week); err != nil {
			return
		}
		addr = models.Address{EmployeeID: e.ID, WeekID: w.ID, DayIndex: dayIndex}
	})
	return addr, err
}

func weekTitle(w models.Week, format string) string {
	return calendar.WeekLabel(w) + " (" + calendar.FormatWeekRange(w, format) + ")"
}
