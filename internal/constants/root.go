package constants

import "time"

const (
	AppName            = "roster"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/roster/roster.db"
	Version            = "v0.3.0"

	// DateFormat is the ISO date format used for every persisted date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultWeekCount is the size of the visible week window for a fresh roster
	DefaultWeekCount = 6

	// InitialStartMonday is the first Monday of the seeded roster (KW 42/2025)
	InitialStartMonday = "2025-10-13"

	// WorkdaysPerWeek is the number of addressable days per week (Monday to Friday)
	WorkdaysPerWeek = 5

	// HistoryLimit bounds both the undo and the redo buffer
	HistoryLimit = 50

	// PersistDebounce is the delay between the last mutation and the snapshot write
	PersistDebounce = 200 * time.Millisecond

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "roster-"
	BackupFileSuffix = ".db"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Export file names
	DefaultCSVName  = "dienstplan.csv"
	DefaultXLSXName = "dienstplan.xlsx"

	// Holiday provider constants
	HolidaySourceBuiltin = "builtin"
	HolidaySourceHTTP    = "http"
	HolidayAPIBaseURL    = "https://feiertage-api.de/api/"
	HolidayAPITimeout    = 10 * time.Second
	HolidayAPIRatePerSec = 2
)
