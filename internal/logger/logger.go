// Package logger writes roster's diagnostics to a rotating file under the
// config directory. Every helper is a no-op until Init has been called, so
// library code and tests can log unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/roster/internal/constants"
)

var (
	// Logger is the process-wide logger; nil until Init is called
	Logger *log.Logger

	rotator *lumberjack.Logger
)

type Config struct {
	// Debug lowers the level to debug, reports callers and mirrors output to stderr
	Debug     bool
	ConfigDir string
}

// Path returns the log file location for a config directory
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LogDirName, constants.AppName+".log")
}

func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	rotator = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	Logger = newLogger(rotator, cfg.Debug)
	return nil
}

func newLogger(file io.Writer, debug bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
		Prefix:          constants.AppName,
	}
	if !debug {
		return log.NewWithOptions(file, opts)
	}
	opts.Level = log.DebugLevel
	opts.ReportCaller = true
	return log.NewWithOptions(io.MultiWriter(os.Stderr, file), opts)
}

// Component returns a logger prefixed with name, e.g. "roster/session".
// Before Init it returns a logger that discards everything.
func Component(name string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.WithPrefix(constants.AppName + "/" + name)
}

// Close releases the log file. Logging afterwards is a no-op.
func Close() error {
	Logger = nil
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
