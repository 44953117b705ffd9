package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/roster/internal/logger"
)

// Format renders err for terminal output with the "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a format string
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
