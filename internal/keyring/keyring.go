// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to appear in flags, config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/roster/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmpty              = errors.New("connection string cannot be empty")
)

func GetConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return connStr, nil
	case errors.Is(err, gokeyring.ErrNotFound):
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return ErrEmpty
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gokeyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
}

// Status reports whether the keyring can be reached and holds a connection string.
func Status() (available, stored bool) {
	_, err := GetConnectionString()
	switch {
	case err == nil:
		return true, true
	case errors.Is(err, ErrNotFound):
		return true, false
	default:
		return false, false
	}
}
