package cli

import (
	"errors"
	"fmt"
)

type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return errors.New("migrate only applies to SQLite and PostgreSQL storage")
	}

	count, err := m.Migrate(func(msg string) {
		ctx.println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.println("No migrations to apply. Database is up to date.")
	} else {
		ctx.printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
