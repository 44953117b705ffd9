package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Discard the stored roster and start again from the seed."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	s, err := ctx.open()
	if err != nil {
		return err
	}

	var employees, weeks int
	s.View(func(r *roster.Roster) {
		employees = len(r.Employees())
		weeks = len(r.Weeks())
	})
	ctx.printf("Initialized roster storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.printf("%d employees, %d weeks\n", employees, weeks)
	return nil
}

func (c *InitCmd) reset(ctx *Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		if err := ctx.Store.Save(roster.Seed()); err != nil {
			return fmt.Errorf("failed to reset roster: %w", err)
		}
		ctx.println("Reset stored roster to the seed")
		return nil
	}

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to access existing roster: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing roster: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing roster: %w", err)
	}
	ctx.printf("Deleted existing roster at: %s\n", path)
	return nil
}
