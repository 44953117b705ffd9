package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := ctx.Session(appCtx)
	if err != nil {
		return err
	}

	// Back up once the roster is known to load.
	ctx.PerformAutomaticBackup()

	go func() {
		if err := s.WatchHolidays(appCtx); err != nil && appCtx.Err() == nil {
			logger.Warn("Holiday watcher stopped", "error", err)
		}
	}()

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
