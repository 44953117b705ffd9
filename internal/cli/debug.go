package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpSnapshot *DebugDumpSnapshotCmd `cmd:"" help:"Dump the stored roster as JSON."`
	DumpWeek     *DebugDumpWeekCmd     `cmd:"" help:"Dump one week with its cells and holiday locks as JSON."`
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpSnapshotCmd struct{}

func (cmd *DebugDumpSnapshotCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return ctx.printJSON(snapshot)
}

type DebugDumpWeekCmd struct {
	Week string `arg:"" help:"Week id (kw-44-2025) or number."`
}

type weekDump struct {
	Week  models.Week          `json:"week"`
	Cells []models.Cell        `json:"cells"`
	Locks []models.HolidayLock `json:"locks"`
}

func (cmd *DebugDumpWeekCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}

	var dump weekDump
	s.View(func(r *roster.Roster) {
		if dump.Week, err = ResolveWeek(r, cmd.Week); err != nil {
			return
		}
		dump.Cells = []models.Cell{}
		for _, c := range r.Cells() {
			if c.WeekID == dump.Week.ID {
				dump.Cells = append(dump.Cells, c)
			}
		}
		dump.Locks = []models.HolidayLock{}
		for day := range dump.Week.Days {
			if lock, ok := r.Lock(dump.Week.ID, day); ok {
				dump.Locks = append(dump.Locks, lock)
			}
		}
	})
	if err != nil {
		return err
	}
	return ctx.printJSON(dump)
}
