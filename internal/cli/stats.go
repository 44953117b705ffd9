package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/stats"
)

type StatsCmd struct {
	Week string `help:"Only count this week (id or number)." short:"w"`
	JSON bool   `help:"Print the per-week counts as JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}

	var entries []stats.EmployeeWeek
	var employees []models.Employee
	s.View(func(r *roster.Roster) {
		weeks := r.Weeks()
		if c.Week != "" {
			var w models.Week
			if w, err = ResolveWeek(r, c.Week); err != nil {
				return
			}
			weeks = []models.Week{w}
		}
		employees = r.Employees()
		entries = stats.BuildWeekStats(weeks, employees, r.FindCellValue)
	})
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.println(string(data))
		return nil
	}

	totals := stats.ByEmployee(entries)
	ctx.printf("%-24s %5s %5s %9s %9s %6s\n", "Name", "Früh", "Spät", "Abwesend", "Feiertag", "Sonder")
	for _, e := range employees {
		t := totals[e.ID]
		ctx.printf("%-24s %5d %5d %9d %9d %6d\n", e.Name, t.Early, t.Late, t.Absent, t.Holiday, t.Special)
	}
	return nil
}
