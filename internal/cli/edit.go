package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

type SetCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Week     string `arg:"" help:"Week id (kw-44-2025) or number."`
	Day      string `arg:"" help:"Weekday (Mo-Fr) or index 0-4."`
	Value    string `arg:"" help:"Assignment, e.g. Früh, Spät, Abwesend."`
}

func (c *SetCmd) Run(ctx *Context) error {
	value, err := ParseValue(c.Value)
	if err != nil {
		return err
	}
	s, err := ctx.open()
	if err != nil {
		return err
	}
	addr, err := resolveAddress(s, c.Employee, c.Week, c.Day)
	if err != nil {
		return err
	}

	ok := s.SetCell(addr, value)
	ctx.reportToasts(s)
	if !ok {
		return fmt.Errorf("cell %s was not changed", addr)
	}
	ctx.printf("✓ %s = %s\n", addr, displayValue(value))
	return nil
}

type ClearCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Week     string `arg:"" help:"Week id (kw-44-2025) or number."`
	Day      string `arg:"" help:"Weekday (Mo-Fr) or index 0-4."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	addr, err := resolveAddress(s, c.Employee, c.Week, c.Day)
	if err != nil {
		return err
	}

	ok := s.ClearCell(addr)
	ctx.reportToasts(s)
	if !ok {
		return fmt.Errorf("cell %s was not cleared", addr)
	}
	ctx.printf("✓ %s cleared\n", addr)
	return nil
}

type FillCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Week     string `arg:"" help:"Week id (kw-44-2025) or number."`
	Value    string `arg:"" help:"Assignment for every weekday."`
}

func (c *FillCmd) Run(ctx *Context) error {
	value, err := ParseValue(c.Value)
	if err != nil {
		return err
	}
	if value.IsEmpty() {
		return errors.New("fill needs an assignment")
	}
	s, err := ctx.open()
	if err != nil {
		return err
	}

	var e models.Employee
	var w models.Week
	s.View(func(r *roster.Roster) {
		if e, err = ResolveEmployee(r, c.Employee); err != nil {
			return
		}
		w, err = ResolveWeek(r, c.Week)
	})
	if err != nil {
		return err
	}

	res := s.FillWeek(e.ID, w.ID, value)
	ctx.reportToasts(s)
	ctx.printf("✓ %s %s: %d set, %d holidays kept\n", e.Name, calendar.WeekLabel(w), res.Applied, res.Skipped)
	return nil
}

type FillDayCmd struct {
	Week  string `arg:"" help:"Week id (kw-44-2025) or number."`
	Day   string `arg:"" help:"Weekday (Mo-Fr) or index 0-4."`
	Value string `arg:"" help:"Assignment for every employee."`
}

func (c *FillDayCmd) Run(ctx *Context) error {
	value, err := ParseValue(c.Value)
	if err != nil {
		return err
	}
	if value.IsEmpty() {
		return errors.New("fill needs an assignment")
	}
	day, err := ParseDay(c.Day)
	if err != nil {
		return err
	}
	s, err := ctx.open()
	if err != nil {
		return err
	}

	var w models.Week
	s.View(func(r *roster.Roster) {
		w, err = ResolveWeek(r, c.Week)
	})
	if err != nil {
		return err
	}

	res := s.FillColumn(w.ID, day, value)
	ctx.reportToasts(s)
	ctx.printf("✓ %s %s: %d set, %d skipped\n", calendar.WeekLabel(w), models.WeekdayLabels[day], res.Applied, res.Skipped)
	return nil
}

func displayValue(v models.Assignment) string {
	if v.IsEmpty() {
		return "—"
	}
	return string(v)
}
