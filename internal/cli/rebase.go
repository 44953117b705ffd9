package cli

import (
	"context"
	"errors"

	"github.com/julianstephens/roster/internal/calendar"
)

type RebaseCmd struct {
	Start string `arg:"" help:"New first week: a date (YYYY-MM-DD) or ISO week (2026-W02)."`
	Clear bool   `help:"Drop every assignment." xor:"policy"`
	Shift bool   `help:"Keep assignments at their week position instead of their date." xor:"policy"`
	Yes   bool   `help:"Do not ask for confirmation." short:"y"`
}

func (c *RebaseCmd) Run(ctx *Context) error {
	start, err := calendar.ParseStartDate(c.Start)
	if err != nil {
		return err
	}

	policy := policyByDate
	switch {
	case c.Clear:
		policy = policyClear
	case c.Shift:
		policy = policyShift
	case !c.Yes:
		var ok bool
		if policy, ok, err = askRebasePolicy(); err != nil {
			return err
		}
		if !ok {
			ctx.println("Cancelled.")
			return nil
		}
	}
	if (c.Clear || c.Shift) && !c.Yes {
		ok, err := confirm("Kalenderbasis ändern? Der Verlauf wird zurückgesetzt.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Cancelled.")
			return nil
		}
	}

	s, err := ctx.open()
	if err != nil {
		return err
	}
	base := s.Rebase(context.Background(), start, policy.options())
	if base.StartMondayISO == "" {
		return errors.New("rebase produced no weeks")
	}
	ctx.reportToasts(s)
	ctx.printf("✓ Roster now starts on %s (%s)\n", base.StartMondayISO, policy)
	return nil
}
