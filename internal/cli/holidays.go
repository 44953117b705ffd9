package cli

import (
	"context"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

type HolidaysCmd struct {
	Refresh bool `help:"Fetch the holidays again before listing them."`
}

func (c *HolidaysCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	if c.Refresh {
		if err := s.RefreshHolidays(context.Background()); err != nil {
			ctx.reportToasts(s)
			return err
		}
	}

	var list []models.Holiday
	var locks map[models.LockKey]models.HolidayLock
	var settings models.Settings
	s.View(func(r *roster.Roster) {
		list = r.Holidays()
		locks = r.Locks()
		settings = r.Settings()
	})
	ctx.reportToasts(s)

	ctx.printf("Region %s, automatic marking %v\n\n", settings.Region, settings.AutoHolidayMarking)
	if len(list) == 0 {
		ctx.println("No holidays known.")
		return nil
	}

	locked := make(map[string]models.LockKey, len(locks))
	for key, l := range locks {
		locked[l.Date] = key
	}
	for _, h := range list {
		date := calendar.FormatDate(h.Date, settings.DateFormat)
		if key, ok := locked[h.Date]; ok {
			ctx.printf("  🔒 %-12s %-28s %s\n", date, h.Name, key)
			continue
		}
		ctx.printf("     %-12s %s\n", date, h.Name)
	}
	ctx.printf("\n%d locked days in the visible weeks\n", len(locks))
	return nil
}
