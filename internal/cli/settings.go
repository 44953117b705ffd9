package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

type SettingsCmd struct {
	Get SettingsGetCmd `cmd:"" help:"Show the current settings." default:"1"`
	Set SettingsSetCmd `cmd:"" help:"Change settings."`
}

type SettingsGetCmd struct{}

func (c *SettingsGetCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var settings models.Settings
	s.View(func(r *roster.Roster) {
		settings = r.Settings()
	})

	ctx.println("Current Settings:")
	ctx.printf("  High Contrast:        %v\n", settings.HighContrast)
	ctx.printf("  Font Scale:           %.2f\n", settings.FontScale)
	ctx.printf("  Date Format:          %s\n", settings.DateFormat)
	ctx.printf("  Auto Holiday Marking: %v\n", settings.AutoHolidayMarking)
	ctx.printf("  Region:               %s\n", settings.Region)
	return nil
}

type SettingsSetCmd struct {
	HighContrast       *bool    `help:"Use the high contrast palette."`
	FontScale          *float64 `help:"Font scale factor (0.5-2.0)."`
	DateFormat         *string  `help:"Date display format: D.M.YYYY or DD.MM.YYYY."`
	AutoHolidayMarking *bool    `help:"Lock public holidays automatically."`
	Region             *string  `help:"Holiday region (DE or a German state code such as NI)."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var settings models.Settings
	s.View(func(r *roster.Roster) {
		settings = r.Settings()
	})

	updated := false
	if c.HighContrast != nil {
		settings.HighContrast = *c.HighContrast
		updated = true
	}
	if c.FontScale != nil {
		if *c.FontScale < 0.5 || *c.FontScale > 2.0 {
			return fmt.Errorf("font scale must be between 0.5 and 2.0, got %.2f", *c.FontScale)
		}
		settings.FontScale = *c.FontScale
		updated = true
	}
	if c.DateFormat != nil {
		if *c.DateFormat != constants.DateFormatShort && *c.DateFormat != constants.DateFormatPadded {
			return fmt.Errorf("date format must be %s or %s, got %q", constants.DateFormatShort, constants.DateFormatPadded, *c.DateFormat)
		}
		settings.DateFormat = *c.DateFormat
		updated = true
	}
	if c.AutoHolidayMarking != nil {
		settings.AutoHolidayMarking = *c.AutoHolidayMarking
		updated = true
	}
	if c.Region != nil {
		region := strings.ToUpper(strings.TrimSpace(*c.Region))
		if !holidays.IsRegion(region) {
			return fmt.Errorf("%w: %s (valid: %s)", holidays.ErrUnknownRegion, *c.Region, strings.Join(holidays.Regions, ", "))
		}
		settings.Region = region
		updated = true
	}

	if !updated {
		ctx.println("No changes specified. Use 'roster settings get' to view settings or flags to update them.")
		return nil
	}

	s.UpdateSettings(context.Background(), settings)
	ctx.reportToasts(s)
	ctx.println("Settings updated successfully.")
	return nil
}
