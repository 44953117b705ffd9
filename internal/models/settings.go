package models

import "github.com/julianstephens/roster/internal/constants"

type Settings struct {
	HighContrast       bool    `json:"high_contrast"`
	FontScale          float64 `json:"font_scale"`
	DateFormat         string  `json:"date_format"`
	AutoHolidayMarking bool    `json:"auto_holiday_marking"`
	Region             string  `json:"region"`
}

// DefaultSettings returns the settings of a freshly seeded roster
func DefaultSettings() Settings {
	return Settings{
		HighContrast:       constants.DefaultHighContrast,
		FontScale:          constants.DefaultFontScale,
		DateFormat:         constants.DefaultDateFormat,
		AutoHolidayMarking: constants.DefaultAutoHolidayMarking,
		Region:             constants.DefaultRegion,
	}
}
