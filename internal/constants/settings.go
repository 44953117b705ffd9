package constants

const (
	// Settings keys as stored by the SQL backends
	SettingHighContrast       = "high_contrast"
	SettingFontScale          = "font_scale"
	SettingDateFormat         = "date_format"
	SettingAutoHolidayMarking = "auto_holiday_marking"
	SettingRegion             = "region"

	// Date display formats
	DateFormatShort  = "D.M.YYYY"
	DateFormatPadded = "DD.MM.YYYY"

	// Default Settings Values
	DefaultHighContrast       = false
	DefaultFontScale          = 1.0
	DefaultDateFormat         = DateFormatShort
	DefaultAutoHolidayMarking = true
	DefaultRegion             = "NI"
)
