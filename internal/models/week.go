package models

// WeekdayLabel is the German display name of a workday column
type WeekdayLabel string

const (
	Montag     WeekdayLabel = "Montag"
	Dienstag   WeekdayLabel = "Dienstag"
	Mittwoch   WeekdayLabel = "Mittwoch"
	Donnerstag WeekdayLabel = "Donnerstag"
	Freitag    WeekdayLabel = "Freitag"
)

// WeekdayLabels lists the workday columns in calendar order
var WeekdayLabels = [5]WeekdayLabel{Montag, Dienstag, Mittwoch, Donnerstag, Freitag}

type WeekDay struct {
	Label WeekdayLabel `json:"label"`
	Date  string       `json:"date"` // YYYY-MM-DD format
}

// Week describes one ISO week of the visible window. Weeks are built by the
// calendar package and replaced as a whole, never edited field by field.
type Week struct {
	ID      string    `json:"id"`
	ISOWeek int       `json:"kw"`
	ISOYear int       `json:"iso_year"`
	Start   string    `json:"start"` // Monday, YYYY-MM-DD format
	End     string    `json:"end"`   // Friday, YYYY-MM-DD format
	Days    []WeekDay `json:"days"`
}

// Clone returns a copy that shares no memory with w
func (w Week) Clone() Week {
	out := w
	out.Days = append([]WeekDay(nil), w.Days...)
	return out
}

// CalendarBase anchors the visible window. StartMondayISO always equals the
// date of the first day of the first week.
type CalendarBase struct {
	StartMondayISO string `json:"start_monday_iso"`
}
