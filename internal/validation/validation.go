package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMultipleAssignment ConflictType = "multiple_assignment"
	ConflictDuplicateEmployee  ConflictType = "duplicate_employee"
	ConflictDuplicateWeek      ConflictType = "duplicate_week"
	ConflictUnknownEmployee    ConflictType = "unknown_employee"
	ConflictUnknownWeek        ConflictType = "unknown_week"
	ConflictInvalidDayIndex    ConflictType = "invalid_day_index"
	ConflictInvalidAssignment  ConflictType = "invalid_assignment"
	ConflictCalendarBase       ConflictType = "calendar_base_mismatch"
	ConflictInvalidSettings    ConflictType = "invalid_settings"
)

// Conflict is one problem found in a cell list or snapshot
type Conflict struct {
	Type       ConflictType `json:"type"`
	EmployeeID string       `json:"employee_id,omitempty"`
	WeekID     string       `json:"week_id,omitempty"`
	DayIndex   int          `json:"day_index"`
	Message    string       `json:"message"`
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "Keine Konflikte gefunden."
	}

	var b strings.Builder
	b.WriteString("Konflikte gefunden:\n")
	for _, c := range vr.Conflicts {
		if c.EmployeeID != "" || c.WeekID != "" {
			fmt.Fprintf(&b, "- %s (%s, %s, Tag %d)\n", c.Message, c.EmployeeID, c.WeekID, c.DayIndex)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", c.Message)
	}
	return b.String()
}

// DetectConflicts scans an externally supplied cell list for addresses that
// carry two different non-empty values. Each later occurrence is compared to
// the first occurrence at its address.
func DetectConflicts(cells []models.Cell) []Conflict {
	conflicts := []Conflict{}
	first := make(map[models.Address]models.Assignment, len(cells))
	for _, c := range cells {
		addr := c.Address()
		existing, seen := first[addr]
		if !seen {
			first[addr] = c.Value
			continue
		}
		if existing.IsEmpty() || c.Value.IsEmpty() || existing == c.Value {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:       ConflictMultipleAssignment,
			EmployeeID: c.EmployeeID,
			WeekID:     c.WeekID,
			DayIndex:   c.DayIndex,
			Message:    constants.MsgMultipleAssigned,
		})
	}
	return conflicts
}

// ValidateSnapshot checks a persisted snapshot for structural problems
func ValidateSnapshot(s models.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(c Conflict) { result.Conflicts = append(result.Conflicts, c) }

	employees := make(map[string]bool, len(s.Employees))
	for _, e := range s.Employees {
		if employees[e.ID] {
			add(Conflict{Type: ConflictDuplicateEmployee, EmployeeID: e.ID,
				Message: fmt.Sprintf("Doppelte Mitarbeiter-ID: %s", e.ID)})
		}
		employees[e.ID] = true
	}

	weeks := make(map[string]bool, len(s.Weeks))
	for _, w := range s.Weeks {
		if weeks[w.ID] {
			add(Conflict{Type: ConflictDuplicateWeek, WeekID: w.ID,
				Message: fmt.Sprintf("Doppelte Kalenderwoche: %s", w.ID)})
		}
		weeks[w.ID] = true
	}

	for _, c := range s.Cells {
		switch {
		case !employees[c.EmployeeID]:
			add(Conflict{Type: ConflictUnknownEmployee, EmployeeID: c.EmployeeID, WeekID: c.WeekID, DayIndex: c.DayIndex,
				Message: "Unbekannter Mitarbeiter"})
		case !weeks[c.WeekID]:
			add(Conflict{Type: ConflictUnknownWeek, EmployeeID: c.EmployeeID, WeekID: c.WeekID, DayIndex: c.DayIndex,
				Message: "Unbekannte Kalenderwoche"})
		case c.DayIndex < 0 || c.DayIndex >= constants.WorkdaysPerWeek:
			add(Conflict{Type: ConflictInvalidDayIndex, EmployeeID: c.EmployeeID, WeekID: c.WeekID, DayIndex: c.DayIndex,
				Message: "Ungültiger Wochentag"})
		case !c.Value.IsValid():
			add(Conflict{Type: ConflictInvalidAssignment, EmployeeID: c.EmployeeID, WeekID: c.WeekID, DayIndex: c.DayIndex,
				Message: fmt.Sprintf("Unbekannte Belegung: %s", c.Value)})
		}
	}

	if len(s.Weeks) > 0 && len(s.Weeks[0].Days) > 0 && s.CalendarBase.StartMondayISO != s.Weeks[0].Days[0].Date {
		add(Conflict{Type: ConflictCalendarBase,
			Message: fmt.Sprintf("Kalenderbasis %s passt nicht zur ersten Woche %s", s.CalendarBase.StartMondayISO, s.Weeks[0].Days[0].Date)})
	}

	if !validDateFormat(s.Settings.DateFormat) || !holidays.IsRegion(s.Settings.Region) {
		add(Conflict{Type: ConflictInvalidSettings, Message: "Ungültige Einstellungen"})
	}

	return result
}

// SanitizeSnapshot repairs a loaded snapshot: missing employees or weeks are
// taken from seed, settings are completed with defaults, cells that do not
// fit the employees and weeks are dropped, unknown values are emptied, and
// the calendar base is realigned to the first week.
func SanitizeSnapshot(s models.Snapshot, seed models.Snapshot) models.Snapshot {
	out := s.Clone()
	if len(out.Employees) == 0 {
		out.Employees = seed.Clone().Employees
	}
	if len(out.Weeks) == 0 {
		out.Weeks = seed.Clone().Weeks
		if len(s.Cells) == 0 {
			out.Cells = seed.Clone().Cells
		}
	}

	defaults := models.DefaultSettings()
	if out.Settings == (models.Settings{}) {
		out.Settings = defaults
	}
	if !validDateFormat(out.Settings.DateFormat) {
		out.Settings.DateFormat = defaults.DateFormat
	}
	if !holidays.IsRegion(out.Settings.Region) {
		out.Settings.Region = defaults.Region
	}
	if out.Settings.FontScale <= 0 {
		out.Settings.FontScale = defaults.FontScale
	}

	employees := make(map[string]bool, len(out.Employees))
	for _, e := range out.Employees {
		employees[e.ID] = true
	}
	weeks := make(map[string]bool, len(out.Weeks))
	for _, w := range out.Weeks {
		weeks[w.ID] = true
	}

	cells := make([]models.Cell, 0, len(out.Cells))
	for _, c := range out.Cells {
		if !employees[c.EmployeeID] || !weeks[c.WeekID] {
			continue
		}
		if c.DayIndex < 0 || c.DayIndex >= constants.WorkdaysPerWeek {
			continue
		}
		if !c.Value.IsValid() {
			c.Value = models.ParseAssignment(string(c.Value))
		}
		cells = append(cells, c)
	}
	out.Cells = cells

	if len(out.Weeks) > 0 && len(out.Weeks[0].Days) > 0 {
		out.CalendarBase.StartMondayISO = out.Weeks[0].Days[0].Date
	}
	return out
}

func validDateFormat(format string) bool {
	return format == constants.DateFormatShort || format == constants.DateFormatPadded
}
