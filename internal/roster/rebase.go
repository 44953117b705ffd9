package roster

import (
	"time"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// RebaseOptions selects how existing values are carried into the new weeks.
// ClearAssignments wins over ShiftRelatively. With neither set, values follow
// their calendar date.
type RebaseOptions struct {
	ClearAssignments bool
	ShiftRelatively  bool
}

// UpdateCalendarBase rebuilds the week window from the ISO Monday of
// newStart, keeping the current week count. The grid is replaced with one
// cell per employee, week and day; history is reset and holiday locks are
// re-applied. The new calendar base is returned.
func (r *Roster) UpdateCalendarBase(newStart time.Time, opts RebaseOptions) models.CalendarBase {
	monday := calendar.StartOfISOWeek(newStart)
	count := len(r.weeks)
	if count == 0 {
		count = constants.DefaultWeekCount
	}

	oldWeeks := r.weeks
	newWeeks := calendar.BuildWeeks(monday, count)

	// Values of the old window keyed by employee and ISO date
	byDate := make(map[string]models.Assignment)
	if !opts.ClearAssignments && !opts.ShiftRelatively {
		for _, w := range oldWeeks {
			for day, d := range w.Days {
				for _, e := range r.employees {
					v := r.FindCellValue(e.ID, w.ID, day)
					if !v.IsEmpty() {
						byDate[e.ID+"|"+d.Date] = v
					}
				}
			}
		}
	}

	cells := make([]models.Cell, 0, len(r.employees)*count*constants.WorkdaysPerWeek)
	for _, e := range r.employees {
		for i, w := range newWeeks {
			for day, d := range w.Days {
				var v models.Assignment
				switch {
				case opts.ClearAssignments:
				case opts.ShiftRelatively:
					if i < len(oldWeeks) {
						v = r.FindCellValue(e.ID, oldWeeks[i].ID, day)
					}
				default:
					v = byDate[e.ID+"|"+d.Date]
				}
				cells = append(cells, models.Cell{EmployeeID: e.ID, WeekID: w.ID, DayIndex: day, Value: v})
			}
		}
	}

	r.weeks = newWeeks
	r.base = models.CalendarBase{StartMondayISO: newWeeks[0].Days[0].Date}
	r.grid.Replace(cells)
	r.history.Reset()
	r.applyHolidayLocks()
	r.touch()
	return r.base
}

// CoveredYears returns the calendar years touched by the current weeks
func (r *Roster) CoveredYears() []int {
	return calendar.CollectWeekYears(r.weeks)
}
