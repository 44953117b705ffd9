// Package roster owns the in-memory roster state: employees, weeks, cells,
// settings, undo history and holiday locks. Every mutation goes through a
// Roster method so that history and lock bookkeeping stay consistent.
package roster

import (
	"time"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/grid"
	"github.com/julianstephens/roster/internal/history"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/models"
)

// Roster is not safe for concurrent use; callers serialise access.
type Roster struct {
	employees []models.Employee
	weeks     []models.Week
	grid      *grid.Grid
	history   *history.History[[]models.Cell]
	settings  models.Settings
	base      models.CalendarBase
	updatedAt time.Time

	holidays []models.Holiday
	locks    map[models.LockKey]models.HolidayLock

	// version increases on every state change
	version uint64
}

// New builds a roster from a snapshot. The snapshot is copied.
func New(s models.Snapshot) *Roster {
	s = s.Clone()
	r := &Roster{
		employees: s.Employees,
		weeks:     s.Weeks,
		grid:      grid.New(s.Cells),
		history:   history.New[[]models.Cell](constants.HistoryLimit),
		settings:  s.Settings,
		base:      s.CalendarBase,
		updatedAt: s.UpdatedAt,
		locks:     map[models.LockKey]models.HolidayLock{},
	}
	if r.base.StartMondayISO == "" {
		if base, err := calendar.BaseFromWeeks(r.weeks); err == nil {
			r.base = base
		} else {
			r.base = models.CalendarBase{StartMondayISO: constants.InitialStartMonday}
		}
	}
	r.applyHolidayLocks()
	return r
}

// Snapshot returns a deep copy of the persistable state
func (r *Roster) Snapshot() models.Snapshot {
	return models.Snapshot{
		Employees:    append([]models.Employee{}, r.employees...),
		Weeks:        cloneWeeks(r.weeks),
		Cells:        r.grid.Cells(),
		Settings:     r.settings,
		CalendarBase: r.base,
		UpdatedAt:    r.updatedAt,
	}
}

func (r *Roster) Employees() []models.Employee {
	return append([]models.Employee{}, r.employees...)
}

func (r *Roster) Weeks() []models.Week {
	return cloneWeeks(r.weeks)
}

func (r *Roster) Settings() models.Settings {
	return r.settings
}

func (r *Roster) CalendarBase() models.CalendarBase {
	return r.base
}

func (r *Roster) Holidays() []models.Holiday {
	return append([]models.Holiday{}, r.holidays...)
}

// Version changes whenever the persistable state changes
func (r *Roster) Version() uint64 {
	return r.version
}

func (r *Roster) UpdatedAt() time.Time {
	return r.updatedAt
}

// Employee looks up an employee by id
func (r *Roster) Employee(id string) (models.Employee, bool) {
	i := r.employeeIndex(id)
	if i < 0 {
		return models.Employee{}, false
	}
	return r.employees[i], true
}

// Week looks up a week by id
func (r *Roster) Week(id string) (models.Week, bool) {
	for _, w := range r.weeks {
		if w.ID == id {
			return w.Clone(), true
		}
	}
	return models.Week{}, false
}

// WeekByNumber returns the first loaded week with the given ISO week number
func (r *Roster) WeekByNumber(isoWeek int) (models.Week, bool) {
	for _, w := range r.weeks {
		if w.ISOWeek == isoWeek {
			return w.Clone(), true
		}
	}
	return models.Week{}, false
}

// Locks returns a copy of the current holiday locks
func (r *Roster) Locks() map[models.LockKey]models.HolidayLock {
	out := make(map[models.LockKey]models.HolidayLock, len(r.locks))
	for k, v := range r.locks {
		out[k] = v
	}
	return out
}

// Lock returns the holiday lock of a (week, day) position
func (r *Roster) Lock(weekID string, dayIndex int) (models.HolidayLock, bool) {
	if !r.settings.AutoHolidayMarking {
		return models.HolidayLock{}, false
	}
	l, ok := r.locks[models.LockKey{WeekID: weekID, DayIndex: dayIndex}]
	return l, ok
}

// IsLocked reports whether the position is a locked holiday
func (r *Roster) IsLocked(weekID string, dayIndex int) bool {
	_, ok := r.Lock(weekID, dayIndex)
	return ok
}

// SetHolidays replaces the known holiday list and recomputes the locks
func (r *Roster) SetHolidays(list []models.Holiday) {
	r.holidays = append([]models.Holiday{}, list...)
	if r.applyHolidayLocks() {
		r.touch()
	}
}

// SetSettings replaces the settings and recomputes the locks. It reports
// whether the holiday list must be refreshed for the new settings.
func (r *Roster) SetSettings(s models.Settings) bool {
	prev := r.settings
	r.settings = s
	r.applyHolidayLocks()
	r.touch()
	return prev.Region != s.Region || (!prev.AutoHolidayMarking && s.AutoHolidayMarking)
}

// applyHolidayLocks recomputes the locks from weeks, holidays and settings
// and forces every locked cell of every employee to the holiday value.
// It reports whether any cell changed.
func (r *Roster) applyHolidayLocks() bool {
	r.locks = holidays.ResolveLocks(r.weeks, r.settings, r.holidays)
	changed := false
	for key := range r.locks {
		for _, e := range r.employees {
			addr := models.Address{EmployeeID: e.ID, WeekID: key.WeekID, DayIndex: key.DayIndex}
			if r.grid.Set(addr, models.AssignmentHoliday) {
				changed = true
			}
		}
	}
	return changed
}

func (r *Roster) touch() {
	r.version++
	r.updatedAt = time.Now().UTC()
}

func (r *Roster) employeeIndex(id string) int {
	for i, e := range r.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneWeeks(weeks []models.Week) []models.Week {
	out := make([]models.Week, len(weeks))
	for i, w := range weeks {
		out[i] = w.Clone()
	}
	return out
}
