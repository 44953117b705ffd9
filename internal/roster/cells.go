package roster

import (
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// ValidAddress reports whether the address names a loaded employee, a loaded
// week and a workday.
func (r *Roster) ValidAddress(employeeID, weekID string, dayIndex int) bool {
	if dayIndex < 0 || dayIndex >= constants.WorkdaysPerWeek {
		return false
	}
	if r.employeeIndex(employeeID) < 0 {
		return false
	}
	for _, w := range r.weeks {
		if w.ID == weekID {
			return true
		}
	}
	return false
}

// writable reports whether SetCell and ClearCell may touch the address
func (r *Roster) writable(employeeID, weekID string, dayIndex int) bool {
	return r.ValidAddress(employeeID, weekID, dayIndex) && !r.IsLocked(weekID, dayIndex)
}

// SetCell writes value at the address. Writes to a locked holiday or to an
// address outside the roster are rejected without touching state or
// history; SetCell then returns false.
func (r *Roster) SetCell(employeeID, weekID string, dayIndex int, value models.Assignment) bool {
	if !r.writable(employeeID, weekID, dayIndex) {
		return false
	}
	r.history.Push(r.grid.Cells())
	r.grid.Set(models.Address{EmployeeID: employeeID, WeekID: weekID, DayIndex: dayIndex}, value)
	r.touch()
	return true
}

// BulkSetCells applies writes as a single undo step. Addresses outside the
// roster are dropped; when none remain nothing happens. Locked addresses are
// skipped individually. It returns the number of applied writes.
func (r *Roster) BulkSetCells(writes []models.Cell) int {
	writes = r.validCells(writes)
	if len(writes) == 0 {
		return 0
	}
	r.history.Push(r.grid.Cells())
	applied := 0
	for _, w := range writes {
		if r.IsLocked(w.WeekID, w.DayIndex) {
			continue
		}
		r.grid.Set(w.Address(), w.Value)
		applied++
	}
	r.touch()
	return applied
}

// ClearCell empties the address with the same lock rule as SetCell. A missing
// cell is not created.
func (r *Roster) ClearCell(employeeID, weekID string, dayIndex int) bool {
	if !r.writable(employeeID, weekID, dayIndex) {
		return false
	}
	r.history.Push(r.grid.Cells())
	r.grid.Clear(models.Address{EmployeeID: employeeID, WeekID: weekID, DayIndex: dayIndex})
	r.touch()
	return true
}

// ReplaceAllCells swaps the whole grid as one undo step and re-applies the
// holiday locks. Cells outside the roster are dropped.
func (r *Roster) ReplaceAllCells(cells []models.Cell) {
	r.history.Push(r.grid.Cells())
	r.grid.Replace(models.CloneCells(r.validCells(cells)))
	r.applyHolidayLocks()
	r.touch()
}

// validCells returns the cells whose address lies inside the roster. The
// input is returned as is when every cell is valid.
func (r *Roster) validCells(cells []models.Cell) []models.Cell {
	for i, c := range cells {
		if r.ValidAddress(c.EmployeeID, c.WeekID, c.DayIndex) {
			continue
		}
		kept := make([]models.Cell, i, len(cells))
		copy(kept, cells[:i])
		for _, c := range cells[i+1:] {
			if r.ValidAddress(c.EmployeeID, c.WeekID, c.DayIndex) {
				kept = append(kept, c)
			}
		}
		return kept
	}
	return cells
}

// FindCellValue returns the value at the address, empty when there is none
func (r *Roster) FindCellValue(employeeID, weekID string, dayIndex int) models.Assignment {
	return r.grid.Value(models.Address{EmployeeID: employeeID, WeekID: weekID, DayIndex: dayIndex})
}

// Cells returns a copy of all cells
func (r *Roster) Cells() []models.Cell {
	return r.grid.Cells()
}

// Undo restores the state before the last edit. It returns false when there
// is nothing to undo.
func (r *Roster) Undo() bool {
	prev, ok := r.history.Undo(r.grid.Cells())
	if !ok {
		return false
	}
	r.grid.Replace(prev)
	r.applyHolidayLocks()
	r.touch()
	return true
}

// Redo re-applies the last undone edit. It returns false when there is
// nothing to redo.
func (r *Roster) Redo() bool {
	next, ok := r.history.Redo(r.grid.Cells())
	if !ok {
		return false
	}
	r.grid.Replace(next)
	r.applyHolidayLocks()
	r.touch()
	return true
}

func (r *Roster) ResetHistory() {
	r.history.Reset()
}

func (r *Roster) CanUndo() bool {
	return r.history.CanUndo()
}

func (r *Roster) CanRedo() bool {
	return r.history.CanRedo()
}
