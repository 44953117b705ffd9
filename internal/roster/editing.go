package roster

import (
	"fmt"

	"github.com/julianstephens/roster/internal/models"
)

// CopyScope selects what a clipboard copy captures
type CopyScope string

const (
	ScopeCell CopyScope = "cell"
	ScopeRow  CopyScope = "row"
	ScopeWeek CopyScope = "week"
)

// ParseCopyScope validates a scope name
func ParseCopyScope(s string) (CopyScope, error) {
	switch CopyScope(s) {
	case ScopeCell, ScopeRow, ScopeWeek:
		return CopyScope(s), nil
	default:
		return "", fmt.Errorf("unknown copy scope %q", s)
	}
}

// Clipboard holds copied cells together with where they came from
type Clipboard struct {
	Scope      CopyScope
	WeekID     string
	EmployeeID string
	Cells      []models.Cell
}

// EditResult reports the outcome of a multi-cell edit
type EditResult struct {
	Applied int
	// Skipped counts writes dropped because they hit a locked holiday
	Skipped int
}

// FillWeek sets every weekday of one employee's week to value in one undo step.
// Blank values are ignored.
func (r *Roster) FillWeek(employeeID, weekID string, value models.Assignment) EditResult {
	w, ok := r.Week(weekID)
	if !ok || value.IsEmpty() {
		return EditResult{}
	}
	writes := make([]models.Cell, 0, len(w.Days))
	for day := range w.Days {
		writes = append(writes, models.Cell{EmployeeID: employeeID, WeekID: weekID, DayIndex: day, Value: value})
	}
	return r.applyFiltered(writes)
}

// FillColumn sets one weekday of a week to value for every employee in one
// undo step. A locked column is skipped entirely.
func (r *Roster) FillColumn(weekID string, dayIndex int, value models.Assignment) EditResult {
	if value.IsEmpty() {
		return EditResult{}
	}
	writes := make([]models.Cell, 0, len(r.employees))
	for _, e := range r.employees {
		writes = append(writes, models.Cell{EmployeeID: e.ID, WeekID: weekID, DayIndex: dayIndex, Value: value})
	}
	return r.applyFiltered(writes)
}

// Copy captures a cell, an employee's week row or a whole week
func (r *Roster) Copy(scope CopyScope, addr models.Address) (Clipboard, bool) {
	clip := Clipboard{Scope: scope, WeekID: addr.WeekID}
	switch scope {
	case ScopeCell:
		c, ok := r.grid.Get(addr)
		if !ok {
			return Clipboard{}, false
		}
		clip.EmployeeID = addr.EmployeeID
		clip.Cells = []models.Cell{c}
	case ScopeRow:
		clip.EmployeeID = addr.EmployeeID
		r.grid.Each(func(c models.Cell) {
			if c.EmployeeID == addr.EmployeeID && c.WeekID == addr.WeekID {
				clip.Cells = append(clip.Cells, c)
			}
		})
	case ScopeWeek:
		r.grid.Each(func(c models.Cell) {
			if c.WeekID == addr.WeekID {
				clip.Cells = append(clip.Cells, c)
			}
		})
	default:
		return Clipboard{}, false
	}
	return clip, true
}

// Paste writes a clipboard at target. A cell is pasted onto the target
// address, a row onto the target employee and week, a week onto the target
// week for the original employees.
func (r *Roster) Paste(clip Clipboard, target models.Address) EditResult {
	switch clip.Scope {
	case ScopeCell:
		if len(clip.Cells) == 0 {
			return EditResult{}
		}
		if r.IsLocked(target.WeekID, target.DayIndex) {
			return EditResult{Skipped: 1}
		}
		if !r.SetCell(target.EmployeeID, target.WeekID, target.DayIndex, clip.Cells[0].Value) {
			return EditResult{}
		}
		return EditResult{Applied: 1}
	case ScopeRow:
		writes := make([]models.Cell, 0, len(clip.Cells))
		for _, c := range clip.Cells {
			writes = append(writes, models.Cell{EmployeeID: target.EmployeeID, WeekID: target.WeekID, DayIndex: c.DayIndex, Value: c.Value})
		}
		return r.applyFiltered(writes)
	case ScopeWeek:
		writes := make([]models.Cell, 0, len(clip.Cells))
		for _, c := range clip.Cells {
			writes = append(writes, models.Cell{EmployeeID: c.EmployeeID, WeekID: target.WeekID, DayIndex: c.DayIndex, Value: c.Value})
		}
		return r.applyFiltered(writes)
	default:
		return EditResult{}
	}
}

// applyFiltered drops writes outside the roster and writes to locked
// holidays, then applies the rest as a single undo step. Only the locked
// ones count as skipped.
func (r *Roster) applyFiltered(writes []models.Cell) EditResult {
	writes = r.validCells(writes)
	kept := make([]models.Cell, 0, len(writes))
	for _, w := range writes {
		if !r.IsLocked(w.WeekID, w.DayIndex) {
			kept = append(kept, w)
		}
	}
	res := EditResult{Skipped: len(writes) - len(kept)}
	res.Applied = r.BulkSetCells(kept)
	return res
}
