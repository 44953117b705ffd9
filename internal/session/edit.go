package session

import (
	"context"
	"time"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/validation"
)

// SetCell writes one cell. A locked holiday is rejected with a warning;
// replacing a different non-empty value is reported as well.
func (s *Session) SetCell(addr models.Address, value models.Assignment) bool {
	if value.IsEmpty() {
		return s.ClearCell(addr)
	}

	var ok bool
	s.Update(func(r *roster.Roster) {
		if r.IsLocked(addr.WeekID, addr.DayIndex) {
			s.toasts.Warn(constants.MsgHolidayLocked)
			return
		}
		prev := r.FindCellValue(addr.EmployeeID, addr.WeekID, addr.DayIndex)
		ok = r.SetCell(addr.EmployeeID, addr.WeekID, addr.DayIndex, value)
		if ok && !prev.IsEmpty() && prev != value {
			s.toasts.Warn(constants.MsgPreviousOverwrite)
		}
	})
	return ok
}

func (s *Session) ClearCell(addr models.Address) bool {
	var ok bool
	s.Update(func(r *roster.Roster) {
		if r.IsLocked(addr.WeekID, addr.DayIndex) {
			s.toasts.Warn(constants.MsgHolidayNoClear)
			return
		}
		ok = r.ClearCell(addr.EmployeeID, addr.WeekID, addr.DayIndex)
	})
	return ok
}

func (s *Session) FillWeek(employeeID, weekID string, value models.Assignment) roster.EditResult {
	var res roster.EditResult
	s.Update(func(r *roster.Roster) {
		res = r.FillWeek(employeeID, weekID, value)
	})
	if res.Skipped > 0 {
		s.toasts.Info(constants.MsgHolidayKept)
	}
	return res
}

func (s *Session) FillColumn(weekID string, dayIndex int, value models.Assignment) roster.EditResult {
	var res roster.EditResult
	s.Update(func(r *roster.Roster) {
		res = r.FillColumn(weekID, dayIndex, value)
	})
	if res.Skipped > 0 {
		s.toasts.Info(constants.MsgHolidayKept)
	}
	return res
}

func (s *Session) Copy(scope roster.CopyScope, addr models.Address) (roster.Clipboard, bool) {
	var clip roster.Clipboard
	var ok bool
	s.View(func(r *roster.Roster) {
		clip, ok = r.Copy(scope, addr)
	})
	if !ok {
		return clip, false
	}
	switch scope {
	case roster.ScopeCell:
		s.toasts.Info(constants.MsgCellCopied)
	case roster.ScopeRow:
		s.toasts.Info(constants.MsgRowCopied)
	case roster.ScopeWeek:
		s.toasts.Info(constants.MsgWeekCopied)
	}
	return clip, true
}

func (s *Session) Paste(clip roster.Clipboard, target models.Address) roster.EditResult {
	var res roster.EditResult
	s.Update(func(r *roster.Roster) {
		res = r.Paste(clip, target)
	})
	switch {
	case res.Skipped > 0 && clip.Scope == roster.ScopeCell:
		s.toasts.Warn(constants.MsgHolidayKept)
	case res.Skipped > 0:
		s.toasts.Info(constants.MsgHolidayKept)
	}
	return res
}

func (s *Session) Undo() bool {
	var ok bool
	s.Update(func(r *roster.Roster) {
		ok = r.Undo()
	})
	return ok
}

func (s *Session) Redo() bool {
	var ok bool
	s.Update(func(r *roster.Roster) {
		ok = r.Redo()
	})
	return ok
}

// Rebase moves the week window to the ISO week of start and refreshes the
// holidays for the new years.
func (s *Session) Rebase(ctx context.Context, start time.Time, opts roster.RebaseOptions) models.CalendarBase {
	var base models.CalendarBase
	s.Update(func(r *roster.Roster) {
		base = r.UpdateCalendarBase(start, opts)
	})
	_ = s.RefreshHolidays(ctx)
	s.toasts.Success(constants.MsgCalendarUpdated)
	return base
}

// Import merges parsed cells as one undo step. Conflicting duplicates in
// the import are reported but do not block it.
func (s *Session) Import(cells []models.Cell) []validation.Conflict {
	var conflicts []validation.Conflict
	s.Update(func(r *roster.Roster) {
		conflicts = r.MergeImported(cells)
	})
	if len(conflicts) > 0 {
		s.toasts.Warn(constants.MsgConflictDetected)
	}
	s.toasts.Success(constants.MsgImportDone)
	return conflicts
}

// UpdateSettings replaces the settings and refetches holidays when the
// region changed or automatic marking was switched on.
func (s *Session) UpdateSettings(ctx context.Context, settings models.Settings) {
	var refresh bool
	s.Update(func(r *roster.Roster) {
		refresh = r.SetSettings(settings)
	})
	if refresh {
		_ = s.RefreshHolidays(ctx)
	}
}
