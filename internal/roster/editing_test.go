package roster

import (
	"testing"

	"github.com/julianstephens/roster/internal/models"
)

func TestFillWeek(t *testing.T) {
	r := newTestRoster(t)

	res := r.FillWeek("anna", kw44, models.AssignmentLate)
	if res.Applied != 4 || res.Skipped != 1 {
		t.Errorf("FillWeek = %+v, want 4 applied, 1 skipped", res)
	}
	for day := 0; day < 4; day++ {
		if got := r.FindCellValue("anna", kw44, day); got != models.AssignmentLate {
			t.Errorf("day %d = %q", day, got)
		}
	}
	r.Undo()
	if !r.FindCellValue("anna", kw44, 0).IsEmpty() {
		t.Error("FillWeek was not a single undo step")
	}

	if res := r.FillWeek("anna", kw44, models.AssignmentNone); res.Applied != 0 {
		t.Error("blank fill should be ignored")
	}
}

func TestFillColumn(t *testing.T) {
	r := newTestRoster(t)

	res := r.FillColumn(kw44, 4, models.AssignmentEarly)
	if res.Applied != 0 || res.Skipped != 2 {
		t.Errorf("locked column fill = %+v", res)
	}
	if r.CanUndo() {
		t.Error("fully skipped fill must not push history")
	}

	res = r.FillColumn(kw45, 1, models.AssignmentAbsent)
	if res.Applied != 2 {
		t.Errorf("FillColumn applied %d", res.Applied)
	}
	if r.FindCellValue("ben", kw45, 1) != models.AssignmentAbsent {
		t.Error("column not filled")
	}
}

func TestCopyPaste(t *testing.T) {
	r := newTestRoster(t)
	r.FillWeek("anna", kw45, models.AssignmentEarly)
	r.SetCell("anna", kw45, 2, models.AssignmentSpecial)

	t.Run("cell", func(t *testing.T) {
		clip, ok := r.Copy(ScopeCell, models.Address{EmployeeID: "anna", WeekID: kw45, DayIndex: 2})
		if !ok {
			t.Fatal("Copy failed")
		}
		res := r.Paste(clip, models.Address{EmployeeID: "ben", WeekID: kw45, DayIndex: 0})
		if res.Applied != 1 || r.FindCellValue("ben", kw45, 0) != models.AssignmentSpecial {
			t.Errorf("cell paste = %+v, value %q", res, r.FindCellValue("ben", kw45, 0))
		}
		res = r.Paste(clip, models.Address{EmployeeID: "ben", WeekID: kw44, DayIndex: 4})
		if res.Skipped != 1 {
			t.Errorf("paste onto holiday = %+v", res)
		}
	})

	t.Run("row", func(t *testing.T) {
		clip, ok := r.Copy(ScopeRow, models.Address{EmployeeID: "anna", WeekID: kw45})
		if !ok || len(clip.Cells) != 5 {
			t.Fatalf("row copy = %+v", clip)
		}
		res := r.Paste(clip, models.Address{EmployeeID: "ben", WeekID: kw44})
		if res.Applied != 4 || res.Skipped != 1 {
			t.Errorf("row paste = %+v", res)
		}
		if r.FindCellValue("ben", kw44, 2) != models.AssignmentSpecial {
			t.Error("row not pasted")
		}
		if r.FindCellValue("ben", kw44, 4) != models.AssignmentHoliday {
			t.Error("holiday overwritten by paste")
		}
	})

	t.Run("week", func(t *testing.T) {
		clip, ok := r.Copy(ScopeWeek, models.Address{WeekID: kw45})
		if !ok || len(clip.Cells) != 10 {
			t.Fatalf("week copy has %d cells", len(clip.Cells))
		}
		res := r.Paste(clip, models.Address{WeekID: kw44})
		if res.Applied != 8 || res.Skipped != 2 {
			t.Errorf("week paste = %+v", res)
		}
		if r.FindCellValue("anna", kw44, 0) != models.AssignmentEarly {
			t.Error("week not pasted")
		}
	})

	if _, err := ParseCopyScope("column"); err == nil {
		t.Error("expected error for unknown scope")
	}
}

func TestMergeImported(t *testing.T) {
	r := newTestRoster(t)
	r.SetCell("anna", kw45, 0, models.AssignmentLate)

	conflicts := r.MergeImported([]models.Cell{
		{EmployeeID: "anna", WeekID: kw44, DayIndex: 0, Value: models.AssignmentEarly},
		{EmployeeID: "anna", WeekID: kw44, DayIndex: 0, Value: models.AssignmentAbsent},
		{EmployeeID: "ben", WeekID: kw44, DayIndex: 4, Value: models.AssignmentEarly},
	})
	if len(conflicts) != 1 {
		t.Errorf("expected 1 conflict, got %v", conflicts)
	}
	if got := r.FindCellValue("anna", kw44, 0); got != models.AssignmentAbsent {
		t.Errorf("last imported value should win, got %q", got)
	}
	if got := r.FindCellValue("anna", kw45, 0); got != models.AssignmentLate {
		t.Errorf("existing value lost, got %q", got)
	}
	if got := r.FindCellValue("ben", kw44, 4); got != models.AssignmentHoliday {
		t.Errorf("holiday lock not re-applied, got %q", got)
	}

	r.Undo()
	if !r.FindCellValue("anna", kw44, 0).IsEmpty() {
		t.Error("merge was not a single undo step")
	}
}

func TestMergeImportedDropsUnknownAddresses(t *testing.T) {
	r := newTestRoster(t)
	// sparse grid: anna has no cell on Monday of kw 45
	cells := r.Cells()
	sparse := cells[:0]
	for _, c := range cells {
		if c.EmployeeID == "anna" && c.WeekID == kw45 && c.DayIndex == 0 {
			continue
		}
		sparse = append(sparse, c)
	}
	r = New(models.Snapshot{
		Employees:    r.Employees(),
		Weeks:        r.Weeks(),
		Cells:        sparse,
		Settings:     models.DefaultSettings(),
		CalendarBase: r.CalendarBase(),
	})
	want := len(r.Cells()) + 1

	r.MergeImported([]models.Cell{
		{EmployeeID: "anna", WeekID: kw45, DayIndex: 0, Value: models.AssignmentEarly},
		{EmployeeID: "carl", WeekID: kw45, DayIndex: 0, Value: models.AssignmentEarly},
		{EmployeeID: "ben", WeekID: "kw-12-2031", DayIndex: 1, Value: models.AssignmentLate},
		{EmployeeID: "ben", WeekID: kw45, DayIndex: 9, Value: models.AssignmentLate},
	})

	if got := r.FindCellValue("anna", kw45, 0); got != models.AssignmentEarly {
		t.Errorf("missing address not filled, got %q", got)
	}
	if got := len(r.Cells()); got != want {
		t.Errorf("cell count = %d, want %d", got, want)
	}
}

func TestFillWeekUnknownEmployee(t *testing.T) {
	r := newTestRoster(t)
	res := r.FillWeek("nobody", kw45, models.AssignmentEarly)
	if res != (EditResult{}) {
		t.Errorf("result = %+v, want zero", res)
	}
	if r.CanUndo() {
		t.Error("rejected fill pushed history")
	}
}
