package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
)

func cell(emp, week string, day int, v models.Assignment) models.Cell {
	return models.Cell{EmployeeID: emp, WeekID: week, DayIndex: day, Value: v}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name  string
		cells []models.Cell
		want  int
	}{
		{
			name: "differing values at same address",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
				cell("anna", "kw-42-2025", 0, models.AssignmentLate),
			},
			want: 1,
		},
		{
			name: "identical values",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
			},
			want: 0,
		},
		{
			name: "distinct addresses",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
				cell("anna", "kw-42-2025", 1, models.AssignmentLate),
				cell("ben", "kw-42-2025", 0, models.AssignmentLate),
			},
			want: 0,
		},
		{
			name: "later empty value",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
				cell("anna", "kw-42-2025", 0, models.AssignmentNone),
			},
			want: 0,
		},
		{
			name: "first empty value",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentNone),
				cell("anna", "kw-42-2025", 0, models.AssignmentLate),
			},
			want: 0,
		},
		{
			name: "three differing values",
			cells: []models.Cell{
				cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
				cell("anna", "kw-42-2025", 0, models.AssignmentLate),
				cell("anna", "kw-42-2025", 0, models.AssignmentAbsent),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(tt.cells)
			if len(got) != tt.want {
				t.Errorf("DetectConflicts returned %d conflicts, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestDetectConflictsRecord(t *testing.T) {
	got := DetectConflicts([]models.Cell{
		cell("anna", "kw-42-2025", 3, models.AssignmentEarly),
		cell("anna", "kw-42-2025", 3, models.AssignmentConnox),
	})
	want := []Conflict{{
		Type:       ConflictMultipleAssignment,
		EmployeeID: "anna",
		WeekID:     "kw-42-2025",
		DayIndex:   3,
		Message:    "Mehrfachbelegung erkannt",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DetectConflicts mismatch (-want +got):\n%s", diff)
	}
}

func testSnapshot() models.Snapshot {
	weeks := calendar.BuildWeeks(time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC), 2)
	return models.Snapshot{
		Employees:    []models.Employee{{ID: "anna", Name: "Anna"}, {ID: "ben", Name: "Ben"}},
		Weeks:        weeks,
		Cells:        []models.Cell{cell("anna", weeks[0].ID, 0, models.AssignmentEarly)},
		Settings:     models.DefaultSettings(),
		CalendarBase: models.CalendarBase{StartMondayISO: "2025-10-13"},
	}
}

func TestValidateSnapshot(t *testing.T) {
	valid := testSnapshot()
	if res := ValidateSnapshot(valid); res.HasConflicts() {
		t.Fatalf("expected valid snapshot, got:\n%s", res.FormatReport())
	}

	broken := testSnapshot()
	broken.Employees = append(broken.Employees, models.Employee{ID: "anna", Name: "Anna 2"})
	broken.Cells = append(broken.Cells,
		cell("zoe", "kw-42-2025", 0, models.AssignmentEarly),
		cell("ben", "kw-1-1999", 0, models.AssignmentEarly),
		cell("ben", "kw-42-2025", 7, models.AssignmentEarly),
		cell("ben", "kw-42-2025", 1, models.Assignment("Nacht")),
	)
	broken.CalendarBase.StartMondayISO = "2025-10-20"
	broken.Settings.Region = "XX"

	res := ValidateSnapshot(broken)
	var types []ConflictType
	for _, c := range res.Conflicts {
		types = append(types, c.Type)
	}
	want := []ConflictType{
		ConflictDuplicateEmployee,
		ConflictUnknownEmployee,
		ConflictUnknownWeek,
		ConflictInvalidDayIndex,
		ConflictInvalidAssignment,
		ConflictCalendarBase,
		ConflictInvalidSettings,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("conflict types mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(res.FormatReport(), "Konflikte gefunden:") {
		t.Errorf("unexpected report: %s", res.FormatReport())
	}
}

func TestSanitizeSnapshot(t *testing.T) {
	seed := testSnapshot()

	t.Run("empty payload takes seed", func(t *testing.T) {
		got := SanitizeSnapshot(models.Snapshot{}, seed)
		if diff := cmp.Diff(seed.Employees, got.Employees); diff != "" {
			t.Errorf("employees mismatch (-want +got):\n%s", diff)
		}
		if len(got.Weeks) != len(seed.Weeks) {
			t.Errorf("expected seed weeks, got %d", len(got.Weeks))
		}
		if got.Settings != models.DefaultSettings() {
			t.Errorf("expected default settings, got %+v", got.Settings)
		}
		if got.CalendarBase.StartMondayISO != "2025-10-13" {
			t.Errorf("calendar base = %s", got.CalendarBase.StartMondayISO)
		}
	})

	t.Run("drops stray cells and normalizes values", func(t *testing.T) {
		in := testSnapshot()
		in.Cells = append(in.Cells,
			cell("zoe", "kw-42-2025", 0, models.AssignmentEarly),
			cell("ben", "kw-42-2025", 9, models.AssignmentEarly),
			cell("ben", "kw-42-2025", 1, models.Assignment("spät")),
			cell("ben", "kw-42-2025", 2, models.Assignment("Nacht")),
		)
		in.CalendarBase.StartMondayISO = ""
		in.Settings.DateFormat = "YYYY"

		got := SanitizeSnapshot(in, seed)
		want := []models.Cell{
			cell("anna", "kw-42-2025", 0, models.AssignmentEarly),
			cell("ben", "kw-42-2025", 1, models.AssignmentLate),
			cell("ben", "kw-42-2025", 2, models.AssignmentNone),
		}
		if diff := cmp.Diff(want, got.Cells); diff != "" {
			t.Errorf("cells mismatch (-want +got):\n%s", diff)
		}
		if got.CalendarBase.StartMondayISO != "2025-10-13" {
			t.Errorf("calendar base = %q", got.CalendarBase.StartMondayISO)
		}
		if got.Settings.DateFormat != "D.M.YYYY" {
			t.Errorf("date format = %q", got.Settings.DateFormat)
		}
		if res := ValidateSnapshot(got); res.HasConflicts() {
			t.Errorf("sanitized snapshot still invalid:\n%s", res.FormatReport())
		}
	})
}
