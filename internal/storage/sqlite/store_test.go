package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "roster.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Employees: []models.Employee{
			{ID: "clara-weber", Name: "Clara Weber"},
			{ID: "anna-schmidt", Name: "Anna Schmidt"},
		},
		Weeks: []models.Week{
			{
				ID: "kw-44-2025", ISOWeek: 44, ISOYear: 2025, Start: "2025-10-27", End: "2025-10-31",
				Days: []models.WeekDay{
					{Label: models.Montag, Date: "2025-10-27"},
					{Label: models.Dienstag, Date: "2025-10-28"},
					{Label: models.Mittwoch, Date: "2025-10-29"},
					{Label: models.Donnerstag, Date: "2025-10-30"},
					{Label: models.Freitag, Date: "2025-10-31"},
				},
			},
		},
		Cells: []models.Cell{
			{EmployeeID: "clara-weber", WeekID: "kw-44-2025", DayIndex: 0, Value: models.AssignmentLate},
			{EmployeeID: "anna-schmidt", WeekID: "kw-44-2025", DayIndex: 4, Value: models.AssignmentHoliday},
			{EmployeeID: "anna-schmidt", WeekID: "kw-44-2025", DayIndex: 2, Value: models.AssignmentNone},
		},
		Settings: models.Settings{
			HighContrast:       true,
			FontScale:          1.25,
			DateFormat:         "DD.MM.YYYY",
			AutoHolidayMarking: true,
			Region:             "HH",
		},
		CalendarBase: models.CalendarBase{StartMondayISO: "2025-10-27"},
		UpdatedAt:    time.Date(2025, 10, 20, 9, 15, 0, 123, time.UTC),
	}
}

func TestLoadBeforeSaveIsNotFound(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.Load(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load() err = %v, want ErrNotFound", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := store.Load(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load() err = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	want := testSnapshot()

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	store := setupTestStore(t)
	first := testSnapshot()
	if err := store.Save(first); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	second := testSnapshot()
	second.Employees = second.Employees[1:]
	second.Cells = second.Cells[1:2]
	if err := store.Save(second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(second.Employees, got.Employees); diff != "" {
		t.Errorf("employees mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(second.Cells, got.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveDuplicateAddressLastWins(t *testing.T) {
	store := setupTestStore(t)
	s := testSnapshot()
	s.Cells = append(s.Cells, models.Cell{EmployeeID: "clara-weber", WeekID: "kw-44-2025", DayIndex: 0, Value: models.AssignmentEarly})

	if err := store.Save(s); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(got.Cells))
	}
	if got.Cells[0].Value != models.AssignmentEarly {
		t.Errorf("first cell = %q, want %q", got.Cells[0].Value, models.AssignmentEarly)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Save(testSnapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := NewStore(path)
	defer reopened.Close()
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Employees) != 2 || got.Settings.Region != "HH" {
		t.Errorf("unexpected snapshot after reopen: %+v", got)
	}
}

func TestSaveWithoutInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "roster.db"))
	if err := store.Save(testSnapshot()); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Save() err = %v, want ErrNotLoaded", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	n, err := store.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Migrate() applied %d migrations after Init, want 0", n)
	}
}
