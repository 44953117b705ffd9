package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/notify"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 20 * time.Millisecond

type memStore struct {
	mu       sync.Mutex
	snapshot models.Snapshot
	stored   bool
	loadErr  error
	saveErr  error
	saves    []models.Snapshot
	closed   bool
}

func (m *memStore) Init() error { return nil }

func (m *memStore) Load() (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.Snapshot{}, m.loadErr
	}
	if !m.stored {
		return models.Snapshot{}, storage.ErrNotFound
	}
	return m.snapshot.Clone(), nil
}

func (m *memStore) Save(s models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = s.Clone()
	m.stored = true
	m.saves = append(m.saves, s.Clone())
	return nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *memStore) GetConfigPath() string { return "memory" }

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *memStore) last() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot.Clone()
}

func (m *memStore) setSaveErr(err error) {
	m.mu.Lock()
	m.saveErr = err
	m.mu.Unlock()
}

type failingProvider struct{}

func (failingProvider) Holidays(context.Context, string, []int) ([]models.Holiday, error) {
	return nil, errors.New("offline")
}

func newSession(t *testing.T, store *memStore, provider holidays.Provider) *Session {
	t.Helper()
	s := New(Options{Store: store, Holidays: provider, Debounce: testDebounce})
	t.Cleanup(func() { s.Close() })
	return s
}

func countToasts(q *notify.Queue, message string) int {
	n := 0
	for _, toast := range q.List() {
		if toast.Message == message {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestInitializeSeedsAndPersists(t *testing.T) {
	store := &memStore{}
	s := newSession(t, store, holidays.NewGermanProvider())

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if store.saveCount() == 0 {
		t.Fatal("seed roster was not persisted immediately")
	}
	store.mu.Lock()
	first := store.saves[0]
	store.mu.Unlock()
	if got := len(first.Employees); got != len(roster.SeedEmployees) {
		t.Errorf("seed has %d employees, want %d", got, len(roster.SeedEmployees))
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	last := store.last()
	found := false
	for _, c := range last.Cells {
		if c.WeekID == "kw-44-2025" && c.DayIndex == 4 {
			found = true
			if c.Value != models.AssignmentHoliday {
				t.Errorf("Reformationstag cell = %q, want %q", c.Value, models.AssignmentHoliday)
			}
		}
	}
	if !found {
		t.Error("no cells persisted for kw-44-2025 Friday")
	}
}

func TestInitializeMalformedSeeds(t *testing.T) {
	store := &memStore{loadErr: storage.ErrMalformed}
	s := newSession(t, store, nil)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if store.saveCount() != 1 {
		t.Errorf("expected the seed to be saved once, got %d saves", store.saveCount())
	}
}

func TestInitializeLoadFailureKeepsStore(t *testing.T) {
	store := &memStore{loadErr: errors.New("connection refused")}
	s := newSession(t, store, nil)

	if err := s.Initialize(context.Background()); err == nil {
		t.Fatal("Initialize() should report the load failure")
	}
	if store.saveCount() != 0 {
		t.Errorf("store was overwritten after a load failure")
	}
	if countToasts(s.Toasts(), constants.MsgLoadFailed) != 1 {
		t.Errorf("expected one load failure toast, got %v", s.Toasts().List())
	}

	var employees int
	s.View(func(r *roster.Roster) { employees = len(r.Employees()) })
	if employees != len(roster.SeedEmployees) {
		t.Errorf("in-memory roster has %d employees, want the seed", employees)
	}
}

func TestInitializeLoadsStoredRoster(t *testing.T) {
	stored := roster.Seed()
	stored.Employees = stored.Employees[:2]
	stored.Cells = []models.Cell{{EmployeeID: stored.Employees[0].ID, WeekID: stored.Weeks[0].ID, DayIndex: 0, Value: models.AssignmentLate}}
	store := &memStore{snapshot: stored, stored: true}
	s := newSession(t, store, nil)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if store.saveCount() != 0 {
		t.Errorf("loading should not save, got %d saves", store.saveCount())
	}
	s.View(func(r *roster.Roster) {
		if got := r.FindCellValue(stored.Employees[0].ID, stored.Weeks[0].ID, 0); got != models.AssignmentLate {
			t.Errorf("loaded value = %q, want %q", got, models.AssignmentLate)
		}
	})
}

func TestDebouncedSavesCoalesce(t *testing.T) {
	store := &memStore{}
	s := newSession(t, store, nil)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := store.saveCount()

	weekID := "kw-42-2025"
	for day := 0; day < 5; day++ {
		s.SetCell(models.Address{EmployeeID: "anna-schmidt", WeekID: weekID, DayIndex: day}, models.AssignmentEarly)
	}

	waitFor(t, func() bool { return store.saveCount() > before })
	time.Sleep(5 * testDebounce)

	if got := store.saveCount() - before; got != 1 {
		t.Fatalf("burst of edits produced %d saves, want 1", got)
	}
	last := store.last()
	for _, c := range last.Cells {
		if c.EmployeeID == "anna-schmidt" && c.WeekID == weekID && c.Value != models.AssignmentEarly {
			t.Errorf("day %d = %q, want %q", c.DayIndex, c.Value, models.AssignmentEarly)
		}
	}
}

func TestSaveFailureToastIsDeduplicated(t *testing.T) {
	store := &memStore{}
	s := newSession(t, store, nil)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	store.setSaveErr(errors.New("disk full"))

	addr := models.Address{EmployeeID: "ben-mueller", WeekID: "kw-43-2025", DayIndex: 2}
	s.SetCell(addr, models.AssignmentLate)
	if err := s.Flush(); err == nil {
		t.Fatal("Flush() should surface the save error")
	}
	s.SetCell(addr, models.AssignmentEarly)
	if err := s.Flush(); err == nil {
		t.Fatal("Flush() should surface the save error")
	}

	if n := countToasts(s.Toasts(), constants.MsgSaveFailed); n != 1 {
		t.Errorf("save failure toasts = %d, want 1", n)
	}
	s.View(func(r *roster.Roster) {
		if got := r.FindCellValue(addr.EmployeeID, addr.WeekID, addr.DayIndex); got != models.AssignmentEarly {
			t.Errorf("in-memory value = %q, want %q", got, models.AssignmentEarly)
		}
	})

	store.setSaveErr(nil)
	s.SetCell(addr, models.AssignmentAbsent)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() after recovery failed: %v", err)
	}
	if got := store.last(); len(got.Cells) == 0 {
		t.Error("recovered save wrote no cells")
	}
}

func TestFlushWithoutChangesDoesNotSave(t *testing.T) {
	store := &memStore{}
	s := newSession(t, store, nil)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := store.saveCount()

	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if store.saveCount() != before {
		t.Errorf("Flush() without changes saved %d times", store.saveCount()-before)
	}
}

func TestLockedCellWarns(t *testing.T) {
	store := &memStore{}
	s := newSession(t, store, holidays.NewGermanProvider())
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	locked := models.Address{EmployeeID: "anna-schmidt", WeekID: "kw-44-2025", DayIndex: 4}
	if s.SetCell(locked, models.AssignmentEarly) {
		t.Error("SetCell on a locked holiday succeeded")
	}
	if s.ClearCell(locked) {
		t.Error("ClearCell on a locked holiday succeeded")
	}
	if countToasts(s.Toasts(), constants.MsgHolidayLocked) != 1 || countToasts(s.Toasts(), constants.MsgHolidayNoClear) != 1 {
		t.Errorf("unexpected toasts: %v", s.Toasts().List())
	}

	var canUndo bool
	s.View(func(r *roster.Roster) { canUndo = r.CanUndo() })
	if canUndo {
		t.Error("rejected writes must not create history")
	}

	res := s.FillWeek("anna-schmidt", "kw-44-2025", models.AssignmentLate)
	if res.Applied != 4 || res.Skipped != 1 {
		t.Errorf("FillWeek = %+v, want 4 applied and 1 skipped", res)
	}
	if countToasts(s.Toasts(), constants.MsgHolidayKept) != 1 {
		t.Error("expected a toast about kept holidays")
	}
}

func TestOverwriteWarning(t *testing.T) {
	s := newSession(t, &memStore{}, nil)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	addr := models.Address{EmployeeID: "clara-weber", WeekID: "kw-42-2025", DayIndex: 1}
	s.SetCell(addr, models.AssignmentEarly)
	s.SetCell(addr, models.AssignmentEarly)
	if countToasts(s.Toasts(), constants.MsgPreviousOverwrite) != 0 {
		t.Error("writing the same value must not warn")
	}
	s.SetCell(addr, models.AssignmentLate)
	if countToasts(s.Toasts(), constants.MsgPreviousOverwrite) != 1 {
		t.Error("overwriting a different value must warn")
	}

	if !s.Undo() {
		t.Fatal("Undo() failed")
	}
	s.View(func(r *roster.Roster) {
		if got := r.FindCellValue(addr.EmployeeID, addr.WeekID, addr.DayIndex); got != models.AssignmentEarly {
			t.Errorf("after undo = %q, want %q", got, models.AssignmentEarly)
		}
	})
	if !s.Redo() {
		t.Fatal("Redo() failed")
	}
}

func TestHolidayFetchFailureIsDegraded(t *testing.T) {
	s := newSession(t, &memStore{}, failingProvider{})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if countToasts(s.Toasts(), constants.MsgHolidayFetch) != 1 {
		t.Errorf("expected a holiday warning, got %v", s.Toasts().List())
	}
	if err := s.RefreshHolidays(context.Background()); err == nil {
		t.Error("RefreshHolidays() should report the failure")
	}
	if countToasts(s.Toasts(), constants.MsgHolidayFetch) != 1 {
		t.Error("holiday warning should not repeat while queued")
	}
}

func TestRebaseAndImport(t *testing.T) {
	s := newSession(t, &memStore{}, holidays.NewGermanProvider())
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	start := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	base := s.Rebase(context.Background(), start, roster.RebaseOptions{ClearAssignments: true})
	if base.StartMondayISO != "2025-12-22" {
		t.Errorf("StartMondayISO = %s, want 2025-12-22", base.StartMondayISO)
	}
	if countToasts(s.Toasts(), constants.MsgCalendarUpdated) != 1 {
		t.Error("expected a calendar toast")
	}
	s.View(func(r *roster.Roster) {
		// Neujahr 2026 falls on Thursday of KW 1
		if !r.IsLocked("kw-1-2026", 3) {
			t.Error("Neujahr 2026 should be locked after rebase")
		}
	})

	conflicts := s.Import([]models.Cell{
		{EmployeeID: "anna-schmidt", WeekID: "kw-52-2025", DayIndex: 0, Value: models.AssignmentEarly},
		{EmployeeID: "anna-schmidt", WeekID: "kw-52-2025", DayIndex: 0, Value: models.AssignmentLate},
	})
	if len(conflicts) != 1 {
		t.Errorf("Import conflicts = %d, want 1", len(conflicts))
	}
	if countToasts(s.Toasts(), constants.MsgConflictDetected) != 1 || countToasts(s.Toasts(), constants.MsgImportDone) != 1 {
		t.Errorf("unexpected toasts: %v", s.Toasts().List())
	}
	s.View(func(r *roster.Roster) {
		if got := r.FindCellValue("anna-schmidt", "kw-52-2025", 0); got != models.AssignmentLate {
			t.Errorf("imported value = %q, want last value %q", got, models.AssignmentLate)
		}
	})
}

func TestUpdateSettingsRefreshesHolidays(t *testing.T) {
	s := newSession(t, &memStore{}, holidays.NewGermanProvider())
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	var settings models.Settings
	s.View(func(r *roster.Roster) { settings = r.Settings() })

	// Reformationstag is not a holiday in Bavaria
	settings.Region = "BY"
	s.UpdateSettings(context.Background(), settings)
	s.View(func(r *roster.Roster) {
		if r.IsLocked("kw-44-2025", 4) {
			t.Error("kw-44-2025 Friday should not be locked for BY")
		}
		if len(r.Holidays()) == 0 {
			t.Error("holidays were not refetched")
		}
	})
}

func TestCloseFlushesAndStops(t *testing.T) {
	store := &memStore{}
	s := New(Options{Store: store, Debounce: time.Hour})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := store.saveCount()

	s.SetCell(models.Address{EmployeeID: "greta-hoffmann", WeekID: "kw-45-2025", DayIndex: 0}, models.AssignmentSpecial)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if store.saveCount() != before+1 {
		t.Errorf("Close() saved %d times, want 1", store.saveCount()-before)
	}
	store.mu.Lock()
	closed := store.closed
	store.mu.Unlock()
	if !closed {
		t.Error("store was not closed")
	}

	s.SetCell(models.Address{EmployeeID: "greta-hoffmann", WeekID: "kw-45-2025", DayIndex: 1}, models.AssignmentSpecial)
	time.Sleep(2 * testDebounce)
	if store.saveCount() != before+1 {
		t.Error("mutations after Close must not be persisted")
	}
}

func TestCloseRetriesFailedDebouncedSave(t *testing.T) {
	store := &memStore{}
	s := New(Options{Store: store, Debounce: testDebounce})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	store.setSaveErr(errors.New("disk full"))

	addr := models.Address{EmployeeID: "clara-weber", WeekID: "kw-46-2025", DayIndex: 3}
	s.SetCell(addr, models.AssignmentEarly)
	waitFor(t, func() bool { return countToasts(s.Toasts(), constants.MsgSaveFailed) == 1 })

	store.setSaveErr(nil)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	var got models.Assignment
	for _, c := range store.last().Cells {
		if c.Address() == addr {
			got = c.Value
		}
	}
	if got != models.AssignmentEarly {
		t.Errorf("persisted value = %q, want %q", got, models.AssignmentEarly)
	}
}

func TestRejectedWriteDoesNotSchedule(t *testing.T) {
	store := &memStore{}
	s := New(Options{Store: store, Debounce: time.Hour})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := store.saveCount()

	if s.SetCell(models.Address{EmployeeID: "anna-schmidt", WeekID: "kw-42-2025", DayIndex: 7}, models.AssignmentEarly) {
		t.Error("SetCell accepted day index 7")
	}
	if s.SetCell(models.Address{EmployeeID: "nobody", WeekID: "kw-99-1999", DayIndex: 0}, models.AssignmentLate) {
		t.Error("SetCell accepted an unknown employee and week")
	}
	s.View(func(r *roster.Roster) {
		if r.CanUndo() {
			t.Error("rejected writes pushed history")
		}
	})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if store.saveCount() != before {
		t.Errorf("rejected writes caused %d saves", store.saveCount()-before)
	}
}
