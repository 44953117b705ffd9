package roster

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/roster/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Anna Schmidt", "anna-schmidt"},
		{"Jürgen Groß", "jurgen-gross"},
		{"  --Zoë  O'Neil--  ", "zoe-o-neil"},
		{"Ćelik, Ana", "celik-ana"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddEmployee(t *testing.T) {
	r := newTestRoster(t)

	e, err := r.AddEmployee("Anna")
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}
	if e.ID != "anna-1" {
		t.Errorf("expected disambiguated id anna-1, got %s", e.ID)
	}
	e2, _ := r.AddEmployee("Anna")
	if e2.ID != "anna-2" {
		t.Errorf("expected anna-2, got %s", e2.ID)
	}

	if got := r.FindCellValue(e.ID, kw44, 4); got != models.AssignmentHoliday {
		t.Errorf("new employee not locked on holiday: %q", got)
	}
	if _, ok := r.grid.Get(models.Address{EmployeeID: e.ID, WeekID: kw45, DayIndex: 2}); !ok {
		t.Error("new employee cells not created eagerly")
	}

	odd, _ := r.AddEmployee("???")
	if !strings.HasPrefix(odd.ID, "employee-") {
		t.Errorf("expected fallback id, got %s", odd.ID)
	}

	if _, err := r.AddEmployee("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestRenameAndRemoveEmployee(t *testing.T) {
	r := newTestRoster(t)
	r.SetCell("ben", kw44, 0, models.AssignmentEarly)

	if err := r.RenameEmployee("ben", "Benjamin"); err != nil {
		t.Fatalf("RenameEmployee failed: %v", err)
	}
	if e, _ := r.Employee("ben"); e.Name != "Benjamin" {
		t.Errorf("name = %q", e.Name)
	}
	if err := r.RenameEmployee("nobody", "X"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := r.RemoveEmployee("ben"); err != nil {
		t.Fatalf("RemoveEmployee failed: %v", err)
	}
	for _, c := range r.Cells() {
		if c.EmployeeID == "ben" {
			t.Fatalf("cell of removed employee survived: %+v", c)
		}
	}
	if err := r.RemoveEmployee("ben"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestMoveEmployee(t *testing.T) {
	r := newTestRoster(t)
	r.AddEmployee("Clara")

	ids := func() []string {
		var out []string
		for _, e := range r.Employees() {
			out = append(out, e.ID)
		}
		return out
	}

	if !r.MoveEmployee(0, 2) {
		t.Fatal("MoveEmployee failed")
	}
	if diff := cmp.Diff([]string{"ben", "clara", "anna"}, ids()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if !r.MoveEmployee(2, 0) {
		t.Fatal("MoveEmployee failed")
	}
	if diff := cmp.Diff([]string{"anna", "ben", "clara"}, ids()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	for _, tc := range [][2]int{{1, 1}, {-1, 0}, {0, 3}} {
		if r.MoveEmployee(tc[0], tc[1]) {
			t.Errorf("MoveEmployee(%d, %d) should be a no-op", tc[0], tc[1])
		}
	}
}

func TestFilterEmployees(t *testing.T) {
	r := newTestRoster(t)
	r.SetCell("ben", kw45, 0, models.AssignmentConnox)

	got := r.FilterEmployees(models.Filter{EmployeeQuery: "AN"})
	if len(got) != 1 || got[0].ID != "anna" {
		t.Errorf("name filter = %v", got)
	}
	got = r.FilterEmployees(models.Filter{Assignment: models.AssignmentConnox})
	if len(got) != 1 || got[0].ID != "ben" {
		t.Errorf("assignment filter = %v", got)
	}
	if got := r.FilterEmployees(models.Filter{}); len(got) != 2 {
		t.Errorf("zero filter returned %d employees", len(got))
	}
}

func TestFindEmployee(t *testing.T) {
	r := newTestRoster(t)
	if e, ok := r.FindEmployee("Ben"); !ok || e.ID != "ben" {
		t.Errorf("lookup by name failed: %+v %v", e, ok)
	}
	if e, ok := r.FindEmployee("anna"); !ok || e.Name != "Anna" {
		t.Errorf("lookup by id failed: %+v %v", e, ok)
	}
}
