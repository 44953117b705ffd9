package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/julianstephens/roster/internal/models"
)

var (
	// ErrEmployeeNotFound is returned for unknown employee ids
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmptyName is returned when an employee name is blank
	ErrEmptyName = errors.New("employee name is empty")
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	sharpSReplace = strings.NewReplacer("ß", "ss", "ẞ", "ss")
)

// Slugify lowercases name, folds diacritics and joins the remaining
// alphanumeric runs with dashes.
func Slugify(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		sharpSReplace.Replace(strings.ToLower(name)),
	)
	if err != nil {
		folded = strings.ToLower(name)
	}
	return strings.Trim(nonSlugChars.ReplaceAllString(folded, "-"), "-")
}

func (r *Roster) uniqueEmployeeID(name string) string {
	base := Slugify(name)
	if base == "" {
		base = fmt.Sprintf("employee-%d", time.Now().UnixMilli())
	}
	candidate := base
	for n := 1; r.employeeIndex(candidate) >= 0; n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}

// AddEmployee appends an employee with an empty cell for every week day.
// Employee changes are not undoable.
func (r *Roster) AddEmployee(name string) (models.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Employee{}, ErrEmptyName
	}
	e := models.Employee{ID: r.uniqueEmployeeID(name), Name: name}
	r.employees = append(r.employees, e)
	for _, w := range r.weeks {
		for day := range w.Days {
			r.grid.Set(models.Address{EmployeeID: e.ID, WeekID: w.ID, DayIndex: day}, models.AssignmentNone)
		}
	}
	r.applyHolidayLocks()
	r.touch()
	return e, nil
}

// RenameEmployee changes the display name; the id stays stable
func (r *Roster) RenameEmployee(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i := r.employeeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	r.employees[i].Name = name
	r.touch()
	return nil
}

// RemoveEmployee deletes the employee and all of their cells
func (r *Roster) RemoveEmployee(id string) error {
	i := r.employeeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	r.employees = append(r.employees[:i:i], r.employees[i+1:]...)
	r.grid.RemoveEmployee(id)
	r.applyHolidayLocks()
	r.touch()
	return nil
}

// MoveEmployee moves the employee at index from to index to. Out of range
// or equal indices are ignored; the return value reports whether anything moved.
func (r *Roster) MoveEmployee(from, to int) bool {
	n := len(r.employees)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	moved := r.employees[from]
	rest := append(append([]models.Employee{}, r.employees[:from]...), r.employees[from+1:]...)
	out := make([]models.Employee, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	r.employees = out
	r.touch()
	return true
}

// FindEmployee resolves an employee by id or, failing that, by exact name
func (r *Roster) FindEmployee(ref string) (models.Employee, bool) {
	if e, ok := r.Employee(ref); ok {
		return e, true
	}
	for _, e := range r.employees {
		if e.Name == ref {
			return e, true
		}
	}
	return models.Employee{}, false
}

// FilterEmployees returns the employees matching f in display order. An
// assignment filter keeps employees with at least one cell of that value.
func (r *Roster) FilterEmployees(f models.Filter) []models.Employee {
	var withValue map[string]bool
	if !f.Assignment.IsEmpty() {
		withValue = make(map[string]bool)
		r.grid.Each(func(c models.Cell) {
			if c.Value == f.Assignment {
				withValue[c.EmployeeID] = true
			}
		})
	}

	out := []models.Employee{}
	for _, e := range r.employees {
		if !f.MatchesName(e.Name) {
			continue
		}
		if withValue != nil && !withValue[e.ID] {
			continue
		}
		out = append(out, e)
	}
	return out
}
