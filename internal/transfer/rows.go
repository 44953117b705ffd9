// Package transfer maps the roster grid to and from the flat tabular
// format: one row per employee and week, one column per weekday.
package transfer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
)

// Header is the fixed column order of every export
var Header = []string{"KW", "Datum", "Name", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag"}

// ErrMissingColumn is returned when an import lacks one of the Header columns
var ErrMissingColumn = errors.New("missing column")

// Lookup returns the value stored at an address
type Lookup func(employeeID, weekID string, dayIndex int) models.Assignment

// Row is one exported line
type Row struct {
	Week      string
	DateRange string
	Name      string
	Days      [5]string
}

// Fields returns the row in Header order
func (r Row) Fields() []string {
	out := make([]string, 0, len(Header))
	out = append(out, r.Week, r.DateRange, r.Name)
	return append(out, r.Days[:]...)
}

// BuildRows emits one row per week and employee, weeks outermost
func BuildRows(weeks []models.Week, employees []models.Employee, lookup Lookup, dateFormat string) []Row {
	rows := make([]Row, 0, len(weeks)*len(employees))
	for _, w := range weeks {
		label := calendar.WeekLabel(w)
		dateRange := calendar.FormatWeekRange(w, dateFormat)
		for _, e := range employees {
			row := Row{Week: label, DateRange: dateRange, Name: e.Name}
			for day := range w.Days {
				if day >= len(row.Days) {
					break
				}
				row.Days[day] = string(lookup(e.ID, w.ID, day))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// ImportReport summarises what an import matched
type ImportReport struct {
	Rows            int
	Imported        int
	UnknownEmployee int
	UnknownWeek     int
	// Unrecognized counts non-blank values outside the assignment set
	Unrecognized int
}

func (r ImportReport) String() string {
	return fmt.Sprintf("%d Zeilen, %d übernommen, %d unbekannte Mitarbeiter, %d unbekannte Wochen, %d unbekannte Werte",
		r.Rows, r.Imported, r.UnknownEmployee, r.UnknownWeek, r.Unrecognized)
}

// parseRecords maps header-keyed records onto cells. Employees are matched
// by exact name and weeks by ISO week number only.
func parseRecords(records [][]string, employees []models.Employee, weeks []models.Week) ([]models.Cell, ImportReport, error) {
	var report ImportReport
	if len(records) == 0 {
		return []models.Cell{}, report, nil
	}

	columns := make(map[string]int, len(Header))
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range Header {
		if _, ok := columns[name]; !ok {
			return nil, report, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	field := func(rec []string, name string) string {
		i := columns[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	byName := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		if _, dup := byName[e.Name]; !dup {
			byName[e.Name] = e
		}
	}

	cells := []models.Cell{}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		report.Rows++

		e, ok := byName[field(rec, "Name")]
		if !ok {
			report.UnknownEmployee++
			continue
		}
		w, ok := findWeek(weeks, field(rec, "KW"))
		if !ok {
			report.UnknownWeek++
			continue
		}

		for day, col := range Header[3:] {
			raw := field(rec, col)
			value := models.ParseAssignment(raw)
			if value.IsEmpty() && strings.TrimSpace(raw) != "" {
				report.Unrecognized++
			}
			cells = append(cells, models.Cell{EmployeeID: e.ID, WeekID: w.ID, DayIndex: day, Value: value})
		}
		report.Imported++
	}
	return cells, report, nil
}

// findWeek matches a "KW n" label against the loaded weeks by the digits it contains
func findWeek(weeks []models.Week, label string) (models.Week, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, label)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return models.Week{}, false
	}
	for _, w := range weeks {
		if w.ISOWeek == n {
			return w, true
		}
	}
	return models.Week{}, false
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
