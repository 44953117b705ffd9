// Package stats counts assignments per employee and week.
package stats

import "github.com/julianstephens/roster/internal/models"

// Counts tallies one employee-week. Every special duty is counted as Special.
type Counts struct {
	Early   int `json:"frueh"`
	Late    int `json:"spaet"`
	Absent  int `json:"abwesend"`
	Holiday int `json:"feiertag"`
	Special int `json:"sonder"`
}

// Total returns the number of assigned days
func (c Counts) Total() int {
	return c.Early + c.Late + c.Absent + c.Holiday + c.Special
}

func (c *Counts) add(a models.Assignment) {
	switch a {
	case models.AssignmentNone:
	case models.AssignmentEarly:
		c.Early++
	case models.AssignmentLate:
		c.Late++
	case models.AssignmentAbsent:
		c.Absent++
	case models.AssignmentHoliday:
		c.Holiday++
	default:
		c.Special++
	}
}

type EmployeeWeek struct {
	EmployeeID string `json:"employee_id"`
	WeekID     string `json:"week_id"`
	Counts     Counts `json:"counts"`
}

// Lookup returns the value stored at an address
type Lookup func(employeeID, weekID string, dayIndex int) models.Assignment

// BuildWeekStats returns one entry per week and employee, weeks outermost
func BuildWeekStats(weeks []models.Week, employees []models.Employee, lookup Lookup) []EmployeeWeek {
	out := make([]EmployeeWeek, 0, len(weeks)*len(employees))
	for _, w := range weeks {
		for _, e := range employees {
			entry := EmployeeWeek{EmployeeID: e.ID, WeekID: w.ID}
			for day := range w.Days {
				entry.Counts.add(lookup(e.ID, w.ID, day))
			}
			out = append(out, entry)
		}
	}
	return out
}

// Summarize tallies a flat list of assignments
func Summarize(values []models.Assignment) Counts {
	var c Counts
	for _, v := range values {
		c.add(v)
	}
	return c
}

// ByEmployee folds week entries into one total per employee
func ByEmployee(entries []EmployeeWeek) map[string]Counts {
	out := make(map[string]Counts)
	for _, e := range entries {
		c := out[e.EmployeeID]
		c.Early += e.Counts.Early
		c.Late += e.Counts.Late
		c.Absent += e.Counts.Absent
		c.Holiday += e.Counts.Holiday
		c.Special += e.Counts.Special
		out[e.EmployeeID] = c
	}
	return out
}
