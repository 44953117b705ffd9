package models

import "strings"

// Filter narrows the visible employees. A zero Filter matches everyone.
type Filter struct {
	EmployeeQuery string     `json:"employee_query"`
	Assignment    Assignment `json:"assignment"`
}

// IsZero reports whether f filters nothing
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.EmployeeQuery) == "" && f.Assignment.IsEmpty()
}

// MatchesName reports whether name contains the query, ignoring case
func (f Filter) MatchesName(name string) bool {
	q := strings.TrimSpace(f.EmployeeQuery)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q))
}
