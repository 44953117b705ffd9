package models

import "time"

// Snapshot is the unit of persistence: the complete roster state at one point in time
type Snapshot struct {
	Employees    []Employee   `json:"employees"`
	Weeks        []Week       `json:"weeks"`
	Cells        []Cell       `json:"cells"`
	Settings     Settings     `json:"settings"`
	CalendarBase CalendarBase `json:"calendar_base"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Clone returns a deep copy of s
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Employees = append([]Employee{}, s.Employees...)
	out.Weeks = make([]Week, len(s.Weeks))
	for i, w := range s.Weeks {
		out.Weeks[i] = w.Clone()
	}
	out.Cells = CloneCells(s.Cells)
	return out
}

// IsEmpty reports whether s carries no roster at all
func (s Snapshot) IsEmpty() bool {
	return len(s.Employees) == 0 && len(s.Weeks) == 0 && len(s.Cells) == 0
}
