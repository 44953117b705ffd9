package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Assignment is the value of a roster cell. The zero value means "no assignment".
type Assignment string

const (
	AssignmentNone Assignment = ""

	// Shifts
	AssignmentEarly Assignment = "Früh"
	AssignmentLate  Assignment = "Spät"

	// Absences
	AssignmentAbsent  Assignment = "Abwesend"
	AssignmentHoliday Assignment = "Feiertag"

	// Special duties
	AssignmentSpecial     Assignment = "Sonder"
	AssignmentConnox      Assignment = "Connox"
	AssignmentNarrowAisle Assignment = "Schmalgang"
	AssignmentOffsite     Assignment = "Außenlager"
	AssignmentSmallParts  Assignment = "Kleinteile/Konsi"
)

// Assignments is the closed set of accepted values in display order
var Assignments = []Assignment{
	AssignmentEarly,
	AssignmentLate,
	AssignmentAbsent,
	AssignmentHoliday,
	AssignmentSpecial,
	AssignmentConnox,
	AssignmentNarrowAisle,
	AssignmentOffsite,
	AssignmentSmallParts,
}

// AssignmentGroups groups the closed set the way the legend shows it
var AssignmentGroups = map[string][]Assignment{
	"standard": {AssignmentEarly, AssignmentLate},
	"absence":  {AssignmentAbsent, AssignmentHoliday},
	"special":  {AssignmentSpecial, AssignmentConnox, AssignmentNarrowAisle, AssignmentOffsite, AssignmentSmallParts},
}

// ParseAssignment maps free text onto the closed set using a case-insensitive
// exact match. Blank or unknown input yields AssignmentNone.
func ParseAssignment(s string) Assignment {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return AssignmentNone
	}
	for _, a := range Assignments {
		if strings.EqualFold(string(a), normalized) {
			return a
		}
	}
	return AssignmentNone
}

// IsEmpty reports whether the cell carries no assignment
func (a Assignment) IsEmpty() bool {
	return a == AssignmentNone
}

// IsValid reports whether a is empty or a member of the closed set
func (a Assignment) IsValid() bool {
	if a.IsEmpty() {
		return true
	}
	for _, known := range Assignments {
		if a == known {
			return true
		}
	}
	return false
}

// IsSpecial reports whether a is one of the special duties
func (a Assignment) IsSpecial() bool {
	switch a {
	case AssignmentNone, AssignmentEarly, AssignmentLate, AssignmentAbsent, AssignmentHoliday:
		return false
	default:
		return true
	}
}

// MarshalJSON writes an empty assignment as null
func (a Assignment) MarshalJSON() ([]byte, error) {
	if a.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = AssignmentNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid assignment: %w", err)
	}
	*a = Assignment(s)
	return nil
}

// Address identifies a single cell. At most one cell exists per address.
type Address struct {
	EmployeeID string `json:"employee_id"`
	WeekID     string `json:"week_id"`
	DayIndex   int    `json:"day_index"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s_%s_%d", a.EmployeeID, a.WeekID, a.DayIndex)
}

type Cell struct {
	EmployeeID string     `json:"employee_id"`
	WeekID     string     `json:"week_id"`
	DayIndex   int        `json:"day_index"` // 0 = Monday .. 4 = Friday
	Value      Assignment `json:"value"`
}

// Address returns the unique address of the cell
func (c Cell) Address() Address {
	return Address{EmployeeID: c.EmployeeID, WeekID: c.WeekID, DayIndex: c.DayIndex}
}

// CloneCells returns an independent copy of cells
func CloneCells(cells []Cell) []Cell {
	if cells == nil {
		return []Cell{}
	}
	out := make([]Cell, len(cells))
	copy(out, cells)
	return out
}
