// Package grid stores roster cells with at most one cell per address.
package grid

import "github.com/julianstephens/roster/internal/models"

// Grid keeps cells in insertion order with an address index for lookups.
// A Grid is not safe for concurrent use.
type Grid struct {
	cells []models.Cell
	index map[models.Address]int
}

// New returns a grid holding cells. Duplicate addresses collapse, last one wins.
func New(cells []models.Cell) *Grid {
	g := &Grid{}
	g.Replace(cells)
	return g
}

func (g *Grid) Len() int {
	return len(g.cells)
}

// Get returns the cell at addr
func (g *Grid) Get(addr models.Address) (models.Cell, bool) {
	i, ok := g.index[addr]
	if !ok {
		return models.Cell{}, false
	}
	return g.cells[i], true
}

// Value returns the assignment at addr, empty when no cell exists
func (g *Grid) Value(addr models.Address) models.Assignment {
	if c, ok := g.Get(addr); ok {
		return c.Value
	}
	return models.AssignmentNone
}

// Set writes value at addr, creating the cell if needed. It reports whether
// the stored value changed.
func (g *Grid) Set(addr models.Address, value models.Assignment) bool {
	if i, ok := g.index[addr]; ok {
		if g.cells[i].Value == value {
			return false
		}
		g.cells[i].Value = value
		return true
	}
	g.index[addr] = len(g.cells)
	g.cells = append(g.cells, models.Cell{
		EmployeeID: addr.EmployeeID,
		WeekID:     addr.WeekID,
		DayIndex:   addr.DayIndex,
		Value:      value,
	})
	return true
}

// Clear empties the cell at addr. Missing cells are left missing.
func (g *Grid) Clear(addr models.Address) bool {
	i, ok := g.index[addr]
	if !ok || g.cells[i].Value.IsEmpty() {
		return false
	}
	g.cells[i].Value = models.AssignmentNone
	return true
}

// Replace swaps the whole content for cells
func (g *Grid) Replace(cells []models.Cell) {
	g.cells = make([]models.Cell, 0, len(cells))
	g.index = make(map[models.Address]int, len(cells))
	for _, c := range cells {
		addr := c.Address()
		if i, ok := g.index[addr]; ok {
			g.cells[i].Value = c.Value
			continue
		}
		g.index[addr] = len(g.cells)
		g.cells = append(g.cells, c)
	}
}

// RemoveEmployee drops every cell of an employee and returns how many were removed
func (g *Grid) RemoveEmployee(employeeID string) int {
	return g.removeWhere(func(c models.Cell) bool { return c.EmployeeID == employeeID })
}

// RemoveWeek drops every cell of a week and returns how many were removed
func (g *Grid) RemoveWeek(weekID string) int {
	return g.removeWhere(func(c models.Cell) bool { return c.WeekID == weekID })
}

func (g *Grid) removeWhere(drop func(models.Cell) bool) int {
	kept := make([]models.Cell, 0, len(g.cells))
	for _, c := range g.cells {
		if !drop(c) {
			kept = append(kept, c)
		}
	}
	removed := len(g.cells) - len(kept)
	if removed > 0 {
		g.Replace(kept)
	}
	return removed
}

// Cells returns a copy of all cells in insertion order
func (g *Grid) Cells() []models.Cell {
	return models.CloneCells(g.cells)
}

// Each calls fn for every cell in insertion order
func (g *Grid) Each(fn func(models.Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}
