package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/session"
	"github.com/julianstephens/roster/internal/tui/components/employees"
	"github.com/julianstephens/roster/internal/tui/components/toasts"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateEmployees
	StateFilter
	StateEditing
	StateConfirmRemove
)

// tickInterval drives toast expiry and picks up changes made outside the
// model, such as a holiday file reload.
const tickInterval = 500 * time.Millisecond

type tickMsg time.Time

type EmployeeFormModel struct {
	Name string
}

type Model struct {
	session      *session.Session
	state        SessionState
	keys         KeyMap
	help         help.Model
	toasts       toasts.Model
	employeeList employees.Model
	filterInput  textinput.Model
	form         *huh.Form
	employeeForm *EmployeeFormModel
	editingID    string
	removeTarget models.Employee
	filter       models.Filter
	clipboard    *roster.Clipboard
	week         int
	row          int
	col          int
	width        int
	height       int
	quitting     bool
}

// New builds the grid model on top of an initialized session.
func New(s *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Name filtern"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	var list []models.Employee
	s.View(func(r *roster.Roster) {
		list = r.Employees()
	})

	m := Model{
		session:      s,
		state:        StateGrid,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		toasts:       toasts.New(0),
		employeeList: employees.New(list, 0, 0),
		filterInput:  ti,
	}
	m.collectToasts()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateEmployees:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	case StateFilter:
		return []key.Binding{m.keys.Back}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state != StateGrid {
		return [][]key.Binding{m.ShortHelp()}
	}
	return m.keys.FullHelp()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// collectToasts moves the session's pending notifications on screen.
func (m *Model) collectToasts() {
	m.toasts.Push(m.session.Toasts().Drain()...)
}

// visible returns the filtered employees and the weeks under the session lock.
func (m Model) visible() ([]models.Employee, []models.Week) {
	var list []models.Employee
	var weeks []models.Week
	m.session.View(func(r *roster.Roster) {
		list = r.FilterEmployees(m.filter)
		weeks = r.Weeks()
	})
	return list, weeks
}

// clampCursor keeps the cursor inside the visible grid.
func (m *Model) clampCursor() {
	list, weeks := m.visible()
	m.week = clamp(m.week, len(weeks))
	m.row = clamp(m.row, len(list))
	m.col = clamp(m.col, len(models.WeekdayLabels))
}

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// cursor returns the address under the cursor.
func (m Model) cursor() (models.Address, bool) {
	list, weeks := m.visible()
	if m.row >= len(list) || m.week >= len(weeks) {
		return models.Address{}, false
	}
	return models.Address{
		EmployeeID: list[m.row].ID,
		WeekID:     weeks[m.week].ID,
		DayIndex:   m.col,
	}, true
}

func (m Model) valueAt(addr models.Address) models.Assignment {
	var v models.Assignment
	m.session.View(func(r *roster.Roster) {
		v = r.FindCellValue(addr.EmployeeID, addr.WeekID, addr.DayIndex)
	})
	return v
}

// nextAssignment steps through the values in display order and back to empty.
func nextAssignment(v models.Assignment) models.Assignment {
	if v.IsEmpty() {
		return models.Assignments[0]
	}
	for i, a := range models.Assignments {
		if a == v && i+1 < len(models.Assignments) {
			return models.Assignments[i+1]
		}
	}
	return models.AssignmentNone
}
