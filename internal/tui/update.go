package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/tui/components/employees"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.toasts.SetWidth(msg.Width)
		m.employeeList.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case tickMsg:
		m.collectToasts()
		m.toasts.Expire(time.Time(msg))
		m.clampCursor()
		return m, tick()

	case employees.AddEmployeeMsg:
		return m.openEmployeeForm("Neuer Mitarbeiter", "", "")
	case employees.RenameEmployeeMsg:
		return m.openEmployeeForm("Mitarbeiter umbenennen", msg.Employee.ID, msg.Employee.Name)
	case employees.RemoveEmployeeMsg:
		m.removeTarget = msg.Employee
		m.state = StateConfirmRemove
		return m, nil
	case employees.MoveEmployeeMsg:
		m.moveEmployee(msg.ID, msg.Delta)
		return m, nil
	case employees.SelectEmployeeMsg:
		m.jumpTo(msg.ID)
		m.state = StateGrid
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmRemove:
		return m.updateConfirmRemove(msg)
	case StateFilter:
		return m.updateFilter(msg)
	case StateEmployees:
		return m.updateEmployees(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.col--
	case key.Matches(msg, m.keys.Right):
		m.col++
	case key.Matches(msg, m.keys.PrevWeek):
		m.week--
	case key.Matches(msg, m.keys.NextWeek):
		m.week++
	case key.Matches(msg, m.keys.Cycle):
		if addr, ok := m.cursor(); ok {
			m.session.SetCell(addr, nextAssignment(m.valueAt(addr)))
		}
	case key.Matches(msg, m.keys.Early):
		m.setCursor(models.AssignmentEarly)
	case key.Matches(msg, m.keys.Late):
		m.setCursor(models.AssignmentLate)
	case key.Matches(msg, m.keys.Absent):
		m.setCursor(models.AssignmentAbsent)
	case key.Matches(msg, m.keys.Holiday):
		m.setCursor(models.AssignmentHoliday)
	case key.Matches(msg, m.keys.Clear):
		if addr, ok := m.cursor(); ok {
			m.session.ClearCell(addr)
		}
	case key.Matches(msg, m.keys.FillWeek):
		if addr, ok := m.cursor(); ok {
			m.session.FillWeek(addr.EmployeeID, addr.WeekID, m.valueAt(addr))
		}
	case key.Matches(msg, m.keys.FillDay):
		if addr, ok := m.cursor(); ok {
			m.session.FillColumn(addr.WeekID, addr.DayIndex, m.valueAt(addr))
		}
	case key.Matches(msg, m.keys.CopyCell):
		m.copy(roster.ScopeCell)
	case key.Matches(msg, m.keys.CopyRow):
		m.copy(roster.ScopeRow)
	case key.Matches(msg, m.keys.CopyWeek):
		m.copy(roster.ScopeWeek)
	case key.Matches(msg, m.keys.Paste):
		if addr, ok := m.cursor(); ok && m.clipboard != nil {
			m.session.Paste(*m.clipboard, addr)
		}
	case key.Matches(msg, m.keys.Undo):
		m.session.Undo()
	case key.Matches(msg, m.keys.Redo):
		m.session.Redo()
	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		m.filterInput.SetValue(m.filter.EmployeeQuery)
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.ValueFilt):
		m.filter.Assignment = nextAssignment(m.filter.Assignment)
		m.row = 0
	case key.Matches(msg, m.keys.Employees):
		var list []models.Employee
		m.session.View(func(r *roster.Roster) {
			list = r.Employees()
		})
		selected := ""
		if addr, ok := m.cursor(); ok {
			selected = addr.EmployeeID
		}
		m.employeeList.SetEmployees(list, selected)
		m.state = StateEmployees
	case key.Matches(msg, m.keys.Back):
		m.filter = models.Filter{}
	}

	m.clampCursor()
	m.collectToasts()
	return m, nil
}

func (m *Model) setCursor(v models.Assignment) {
	if addr, ok := m.cursor(); ok {
		m.session.SetCell(addr, v)
	}
}

func (m *Model) copy(scope roster.CopyScope) {
	addr, ok := m.cursor()
	if !ok {
		return
	}
	if clip, ok := m.session.Copy(scope, addr); ok {
		m.clipboard = &clip
	}
}

// jumpTo moves the cursor onto an employee, dropping a filter that hides them.
func (m *Model) jumpTo(id string) {
	for attempt := 0; attempt < 2; attempt++ {
		list, _ := m.visible()
		for i, e := range list {
			if e.ID == id {
				m.row = i
				return
			}
		}
		m.filter = models.Filter{}
	}
}

func (m *Model) moveEmployee(id string, delta int) {
	var list []models.Employee
	m.session.Update(func(r *roster.Roster) {
		for i, e := range r.Employees() {
			if e.ID == id {
				r.MoveEmployee(i, i+delta)
				break
			}
		}
		list = r.Employees()
	})
	m.employeeList.SetEmployees(list, id)
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.filterInput.Blur()
			m.state = StateGrid
			return m, nil
		case tea.KeyEsc:
			m.filterInput.Blur()
			m.filter.EmployeeQuery = ""
			m.state = StateGrid
			m.clampCursor()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter.EmployeeQuery = m.filterInput.Value()
	m.row = 0
	return m, cmd
}

func (m Model) updateEmployees(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && !m.employeeList.Filtering() {
		switch {
		case key.Matches(k, m.keys.Back):
			m.state = StateGrid
			m.clampCursor()
			return m, nil
		case k.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.employeeList, cmd = m.employeeList.Update(msg)
	return m, cmd
}

func (m Model) openEmployeeForm(title, id, name string) (tea.Model, tea.Cmd) {
	m.employeeForm = &EmployeeFormModel{Name: name}
	m.editingID = id
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&m.employeeForm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		m.state = StateEmployees
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveEmployeeForm()
		m.form = nil
		m.state = StateEmployees
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = StateEmployees
		return m, nil
	}
	return m, cmd
}

func (m *Model) saveEmployeeForm() {
	name := strings.TrimSpace(m.employeeForm.Name)
	selectID := m.editingID
	var list []models.Employee
	var err error
	m.session.Update(func(r *roster.Roster) {
		if m.editingID == "" {
			var e models.Employee
			e, err = r.AddEmployee(name)
			selectID = e.ID
		} else {
			err = r.RenameEmployee(m.editingID, name)
		}
		list = r.Employees()
	})
	if err != nil {
		m.session.Toasts().Error(err.Error())
	}
	m.employeeList.SetEmployees(list, selectID)
	m.employeeForm = nil
	m.editingID = ""
	m.collectToasts()
}

func (m Model) updateConfirmRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		var list []models.Employee
		var err error
		m.session.Update(func(r *roster.Roster) {
			err = r.RemoveEmployee(m.removeTarget.ID)
			list = r.Employees()
		})
		if err != nil {
			m.session.Toasts().Error(err.Error())
		}
		m.employeeList.SetEmployees(list, "")
		m.removeTarget = models.Employee{}
		m.state = StateEmployees
		m.clampCursor()
		m.collectToasts()
	case "n", "N", "esc":
		m.removeTarget = models.Employee{}
		m.state = StateEmployees
	}
	return m, nil
}
