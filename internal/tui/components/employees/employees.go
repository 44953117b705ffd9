package employees

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/roster/internal/models"
)

type AddEmployeeMsg struct{}

type RenameEmployeeMsg struct {
	Employee models.Employee
}

type RemoveEmployeeMsg struct {
	Employee models.Employee
}

type MoveEmployeeMsg struct {
	ID    string
	Delta int
}

// SelectEmployeeMsg asks the grid to put the cursor on the employee's row.
type SelectEmployeeMsg struct {
	ID string
}

type Item struct {
	Employee models.Employee
	Position int
}

func (i Item) Title() string { return i.Employee.Name }
func (i Item) Description() string {
	return fmt.Sprintf("#%d | %s", i.Position+1, i.Employee.ID)
}
func (i Item) FilterValue() string { return i.Employee.Name }

type KeyMap struct {
	Add      key.Binding
	Rename   key.Binding
	Remove   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Select   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to row"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(employees []models.Employee, width, height int) Model {
	l := list.New(items(employees), list.NewDefaultDelegate(), width, height)
	l.Title = "Mitarbeiter"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Rename, keys.Remove}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Rename, keys.Remove, keys.MoveUp, keys.MoveDown, keys.Select}
	}

	return Model{list: l, keys: keys}
}

func items(employees []models.Employee) []list.Item {
	out := make([]list.Item, len(employees))
	for i, e := range employees {
		out[i] = Item{Employee: e, Position: i}
	}
	return out
}

// SetEmployees replaces the items and keeps the selection on id if present.
func (m *Model) SetEmployees(employees []models.Employee, selectID string) {
	m.list.SetItems(items(employees))
	for i, e := range employees {
		if e.ID == selectID {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) Selected() (models.Employee, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Employee, ok
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEmployeeMsg{} }
		case key.Matches(msg, m.keys.Rename):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RenameEmployeeMsg{Employee: e} }
			}
		case key.Matches(msg, m.keys.Remove):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RemoveEmployeeMsg{Employee: e} }
			}
		case key.Matches(msg, m.keys.MoveUp):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MoveEmployeeMsg{ID: e.ID, Delta: -1} }
			}
		case key.Matches(msg, m.keys.MoveDown):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MoveEmployeeMsg{ID: e.ID, Delta: 1} }
			}
		case key.Matches(msg, m.keys.Select):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SelectEmployeeMsg{ID: e.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  Noch keine Mitarbeiter.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
