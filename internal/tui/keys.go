package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Cycle     key.Binding
	Early     key.Binding
	Late      key.Binding
	Absent    key.Binding
	Holiday   key.Binding
	Clear     key.Binding
	FillWeek  key.Binding
	FillDay   key.Binding
	CopyCell  key.Binding
	CopyRow   key.Binding
	CopyWeek  key.Binding
	Paste     key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Filter    key.Binding
	ValueFilt key.Binding
	Employees key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Clear, k.Undo, k.PrevWeek, k.NextWeek, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevWeek, k.NextWeek},
		{k.Cycle, k.Early, k.Late, k.Absent, k.Holiday, k.Clear},
		{k.FillWeek, k.FillDay, k.CopyCell, k.CopyRow, k.CopyWeek, k.Paste},
		{k.Undo, k.Redo, k.Filter, k.ValueFilt, k.Employees, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "next week"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "cycle value"),
		),
		Early: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Früh"),
		),
		Late: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Spät"),
		),
		Absent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Abwesend"),
		),
		Holiday: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Feiertag"),
		),
		Clear: key.NewBinding(
			key.WithKeys("-", "delete", "backspace"),
			key.WithHelp("-", "clear"),
		),
		FillWeek: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "fill week"),
		),
		FillDay: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "fill day"),
		),
		CopyCell: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cell"),
		),
		CopyRow: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy row"),
		),
		CopyWeek: key.NewBinding(
			key.WithKeys("alt+y"),
			key.WithHelp("alt+y", "copy week"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+y"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter names"),
		),
		ValueFilt: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "filter value"),
		),
		Employees: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "employees"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
