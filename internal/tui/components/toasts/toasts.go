package toasts

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/roster/internal/notify"
)

// Lifetime is how long a toast stays on screen.
const Lifetime = 4 * time.Second

// MaxVisible caps the number of toasts shown at once.
const MaxVisible = 4

var (
	baseStyle = lipgloss.NewStyle().Padding(0, 1)

	levelStyles = map[notify.Level]lipgloss.Style{
		notify.LevelSuccess: baseStyle.Foreground(lipgloss.Color("42")),
		notify.LevelWarning: baseStyle.Foreground(lipgloss.Color("214")),
		notify.LevelError:   baseStyle.Foreground(lipgloss.Color("196")).Bold(true),
		notify.LevelInfo:    baseStyle.Foreground(lipgloss.Color("75")),
	}

	levelIcons = map[notify.Level]string{
		notify.LevelSuccess: "✓",
		notify.LevelWarning: "⚠",
		notify.LevelError:   "❌",
		notify.LevelInfo:    "ℹ",
	}
)

type Model struct {
	toasts []notify.Toast
	width  int
}

func New(width int) Model {
	return Model{width: width}
}

// Push appends toasts. Older ones fall off once MaxVisible is exceeded.
func (m *Model) Push(list ...notify.Toast) {
	m.toasts = append(m.toasts, list...)
	if over := len(m.toasts) - MaxVisible; over > 0 {
		m.toasts = m.toasts[over:]
	}
}

// Expire drops every toast older than Lifetime at now.
func (m *Model) Expire(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Sub(t.CreatedAt) < Lifetime {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) Len() int {
	return len(m.toasts)
}

func (m Model) View() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		style, ok := levelStyles[t.Level]
		if !ok {
			style = baseStyle
		}
		if m.width > 0 {
			style = style.MaxWidth(m.width)
		}
		lines = append(lines, style.Render(levelIcons[t.Level]+" "+t.Message))
	}
	return strings.Join(lines, "\n")
}
