package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/roster/internal/models"
)

var (
	docStyle = lipgloss.NewStyle().Margin(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

type colors struct {
	bg lipgloss.Color
	fg lipgloss.Color
}

var palette = map[models.Assignment]colors{
	models.AssignmentEarly:       {"153", "16"},
	models.AssignmentLate:        {"222", "16"},
	models.AssignmentAbsent:      {"252", "16"},
	models.AssignmentHoliday:     {"252", "16"},
	models.AssignmentSpecial:     {"183", "16"},
	models.AssignmentConnox:      {"216", "16"},
	models.AssignmentNarrowAisle: {"248", "16"},
	models.AssignmentOffsite:     {"151", "16"},
	models.AssignmentSmallParts:  {"159", "16"},
}

var contrastPalette = map[models.Assignment]colors{
	models.AssignmentEarly:       {"19", "231"},
	models.AssignmentLate:        {"214", "16"},
	models.AssignmentAbsent:      {"226", "16"},
	models.AssignmentHoliday:     {"220", "16"},
	models.AssignmentSpecial:     {"91", "231"},
	models.AssignmentConnox:      {"172", "231"},
	models.AssignmentNarrowAisle: {"240", "231"},
	models.AssignmentOffsite:     {"28", "231"},
	models.AssignmentSmallParts:  {"31", "231"},
}

// Styles holds the grid styles for one settings combination.
type Styles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Locked   lipgloss.Style
	Selected lipgloss.Style
	Name     lipgloss.Style

	highContrast bool
}

// NewStyles builds the grid styles. Wider font scales widen the columns.
func NewStyles(highContrast bool, fontScale float64) Styles {
	if fontScale <= 0 {
		fontScale = 1
	}
	width := int(12 * fontScale)
	cell := lipgloss.NewStyle().Padding(0, 1).Width(width)

	s := Styles{
		Header:       cell.Bold(true).Foreground(lipgloss.Color("205")),
		Cell:         cell,
		Locked:       cell.Foreground(lipgloss.Color("241")).Italic(true),
		Selected:     cell.Reverse(true).Bold(true),
		Name:         lipgloss.NewStyle().Padding(0, 1).Width(int(20 * fontScale)),
		highContrast: highContrast,
	}
	if highContrast {
		s.Header = s.Header.Foreground(lipgloss.Color("231")).Underline(true)
		s.Locked = cell.Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	}
	return s
}

// Assignment returns the cell style for a value.
func (s Styles) Assignment(a models.Assignment) lipgloss.Style {
	p := palette
	if s.highContrast {
		p = contrastPalette
	}
	c, ok := p[a]
	if !ok {
		return s.Cell
	}
	return s.Cell.Background(c.bg).Foreground(c.fg)
}
