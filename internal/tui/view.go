package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateEmployees:
		content = docStyle.Render(m.employeeList.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmRemove:
		content = m.viewConfirmRemove()
	default:
		content = m.viewGrid()
	}

	parts := []string{content}
	if m.state == StateFilter {
		parts = append(parts, docStyle.Render(m.filterInput.View()))
	}
	if t := m.toasts.View(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewGrid() string {
	var out string
	m.session.View(func(r *roster.Roster) {
		out = m.renderGrid(r)
	})
	return docStyle.Render(out)
}

func (m Model) renderGrid(r *roster.Roster) string {
	weeks := r.Weeks()
	if len(weeks) == 0 {
		return "Keine Kalenderwochen."
	}
	week := weeks[clamp(m.week, len(weeks))]
	settings := r.Settings()
	styles := NewStyles(settings.HighContrast, settings.FontScale)
	list := r.FilterEmployees(m.filter)

	title := titleStyle.Render(fmt.Sprintf("%s  %s", calendar.WeekLabel(week), calendar.FormatWeekRange(week, settings.DateFormat)))
	status := statusStyle.Render(m.statusLine(r, len(weeks)))

	headers := make([]string, 0, len(week.Days)+1)
	headers = append(headers, "Name")
	for _, d := range week.Days {
		h := string(d.Label) + " " + calendar.FormatDate(d.Date, settings.DateFormat)
		if lock, ok := r.Lock(week.ID, len(headers)-1); ok {
			h += " 🔒 " + lock.Name
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		row := make([]string, 0, len(week.Days)+1)
		row = append(row, e.Name)
		for day := range week.Days {
			row = append(row, string(r.FindCellValue(e.ID, week.ID, day)))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, status, "", "Keine Mitarbeiter für diesen Filter.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == 0 {
					return styles.Name.Bold(true)
				}
				return styles.Header
			}
			if col == 0 {
				return styles.Name
			}
			day := col - 1
			style := styles.Assignment(models.Assignment(rows[row][col]))
			if r.IsLocked(week.ID, day) {
				style = styles.Locked
			}
			if row == m.row && day == m.col {
				style = style.Inherit(styles.Selected)
			}
			return style
		})

	return lipgloss.JoinVertical(lipgloss.Left, title, status, t.Render())
}

func (m Model) statusLine(r *roster.Roster, weekCount int) string {
	s := fmt.Sprintf("Woche %d/%d", clamp(m.week, weekCount)+1, weekCount)
	if !m.filter.IsZero() {
		s += fmt.Sprintf(" | Filter: %q", m.filter.EmployeeQuery)
		if !m.filter.Assignment.IsEmpty() {
			s += " " + string(m.filter.Assignment)
		}
	}
	if m.clipboard != nil {
		s += " | Zwischenablage: " + string(m.clipboard.Scope)
	}
	if r.CanUndo() {
		s += " | u: rückgängig"
	}
	return s
}

func (m Model) viewConfirmRemove() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("%s und alle Einträge entfernen?", m.removeTarget.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
