package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

var (
	weekTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	lockedStyle    = cellStyle.Foreground(lipgloss.Color("241")).Italic(true)
)

type ShowCmd struct {
	Week   string `help:"Only show this week (id or number)." short:"w"`
	Filter string `help:"Only show employees whose name contains this text." short:"f"`
	Value  string `help:"Only show employees with at least one cell of this assignment."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	filter := models.Filter{EmployeeQuery: c.Filter}
	if c.Value != "" {
		v, err := ParseValue(c.Value)
		if err != nil {
			return err
		}
		filter.Assignment = v
	}

	s, err := ctx.open()
	if err != nil {
		return err
	}

	s.View(func(r *roster.Roster) {
		weeks := r.Weeks()
		if c.Week != "" {
			var w models.Week
			if w, err = ResolveWeek(r, c.Week); err != nil {
				return
			}
			weeks = []models.Week{w}
		}
		employees := r.FilterEmployees(filter)
		format := r.Settings().DateFormat
		for _, w := range weeks {
			ctx.println(weekTitleStyle.Render(weekTitle(w, format)))
			ctx.println(renderWeek(r, w, employees, format))
		}
	})
	if err != nil {
		return err
	}
	ctx.reportToasts(s)
	return nil
}

// renderWeek draws one week as a table of employees by weekday. Locked
// holiday columns are dimmed.
func renderWeek(r *roster.Roster, w models.Week, employees []models.Employee, format string) string {
	headers := make([]string, 0, len(w.Days)+1)
	headers = append(headers, "Name")
	for _, d := range w.Days {
		headers = append(headers, string(d.Label)+" "+calendar.FormatDate(d.Date, format))
	}

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		row := make([]string, 0, len(w.Days)+1)
		row = append(row, e.Name)
		for day := range w.Days {
			v := r.FindCellValue(e.ID, w.ID, day)
			if v.IsEmpty() {
				row = append(row, "")
				continue
			}
			row = append(row, string(v))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 && r.IsLocked(w.ID, col-1) {
				return lockedStyle
			}
			return cellStyle
		})
	return t.Render()
}
