package roster

import (
	"time"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// SeedEmployees is the team a fresh roster starts with
var SeedEmployees = []models.Employee{
	{ID: "anna-schmidt", Name: "Anna Schmidt"},
	{ID: "ben-mueller", Name: "Ben Müller"},
	{ID: "clara-weber", Name: "Clara Weber"},
	{ID: "david-fischer", Name: "David Fischer"},
	{ID: "elif-yilmaz", Name: "Elif Yılmaz"},
	{ID: "felix-wagner", Name: "Felix Wagner"},
	{ID: "greta-hoffmann", Name: "Greta Hoffmann"},
}

// Seed returns the default snapshot: the seed team over DefaultWeekCount
// weeks from InitialStartMonday, every cell empty.
func Seed() models.Snapshot {
	start, err := calendar.ParseDate(constants.InitialStartMonday)
	if err != nil {
		panic(err)
	}
	weeks := calendar.BuildWeeks(start, constants.DefaultWeekCount)
	employees := append([]models.Employee{}, SeedEmployees...)

	return models.Snapshot{
		Employees:    employees,
		Weeks:        weeks,
		Cells:        emptyCells(employees, weeks),
		Settings:     models.DefaultSettings(),
		CalendarBase: models.CalendarBase{StartMondayISO: weeks[0].Days[0].Date},
		UpdatedAt:    time.Now().UTC(),
	}
}

func emptyCells(employees []models.Employee, weeks []models.Week) []models.Cell {
	cells := make([]models.Cell, 0, len(employees)*len(weeks)*constants.WorkdaysPerWeek)
	for _, e := range employees {
		for _, w := range weeks {
			for day := range w.Days {
				cells = append(cells, models.Cell{EmployeeID: e.ID, WeekID: w.ID, DayIndex: day})
			}
		}
	}
	return cells
}
