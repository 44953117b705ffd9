package holidays

import "github.com/julianstephens/roster/internal/models"

// ResolveLocks derives the holiday locks for weeks. The result is computed from
// scratch on every call and is empty when automatic holiday marking is off.
func ResolveLocks(weeks []models.Week, settings models.Settings, list []models.Holiday) map[models.LockKey]models.HolidayLock {
	locks := make(map[models.LockKey]models.HolidayLock)
	if !settings.AutoHolidayMarking {
		return locks
	}

	byDate := make(map[string]models.Holiday, len(list))
	for _, h := range list {
		if h.Region != settings.Region {
			continue
		}
		if _, exists := byDate[h.Date]; !exists {
			byDate[h.Date] = h
		}
	}
	if len(byDate) == 0 {
		return locks
	}

	for _, w := range weeks {
		for i, d := range w.Days {
			h, ok := byDate[d.Date]
			if !ok {
				continue
			}
			locks[models.LockKey{WeekID: w.ID, DayIndex: i}] = models.HolidayLock{Name: h.Name, Date: d.Date}
		}
	}
	return locks
}
