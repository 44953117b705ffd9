// Package calendar converts base dates into ISO week descriptors.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

var (
	// ErrWeekOutOfRange is returned for ISO week numbers outside 1..53
	ErrWeekOutOfRange = errors.New("iso week out of range")
	// ErrNoWeeks is returned when a calendar base is derived from an empty week list
	ErrNoWeeks = errors.New("week list is empty")
)

var isoWeekPattern = regexp.MustCompile(`^(\d{4})-?W(\d{1,2})$`)

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatISO formats t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(constants.DateFormat)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfISOWeek snaps t backwards to the Monday of its ISO week.
func StartOfISOWeek(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// WeekID returns the stable identifier of an ISO week.
func WeekID(isoYear, isoWeek int) string {
	return fmt.Sprintf("kw-%d-%d", isoWeek, isoYear)
}

// BuildWeeks returns count consecutive week descriptors starting at the ISO
// Monday on or before startMonday.
func BuildWeeks(startMonday time.Time, count int) []models.Week {
	if count <= 0 {
		return []models.Week{}
	}
	monday := StartOfISOWeek(startMonday)
	weeks := make([]models.Week, 0, count)
	for i := 0; i < count; i++ {
		weekStart := monday.AddDate(0, 0, 7*i)
		isoYear, isoWeek := weekStart.ISOWeek()

		days := make([]models.WeekDay, constants.WorkdaysPerWeek)
		for j := range days {
			days[j] = models.WeekDay{
				Label: models.WeekdayLabels[j],
				Date:  FormatISO(weekStart.AddDate(0, 0, j)),
			}
		}

		weeks = append(weeks, models.Week{
			ID:      WeekID(isoYear, isoWeek),
			ISOWeek: isoWeek,
			ISOYear: isoYear,
			Start:   days[0].Date,
			End:     days[len(days)-1].Date,
			Days:    days,
		})
	}
	return weeks
}

// FromISOWeek returns the Monday of the given ISO week.
func FromISOWeek(isoYear, isoWeek int) (time.Time, error) {
	if isoWeek < 1 || isoWeek > 53 {
		return time.Time{}, fmt.Errorf("%w: week %d", ErrWeekOutOfRange, isoWeek)
	}
	// ISO week 1 is the week containing 4 January
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	return StartOfISOWeek(jan4).AddDate(0, 0, (isoWeek-1)*7), nil
}

// CollectWeekYears returns the sorted calendar years touched by any day of weeks.
func CollectWeekYears(weeks []models.Week) []int {
	seen := make(map[int]struct{})
	for _, w := range weeks {
		for _, d := range w.Days {
			if len(d.Date) < 4 {
				continue
			}
			year, err := strconv.Atoi(d.Date[:4])
			if err != nil {
				continue
			}
			seen[year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// BaseFromWeeks derives the calendar base from the first day of the first week.
func BaseFromWeeks(weeks []models.Week) (models.CalendarBase, error) {
	if len(weeks) == 0 || len(weeks[0].Days) == 0 {
		return models.CalendarBase{}, ErrNoWeeks
	}
	return models.CalendarBase{StartMondayISO: weeks[0].Days[0].Date}, nil
}

// ParseStartDate accepts either a date (YYYY-MM-DD) or an ISO week (YYYY-Www)
// and returns the Monday it designates.
func ParseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if m := isoWeekPattern.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		return FromISOWeek(year, week)
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfISOWeek(t), nil
}

// FormatDate renders an ISO date in one of the display formats
// ("D.M.YYYY" or "DD.MM.YYYY"). Unparseable input is returned unchanged.
func FormatDate(iso, format string) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	if format == constants.DateFormatPadded {
		return t.Format("02.01.2006")
	}
	return t.Format("2.1.2006")
}

// FormatWeekRange renders "{start}-{end}" for a week in the given display format.
func FormatWeekRange(w models.Week, format string) string {
	return FormatDate(w.Start, format) + "-" + FormatDate(w.End, format)
}

// WeekLabel renders the "KW {n}" label of a week.
func WeekLabel(w models.Week) string {
	return fmt.Sprintf("KW %d", w.ISOWeek)
}

// ISOWeekOf returns the ISO week number of an ISO date string.
func ISOWeekOf(iso string) (int, error) {
	t, err := ParseDate(iso)
	if err != nil {
		return 0, err
	}
	_, week := t.ISOWeek()
	return week, nil
}
