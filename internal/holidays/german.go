package holidays

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// Regions lists the supported region codes: the 16 German states plus DE
// for national holidays only.
var Regions = []string{
	"DE", "BW", "BY", "BE", "BB", "HB", "HH", "HE", "MV",
	"NI", "NW", "RP", "SL", "SN", "ST", "SH", "TH",
}

// GermanProvider computes German public holidays from the Easter date
type GermanProvider struct{}

func NewGermanProvider() *GermanProvider {
	return &GermanProvider{}
}

func (p *GermanProvider) Holidays(ctx context.Context, region string, years []int) ([]models.Holiday, error) {
	if !IsRegion(region) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	var out []models.Holiday
	for _, year := range uniqueYears(years) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, germanHolidays(region, year)...)
	}
	sortHolidays(out)
	return out, nil
}

// IsRegion reports whether code is a supported region
func IsRegion(code string) bool {
	return slices.Contains(Regions, code)
}

// Easter returns Easter Sunday of year (Gregorian calendar).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// bussUndBettag is the Wednesday before 23 November
func bussUndBettag(year int) time.Time {
	d := time.Date(year, time.November, 22, 0, 0, 0, 0, time.UTC)
	back := (int(d.Weekday()) - int(time.Wednesday) + 7) % 7
	return d.AddDate(0, 0, -back)
}

func germanHolidays(region string, year int) []models.Holiday {
	easter := Easter(year)
	fixed := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}
	rel := func(days int) time.Time {
		return easter.AddDate(0, 0, days)
	}
	in := func(codes ...string) bool {
		return slices.Contains(codes, region)
	}

	var list []models.Holiday
	add := func(t time.Time, name string) {
		list = append(list, models.Holiday{
			Date:   t.Format(constants.DateFormat),
			Name:   name,
			Region: region,
		})
	}

	// National
	add(fixed(time.January, 1), "Neujahr")
	add(rel(-2), "Karfreitag")
	add(rel(1), "Ostermontag")
	add(fixed(time.May, 1), "Tag der Arbeit")
	add(rel(39), "Christi Himmelfahrt")
	add(rel(50), "Pfingstmontag")
	add(fixed(time.October, 3), "Tag der Deutschen Einheit")
	add(fixed(time.December, 25), "1. Weihnachtstag")
	add(fixed(time.December, 26), "2. Weihnachtstag")

	// State specific
	if in("BW", "BY", "ST") {
		add(fixed(time.January, 6), "Heilige Drei Könige")
	}
	if (in("BE") && year >= 2019) || (in("MV") && year >= 2023) {
		add(fixed(time.March, 8), "Internationaler Frauentag")
	}
	if in("BB") {
		add(easter, "Ostersonntag")
		add(rel(49), "Pfingstsonntag")
	}
	if in("BW", "BY", "HE", "NW", "RP", "SL") {
		add(rel(60), "Fronleichnam")
	}
	if in("SL") {
		add(fixed(time.August, 15), "Mariä Himmelfahrt")
	}
	if in("TH") && year >= 2019 {
		add(fixed(time.September, 20), "Weltkindertag")
	}
	reformation := in("BB", "MV", "SN", "ST", "TH") ||
		(in("HB", "HH", "NI", "SH") && year >= 2018) ||
		year == 2017
	if reformation {
		add(fixed(time.October, 31), "Reformationstag")
	}
	if in("BW", "BY", "NW", "RP", "SL") {
		add(fixed(time.November, 1), "Allerheiligen")
	}
	if in("SN") {
		add(bussUndBettag(year), "Buß- und Bettag")
	}

	return list
}
