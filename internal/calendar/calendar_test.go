package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromISOWeekRoundTrip(t *testing.T) {
	for year := 2015; year <= 2032; year++ {
		// Years whose 28 December falls in week 53 have 53 ISO weeks
		_, last := date(year, time.December, 28).ISOWeek()
		for week := 1; week <= last; week++ {
			monday, err := FromISOWeek(year, week)
			if err != nil {
				t.Fatalf("FromISOWeek(%d, %d) failed: %v", year, week, err)
			}
			if monday.Weekday() != time.Monday {
				t.Errorf("FromISOWeek(%d, %d) = %s, not a Monday", year, week, monday.Weekday())
			}
			gotYear, gotWeek := monday.ISOWeek()
			if gotYear != year || gotWeek != week {
				t.Errorf("FromISOWeek(%d, %d) round trip = (%d, %d)", year, week, gotYear, gotWeek)
			}
		}
	}
}

func TestFromISOWeekOutOfRange(t *testing.T) {
	for _, week := range []int{0, -1, 54, 100} {
		if _, err := FromISOWeek(2025, week); !errors.Is(err, ErrWeekOutOfRange) {
			t.Errorf("FromISOWeek(2025, %d) err = %v, want ErrWeekOutOfRange", week, err)
		}
	}
}

func TestFromISOWeekKnownDates(t *testing.T) {
	tests := []struct {
		year, week int
		want       string
	}{
		{2025, 42, "2025-10-13"},
		{2025, 1, "2024-12-30"},
		{2021, 1, "2021-01-04"},
		{2020, 53, "2020-12-28"},
	}
	for _, tt := range tests {
		got, err := FromISOWeek(tt.year, tt.week)
		if err != nil {
			t.Fatalf("FromISOWeek(%d, %d) failed: %v", tt.year, tt.week, err)
		}
		if FormatISO(got) != tt.want {
			t.Errorf("FromISOWeek(%d, %d) = %s, want %s", tt.year, tt.week, FormatISO(got), tt.want)
		}
	}
}

func TestBuildWeeks(t *testing.T) {
	weeks := BuildWeeks(date(2025, time.October, 13), 6)
	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	if weeks[0].ID != "kw-42-2025" || weeks[0].ISOWeek != 42 || weeks[0].ISOYear != 2025 {
		t.Errorf("unexpected first week: %+v", weeks[0])
	}
	if weeks[0].Days[0].Date != "2025-10-13" || weeks[0].Days[4].Date != "2025-10-17" {
		t.Errorf("unexpected days: %+v", weeks[0].Days)
	}
	if weeks[0].Start != "2025-10-13" || weeks[0].End != "2025-10-17" {
		t.Errorf("unexpected start/end: %s %s", weeks[0].Start, weeks[0].End)
	}

	seen := map[string]bool{}
	for i, w := range weeks {
		if seen[w.ID] {
			t.Errorf("duplicate week id %s", w.ID)
		}
		seen[w.ID] = true
		if i > 0 && w.Days[0].Date <= weeks[i-1].Days[4].Date {
			t.Errorf("week %d does not follow week %d", i, i-1)
		}
		if len(w.Days) != 5 {
			t.Errorf("week %s has %d days", w.ID, len(w.Days))
		}
	}
}

func TestBuildWeeksSnapsToMonday(t *testing.T) {
	// Thursday 16 October 2025
	weeks := BuildWeeks(date(2025, time.October, 16), 2)
	if weeks[0].Days[0].Date != "2025-10-13" {
		t.Errorf("expected snap to 2025-10-13, got %s", weeks[0].Days[0].Date)
	}
	// Sunday belongs to the preceding ISO week
	weeks = BuildWeeks(date(2025, time.October, 19), 1)
	if weeks[0].Days[0].Date != "2025-10-13" {
		t.Errorf("expected Sunday to snap to 2025-10-13, got %s", weeks[0].Days[0].Date)
	}
}

func TestBuildWeeksEmpty(t *testing.T) {
	if got := BuildWeeks(date(2025, time.October, 13), 0); len(got) != 0 {
		t.Errorf("expected no weeks, got %d", len(got))
	}
}

func TestCollectWeekYears(t *testing.T) {
	// 29 December 2025 to 2 January 2026
	weeks := BuildWeeks(date(2025, time.December, 29), 1)
	got := CollectWeekYears(weeks)
	if diff := cmp.Diff([]int{2025, 2026}, got); diff != "" {
		t.Errorf("CollectWeekYears mismatch (-want +got):\n%s", diff)
	}
	if weeks[0].ID != "kw-1-2026" {
		t.Errorf("expected kw-1-2026, got %s", weeks[0].ID)
	}

	if got := CollectWeekYears(BuildWeeks(date(2025, time.October, 13), 6)); !cmp.Equal([]int{2025}, got) {
		t.Errorf("expected [2025], got %v", got)
	}
}

func TestBaseFromWeeks(t *testing.T) {
	if _, err := BaseFromWeeks(nil); !errors.Is(err, ErrNoWeeks) {
		t.Errorf("expected ErrNoWeeks, got %v", err)
	}
	base, err := BaseFromWeeks(BuildWeeks(date(2025, time.October, 15), 3))
	if err != nil {
		t.Fatalf("BaseFromWeeks failed: %v", err)
	}
	if base.StartMondayISO != "2025-10-13" {
		t.Errorf("StartMondayISO = %s", base.StartMondayISO)
	}
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-10-13", "2025-10-13", false},
		{"2025-10-16", "2025-10-13", false},
		{"2025-W42", "2025-10-13", false},
		{"2026w1", "2025-12-29", false},
		{"2025-W54", "", true},
		{"13.10.2025", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStartDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStartDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && FormatISO(got) != tt.want {
				t.Errorf("ParseStartDate(%q) = %s, want %s", tt.in, FormatISO(got), tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		iso, format, want string
	}{
		{"2025-11-03", "D.M.YYYY", "3.11.2025"},
		{"2025-11-03", "DD.MM.YYYY", "03.11.2025"},
		{"2025-10-13", "D.M.YYYY", "13.10.2025"},
		{"garbage", "D.M.YYYY", "garbage"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.iso, tt.format); got != tt.want {
			t.Errorf("FormatDate(%q, %q) = %q, want %q", tt.iso, tt.format, got, tt.want)
		}
	}

	w := BuildWeeks(date(2025, time.October, 13), 1)[0]
	if got := FormatWeekRange(w, "DD.MM.YYYY"); got != "13.10.2025-17.10.2025" {
		t.Errorf("FormatWeekRange = %q", got)
	}
	if got := WeekLabel(w); got != "KW 42" {
		t.Errorf("WeekLabel = %q", got)
	}
}
