package models

import "fmt"

// Holiday is one public holiday as returned by a holiday provider
type Holiday struct {
	Date   string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Name   string `json:"name" yaml:"name"`
	Region string `json:"region" yaml:"region"`
}

// LockKey addresses a locked (week, weekday) position for all employees
type LockKey struct {
	WeekID   string
	DayIndex int
}

func (k LockKey) String() string {
	return fmt.Sprintf("%s:%d", k.WeekID, k.DayIndex)
}

// HolidayLock is derived from weeks, holidays and settings and is never persisted
type HolidayLock struct {
	Name string `json:"name"`
	Date string `json:"date"`
}
