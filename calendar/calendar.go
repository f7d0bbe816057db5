package calendar

import (
	"fmt"
	"time"
)

// CalendarID identifies a holiday calendar.
//
// A CalendarID is a plain value: every copy answers IsBusinessDay the same way
// and there is no shared mutable state behind it.
type CalendarID string

const (
	TARGET       CalendarID = "TARGET"
	SGX          CalendarID = "SGX"
	WeekendsOnly CalendarID = "WEEKENDS_ONLY"
)

// Calendar answers whether a date is a business day for a market.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
}

// Convention is a business-day roll rule.
type Convention string

const (
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
)

// IsBusinessDay checks weekends and the holiday rules of c.
func (c CalendarID) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(c, t)
}

// Known reports whether cal is one of the supported calendars.
func Known(cal CalendarID) bool {
	switch cal {
	case TARGET, SGX, WeekendsOnly:
		return true
	default:
		return false
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTargetHoliday(t)
	case SGX:
		return isSGXHoliday(t)
	default:
		return false
	}
}

// Adjust applies Modified Following.
func Adjust(cal Calendar, t time.Time) time.Time {
	rolled := AdjustFollowing(cal, t)
	if rolled.Month() == t.Month() {
		return rolled
	}
	t = t.AddDate(0, 0, -1)
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AdjustFollowing rolls forward to the next business day, crossing month ends.
func AdjustFollowing(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// Roll adjusts t under conv. An empty convention means Modified Following.
func Roll(cal Calendar, t time.Time, conv Convention) (time.Time, error) {
	switch conv {
	case ModifiedFollowing, "":
		return Adjust(cal, t), nil
	case Following:
		return AdjustFollowing(cal, t), nil
	default:
		return t, fmt.Errorf("unknown roll convention %q", conv)
	}
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal Calendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if cal.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}

// easterSunday returns Easter Sunday of the Gregorian year (anonymous algorithm).
func easterSunday(year int) time.Time {
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

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
