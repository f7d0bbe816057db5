package calendar

import "time"

type monthDay struct {
	month time.Month
	day   int
}

// isTargetHoliday implements the TARGET2 closing days.
func isTargetHoliday(t time.Time) bool {
	d, m, y := t.Day(), t.Month(), t.Year()
	easter := easterSunday(y)
	return (d == 1 && m == time.January) ||
		sameDay(t, easter.AddDate(0, 0, -2)) || // Good Friday
		(y >= 2000 && sameDay(t, easter.AddDate(0, 0, 1))) || // Easter Monday
		(y >= 2000 && d == 1 && m == time.May) ||
		(d == 25 && m == time.December) ||
		(y >= 2000 && d == 26 && m == time.December) ||
		(d == 31 && m == time.December && (y == 1998 || y == 1999 || y == 2001))
}

// sgxDated lists the SGX holidays that move every year: Chinese New Year,
// Hari Raya Haji, Vesak, Deepavali and Hari Raya Puasa.
var sgxDated = map[int][]monthDay{
	2004: {{time.January, 22}, {time.January, 23}, {time.February, 1}, {time.February, 2},
		{time.June, 2}, {time.November, 11}, {time.November, 14}, {time.November, 15}},
	2005: {{time.February, 9}, {time.February, 10}, {time.January, 21}, {time.May, 22},
		{time.November, 1}, {time.November, 3}},
	2006: {{time.January, 30}, {time.January, 31}, {time.January, 10}, {time.May, 12},
		{time.October, 24}},
	2007: {{time.February, 19}, {time.February, 20}, {time.January, 2}, {time.December, 20},
		{time.May, 31}, {time.November, 8}, {time.October, 13}},
	2008: {{time.February, 7}, {time.February, 8}, {time.December, 8}, {time.May, 18},
		{time.October, 28}, {time.October, 1}},
	2009: {{time.January, 26}, {time.January, 27}, {time.November, 27}, {time.May, 9},
		{time.November, 16}, {time.September, 21}, {time.August, 10}},
}

// isSGXHoliday implements the Singapore Exchange calendar.
func isSGXHoliday(t time.Time) bool {
	d, m, y := t.Day(), t.Month(), t.Year()
	if (d == 1 && m == time.January) ||
		sameDay(t, easterSunday(y).AddDate(0, 0, -2)) || // Good Friday
		(d == 1 && m == time.May) ||
		(d == 9 && m == time.August) ||
		(d == 25 && m == time.December) {
		return true
	}
	for _, md := range sgxDated[y] {
		if md.month == m && md.day == d {
			return true
		}
	}
	return false
}
