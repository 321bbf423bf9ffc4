package schedule

import "time"

type fixedHoliday struct {
	month time.Month
	day   int
}

type floatingHoliday struct {
	month   time.Month
	weekday time.Weekday
	nth     int // 1-based; -1 is the last occurrence
}

var (
	fixedOfficial = []fixedHoliday{
		{time.January, 1},   // New Year's Day
		{time.July, 4},      // Independence Day
		{time.November, 11}, // Veterans Day
		{time.December, 25}, // Christmas Day
	}
	floatingOfficial = []floatingHoliday{
		{time.January, time.Monday, 3},    // Martin Luther King Jr. Day
		{time.February, time.Monday, 3},   // Washington's Birthday
		{time.May, time.Monday, -1},       // Memorial Day
		{time.September, time.Monday, 1},  // Labor Day
		{time.October, time.Monday, 2},    // Columbus Day
		{time.November, time.Thursday, 4}, // Thanksgiving Day
	}
)

// OfficialHolidays returns the observed US federal holidays for the
// calendar's weekday layout. A fixed-date holiday falling on Saturday is
// observed the Friday before, on Sunday the Monday after, as long as the
// observed day stays inside the simulated year.
func OfficialHolidays(c *Calendar) []MonthDay {
	var out []MonthDay
	for _, h := range fixedOfficial {
		i, ok := c.Index(MonthDay{h.month, h.day})
		if !ok {
			continue
		}
		switch c.days[i].Weekday {
		case time.Saturday:
			i--
		case time.Sunday:
			i++
		}
		if i >= 0 && i < DaysPerYear {
			out = append(out, c.days[i].Date)
		}
	}
	for _, h := range floatingOfficial {
		if md, ok := nthWeekday(c, h); ok {
			out = append(out, md)
		}
	}
	return out
}

func nthWeekday(c *Calendar, h floatingHoliday) (MonthDay, bool) {
	var matches []MonthDay
	for _, d := range c.days {
		if d.Date.Month == h.month && d.Weekday == h.weekday {
			matches = append(matches, d.Date)
		}
	}
	switch {
	case h.nth == -1 && len(matches) > 0:
		return matches[len(matches)-1], true
	case h.nth >= 1 && h.nth <= len(matches):
		return matches[h.nth-1], true
	}
	return MonthDay{}, false
}

// AlternateHolidays pairs MONTHS and DAYS lists into dates. Extra entries in
// the longer list are ignored; invalid dates are dropped.
func AlternateHolidays(months, days []int) []MonthDay {
	n := min(len(months), len(days))
	out := make([]MonthDay, 0, n)
	for i := 0; i < n; i++ {
		if months[i] < 1 || months[i] > 12 || days[i] < 1 || days[i] > 31 {
			continue
		}
		out = append(out, MonthDay{time.Month(months[i]), days[i]})
	}
	return out
}
