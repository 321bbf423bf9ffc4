package schedule

import (
	"fmt"
	"time"
)

// Calendar sizes.
const (
	DaysPerYear  = 365
	HoursPerDay  = 24
	HoursPerYear = DaysPerYear * HoursPerDay
)

// DayType indexes the twelve slots of a week schedule.
type DayType int

const (
	Monday DayType = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	Holiday
	DesignDay1
	DesignDay2
	DesignDay3
	DesignDay4

	NumDayTypes = 12
)

var dayTypeNames = [NumDayTypes]string{
	"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN", "HOL", "DD1", "DD2", "DD3", "DD4",
}

func (d DayType) String() string {
	if d < 0 || int(d) >= NumDayTypes {
		return fmt.Sprintf("DayType(%d)", int(d))
	}
	return dayTypeNames[d]
}

func fromWeekday(w time.Weekday) DayType {
	// time.Weekday starts at Sunday.
	return DayType((int(w) + 6) % 7)
}

// MonthDay is a calendar date without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}

// Day is one simulated calendar day.
type Day struct {
	Date    MonthDay
	Weekday time.Weekday
	Holiday bool
}

// Type returns the week-schedule slot the day uses.
func (d Day) Type() DayType {
	if d.Holiday {
		return Holiday
	}
	return fromWeekday(d.Weekday)
}

// Calendar is the 365-day simulation calendar of one model. It is a value
// owned by a single run; holiday overlays return a new Calendar.
type Calendar struct {
	Year int
	Jan1 time.Weekday
	Leap bool

	days [DaysPerYear]Day
}

// NewCalendar lays out the simulated year. On a leap year February 29 is not
// simulated but the weekday still advances past it.
func NewCalendar(year int, jan1 time.Weekday) *Calendar {
	c := &Calendar{Year: year, Jan1: jan1, Leap: isLeap(year)}

	weekday := jan1
	date := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC) // any non-leap year
	for i := 0; i < DaysPerYear; i++ {
		c.days[i] = Day{Date: MonthDay{date.Month(), date.Day()}, Weekday: weekday}
		if c.Leap && date.Month() == time.February && date.Day() == 28 {
			weekday = (weekday + 1) % 7
		}
		weekday = (weekday + 1) % 7
		date = date.AddDate(0, 0, 1)
	}
	return c
}

// ForYear builds the calendar with January 1st's real weekday.
func ForYear(year int) *Calendar {
	return NewCalendar(year, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Days returns a copy of the calendar days.
func (c *Calendar) Days() []Day {
	out := make([]Day, DaysPerYear)
	copy(out, c.days[:])
	return out
}

// Day returns the i-th day of the year (0-based).
func (c *Calendar) Day(i int) Day { return c.days[i] }

// Index returns the day-of-year index of a date.
func (c *Calendar) Index(md MonthDay) (int, bool) {
	for i, d := range c.days {
		if d.Date == md {
			return i, true
		}
	}
	return 0, false
}

// Holidays returns the dates flagged as holidays.
func (c *Calendar) Holidays() []MonthDay {
	var out []MonthDay
	for _, d := range c.days {
		if d.Holiday {
			out = append(out, d.Date)
		}
	}
	return out
}

// WithHolidays returns a copy of the calendar with dates flagged as holidays.
// Dates that are not simulated (February 29) are ignored.
func (c *Calendar) WithHolidays(dates []MonthDay) *Calendar {
	next := *c
	for _, md := range dates {
		if i, ok := next.Index(md); ok {
			next.days[i].Holiday = true
		}
	}
	return &next
}

// WithOfficialHolidays overlays the US federal holiday set.
func (c *Calendar) WithOfficialHolidays() *Calendar {
	return c.WithHolidays(OfficialHolidays(c))
}
