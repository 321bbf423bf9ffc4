// Package schedule expands DOE-2 day, week and annual schedules into the
// 8760 hourly values of a simulated year.
//
// All expansion is driven by an explicit Calendar value; nothing in the
// package keeps state between calls.
package schedule

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyDay       = errors.New("schedule: day schedule has no values")
	ErrEmptyWeek      = errors.New("schedule: week schedule has no day schedules")
	ErrLeadingInherit = errors.New("schedule: week schedule starts with an inherited slot")
	ErrNoSegments     = errors.New("schedule: annual schedule has no segments")
)

// InheritToken marks a week slot that repeats the previous slot.
const InheritToken = "&D"

// PadDay returns exactly 24 hourly values, repeating the last given value.
func PadDay(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyDay
	}
	out := make([]float64, HoursPerDay)
	for h := range out {
		if h < len(values) {
			out[h] = values[h]
		} else {
			out[h] = values[len(values)-1]
		}
	}
	return out, nil
}

// ResolveWeek expands a DAY-SCHEDULES list into twelve day-schedule names.
// InheritToken repeats the previous slot; missing trailing slots repeat the
// last named one.
func ResolveWeek(tokens []string) ([NumDayTypes]string, error) {
	var week [NumDayTypes]string
	if len(tokens) == 0 {
		return week, ErrEmptyWeek
	}
	if tokens[0] == InheritToken {
		return week, ErrLeadingInherit
	}
	for i := 0; i < NumDayTypes; i++ {
		if i < len(tokens) && tokens[i] != InheritToken {
			week[i] = tokens[i]
			continue
		}
		week[i] = week[i-1]
	}
	return week, nil
}

// Week holds the 24 hourly values of each day type.
type Week [NumDayTypes][]float64

// NewWeek resolves day-schedule names through lookup.
func NewWeek(names [NumDayTypes]string, lookup func(name string) ([]float64, bool)) (Week, error) {
	var w Week
	for i, name := range names {
		values, ok := lookup(name)
		if !ok {
			return w, fmt.Errorf("schedule: day schedule %q for %s not found", name, DayType(i))
		}
		padded, err := PadDay(values)
		if err != nil {
			return w, fmt.Errorf("schedule: day schedule %q: %w", name, err)
		}
		w[i] = padded
	}
	return w, nil
}

// Segment applies a week pattern from Start until the next segment begins.
type Segment struct {
	Start MonthDay
	Week  Week
}

// Expand produces the 8760 hourly values for the calendar. Days before the
// earliest segment start use the latest segment, as if the schedule wrapped
// around from the previous year.
func Expand(cal *Calendar, segments []Segment) ([]float64, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.before(sorted[j].Start) })

	out := make([]float64, 0, HoursPerYear)
	for i := 0; i < DaysPerYear; i++ {
		day := cal.Day(i)
		seg := sorted[segmentFor(sorted, day.Date)]
		values := seg.Week[day.Type()]
		if len(values) != HoursPerDay {
			return nil, fmt.Errorf("schedule: segment starting %d/%d has no %s values",
				int(seg.Start.Month), seg.Start.Day, day.Type())
		}
		out = append(out, values...)
	}
	return out, nil
}

// segmentFor returns the last segment starting on or before date, or the
// latest segment when date precedes them all.
func segmentFor(sorted []Segment, date MonthDay) int {
	idx := len(sorted) - 1
	for i, s := range sorted {
		if date.before(s.Start) {
			break
		}
		idx = i
	}
	return idx
}

// Constant returns a year of a single value.
func Constant(v float64) []float64 {
	out := make([]float64, HoursPerYear)
	for i := range out {
		out[i] = v
	}
	return out
}
