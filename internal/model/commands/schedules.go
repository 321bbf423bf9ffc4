package commands

import (
	"fmt"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/schedule"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

var sequenceTypes = table(enumScheduleSequence, map[string]string{
	bdlenum.SchFraction:   "MULTIPLIER",
	bdlenum.SchMultiplier: "MULTIPLIER",
	bdlenum.SchFracDesign: "MULTIPLIER",
	bdlenum.SchExpFrac:    "MULTIPLIER",
	bdlenum.SchTemp:       "TEMPERATURE",
	bdlenum.SchOnOff:      "ON_OFF",
	bdlenum.SchOnOffFlag:  "ON_OFF_FLAG",
	bdlenum.SchResetTemp:  "RESET_TEMPERATURE",
	bdlenum.SchOnOffTemp:  "OTHER",
	bdlenum.SchResetRatio: "OTHER",
})

func init() {
	needs(enumScheduleType, "HOURLY")
}

// DaySchedule holds 24 hourly values.
type DaySchedule struct {
	model.Node

	values []float64
}

func (d *DaySchedule) Derive() error {
	values, err := schedule.PadDay(d.Floats("VALUES"))
	if err != nil {
		d.Warn("no hourly VALUES")
		return nil
	}
	d.values = values
	return nil
}

func (d *DaySchedule) Shape() map[string]any { return nil }

func (d *DaySchedule) Attach(*model.Document) {}

// WeekSchedule assigns a day schedule to each of the twelve day types.
type WeekSchedule struct {
	model.Node

	week schedule.Week
}

func (w *WeekSchedule) Derive() error {
	names, err := schedule.ResolveWeek(w.List("DAY-SCHEDULES"))
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := w.RMD.MustResolve(w.Command, w.Name, "DAY-SCHEDULES", name); err != nil {
			return err
		}
	}
	w.week, err = schedule.NewWeek(names, func(name string) ([]float64, bool) {
		day, ok := model.ResolveAs[*DaySchedule](w.RMD, name)
		if !ok {
			return nil, false
		}
		return day.values, true
	})
	return err
}

func (w *WeekSchedule) Shape() map[string]any { return nil }

func (w *WeekSchedule) Attach(*model.Document) {}

// Schedule is an annual schedule: week schedules applied through the dates
// given by the paired MONTH and DAY lists.
type Schedule struct {
	model.Node

	hourly []float64
}

func (s *Schedule) Derive() error {
	weeks := s.List("WEEK-SCHEDULES")
	if len(weeks) == 0 {
		return fmt.Errorf("%w: no WEEK-SCHEDULES", schedule.ErrNoSegments)
	}
	months, days := ints(s.Floats("MONTH")), ints(s.Floats("DAY"))
	if len(months) != len(days) || (len(months) > 0 && len(months) != len(weeks)) {
		s.Warn("MONTH, DAY and WEEK-SCHEDULES differ in length")
	}

	cal := s.RMD.Calendar
	start := schedule.MonthDay{Month: time.January, Day: 1}
	segments := make([]schedule.Segment, 0, len(weeks))
	for i, name := range weeks {
		inst, err := s.RMD.MustResolve(s.Command, s.Name, "WEEK-SCHEDULES", name)
		if err != nil {
			return err
		}
		week, ok := inst.(*WeekSchedule)
		if !ok {
			return fmt.Errorf("%w: %q is a %s, not a week schedule", model.ErrUnresolved, name, inst.Base().Command)
		}
		segments = append(segments, schedule.Segment{Start: start, Week: week.week})

		if i >= len(months) || i >= len(days) {
			break
		}
		next, ok := dayAfter(cal, schedule.MonthDay{Month: time.Month(months[i]), Day: days[i]})
		if !ok {
			break
		}
		start = next
	}

	hourly, err := schedule.Expand(cal, segments)
	if err != nil {
		return err
	}
	s.hourly = hourly
	return nil
}

// dayAfter returns the date following through. February 29 counts as the
// 28th. ok is false when through is the last simulated day or invalid.
func dayAfter(cal *schedule.Calendar, through schedule.MonthDay) (schedule.MonthDay, bool) {
	if through.Month == time.February && through.Day == 29 {
		through.Day = 28
	}
	i, ok := cal.Index(through)
	if !ok || i+1 >= schedule.DaysPerYear {
		return schedule.MonthDay{}, false
	}
	return cal.Day(i + 1).Date, true
}

func (s *Schedule) Shape() map[string]any {
	sequence, _ := model.MapToken(sequenceTypes, s.Keyword("TYPE"))
	return model.Fields{"id": s.Name}.
		Put("schedule_type", s.Enum(enumScheduleType, "HOURLY")).
		Put("sequence_type", s.Enum(enumScheduleSequence, sequence)).
		Put("hourly_values", s.hourly).
		Map()
}

func (s *Schedule) Attach(doc *model.Document) {
	doc.Append("schedules", s.Data)
}

// Hourly returns the 8760 expanded values.
func (s *Schedule) Hourly() []float64 { return s.hourly }
