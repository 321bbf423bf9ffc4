package commands

import (
	"strings"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/schedule"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

var weekdays = map[time.Weekday]string{
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
	time.Sunday:    "SUNDAY",
}

func init() {
	for _, day := range weekdays {
		needs(enumDayOfWeek, day)
	}
	needs(enumWeatherSource, "TMY", "TMY2", "TMY3", "TMYX", "CZ2010", "OTHER")
}

// RunPeriod sets the simulated year and lays out the model's calendar.
type RunPeriod struct {
	model.Node

	year int
	cal  *schedule.Calendar
}

func (r *RunPeriod) Derive() error {
	r.year = model.DefaultYear
	if y, ok := r.Int("END-YEAR"); ok {
		r.year = y
	} else if y, ok := r.Int("BEGIN-YEAR"); ok {
		r.year = y
	}
	r.cal = schedule.ForYear(r.year)
	r.RMD.Calendar = r.cal
	return nil
}

func (r *RunPeriod) Shape() map[string]any {
	return model.Fields{}.
		Put("day_of_week_for_january_1", r.Enum(enumDayOfWeek, weekdays[r.cal.Jan1])).
		Put("is_leap_year", model.Bool(r.cal.Leap)).
		Map()
}

// Attach sets the project calendar. With several run periods the first one
// declared wins.
func (r *RunPeriod) Attach(doc *model.Document) {
	if _, ok := doc.Project["calendar"]; !ok {
		doc.SetProject("calendar", r.Data)
	}
}

// Holidays computes a holiday date set. BUILD-PARAMETERS decides which set is
// overlaid on the calendar.
type Holidays struct {
	model.Node

	dates []schedule.MonthDay
}

func (h *Holidays) Derive() error {
	switch h.KeywordOr("TYPE", bdlenum.HolidayOfficial) {
	case bdlenum.HolidayAlternate:
		h.dates = schedule.AlternateHolidays(ints(h.Floats("MONTHS")), ints(h.Floats("DAYS")))
	default:
		h.dates = schedule.OfficialHolidays(h.RMD.Calendar)
	}
	return nil
}

func (h *Holidays) Shape() map[string]any { return nil }

func (h *Holidays) Attach(*model.Document) {}

// Dates returns the holiday dates of the simulated year.
func (h *Holidays) Dates() []schedule.MonthDay {
	return append([]schedule.MonthDay(nil), h.dates...)
}

func ints(values []float64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

// SiteParameters describes the weather file and site location.
type SiteParameters struct {
	model.Node
}

func (s *SiteParameters) Derive() error { return nil }

func (s *SiteParameters) Shape() map[string]any {
	file := s.Keyword("WEATHER-FILE")
	return model.Fields{}.
		Put("file_name", file).
		Put("data_source_type", s.Enum(enumWeatherSource, weatherSource(file))).
		Put("latitude", s.Number("LATITUDE")).
		Put("longitude", s.Number("LONGITUDE")).
		Put("elevation", s.Number("ALTITUDE")).
		Map()
}

func (s *SiteParameters) Attach(doc *model.Document) {
	if _, ok := doc.Project["weather"]; !ok && s.Data != nil {
		doc.SetProject("weather", s.Data)
	}
}

// weatherSource infers the data source from the weather file name.
func weatherSource(file string) string {
	if file == "" {
		return ""
	}
	upper := strings.ToUpper(file)
	for _, marker := range []string{"TMYX", "TMY3", "TMY2", "CZ2010", "TMY"} {
		if strings.Contains(upper, marker) {
			return marker
		}
	}
	return "OTHER"
}

// BuildParameters carries the building azimuth and selects the holiday set.
type BuildParameters struct {
	model.Node

	azimuth float64
}

func (b *BuildParameters) Derive() error {
	b.azimuth = b.FloatOr("AZIMUTH", 0)

	var holidays *Holidays
	if name := b.Keyword("HOLIDAYS"); name != "" {
		h, ok := model.ResolveAs[*Holidays](b.RMD, name)
		if !ok {
			b.Warn("HOLIDAYS %q does not resolve", name)
		}
		holidays = h
	} else if all := model.InstancesOf[*Holidays](b.RMD); len(all) > 0 {
		holidays = all[0]
	}
	if holidays != nil {
		b.RMD.Calendar = b.RMD.Calendar.WithHolidays(holidays.Dates())
	}
	return nil
}

func (b *BuildParameters) Shape() map[string]any { return nil }

func (b *BuildParameters) Attach(*model.Document) {}

// buildingAzimuth returns the azimuth of the first BUILD-PARAMETERS, or 0.
func buildingAzimuth(rmd *model.RMD) float64 {
	if all := model.InstancesOf[*BuildParameters](rmd); len(all) > 0 {
		return all[0].azimuth
	}
	return 0
}
