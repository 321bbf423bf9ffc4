package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantDay(v float64) []float64 {
	out := make([]float64, HoursPerDay)
	for i := range out {
		out[i] = v
	}
	return out
}

func weekOf(weekday, weekend, holiday float64) Week {
	var w Week
	for i := range w {
		switch DayType(i) {
		case Saturday, Sunday:
			w[i] = constantDay(weekend)
		case Holiday:
			w[i] = constantDay(holiday)
		default:
			w[i] = constantDay(weekday)
		}
	}
	return w
}

func TestCalendarWeekdays(t *testing.T) {
	cal := ForYear(2019)
	assert.False(t, cal.Leap)
	assert.Equal(t, time.Tuesday, cal.Day(0).Weekday)
	assert.Equal(t, MonthDay{time.December, 31}, cal.Day(DaysPerYear-1).Date)
	assert.Equal(t, Tuesday, cal.Day(0).Type())
}

func TestLeapYearSkipsFebruary29(t *testing.T) {
	cal := ForYear(2020)
	require.True(t, cal.Leap)

	feb28, ok := cal.Index(MonthDay{time.February, 28})
	require.True(t, ok)
	_, ok = cal.Index(MonthDay{time.February, 29})
	assert.False(t, ok)

	assert.Equal(t, time.Friday, cal.Day(feb28).Weekday)
	assert.Equal(t, MonthDay{time.March, 1}, cal.Day(feb28+1).Date)
	assert.Equal(t, time.Sunday, cal.Day(feb28+1).Weekday)
	assert.Equal(t, MonthDay{time.December, 31}, cal.Day(DaysPerYear-1).Date)
}

func TestOfficialHolidays2019(t *testing.T) {
	got := OfficialHolidays(ForYear(2019))
	assert.ElementsMatch(t, []MonthDay{
		{time.January, 1},
		{time.January, 21},
		{time.February, 18},
		{time.May, 27},
		{time.July, 4},
		{time.September, 2},
		{time.October, 14},
		{time.November, 11},
		{time.November, 28},
		{time.December, 25},
	}, got)
}

func TestOfficialHolidaysObserved(t *testing.T) {
	got := OfficialHolidays(ForYear(2021))
	assert.Contains(t, got, MonthDay{time.July, 5})
	assert.NotContains(t, got, MonthDay{time.July, 4})
	assert.Contains(t, got, MonthDay{time.December, 24})

	got = OfficialHolidays(ForYear(2022))
	assert.NotContains(t, got, MonthDay{time.January, 1})
	assert.Contains(t, got, MonthDay{time.December, 26})
}

func TestAlternateHolidays(t *testing.T) {
	got := AlternateHolidays([]int{1, 7, 13, 12}, []int{2, 4, 1})
	assert.Equal(t, []MonthDay{{time.January, 2}, {time.July, 4}}, got)
}

func TestWithHolidaysDoesNotMutate(t *testing.T) {
	base := ForYear(2019)
	withHol := base.WithOfficialHolidays()
	assert.Empty(t, base.Holidays())
	assert.Len(t, withHol.Holidays(), 10)
}

func TestPadDay(t *testing.T) {
	got, err := PadDay([]float64{0, 1})
	require.NoError(t, err)
	assert.Len(t, got, HoursPerDay)
	assert.Equal(t, 1.0, got[23])

	_, err = PadDay(nil)
	assert.ErrorIs(t, err, ErrEmptyDay)
}

func TestResolveWeek(t *testing.T) {
	names, err := ResolveWeek([]string{"A", InheritToken, InheritToken, InheritToken, InheritToken, "B", InheritToken, "H"})
	require.NoError(t, err)
	assert.Equal(t, "A", names[Friday])
	assert.Equal(t, "B", names[Sunday])
	assert.Equal(t, "H", names[Holiday])
	assert.Equal(t, "H", names[DesignDay4])

	_, err = ResolveWeek([]string{InheritToken})
	assert.ErrorIs(t, err, ErrLeadingInherit)
	_, err = ResolveWeek(nil)
	assert.ErrorIs(t, err, ErrEmptyWeek)
}

func TestNewWeekMissingDay(t *testing.T) {
	names, err := ResolveWeek([]string{"A"})
	require.NoError(t, err)
	_, err = NewWeek(names, func(string) ([]float64, bool) { return nil, false })
	assert.Error(t, err)
}

func TestExpandTotalAndIdempotent(t *testing.T) {
	cal := ForYear(2019).WithOfficialHolidays()
	segments := []Segment{{Start: MonthDay{time.December, 31}, Week: weekOf(1, 0.5, 0)}}

	first, err := Expand(cal, segments)
	require.NoError(t, err)
	second, err := Expand(cal, segments)
	require.NoError(t, err)

	assert.Len(t, first, HoursPerYear)
	assert.Equal(t, first, second)

	assert.Equal(t, 0.0, first[0], "January 1 is a holiday")
	assert.Equal(t, 1.0, first[HoursPerDay], "January 2 is a Wednesday")
	assert.Equal(t, 0.5, first[4*HoursPerDay], "January 5 is a Saturday")
}

func TestExpandSegmentsWrap(t *testing.T) {
	cal := ForYear(2019)
	segments := []Segment{
		{Start: MonthDay{time.October, 1}, Week: weekOf(2, 2, 2)},
		{Start: MonthDay{time.March, 1}, Week: weekOf(1, 1, 1)},
	}
	values, err := Expand(cal, segments)
	require.NoError(t, err)

	mar1, _ := cal.Index(MonthDay{time.March, 1})
	oct1, _ := cal.Index(MonthDay{time.October, 1})
	assert.Equal(t, 2.0, values[0])
	assert.Equal(t, 2.0, values[(mar1-1)*HoursPerDay])
	assert.Equal(t, 1.0, values[mar1*HoursPerDay])
	assert.Equal(t, 1.0, values[(oct1-1)*HoursPerDay])
	assert.Equal(t, 2.0, values[oct1*HoursPerDay])
}

func TestExpandErrors(t *testing.T) {
	_, err := Expand(ForYear(2019), nil)
	assert.ErrorIs(t, err, ErrNoSegments)

	_, err = Expand(ForYear(2019), []Segment{{Start: MonthDay{time.January, 1}}})
	assert.Error(t, err)
}

func TestConstant(t *testing.T) {
	values := Constant(3)
	assert.Len(t, values, HoursPerYear)
	assert.Equal(t, 3.0, values[HoursPerYear-1])
}
