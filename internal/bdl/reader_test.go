package bdl

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) *File {
	t.Helper()
	f, err := os.Open("testdata/office.bdl")
	require.NoError(t, err)
	defer f.Close()

	file, err := NewReader().Read(f)
	require.NoError(t, err)
	return file
}

func TestReadFixtureVersionAndCounts(t *testing.T) {
	file := readFixture(t)

	assert.Equal(t, "DOE-2.3-50h", file.Version)
	assert.Len(t, file.Records, 41)
	assert.Equal(t, map[string]int{
		"RUN-PERIOD-PD":    1,
		"HOLIDAYS":         1,
		"SITE-PARAMETERS":  1,
		"BUILD-PARAMETERS": 1,
		"FUEL-METER":       1,
		"MASTER-METERS":    1,
		"DAY-SCHEDULE-PD":  3,
		"WEEK-SCHEDULE-PD": 2,
		"SCHEDULE-PD":      2,
		"CURVE-FIT":        4,
		"MATERIAL":         2,
		"LAYERS":           1,
		"CONSTRUCTION":     2,
		"GLASS-TYPE":       1,
		"CIRCULATION-LOOP": 3,
		"PUMP":             1,
		"EQUIP-CTRL":       1,
		"BOILER":           2,
		"CHILLER":          2,
		"HEAT-REJECTION":   1,
		"FLOOR":            1,
		"SPACE":            1,
		"EXTERIOR-WALL":    2,
		"WINDOW":           1,
		"INTERIOR-WALL":    1,
		"SYSTEM":           1,
		"ZONE":             1,
	}, file.Counts())
}

func TestReadFixtureIsStable(t *testing.T) {
	first := readFixture(t)
	second := readFixture(t)
	assert.Equal(t, first.Nested(), second.Nested())
}

func TestUnconsumedCommandSkipped(t *testing.T) {
	file := readFixture(t)
	assert.NotContains(t, file.Nested(), "LOADS-REPORT")
}

func TestKeywordValues(t *testing.T) {
	file := readFixture(t)
	nested := file.Nested()

	t.Run("units stripped", func(t *testing.T) {
		site := nested["SITE-PARAMETERS"]["Site Data"]
		assert.Equal(t, "40.7", site["LATITUDE"])
		assert.Equal(t, "33", site["ALTITUDE"])
	})

	t.Run("quoted string keeps spaces", func(t *testing.T) {
		site := nested["SITE-PARAMETERS"]["Site Data"]
		assert.Equal(t, "NY New York JFK TMY3.bin", site["WEATHER-FILE"])
	})

	t.Run("multi-line list", func(t *testing.T) {
		values, ok := nested["DAY-SCHEDULE-PD"]["Occ Day"]["VALUES"].([]string)
		require.True(t, ok)
		assert.Len(t, values, 24)
		assert.Equal(t, "0.1", values[7])
	})

	t.Run("quoted list items", func(t *testing.T) {
		days, ok := nested["WEEK-SCHEDULE-PD"]["Occ Week"]["DAY-SCHEDULES"].([]string)
		require.True(t, ok)
		assert.Len(t, days, 12)
		assert.Equal(t, "Occ Day", days[0])
		assert.Equal(t, "&D", days[1])
	})
}

func TestLibraryEntry(t *testing.T) {
	file := readFixture(t)
	nested := file.Nested()

	curve := nested["CURVE-FIT"]["Boiler HIR-fPLR"]
	assert.Equal(t, "QUADRATIC", curve["TYPE"])
	assert.Equal(t, "COEFFICIENTS", curve["INPUT-TYPE"])
	assert.Equal(t, []string{"0.0814", "0.9197", "-0.0011"}, curve["COEFFICIENTS"])
	assert.Equal(t, "0.0", curve["OUTPUT-MIN"])
	assert.Equal(t, "10.0", curve["OUTPUT-MAX"])

	brick := nested["MATERIAL"]["Brick"]
	assert.Equal(t, "PROPERTIES", brick["TYPE"])
	assert.Equal(t, "0.3333", brick["THICKNESS"])
	assert.Equal(t, "0.2", brick["SPECIFIC-HEAT"])
}

func TestImplicitParents(t *testing.T) {
	file := readFixture(t)
	parents := make(map[string]string)
	for _, r := range file.Records {
		parents[r.Name] = r.Parent
	}

	tests := []struct {
		name   string
		parent string
	}{
		{"Floor 1", ""},
		{"Office", "Floor 1"},
		{"South Wall", "Office"},
		{"South Window", "South Wall"},
		{"Roof", "Office"},
		{"Core Wall", "Office"},
		{"VAV 1", ""},
		{"Office Zone", "VAV 1"},
		{"Boiler 1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.parent, parents[tt.name])
		})
	}
}

func TestRepeatedKeywordBecomesList(t *testing.T) {
	file, err := Parse(`"Sys" = SYSTEM
   ZONE-NAME = A
   ZONE-NAME = B
   ZONE-NAME = ( C, D )
`)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, file.Records[0].Map()["ZONE-NAME"])
}

func TestDataForMismatchSkipsBlock(t *testing.T) {
	file, err := Parse(`"Pump A" = PUMP
DATA FOR Pump B
   HEAD = 50
`)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	_, ok := file.Records[0].Get("HEAD")
	assert.False(t, ok)
}

func TestMalformedLinesTolerated(t *testing.T) {
	file, err := Parse(`"Pump A" = PUMP
   HEAD 50
   = 3
   MOTOR-EFF = 0.9
not indented = ignored
   CAP-CTRL = VAR-SPEED-PUMP
`)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, map[string]any{"MOTOR-EFF": "0.9"}, file.Records[0].Map())
}

func TestUnbalancedListAtEOF(t *testing.T) {
	file, err := Parse(`"Day" = DAY-SCHEDULE-PD
   VALUES = ( 1, 2,
      3`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, file.Records[0].Map()["VALUES"])
}

func TestUnbalancedListEndsAtDeclaration(t *testing.T) {
	file, err := Parse(`"Day" = DAY-SCHEDULE-PD
   VALUES = ( 1, 2
"B" = BOILER
   TYPE = HW-BOILER
`)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"DAY-SCHEDULE-PD": 1, "BOILER": 1}, file.Counts())
	assert.Equal(t, []string{"1", "2"}, file.Records[0].Map()["VALUES"])
	assert.Equal(t, "HW-BOILER", file.Records[1].Map()["TYPE"])
}

func TestUnbalancedListEndsAtDataFor(t *testing.T) {
	file, err := Parse(`"Pump A" = PUMP
   MOTOR-EFF = ( 0.9
DATA FOR "Pump A"
   HEAD = 50
`)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, map[string]any{"MOTOR-EFF": []string{"0.9"}, "HEAD": "50"}, file.Records[0].Map())
}

func TestEmptyInput(t *testing.T) {
	_, err := Parse("  \n\t\n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNoVersionHeader(t *testing.T) {
	file, err := Parse(`"F" = FLOOR` + "\n")
	require.NoError(t, err)
	assert.Empty(t, file.Version)
}

func TestKeywordOrder(t *testing.T) {
	file, err := Parse(strings.Join([]string{
		`"B" = BOILER`,
		`   TYPE = HW-BOILER`,
		`   MIN-RATIO = 0.2`,
		`   HW-LOOP = "L"`,
	}, "\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"TYPE", "MIN-RATIO", "HW-LOOP"}, file.Records[0].Keywords())
}
