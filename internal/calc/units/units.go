// Package units converts between the IP units the derivation units work in
// and the SI units the target schema declares.
//
// Every unit is an affine map onto its SI base (value*scale + offset) tagged
// with gonum dimensions, so a conversion between dimensionally incompatible
// units is rejected instead of silently producing a number.
package units

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/unit"
)

var (
	ErrUnknownUnit  = errors.New("units: unknown unit")
	ErrIncompatible = errors.New("units: incompatible dimensions")
)

type def struct {
	dims   unit.Dimensions
	scale  float64
	offset float64
}

func dims(length, mass, time, temp int) unit.Dimensions {
	d := unit.Dimensions{}
	if length != 0 {
		d[unit.LengthDim] = length
	}
	if mass != 0 {
		d[unit.MassDim] = mass
	}
	if time != 0 {
		d[unit.TimeDim] = time
	}
	if temp != 0 {
		d[unit.TemperatureDim] = temp
	}
	return d
}

var (
	lengthDims      = dims(1, 0, 0, 0)
	areaDims        = dims(2, 0, 0, 0)
	volumeDims      = dims(3, 0, 0, 0)
	flowDims        = dims(3, 0, -1, 0)
	powerDims       = dims(2, 1, -3, 0)
	energyDims      = dims(2, 1, -2, 0)
	tempDims        = dims(0, 0, 0, 1)
	uFactorDims     = dims(0, 1, -3, -1)
	conductDims     = dims(1, 1, -3, -1)
	densityDims     = dims(-3, 1, 0, 0)
	specHeatDims    = dims(2, 0, -2, -1)
	resistanceDims  = dims(0, -1, 3, 1)
	powerAreaDims   = dims(0, 1, -3, 0)
	powerPerFlowDim = dims(-1, 1, -2, 0)
)

const fahrenheitScale = 5.0 / 9.0

var catalog = map[string]def{
	"m":  {dims: lengthDims, scale: 1},
	"ft": {dims: lengthDims, scale: 0.3048},
	"in": {dims: lengthDims, scale: 0.0254},

	"m2":  {dims: areaDims, scale: 1},
	"ft2": {dims: areaDims, scale: 0.09290304},

	"m3":  {dims: volumeDims, scale: 1},
	"ft3": {dims: volumeDims, scale: 0.028316846592},
	"gal": {dims: volumeDims, scale: 0.003785411784},

	"m3/s": {dims: flowDims, scale: 1},
	"cfm":  {dims: flowDims, scale: 0.00047194745},
	"gpm":  {dims: flowDims, scale: 6.30901964e-5},

	"W":        {dims: powerDims, scale: 1},
	"kW":       {dims: powerDims, scale: 1000},
	"Btu/hr":   {dims: powerDims, scale: 0.29307107},
	"kBtu/hr":  {dims: powerDims, scale: 293.07107},
	"MMBtu/hr": {dims: powerDims, scale: 293071.07},
	"ton":      {dims: powerDims, scale: 3516.8528},
	"hp":       {dims: powerDims, scale: 745.699872},

	"J":    {dims: energyDims, scale: 1},
	"Btu":  {dims: energyDims, scale: 1055.05585},
	"kBtu": {dims: energyDims, scale: 1055055.85},
	"kWh":  {dims: energyDims, scale: 3.6e6},

	"K":       {dims: tempDims, scale: 1},
	"C":       {dims: tempDims, scale: 1, offset: 273.15},
	"F":       {dims: tempDims, scale: fahrenheitScale, offset: 459.67 * fahrenheitScale},
	"delta_F": {dims: tempDims, scale: fahrenheitScale},

	"W/(m2*K)":       {dims: uFactorDims, scale: 1},
	"Btu/(hr*ft2*F)": {dims: uFactorDims, scale: 5.678263337},

	"W/(m*K)":       {dims: conductDims, scale: 1},
	"Btu/(hr*ft*F)": {dims: conductDims, scale: 1.730734666},

	"kg/m3":  {dims: densityDims, scale: 1},
	"lb/ft3": {dims: densityDims, scale: 16.01846337},

	"J/(kg*K)":   {dims: specHeatDims, scale: 1},
	"Btu/(lb*F)": {dims: specHeatDims, scale: 4186.8},

	"m2*K/W":       {dims: resistanceDims, scale: 1},
	"hr*ft2*F/Btu": {dims: resistanceDims, scale: 0.1761101838},

	"W/m2":  {dims: powerAreaDims, scale: 1},
	"W/ft2": {dims: powerAreaDims, scale: 10.7639104},

	"W/(m3/s)": {dims: powerPerFlowDim, scale: 1},
	"W/gpm":    {dims: powerPerFlowDim, scale: 1 / 6.30901964e-5},
	"W/cfm":    {dims: powerPerFlowDim, scale: 1 / 0.00047194745},
}

// ipEquivalent is the internal unit used for a schema-declared SI unit when
// no per-field override applies.
var ipEquivalent = map[string]string{
	"m":        "ft",
	"m2":       "ft2",
	"m3":       "ft3",
	"m3/s":     "cfm",
	"W":        "Btu/hr",
	"J":        "kBtu",
	"K":        "F",
	"W/(m2*K)": "Btu/(hr*ft2*F)",
	"W/(m*K)":  "Btu/(hr*ft*F)",
	"kg/m3":    "lb/ft3",
	"J/(kg*K)": "Btu/(lb*F)",
	"m2*K/W":   "hr*ft2*F/Btu",
	"W/m2":     "W/ft2",
	"W/(m3/s)": "W/gpm",
}

// Known reports whether u is in the catalogue.
func Known(u string) bool {
	_, ok := catalog[u]
	return ok
}

// Names returns the catalogue, sorted.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IPEquivalent returns the default internal unit for a schema unit.
func IPEquivalent(schemaUnit string) (string, bool) {
	u, ok := ipEquivalent[schemaUnit]
	return u, ok
}

// Compatible reports whether two known units share dimensions.
func Compatible(from, to string) bool {
	a, okA := catalog[from]
	b, okB := catalog[to]
	if !okA || !okB {
		return false
	}
	return unit.DimensionsMatch(unit.New(1, a.dims), unit.New(1, b.dims))
}

// Convert expresses v, given in from, in to.
func Convert(v float64, from, to string) (float64, error) {
	if from == to {
		return v, nil
	}
	a, ok := catalog[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	b, ok := catalog[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if !unit.DimensionsMatch(unit.New(1, a.dims), unit.New(1, b.dims)) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIncompatible, from, to)
	}
	si := v*a.scale + a.offset
	return (si - b.offset) / b.scale, nil
}

// MustConvert is Convert for unit pairs fixed at compile time.
func MustConvert(v float64, from, to string) float64 {
	out, err := Convert(v, from, to)
	if err != nil {
		panic(err)
	}
	return out
}
