// Package simoutput is the read-only source of simulation results consulted
// while deriving instances. Results are keyed by a numeric report code and
// the name of the instance they describe.
package simoutput

import (
	"fmt"
	"sort"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
)

// Request identifies one simulation result.
type Request struct {
	Code int
	Name string
}

// Source answers lookups with the available subset of the requested keys.
// Missing keys are absent from the result, never zero-valued.
type Source interface {
	Lookup(reqs []Request) map[Request]float64
}

// Report codes. Values are native simulation units: capacities Btu/hr, flows
// cfm or gpm, powers kW.
const (
	BoilerDesignCapacity = 2315001
	BoilerRatedCapacity  = 2315002
	BoilerAuxPower       = 2315003

	ChillerDesignCapacity = 2316001
	ChillerRatedCapacity  = 2316002
	ChillerDesignFlow     = 2316003

	HeatRejectionCapacity  = 2317001
	HeatRejectionFanPower  = 2317002
	HeatRejectionWaterFlow = 2317003

	PumpDesignFlow  = 2318001
	PumpDesignPower = 2318002

	DWHeaterCapacity = 2319001

	SystemCoolingCapacity = 2201001
	SystemHeatingCapacity = 2201002
	SystemSupplyFlow      = 2201003
	SystemSupplyFanPower  = 2201004
	SystemReturnFlow      = 2201005
	SystemReturnFanPower  = 2201006
	SystemOutdoorFlow     = 2201007

	ZoneSupplyFlow   = 2202001
	ZoneHeatingFlow  = 2202002
	ZoneOutdoorFlow  = 2202003
	ZoneExhaustFlow  = 2202004
	ZoneFanPower     = 2202005
	ZoneMinimumFlow  = 2202006
	ZoneHeatCapacity = 2202007
)

// Static is an in-memory Source.
type Static map[Request]float64

// Lookup implements Source.
func (s Static) Lookup(reqs []Request) map[Request]float64 {
	out := make(map[Request]float64, len(reqs))
	for _, r := range reqs {
		if v, ok := s[r]; ok {
			out[r] = v
		}
	}
	return out
}

// Set stores one value.
func (s Static) Set(code int, name string, v float64) {
	s[Request{Code: code, Name: name}] = v
}

// Requests returns the stored keys sorted by code then name.
func (s Static) Requests() []Request {
	out := make([]Request, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Empty has no results.
var Empty Source = Static(nil)

// Entry is one record of a fixture file.
type Entry struct {
	Code  int     `json:"code" yaml:"code" toml:"code"`
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value float64 `json:"value" yaml:"value" toml:"value"`
}

type fixture struct {
	Outputs []Entry `json:"outputs" yaml:"outputs" toml:"outputs"`
}

// LoadFile reads a JSON, YAML or TOML fixture of the form
// {outputs: [{code, name, value}, ...]}. A later duplicate key overrides an
// earlier one.
func LoadFile(path string) (Static, error) {
	var f fixture
	if err := fsutil.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("simoutput: %w", err)
	}
	return FromEntries(f.Outputs), nil
}

// Decode reads a fixture in the given fsutil format from memory.
func Decode(format string, data []byte) (Static, error) {
	var f fixture
	if err := fsutil.Decode(format, data, &f); err != nil {
		return nil, fmt.Errorf("simoutput: %w", err)
	}
	return FromEntries(f.Outputs), nil
}

// FromEntries builds a Static source.
func FromEntries(entries []Entry) Static {
	s := make(Static, len(entries))
	for _, e := range entries {
		s.Set(e.Code, e.Name, e.Value)
	}
	return s
}

// Batch accumulates requests for one instance and resolves them in one call.
type Batch struct {
	name string
	reqs []Request
}

// NewBatch starts a batch for the named instance.
func NewBatch(name string, codes ...int) *Batch {
	b := &Batch{name: name}
	for _, c := range codes {
		b.reqs = append(b.reqs, Request{Code: c, Name: name})
	}
	return b
}

// Resolve performs the lookup and returns values by code.
func (b *Batch) Resolve(src Source) map[int]float64 {
	if src == nil {
		src = Empty
	}
	found := src.Lookup(b.reqs)
	out := make(map[int]float64, len(found))
	for r, v := range found {
		if r.Name == b.name {
			out[r.Code] = v
		}
	}
	return out
}
