package commands

import (
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/units"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

// Boiler efficiency conversion. Below the breakpoint AFUE is a linear
// function of thermal efficiency; above it AFUE equals thermal efficiency.
const (
	afueBreakpoint   = 0.8344
	afueIntercept    = 0.4033
	afueSlope        = 0.5163
	combustionOffset = 0.02

	defaultBoilerHIR = 1.25
)

const (
	metricThermal    = "THERMAL"
	metricCombustion = "COMBUSTION"
	metricAFUE       = "ANNUAL_FUEL_UTILIZATION"
)

var boilerDrafts = table(enumDraft, map[string]string{
	bdlenum.BoilerHW:         "NATURAL",
	bdlenum.BoilerHWCondense: "NATURAL",
	bdlenum.BoilerSteam:      "NATURAL",
	bdlenum.BoilerHWDraft:    "FORCED",
	bdlenum.BoilerSteamDraft: "FORCED",
	bdlenum.BoilerElecHW:     "",
	bdlenum.BoilerElecSteam:  "",
	bdlenum.BoilerHeatPumpHW: model.OmitSentinel,
})

var electricBoilers = []string{bdlenum.BoilerElecHW, bdlenum.BoilerElecSteam}

func init() {
	needs(enumBoilerMetric, metricThermal, metricCombustion, metricAFUE)
	needs(enumEnergySource, energyElectricity, energyNaturalGas)
}

// Boiler is a hot water or steam boiler.
type Boiler struct {
	model.Node

	loop       string
	draft      string
	energy     string
	minRatio   *float64
	efficiency []float64
	rated      *float64
	design     *float64
	auxPower   *float64
	lower      *float64
	upper      *float64
}

func (b *Boiler) Derive() error {
	token := b.KeywordOr("TYPE", bdlenum.BoilerHW)
	draft, omit := model.MapToken(boilerDrafts, token)
	if omit {
		b.Omit = true
		return nil
	}
	b.draft = draft
	b.loop = b.Keyword("HW-LOOP")
	b.minRatio = b.Number("MIN-RATIO")

	if slices.Contains(electricBoilers, token) {
		b.energy = energyElectricity
		eff := 1.0
		if v := inverse(b.Number("ELEC-INPUT-RATIO")); v != nil {
			eff = *v
		}
		b.efficiency = []float64{eff, eff, eff}
	} else {
		b.energy = fuelSource(&b.Node)
		thermal := 1 / defaultBoilerHIR
		if v := inverse(b.Number("HEAT-INPUT-RATIO")); v != nil {
			thermal = *v
		}
		combustion, afue := boilerEfficiencies(thermal)
		b.efficiency = []float64{thermal, combustion, afue}
	}

	got := simValues(&b.Node, simoutput.BoilerDesignCapacity, simoutput.BoilerRatedCapacity, simoutput.BoilerAuxPower)
	b.design = mmbtu(value(got, simoutput.BoilerDesignCapacity))
	b.rated = mmbtu(value(got, simoutput.BoilerRatedCapacity))
	b.auxPower = scaled(value(got, simoutput.BoilerAuxPower), 1000)
	if b.auxPower == nil {
		b.auxPower = scaled(b.Number("AUX-KW"), 1000)
	}

	if b.loop != "" {
		b.lower, b.upper = b.operatingBand()
	}
	return nil
}

// boilerEfficiencies derives combustion efficiency and AFUE from thermal
// efficiency.
func boilerEfficiencies(thermal float64) (combustion, afue float64) {
	combustion = thermal + combustionOffset
	if thermal < afueBreakpoint {
		return combustion, (thermal - afueIntercept) / afueSlope
	}
	return combustion, thermal
}

// mmbtu converts a simulation capacity in Btu/hr to MMBtu/hr.
func mmbtu(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(units.MustConvert(*v, "Btu/hr", "MMBtu/hr"))
}

// operatingBand places the boiler in the staging sequence of its loop. The
// lower limit is the summed rated capacity of the boilers staged before it.
func (b *Boiler) operatingBand() (lower, upper *float64) {
	sequence, ok := boilerSequence(b.RMD, b.loop)
	if !ok {
		return nil, nil
	}
	pos := slices.Index(sequence, b.Name)
	if pos < 0 {
		return nil, nil
	}

	sum := 0.0
	for _, name := range sequence[:pos+1] {
		got := simoutput.NewBatch(name, simoutput.BoilerRatedCapacity).Resolve(b.RMD.Outputs)
		rated, ok := got[simoutput.BoilerRatedCapacity]
		if !ok {
			return nil, nil
		}
		if name == b.Name {
			lower = model.Float(sum)
		}
		sum += units.MustConvert(rated, "Btu/hr", "MMBtu/hr")
	}
	return lower, model.Float(sum)
}

// boilerSequence returns the staging order of the boilers on loop: the
// merged stage lists of the first EQUIP-CTRL controlling the loop, then the
// boilers on the loop that no list names, in declaration order. ok is false
// when the stage lists conflict.
func boilerSequence(rmd *model.RMD, loop string) (sequence []string, ok bool) {
	for _, ctrl := range model.InstancesOf[*EquipCtrl](rmd) {
		if ctrl.loop != loop {
			continue
		}
		if sequence, ok = ctrl.boilerOrder(); !ok {
			return nil, false
		}
		break
	}
	sequence = slices.Clone(sequence)
	for _, boiler := range model.InstancesOf[*Boiler](rmd) {
		if boiler.Keyword("HW-LOOP") == loop && !slices.Contains(sequence, boiler.Name) {
			sequence = append(sequence, boiler.Name)
		}
	}
	return sequence, true
}

// boilerOrder merges the boilers named by the stage lists. It is resolved
// once per controller; a conflict is reported on the controller.
func (e *EquipCtrl) boilerOrder() ([]string, bool) {
	if e.boilers.resolved {
		return e.boilers.order, e.boilers.ok
	}
	lists := make([][]string, 0, len(e.stages))
	for _, stage := range e.stages {
		var boilers []string
		for _, name := range stage {
			if _, isBoiler := model.ResolveAs[*Boiler](e.RMD, name); isBoiler && !slices.Contains(boilers, name) {
				boilers = append(boilers, name)
			}
		}
		lists = append(lists, boilers)
	}
	e.boilers.order, e.boilers.ok = mergeStages(lists)
	e.boilers.resolved = true
	if !e.boilers.ok {
		e.Warn("EQUIP-CTRL lists for loop %q stage boilers in conflicting order", e.loop)
	}
	return e.boilers.order, e.boilers.ok
}

// mergeStages merges load-range lists into one staging order. Equipment new
// to the merge follows everything already staged, in list order. A list
// that reorders staged equipment, or names new equipment ahead of staged
// equipment, is a conflict and the whole sequence is discarded.
func mergeStages(lists [][]string) ([]string, bool) {
	var merged []string
	for _, list := range lists {
		last, sawNew := -1, false
		for _, name := range list {
			pos := slices.Index(merged, name)
			if pos < 0 {
				sawNew = true
				continue
			}
			if sawNew || pos < last {
				return nil, false
			}
			last = pos
		}
		for _, name := range list {
			if !slices.Contains(merged, name) {
				merged = append(merged, name)
			}
		}
	}
	return merged, true
}

func (b *Boiler) Shape() map[string]any {
	var metrics []string
	if len(b.efficiency) > 0 {
		metrics = []string{
			b.Enum(enumBoilerMetric, metricThermal),
			b.Enum(enumBoilerMetric, metricCombustion),
			b.Enum(enumBoilerMetric, metricAFUE),
		}
	}
	return model.Fields{"id": b.Name}.
		Put("loop", b.loop).
		Put("energy_source_type", b.Enum(enumEnergySource, b.energy)).
		Put("draft_type", b.Enum(enumDraft, b.draft)).
		Put("rated_capacity", b.rated).
		Put("design_capacity", b.design).
		Put("minimum_load_ratio", b.minRatio).
		Put("efficiency_metrics", metrics).
		Put("efficiency", b.efficiency).
		Put("auxiliary_power", b.auxPower).
		Put("operation_lower_limit", b.lower).
		Put("operation_upper_limit", b.upper).
		Map()
}

func (b *Boiler) Attach(doc *model.Document) {
	doc.Append("boilers", b.Data)
}
