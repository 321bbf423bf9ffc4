package commands

import (
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/curve"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"gonum.org/v1/gonum/floats"
)

var compressorTypes = table(enumCompressor, map[string]string{
	bdlenum.ChillerElecOpenCent:  "CENTRIFUGAL",
	bdlenum.ChillerElecHermCent:  "CENTRIFUGAL",
	bdlenum.ChillerElecHtRec:     "CENTRIFUGAL",
	bdlenum.ChillerElecOpenRec:   "RECIPROCATING",
	bdlenum.ChillerElecHermRec:   "RECIPROCATING",
	bdlenum.ChillerElecScrew:     "SCREW",
	bdlenum.ChillerAbsor1:        "SINGLE_EFFECT_INDIRECT_FIRED_ABSORPTION",
	bdlenum.ChillerAbsor2:        "DOUBLE_EFFECT_INDIRECT_FIRED_ABSORPTION",
	bdlenum.ChillerGasAbsor:      "DOUBLE_EFFECT_DIRECT_FIRED_ABSORPTION",
	bdlenum.ChillerEngine:        "OTHER",
	bdlenum.ChillerHeatPump:      "POSITIVE_DISPLACEMENT",
	bdlenum.ChillerLoopToLoopHP:  "POSITIVE_DISPLACEMENT",
	bdlenum.ChillerWaterEconomiz: model.OmitSentinel,
	bdlenum.ChillerStratTank:     model.OmitSentinel,
})

var (
	absorptionChillers = []string{bdlenum.ChillerAbsor1, bdlenum.ChillerAbsor2}
	fuelChillers       = []string{bdlenum.ChillerGasAbsor, bdlenum.ChillerEngine}
)

// Integrated part-load value rating points: load fractions, their weights
// and the entering condenser temperature (F) at each point per condenser
// type. Leaving chilled water is held at the rated temperature.
var (
	iplvLoads   = []float64{1, 0.75, 0.5, 0.25}
	iplvWeights = []float64{0.01, 0.42, 0.45, 0.12}

	iplvCondenserTemps = map[string][]float64{
		bdlenum.CondenserWaterCooled:      {85, 75, 65, 65},
		bdlenum.CondenserAirCooled:        {95, 80, 65, 55},
		bdlenum.CondenserRemoteAirCooled:  {95, 80, 65, 55},
		bdlenum.CondenserRemoteEvapCooled: {75, 68.75, 62.5, 56.25},
	}
)

const (
	ratedLeavingChilledWater = 44.0
	metricIPLV               = "INTEGRATED_PART_LOAD_VALUE"
)

func init() {
	needs(enumChillerPartLoad, metricIPLV)
	needs(enumEnergySource, energyElectricity)
}

// Chiller is a chilled water generator. Water-side economizers and storage
// tanks are declared as chillers but are not emitted.
type Chiller struct {
	model.Node

	compressor     string
	energy         string
	condenser      string
	condensingLoop string
	minRatio       float64
	cop            *float64
	iplv           *float64
	rated          *float64
	design         *float64
	evapFlow       *float64
	ratedCHWT      float64
	ratedECT       *float64
}

func (c *Chiller) Derive() error {
	token := c.Keyword("TYPE")
	compressor, omit := model.MapToken(compressorTypes, token)
	if omit {
		c.Omit = true
		return nil
	}
	if compressor == "" {
		c.Warn("unknown chiller TYPE %q", token)
	}
	c.compressor = compressor
	c.minRatio = c.FloatOr("MIN-RATIO", 0)

	c.condenser = c.KeywordOr("CONDENSER-TYPE", bdlenum.CondenserWaterCooled)
	if c.condenser == bdlenum.CondenserWaterCooled {
		c.condensingLoop = c.Keyword("CW-LOOP")
	}

	c.ratedCHWT = c.FloatOr("RATED-CHW-T", ratedLeavingChilledWater)
	c.ratedECT = c.Number("RATED-COND-T")
	if temps, ok := iplvCondenserTemps[c.condenser]; ok && c.ratedECT == nil {
		c.ratedECT = model.Float(temps[0])
	}

	switch {
	case slices.Contains(absorptionChillers, token):
		c.cop = inverse(c.Number("HEAT-INPUT-RATIO"))
	case slices.Contains(fuelChillers, token):
		c.energy = fuelSource(&c.Node)
		c.cop = inverse(c.Number("HEAT-INPUT-RATIO"))
	default:
		c.energy = energyElectricity
		if eir, ok := c.Float("ELEC-INPUT-RATIO"); ok && eir > 0 {
			c.cop = model.Float(1 / eir)
			c.iplv = c.integratedPartLoad(eir)
		}
	}

	got := simValues(&c.Node, simoutput.ChillerDesignCapacity, simoutput.ChillerRatedCapacity, simoutput.ChillerDesignFlow)
	c.design = mmbtu(value(got, simoutput.ChillerDesignCapacity))
	c.rated = mmbtu(value(got, simoutput.ChillerRatedCapacity))
	c.evapFlow = value(got, simoutput.ChillerDesignFlow)
	return nil
}

func inverse(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return model.Float(1 / *v)
}

// integratedPartLoad evaluates the chiller's curves at the four rating
// points and returns the weighted COP, or nil when a curve is missing.
func (c *Chiller) integratedPartLoad(eir float64) *float64 {
	temps, ok := iplvCondenserTemps[c.condenser]
	if !ok {
		return nil
	}
	capFT, okCap := curveRef(&c.Node, "CAPACITY-FT")
	eirFT, okEIR := curveRef(&c.Node, "EIR-FT")
	eirPLR, okPLR := curveRef(&c.Node, "EIR-FPLR")
	if !okCap || !okEIR || !okPLR {
		return nil
	}
	cops, ok := iplvPoints(eir, c.minRatio, ratedLeavingChilledWater, temps, capFT, eirFT, eirPLR)
	if !ok {
		c.Warn("part-load curves give a non-positive capacity or power")
		return nil
	}
	return model.Float(floats.Dot(iplvWeights, cops))
}

// iplvPoints returns the COP at each rating point. At a point the load is
// the load fraction of rated capacity and the machine runs at that load over
// its available capacity; below the minimum ratio the part-load curve is
// held at the minimum ratio. A bivariate part-load curve takes the
// condenser-to-chilled-water temperature difference as second input.
func iplvPoints(eir, minRatio, chwt float64, condTemps []float64, capFT, eirFT, eirPLR curve.Curve) ([]float64, bool) {
	cops := make([]float64, len(iplvLoads))
	for i, load := range iplvLoads {
		tc := condTemps[i]
		capacity := capFT.Eval(chwt, tc)
		if capacity <= 0 {
			return nil, false
		}
		plr := max(load/capacity, minRatio)
		power := capacity * eir * eirFT.Eval(chwt, tc) * eirPLR.Eval(plr, tc-chwt)
		if power <= 0 {
			return nil, false
		}
		cops[i] = load / power
	}
	return cops, true
}

func (c *Chiller) Shape() map[string]any {
	f := model.Fields{"id": c.Name}.
		Put("cooling_loop", c.Keyword("CHW-LOOP")).
		Put("condensing_loop", c.condensingLoop).
		Put("heat_recovery_loop", c.Keyword("HTREC-LOOP")).
		Put("compressor_type", c.Enum(enumCompressor, c.compressor)).
		Put("energy_source_type", c.Enum(enumEnergySource, c.energy)).
		Put("rated_capacity", c.rated).
		Put("design_capacity", c.design).
		Put("minimum_load_ratio", c.Number("MIN-RATIO")).
		Put("rated_leaving_evaporator_temperature", c.ratedCHWT).
		Put("rated_entering_condenser_temperature", c.ratedECT).
		Put("design_leaving_evaporator_temperature", c.Number("DESIGN-CHW-T")).
		Put("design_entering_condenser_temperature", c.Number("DESIGN-COND-T")).
		Put("design_flow_evaporator", c.evapFlow).
		Put("full_load_efficiency", c.cop)
	if c.iplv != nil {
		f.Put("part_load_efficiency", c.iplv).
			Put("part_load_efficiency_metric", c.Enum(enumChillerPartLoad, metricIPLV))
	}
	return f.Map()
}

func (c *Chiller) Attach(doc *model.Document) {
	doc.Append("chillers", c.Data)
}
