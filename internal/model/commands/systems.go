package commands

import (
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"go.uber.org/zap"
)

// Hourly fan schedule flags. Any other value is treated as unclassifiable.
const (
	fanFlagOff   = 0.0
	fanFlagOn    = 1.0
	fanFlagCycle = -1.0
)

const (
	fanOpContinuous = "CONTINUOUS"
	fanOpCycling    = "CYCLING"
	fanOpKeepOff    = "KEEP_OFF"
	fanOpOther      = "OTHER"

	fanSpecSimple = "SIMPLE"
	fanModeCycle  = "INTERMITTENT"
)

const (
	coolFluidLoop = "FLUID_LOOP"
	heatFluidLoop = "FLUID_LOOP"
)

var systemTypes = map[string]string{
	bdlenum.SysSUM: model.OmitSentinel,
}

// systemCoolSources is the cooling source of system types that do not
// declare one. Types not listed are chilled-water systems.
var systemCoolSources = map[string]string{
	bdlenum.SysPSZ:       bdlenum.CoolElecDX,
	bdlenum.SysPMZS:      bdlenum.CoolElecDX,
	bdlenum.SysPVAVS:     bdlenum.CoolElecDX,
	bdlenum.SysPVVT:      bdlenum.CoolElecDX,
	bdlenum.SysPTAC:      bdlenum.CoolElecDX,
	bdlenum.SysHP:        bdlenum.CoolElecDX,
	bdlenum.SysRESYS:     bdlenum.CoolElecDX,
	bdlenum.SysRESVVT:    bdlenum.CoolElecDX,
	bdlenum.SysCBVAV:     bdlenum.CoolElecDX,
	bdlenum.SysUHT:       bdlenum.CoolNone,
	bdlenum.SysUVT:       bdlenum.CoolNone,
	bdlenum.SysFPH:       bdlenum.CoolNone,
	bdlenum.SysBaseboard: bdlenum.CoolNone,
	bdlenum.SysEvap:      bdlenum.SysEvap,
}

// systemHeatSources is the HEAT-SOURCE default per system type. Types not
// listed default to hot water.
var systemHeatSources = map[string]string{
	bdlenum.SysHP:     bdlenum.HeatHeatPump,
	bdlenum.SysPSZ:    bdlenum.HeatFurnace,
	bdlenum.SysPMZS:   bdlenum.HeatFurnace,
	bdlenum.SysPVAVS:  bdlenum.HeatFurnace,
	bdlenum.SysPVVT:   bdlenum.HeatFurnace,
	bdlenum.SysRESYS:  bdlenum.HeatFurnace,
	bdlenum.SysRESVVT: bdlenum.HeatFurnace,
	bdlenum.SysCBVAV:  bdlenum.HeatFurnace,
	bdlenum.SysFPH:    bdlenum.HeatFurnace,
	bdlenum.SysPTAC:   bdlenum.HeatElectric,
	bdlenum.SysEvap:   bdlenum.HeatNone,
}

var coolingTypes = table(enumCoolingSystem, map[string]string{
	bdlenum.CoolChilled: coolFluidLoop,
	bdlenum.CoolElecDX:  "DIRECT_EXPANSION",
	bdlenum.SysEvap:     "NON_MECHANICAL",
	bdlenum.CoolNone:    "NONE",
})

var heatingTypes = table(enumHeatingSystem, map[string]string{
	bdlenum.HeatElectric: "ELECTRIC_RESISTANCE",
	bdlenum.HeatHotWater: heatFluidLoop,
	bdlenum.HeatSteam:    heatFluidLoop,
	bdlenum.HeatDHWLoop:  heatFluidLoop,
	bdlenum.HeatFurnace:  "FURNACE",
	bdlenum.HeatHeatPump: "HEAT_PUMP",
	bdlenum.HeatGasHydro: "OTHER",
	bdlenum.HeatOilHydro: "OTHER",
	bdlenum.HeatNone:     "NONE",
})

var fanControls = table(enumFanControl, map[string]string{
	bdlenum.FanConstant:      "CONSTANT",
	bdlenum.FanSpeed:         "VARIABLE_SPEED",
	bdlenum.FanInlet:         "INLET_VANE",
	bdlenum.FanDischarge:     "DISCHARGE_DAMPER",
	bdlenum.FanTwoSpeed:      "MULTISPEED",
	bdlenum.FanVariablePitch: "OTHER",
})

var economizers = table(enumEconomizer, map[string]string{
	bdlenum.OAFixed:        "FIXED_FRACTION",
	bdlenum.OATemp:         "TEMPERATURE",
	bdlenum.OAEnthalpy:     "ENTHALPY",
	bdlenum.OADualTemp:     "DIFFERENTIAL_TEMPERATURE",
	bdlenum.OADualEnthalpy: "DIFFERENTIAL_ENTHALPY",
})

var recoveryTypes = table(enumEnergyRecovery, map[string]string{
	bdlenum.ERVSensibleHX:    "SENSIBLE_HEAT_EXCHANGE",
	bdlenum.ERVSensibleWheel: "SENSIBLE_HEAT_EXCHANGE",
	bdlenum.ERVEnthalpyHX:    "ENTHALPY_HEAT_EXCHANGE",
	bdlenum.ERVEnthalpyWheel: "ENTHALPY_HEAT_EXCHANGE",
	bdlenum.ERVHeatPipe:      "OTHER",
})

// nightCycling lists the NIGHT-CYCLE-CTRL tokens that run fans off-hours.
var nightCycling = []string{
	bdlenum.NightCycleCycleOn,
	bdlenum.NightCycleCycleFirst,
	bdlenum.NightCycleZoneFans,
}

func init() {
	needs(enumFanOperation, fanOpContinuous, fanOpCycling, fanOpKeepOff, fanOpOther)
	needs(enumFanSpec, fanSpecSimple)
	needs(enumEnergySource, energyElectricity)
}

// System is an air-side HVAC system. Summation systems are not emitted, and
// neither are the zones under them.
type System struct {
	model.Node
	model.ParentNode

	kind       string
	coolSource string
	heatSource string
	cooling    string
	heating    string
	heatEnergy string
	preheat    string
	fanControl string
	economizer string
	recovery   string

	coolCapacity *float64
	heatCapacity *float64
	supplyFlow   *float64
	supplyPower  *float64
	returnFlow   *float64
	returnPower  *float64
	outdoorFlow  *float64
	occupiedOp   string
	unoccupiedOp string
}

func (s *System) Derive() error {
	s.kind = s.Keyword("TYPE")
	if _, omit := model.MapToken(systemTypes, s.kind); omit {
		s.Omit = true
		return nil
	}
	if !bdlenum.SystemTypes.Has(s.kind) {
		s.Warn("unknown system TYPE %q", s.kind)
	}

	s.coolSource = s.coolingSource()
	s.cooling, _ = model.MapToken(coolingTypes, s.coolSource)

	s.heatSource = s.KeywordOr("HEAT-SOURCE", s.defaultHeatSource())
	s.heating, _ = model.MapToken(heatingTypes, s.heatSource)
	switch s.heatSource {
	case bdlenum.HeatElectric, bdlenum.HeatHeatPump:
		s.heatEnergy = energyElectricity
	case bdlenum.HeatFurnace, bdlenum.HeatGasHydro, bdlenum.HeatOilHydro:
		s.heatEnergy = fuelSource(&s.Node)
	}
	if src := s.Keyword("PREHEAT-SOURCE"); src != "" && src != bdlenum.HeatNone {
		s.preheat, _ = model.MapToken(heatingTypes, src)
	}

	s.fanControl, _ = model.MapToken(fanControls, s.KeywordOr("FAN-CONTROL", bdlenum.FanConstant))
	s.economizer, _ = model.MapToken(economizers, s.Keyword("OA-CONTROL"))
	if s.Keyword("RECOVER-EXHAUST") == "YES" || s.Has("ERV-RECOVER-TYPE") {
		s.recovery, _ = model.MapToken(recoveryTypes, s.KeywordOr("ERV-RECOVER-TYPE", bdlenum.ERVSensibleHX))
	}

	got := simValues(&s.Node,
		simoutput.SystemCoolingCapacity, simoutput.SystemHeatingCapacity,
		simoutput.SystemSupplyFlow, simoutput.SystemSupplyFanPower,
		simoutput.SystemReturnFlow, simoutput.SystemReturnFanPower,
		simoutput.SystemOutdoorFlow,
	)
	s.coolCapacity = value(got, simoutput.SystemCoolingCapacity)
	s.heatCapacity = value(got, simoutput.SystemHeatingCapacity)
	s.supplyFlow = value(got, simoutput.SystemSupplyFlow)
	s.supplyPower = scaled(value(got, simoutput.SystemSupplyFanPower), 1000)
	s.returnFlow = value(got, simoutput.SystemReturnFlow)
	s.returnPower = scaled(value(got, simoutput.SystemReturnFanPower), 1000)
	s.outdoorFlow = value(got, simoutput.SystemOutdoorFlow)

	s.classifyFans()
	return nil
}

func (s *System) coolingSource() string {
	if src := s.Keyword("COOL-SOURCE"); src != "" {
		return src
	}
	if src, ok := systemCoolSources[s.kind]; ok {
		return src
	}
	return bdlenum.CoolChilled
}

func (s *System) defaultHeatSource() string {
	if src, ok := systemHeatSources[s.kind]; ok {
		return src
	}
	return bdlenum.HeatHotWater
}

// classifyFans derives occupied and unoccupied fan operation from the hourly
// fan schedule and the occupancy of the spaces the system serves.
func (s *System) classifyFans() {
	name := s.Keyword("FAN-SCHEDULE")
	if name == "" {
		return
	}
	fan, ok := model.ResolveAs[*Schedule](s.RMD, name)
	if !ok || len(fan.Hourly()) == 0 {
		s.Warn("FAN-SCHEDULE %q does not resolve to an hourly schedule", name)
		return
	}
	occupied := s.occupiedHours()
	if occupied == nil {
		s.RMD.Logger.Debug("no occupancy schedule for fan classification", zap.String("system", s.Name))
		return
	}

	s.occupiedOp = fanOperation(fan.Hourly(), occupied)
	if s.occupiedOp == fanOpContinuous && s.Keyword("INDOOR-FAN-MODE") == fanModeCycle {
		s.occupiedOp = fanOpCycling
	}

	unoccupied := make([]bool, len(occupied))
	for i, occ := range occupied {
		unoccupied[i] = !occ
	}
	s.unoccupiedOp = fanOperation(fan.Hourly(), unoccupied)
	if s.unoccupiedOp == fanOpKeepOff && slices.Contains(nightCycling, s.Keyword("NIGHT-CYCLE-CTRL")) {
		s.unoccupiedOp = fanOpCycling
	}
}

// occupiedHours flags the hours in which any space served by the system has
// a non-zero occupancy multiplier. It is nil when no served space has an
// occupancy schedule.
func (s *System) occupiedHours() []bool {
	var hours []bool
	for _, child := range s.Children() {
		space, ok := model.ResolveAs[*Space](s.RMD, child.Base().Keyword("SPACE"))
		if !ok {
			continue
		}
		people, ok := model.ResolveAs[*Schedule](s.RMD, space.Keyword("PEOPLE-SCHEDULE"))
		if !ok || len(people.Hourly()) == 0 {
			continue
		}
		if hours == nil {
			hours = make([]bool, len(people.Hourly()))
		}
		for i, v := range people.Hourly() {
			if i < len(hours) && v > 0 {
				hours[i] = true
			}
		}
	}
	return hours
}

// fanOperation classifies fan behaviour over the selected hours. Hours with
// mixed flags are OTHER; no selected hours yields "".
func fanOperation(fan []float64, hours []bool) string {
	if !slices.Contains(hours, true) {
		return ""
	}
	switch {
	case onlyFlags(fan, hours, fanFlagOn):
		return fanOpContinuous
	case onlyFlags(fan, hours, fanFlagCycle):
		return fanOpCycling
	case onlyFlags(fan, hours, fanFlagOff):
		return fanOpKeepOff
	}
	return fanOpOther
}

// onlyFlags reports whether every selected hour carries one of flags.
func onlyFlags(values []float64, hours []bool, flags ...float64) bool {
	for i, selected := range hours {
		if !selected {
			continue
		}
		if i >= len(values) || !slices.Contains(flags, values[i]) {
			return false
		}
	}
	return true
}

func (s *System) Shape() map[string]any {
	f := model.Fields{"id": s.Name}
	if s.cooling != "" && s.coolSource != bdlenum.CoolNone {
		cooling := model.Fields{"id": s.Name + " CoolingSystem"}.
			Put("type", s.Enum(enumCoolingSystem, s.cooling)).
			Put("design_total_cool_capacity", s.coolCapacity)
		if s.cooling == coolFluidLoop {
			cooling.Put("chilled_water_loop", s.Keyword("CHW-LOOP"))
		}
		f.Put("cooling_system", cooling)
	}
	if s.heating != "" && s.heatSource != bdlenum.HeatNone {
		f.Put("heating_system", s.heatingSystem(" HeatingSystem", s.heating, s.Keyword("HW-LOOP")).
			Put("design_capacity", s.heatCapacity).
			Put("energy_source_type", s.Enum(enumEnergySource, s.heatEnergy)))
	}
	if s.preheat != "" {
		f.Put("preheat_system", s.heatingSystem(" PreheatSystem", s.preheat, s.Keyword("PHW-LOOP")))
	}
	return f.Put("fan_system", s.fanSystem()).Map()
}

func (s *System) heatingSystem(suffix, kind, loop string) model.Fields {
	f := model.Fields{"id": s.Name + suffix}.Put("type", s.Enum(enumHeatingSystem, kind))
	if kind == heatFluidLoop {
		f.Put("hot_water_loop", loop)
	}
	return f
}

func (s *System) fanSystem() model.Fields {
	f := model.Fields{"id": s.Name + " FanSystem"}.
		Put("fan_control", s.Enum(enumFanControl, s.fanControl)).
		Put("minimum_outdoor_airflow", s.outdoorFlow).
		Put("operation_during_occupied", s.Enum(enumFanOperation, s.occupiedOp)).
		Put("operation_during_unoccupied", s.Enum(enumFanOperation, s.unoccupiedOp))
	if s.supplyFlow != nil || s.supplyPower != nil {
		f.Put("supply_fans", []map[string]any{s.fan(" SupplyFan", s.supplyFlow, s.supplyPower)})
	}
	if s.returnFlow != nil && *s.returnFlow > 0 {
		f.Put("return_fans", []map[string]any{s.fan(" ReturnFan", s.returnFlow, s.returnPower)})
	}
	if s.economizer != "" {
		f.Put("air_economizer", model.Fields{"id": s.Name + " AirEconomizer"}.
			Put("type", s.Enum(enumEconomizer, s.economizer)).
			Put("high_limit_shutoff_temperature", s.Number("ECONO-LIMIT-T")))
	}
	if s.recovery != "" {
		f.Put("air_energy_recovery", model.Fields{"id": s.Name + " AirEnergyRecovery"}.
			Put("type", s.Enum(enumEnergyRecovery, s.recovery)).
			Put("sensible_effectiveness", s.Number("ERV-SENSIBLE-EFF")).
			Put("latent_effectiveness", s.Number("ERV-LATENT-EFF")))
	}
	return f
}

func (s *System) fan(suffix string, flow, power *float64) map[string]any {
	return model.Fields{"id": s.Name + suffix}.
		Put("design_airflow", flow).
		Put("specification_method", s.Enum(enumFanSpec, fanSpecSimple)).
		Put("design_electric_power", power).
		Map()
}

func (s *System) Attach(doc *model.Document) {
	doc.AppendSegment("heating_ventilating_air_conditioning_systems", s.Data)
}
