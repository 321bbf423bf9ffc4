package commands

import (
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

const (
	terminalVAV      = "VARIABLE_AIR_VOLUME"
	terminalCAV      = "CONSTANT_AIR_VOLUME"
	fanSeries        = "SERIES"
	fanParallel      = "PARALLEL"
	heatingHotWater  = "HOT_WATER"
	defaultPIUConfig = fanSeries
)

var terminalTypes = table(enumTerminal, map[string]string{
	bdlenum.TerminalSVAV:        terminalVAV,
	bdlenum.TerminalSeriesPIU:   terminalVAV,
	bdlenum.TerminalParallelPIU: terminalVAV,
	bdlenum.TerminalCVReheat:    terminalCAV,
	bdlenum.TerminalIU:          "OTHER",
})

var piuConfigurations = table(enumFanConfiguration, map[string]string{
	bdlenum.TerminalSeriesPIU:   fanSeries,
	bdlenum.TerminalParallelPIU: fanParallel,
})

var heatingSources = table(enumHeatingSource, map[string]string{
	bdlenum.HeatHotWater: heatingHotWater,
	bdlenum.HeatElectric: "ELECTRIC",
	bdlenum.HeatSteam:    "STEAM",
	bdlenum.HeatHeatPump: "HEAT_PUMP",
	bdlenum.HeatNone:     "NONE",
	bdlenum.HeatFurnace:  "OTHER",
	bdlenum.HeatDHWLoop:  "OTHER",
	bdlenum.HeatGasHydro: "OTHER",
	bdlenum.HeatOilHydro: "OTHER",
})

// Systems whose zones get variable-volume terminals by default.
var vavSystems = []string{bdlenum.SysVAVS, bdlenum.SysPVAVS, bdlenum.SysPIU, bdlenum.SysCBVAV, bdlenum.SysPVVT, bdlenum.SysRESVVT}

// Systems that condition the zone without supply ductwork.
var unductedSystems = []string{
	bdlenum.SysPTAC, bdlenum.SysFC, bdlenum.SysUHT, bdlenum.SysUVT,
	bdlenum.SysFPH, bdlenum.SysBaseboard,
}

// Systems with zone-level chilled water coils.
var zoneCoilSystems = []string{bdlenum.SysFC, bdlenum.SysIU}

func init() {
	needs(enumTerminal, terminalCAV)
	needs(enumFanConfiguration, defaultPIUConfig)
	needs(enumFanSpec, fanSpecSimple)
}

// Zone is a thermal zone. Its terminals are served by the system it is
// declared under and, optionally, by a dedicated outdoor air system.
type Zone struct {
	model.Node
	model.ChildNode

	space  *Space
	system *System
	doas   string

	terminal     string
	piuConfig    string
	heatSource   string
	heatLoop     string
	coolLoop     string
	ducted       bool
	supplyFlow   *float64
	minimumFlow  *float64
	outdoorFlow  *float64
	heatCapacity *float64
	fanPower     *float64
	exhaustFlow  *float64
	exhaustPower *float64
}

func (z *Zone) Derive() error {
	if name := z.Keyword("SPACE"); name != "" {
		space, ok := model.ResolveAs[*Space](z.RMD, name)
		if !ok {
			z.Warn("SPACE %q does not resolve", name)
		}
		z.space = space
	}

	got := simValues(&z.Node,
		simoutput.ZoneSupplyFlow, simoutput.ZoneMinimumFlow, simoutput.ZoneOutdoorFlow,
		simoutput.ZoneHeatCapacity, simoutput.ZoneFanPower, simoutput.ZoneExhaustFlow,
	)
	z.supplyFlow = value(got, simoutput.ZoneSupplyFlow)
	z.minimumFlow = value(got, simoutput.ZoneMinimumFlow)
	z.outdoorFlow = value(got, simoutput.ZoneOutdoorFlow)
	z.heatCapacity = value(got, simoutput.ZoneHeatCapacity)
	z.fanPower = scaled(value(got, simoutput.ZoneFanPower), 1000)

	z.exhaustFlow = z.Number("EXHAUST-FLOW")
	if z.exhaustFlow == nil {
		z.exhaustFlow = value(got, simoutput.ZoneExhaustFlow)
	}
	z.exhaustPower = scaled(z.Number("EXHAUST-KW"), 1000)

	if name := z.Keyword("DOA-SYSTEM"); name != "" {
		if _, ok := model.ResolveAs[*System](z.RMD, name); ok {
			z.doas = name
		} else {
			z.Warn("DOA-SYSTEM %q does not resolve", name)
		}
	}

	system, ok := model.ParentAs[*System](z)
	if !ok {
		return nil
	}
	z.system = system
	z.deriveTerminal()
	return nil
}

func (z *Zone) deriveTerminal() {
	kind := z.system.kind
	token := z.Keyword("TERMINAL-TYPE")
	switch {
	case token != "":
		z.terminal, _ = model.MapToken(terminalTypes, token)
	case slices.Contains(vavSystems, kind):
		z.terminal = terminalVAV
	default:
		z.terminal = terminalCAV
	}

	z.piuConfig, _ = model.MapToken(piuConfigurations, token)
	if z.piuConfig == "" && kind == bdlenum.SysPIU {
		z.piuConfig = defaultPIUConfig
	}
	z.ducted = !slices.Contains(unductedSystems, kind)

	if src := z.system.Keyword("ZONE-HEAT-SOURCE"); src != "" {
		z.heatSource, _ = model.MapToken(heatingSources, src)
	}
	if z.heatSource == heatingHotWater {
		z.heatLoop = z.KeywordOr("HW-LOOP", z.system.Keyword("HW-LOOP"))
	}
	if slices.Contains(zoneCoilSystems, kind) {
		z.coolLoop = z.KeywordOr("CHW-LOOP", z.system.Keyword("CHW-LOOP"))
	}
}

func (z *Zone) Shape() map[string]any {
	f := model.Fields{"id": z.Name}.
		Put("design_thermostat_cooling_setpoint", z.Number("DESIGN-COOL-T")).
		Put("design_thermostat_heating_setpoint", z.Number("DESIGN-HEAT-T")).
		Put("thermostat_cooling_setpoint_schedule", resolvedName(&z.Node, "COOL-TEMP-SCH")).
		Put("thermostat_heating_setpoint_schedule", resolvedName(&z.Node, "HEAT-TEMP-SCH"))
	if z.space != nil {
		f.Put("floor_name", z.space.floor).Put("volume", z.space.volume)
	}

	var terminals []map[string]any
	if z.system != nil {
		terminals = append(terminals, z.mainTerminal())
	}
	if z.doas != "" {
		terminals = append(terminals, model.Fields{"id": z.Name + " DOASTerminal"}.
			Put("type", z.Enum(enumTerminal, terminalCAV)).
			Put("served_by_heating_ventilating_air_conditioning_system", z.doas).
			Put("minimum_outdoor_airflow", z.outdoorFlow).
			Put("is_supply_ducted", true).
			Map())
	}
	f.Put("terminals", terminals)

	if z.exhaustFlow != nil || z.exhaustPower != nil {
		f.Put("zonal_exhaust_fan", model.Fields{"id": z.Name + " ExhaustFan"}.
			Put("design_airflow", z.exhaustFlow).
			Put("specification_method", z.Enum(enumFanSpec, fanSpecSimple)).
			Put("design_electric_power", z.exhaustPower))
	}
	return f.Map()
}

// mainTerminal is the terminal served by the parent system. When a DOAS
// serves the zone the outdoor air is reported on the DOAS terminal instead.
func (z *Zone) mainTerminal() map[string]any {
	t := model.Fields{"id": z.Name + " Terminal"}.
		Put("type", z.Enum(enumTerminal, z.terminal)).
		Put("served_by_heating_ventilating_air_conditioning_system", z.system.Name).
		Put("heating_source", z.Enum(enumHeatingSource, z.heatSource)).
		Put("heating_from_loop", z.heatLoop).
		Put("cooling_from_loop", z.coolLoop).
		Put("primary_airflow", z.supplyFlow).
		Put("minimum_airflow", z.minimumFlow).
		Put("heating_capacity", z.heatCapacity).
		Put("is_supply_ducted", z.ducted)
	if z.doas == "" {
		t.Put("minimum_outdoor_airflow", z.outdoorFlow)
	}
	if z.piuConfig != "" {
		t.Put("fan_configuration", z.Enum(enumFanConfiguration, z.piuConfig)).
			Put("fan", model.Fields{"id": z.Name + " PIUFan"}.
				Put("design_airflow", z.supplyFlow).
				Put("specification_method", z.Enum(enumFanSpec, fanSpecSimple)).
				Put("design_electric_power", z.fanPower))
	}
	return t.Map()
}

func (z *Zone) Attach(doc *model.Document) {
	doc.AppendSegment("zones", z.Data)
}
