// Package commands holds one derivation unit per consumed BDL command type.
//
// Each unit embeds model.Node, reads its own keywords and the references it
// resolves during Derive, and emits schema-named fields from Shape. Token
// translation goes through package-level mapping tables; every schema
// enumeration member a table can produce is registered and checked against
// the loaded schema at startup (see Required).
package commands

import (
	"maps"
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

// Schema enumeration names referenced by the mapping tables.
const (
	enumDayOfWeek          = "DayOfWeekOptions"
	enumWeatherSource      = "WeatherDataSourceOptions"
	enumEnergySource       = "EnergySourceOptions"
	enumDraft              = "DraftOptions"
	enumBoilerMetric       = "BoilerEfficiencyMetricOptions"
	enumCompressor         = "ChillerCompressorOptions"
	enumChillerPartLoad    = "ChillerPartLoadEfficiencyMetricOptions"
	enumFluidLoop          = "FluidLoopOptions"
	enumLoopFlowControl    = "FluidLoopFlowControlOptions"
	enumLoopOperation      = "FluidLoopOperationOptions"
	enumTemperatureReset   = "TemperatureResetOptions"
	enumPumpSpeed          = "PumpSpeedControlOptions"
	enumSpecMethod         = "PumpSpecificationMethodOptions"
	enumHeatRejection      = "HeatRejectionOptions"
	enumHeatRejectionSpeed = "HeatRejectionFanSpeedControlOptions"
	enumExternalSource     = "ExternalFluidSourceOptions"
	enumWaterHeater        = "ServiceWaterHeaterOptions"
	enumWaterHeaterMetric  = "ServiceWaterHeatingEfficiencyMetricOptions"
	enumSurface            = "SurfaceClassificationOptions"
	enumAdjacency          = "SurfaceAdjacencyOptions"
	enumSubsurface         = "SubsurfaceClassificationOptions"
	enumConstructionInput  = "SurfaceConstructionInputOptions"
	enumScheduleType       = "schedule_type"
	enumScheduleSequence   = "ScheduleSequenceOptions"
	enumCoolingSystem      = "CoolingSystemOptions"
	enumHeatingSystem      = "HeatingSystemOptions"
	enumFanControl         = "FanSystemSupplyFanControlOptions"
	enumFanOperation       = "FanSystemOperationOptions"
	enumFanSpec            = "FanSpecificationMethodOptions"
	enumEconomizer         = "AirEconomizerOptions"
	enumEnergyRecovery     = "EnergyRecoveryOptions"
	enumTerminal           = "TerminalOptions"
	enumHeatingSource      = "HeatingSourceOptions"
	enumFanConfiguration   = "TerminalFanConfigurationOptions"
)

// required collects, per schema enumeration, the members derivation emits.
var required = map[string][]string{}

// needs registers members of a schema enumeration as emitted.
func needs(enum string, members ...string) {
	for _, m := range members {
		if m == "" || m == model.OmitSentinel || slices.Contains(required[enum], m) {
			continue
		}
		required[enum] = append(required[enum], m)
	}
}

// table registers every member a token table produces and returns it.
func table(enum string, t map[string]string) map[string]string {
	for _, token := range slices.Sorted(maps.Keys(t)) {
		needs(enum, t[token])
	}
	return t
}

// Required returns the schema enumeration members the derivation units may
// emit, keyed by enumeration name.
func Required() map[string][]string {
	out := make(map[string][]string, len(required))
	for name, members := range required {
		out[name] = slices.Clone(members)
	}
	return out
}

// Factories returns the factory of every consumed command type.
func Factories() model.Factories {
	return model.Factories{
		bdlenum.CmdRunPeriod:       func(n model.Node) model.Instance { return &RunPeriod{Node: n} },
		bdlenum.CmdHolidays:        func(n model.Node) model.Instance { return &Holidays{Node: n} },
		bdlenum.CmdSiteParameters:  func(n model.Node) model.Instance { return &SiteParameters{Node: n} },
		bdlenum.CmdBuildParameters: func(n model.Node) model.Instance { return &BuildParameters{Node: n} },
		bdlenum.CmdFuelMeter:       func(n model.Node) model.Instance { return &FuelMeter{Node: n} },
		bdlenum.CmdElecMeter:       func(n model.Node) model.Instance { return &ElecMeter{Node: n} },
		bdlenum.CmdSteamMeter:      func(n model.Node) model.Instance { return newUtilityMeter(n, steamMeter) },
		bdlenum.CmdChwMeter:        func(n model.Node) model.Instance { return newUtilityMeter(n, chilledWaterMeter) },
		bdlenum.CmdMasterMeters:    func(n model.Node) model.Instance { return &MasterMeters{Node: n} },
		bdlenum.CmdDaySchedule:     func(n model.Node) model.Instance { return &DaySchedule{Node: n} },
		bdlenum.CmdWeekSchedule:    func(n model.Node) model.Instance { return &WeekSchedule{Node: n} },
		bdlenum.CmdSchedule:        func(n model.Node) model.Instance { return &Schedule{Node: n} },
		bdlenum.CmdCurveFit:        func(n model.Node) model.Instance { return &CurveFit{Node: n} },
		bdlenum.CmdPolygon:         func(n model.Node) model.Instance { return &Polygon{Node: n} },
		bdlenum.CmdMaterial:        func(n model.Node) model.Instance { return &Material{Node: n} },
		bdlenum.CmdLayers:          func(n model.Node) model.Instance { return &Layers{Node: n} },
		bdlenum.CmdConstruction:    func(n model.Node) model.Instance { return &Construction{Node: n} },
		bdlenum.CmdGlassType:       func(n model.Node) model.Instance { return &GlassType{Node: n} },
		bdlenum.CmdLoop:            func(n model.Node) model.Instance { return &Loop{Node: n} },
		bdlenum.CmdPump:            func(n model.Node) model.Instance { return &Pump{Node: n} },
		bdlenum.CmdEquipCtrl:       func(n model.Node) model.Instance { return &EquipCtrl{Node: n} },
		bdlenum.CmdGroundLoopHX:    func(n model.Node) model.Instance { return &GroundLoopHX{Node: n} },
		bdlenum.CmdBoiler:          func(n model.Node) model.Instance { return &Boiler{Node: n} },
		bdlenum.CmdChiller:         func(n model.Node) model.Instance { return &Chiller{Node: n} },
		bdlenum.CmdHeatRejection:   func(n model.Node) model.Instance { return &HeatRejection{Node: n} },
		bdlenum.CmdDWHeater:        func(n model.Node) model.Instance { return &DWHeater{Node: n} },
		bdlenum.CmdFloor:           func(n model.Node) model.Instance { return &Floor{Node: n} },
		bdlenum.CmdSpace:           func(n model.Node) model.Instance { return &Space{Node: n} },
		bdlenum.CmdExteriorWall:    func(n model.Node) model.Instance { return newWall(n, exteriorWall) },
		bdlenum.CmdInteriorWall:    func(n model.Node) model.Instance { return newWall(n, interiorWall) },
		bdlenum.CmdUndergroundWall: func(n model.Node) model.Instance { return newWall(n, undergroundWall) },
		bdlenum.CmdWindow:          func(n model.Node) model.Instance { return &Window{Node: n} },
		bdlenum.CmdDoor:            func(n model.Node) model.Instance { return &Door{Node: n} },
		bdlenum.CmdSystem:          func(n model.Node) model.Instance { return &System{Node: n} },
		bdlenum.CmdZone:            func(n model.Node) model.Instance { return &Zone{Node: n} },
	}
}

// MissingOutputs is the diagnostic recorded by a unit whose simulation
// outputs are all absent.
const MissingOutputs = "no simulation outputs available"

// simValues requests codes for the instance. A unit that cannot assemble
// without them records a warning when none come back.
func simValues(n *model.Node, codes ...int) map[int]float64 {
	got := simoutput.NewBatch(n.Name, codes...).Resolve(n.RMD.Outputs)
	if len(got) == 0 && len(codes) > 0 {
		n.Warn(MissingOutputs)
	}
	return got
}

// value returns a pointer to m[code] or nil.
func value(m map[int]float64, code int) *float64 {
	if v, ok := m[code]; ok {
		return &v
	}
	return nil
}

// scaled multiplies a present value.
func scaled(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(*v * factor)
}

// resolvedName returns the keyword's value when it names an instance of the
// model, and "" otherwise.
func resolvedName(n *model.Node, keyword string) string {
	if _, ok := n.Ref(keyword); ok {
		return n.Keyword(keyword)
	}
	return ""
}
