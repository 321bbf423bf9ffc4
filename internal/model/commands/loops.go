package commands

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"go.uber.org/zap"
)

const (
	flowFixed    = "FIXED_FLOW"
	flowVariable = "VARIABLE_FLOW"
)

var loopTypes = table(enumFluidLoop, map[string]string{
	bdlenum.LoopCHW:   "COOLING",
	bdlenum.LoopHW:    "HEATING",
	bdlenum.LoopCW:    "CONDENSER",
	bdlenum.LoopPipe2: "HEATING_AND_COOLING",
	bdlenum.LoopWLHP:  "OTHER",
})

var resetTypes = table(enumTemperatureReset, map[string]string{
	bdlenum.SetptFixed:     "NO_RESET",
	bdlenum.SetptOAReset:   "OUTSIDE_AIR_RESET",
	bdlenum.SetptLoadReset: "LOAD_RESET",
	bdlenum.SetptScheduled: "OTHER",
	bdlenum.SetptWetbulb:   "OTHER",
	bdlenum.SetptDualReset: "OTHER",
})

var loopOperations = table(enumLoopOperation, map[string]string{
	bdlenum.LoopOpStandby:   "INTERMITTENT",
	bdlenum.LoopOpDemand:    "INTERMITTENT",
	bdlenum.LoopOpSnap:      "INTERMITTENT",
	bdlenum.LoopOpScheduled: "SCHEDULED",
})

var flowTokens = table(enumLoopFlowControl, map[string]string{
	bdlenum.ValveTwoWay:   flowVariable,
	bdlenum.FlowVariable:  flowVariable,
	bdlenum.ValveThreeWay: flowFixed,
	bdlenum.FlowConstant:  flowFixed,
})

// loopLink is one way a consumer names a loop: the keyword holding the loop
// name and the keyword holding its valve or flow-control token.
type loopLink struct {
	loop    string
	control string
}

// loopConsumers lists, in scan order, the command types drawing on a loop.
var loopConsumers = []struct {
	command string
	links   []loopLink
}{
	{bdlenum.CmdLoop, []loopLink{{"PRIMARY-LOOP", "VALVE-TYPE-2ND"}}},
	{bdlenum.CmdSystem, []loopLink{
		{"HW-LOOP", "HW-VALVE-TYPE"},
		{"CHW-LOOP", "CHW-VALVE-TYPE"},
		{"CW-LOOP", "CW-VALVE"},
	}},
	{bdlenum.CmdZone, []loopLink{{"HW-LOOP", "HW-VALVE-TYPE"}, {"CHW-LOOP", "CHW-VALVE-TYPE"}}},
	{bdlenum.CmdChiller, []loopLink{
		{"CHW-LOOP", "CHW-FLOW-CTRL"},
		{"CW-LOOP", "CW-FLOW-CTRL"},
		{"HTREC-LOOP", "HTREC-FLOW-CTRL"},
	}},
	{bdlenum.CmdBoiler, []loopLink{{"HW-LOOP", "HW-FLOW-CTRL"}}},
	{bdlenum.CmdHeatRejection, []loopLink{{"CW-LOOP", "CW-FLOW-CTRL"}}},
	{bdlenum.CmdGroundLoopHX, []loopLink{{"CIRCULATION-LOOP", "FLOW-CTRL"}}},
}

// designControl is one side (cooling or heating) of a loop's design.
type designControl struct {
	supply      *float64
	ret         *float64
	reset       string
	operation   string
	flowControl string
	minFlow     *float64
}

func (d *designControl) fields(n *model.Node, id string) model.Fields {
	return model.Fields{"id": id}.
		Put("design_supply_temperature", d.supply).
		Put("design_return_temperature", d.ret).
		Put("temperature_reset_type", n.Enum(enumTemperatureReset, d.reset)).
		Put("flow_control", n.Enum(enumLoopFlowControl, d.flowControl)).
		Put("operation", n.Enum(enumLoopOperation, d.operation)).
		Put("minimum_flow_fraction", d.minFlow)
}

// Loop is a circulation loop. Domestic hot water loops become service water
// heating distribution systems; secondary loops nest under their primary.
type Loop struct {
	model.Node

	kind      string
	dhw       bool
	secondary bool
	primary   string

	cooling          *designControl
	heating          *designControl
	flowControl      string
	pumpPowerPerFlow *float64
	recirculating    *bool
}

func (l *Loop) Derive() error {
	token := l.Keyword("TYPE")
	l.dhw = token == bdlenum.LoopDHW
	l.kind, _ = model.MapToken(loopTypes, token)
	if !l.dhw && l.kind == "" {
		l.Warn("unknown loop TYPE %q", token)
	}

	l.secondary = l.Keyword("SUBTYPE") == bdlenum.LoopSecondary
	if l.secondary {
		l.primary = resolvedName(&l.Node, "PRIMARY-LOOP")
	}

	if l.dhw {
		if flow, ok := l.Float("LOOP-RECIRC-FLOW"); ok {
			l.recirculating = model.Bool(flow > 0)
		}
		return nil
	}

	l.flowControl = l.inferFlowControl()
	switch token {
	case bdlenum.LoopCHW, bdlenum.LoopCW:
		l.cooling = l.design("DESIGN-COOL-T", "COOL-SETPT-CTRL", 1)
	case bdlenum.LoopHW:
		l.heating = l.design("DESIGN-HEAT-T", "HEAT-SETPT-CTRL", -1)
	case bdlenum.LoopPipe2, bdlenum.LoopWLHP:
		l.cooling = l.design("DESIGN-COOL-T", "COOL-SETPT-CTRL", 1)
		l.heating = l.design("DESIGN-HEAT-T", "HEAT-SETPT-CTRL", -1)
	}

	if pump := l.Keyword("LOOP-PUMP"); pump != "" {
		l.pumpPowerPerFlow = pumpPowerPerFlow(&l.Node, pump)
	}
	return nil
}

// design builds one side of the loop design. The return temperature is the
// supply temperature shifted by LOOP-DESIGN-DT in direction sign.
func (l *Loop) design(tempKeyword, resetKeyword string, sign float64) *designControl {
	d := &designControl{
		supply:      l.Number(tempKeyword),
		flowControl: l.flowControl,
		minFlow:     l.Number("LOOP-MIN-FLOW"),
	}
	if dt, ok := l.Float("LOOP-DESIGN-DT"); ok && d.supply != nil {
		d.ret = model.Float(*d.supply + sign*dt)
	}
	d.reset, _ = model.MapToken(resetTypes, l.Keyword(resetKeyword))
	d.operation, _ = model.MapToken(loopOperations, l.KeywordOr("LOOP-OPERATION", bdlenum.LoopOpStandby))
	return d
}

// inferFlowControl scans the loop's consumers in a fixed order. The first
// variable-flow valve or control makes the loop variable flow; otherwise it
// is fixed flow.
func (l *Loop) inferFlowControl() string {
	for _, consumer := range loopConsumers {
		for _, inst := range l.RMD.Instances(consumer.command) {
			n := inst.Base()
			for _, link := range consumer.links {
				if n.Keyword(link.loop) != l.Name {
					continue
				}
				if member, _ := model.MapToken(flowTokens, n.Keyword(link.control)); member == flowVariable {
					l.RMD.Logger.Debug("loop flow control inferred",
						zap.String("loop", l.Name),
						zap.String("command", n.Command),
						zap.String("instance", n.Name),
					)
					return flowVariable
				}
			}
		}
	}
	return flowFixed
}

// pumpPowerPerFlow is the design power of a pump over its design flow,
// in W/gpm.
func pumpPowerPerFlow(n *model.Node, pump string) *float64 {
	got := simoutput.NewBatch(pump, simoutput.PumpDesignPower, simoutput.PumpDesignFlow).Resolve(n.RMD.Outputs)
	power, okP := got[simoutput.PumpDesignPower]
	flow, okF := got[simoutput.PumpDesignFlow]
	if !okP || !okF || flow <= 0 {
		n.Warn("no design flow and power for LOOP-PUMP %q", pump)
		return nil
	}
	return model.Float(power * 1000 / flow)
}

func (l *Loop) Shape() map[string]any {
	if l.dhw {
		return model.Fields{"id": l.Name}.
			Put("design_supply_temperature", l.Number("DESIGN-HEAT-T")).
			Put("is_recirculating", l.recirculating).
			Map()
	}
	f := model.Fields{"id": l.Name}.
		Put("type", l.Enum(enumFluidLoop, l.kind)).
		Put("pump_power_per_flow_rate", l.pumpPowerPerFlow)
	if l.cooling != nil {
		f.Put("cooling_or_condensing_design_and_control", l.cooling.fields(&l.Node, l.Name+" CoolingControl"))
	}
	if l.heating != nil {
		f.Put("heating_design_and_control", l.heating.fields(&l.Node, l.Name+" HeatingControl"))
	}
	return f.Map()
}

func (l *Loop) Attach(doc *model.Document) {
	if l.dhw {
		doc.Append("service_water_heating_distribution_systems", l.Data)
		return
	}
	if l.primary != "" {
		if primary, ok := model.ResolveAs[*Loop](l.RMD, l.primary); ok && !primary.dhw {
			if model.AppendTo(primary, "child_loops", l.Data) {
				return
			}
		}
	}
	doc.Append("fluid_loops", l.Data)
}

// FlowControl returns the inferred loop flow control.
func (l *Loop) FlowControl() string { return l.flowControl }
