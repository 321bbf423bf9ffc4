package commands

import (
	"strconv"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

var pumpSpeeds = table(enumPumpSpeed, map[string]string{
	bdlenum.PumpOneSpeed: "FIXED_SPEED",
	bdlenum.PumpTwoSpeed: "VARIABLE_SPEED",
	bdlenum.PumpVarSpeed: "VARIABLE_SPEED",
})

func init() {
	needs(enumSpecMethod, "SIMPLE", "DETAILED")
}

// pumpOwners lists, in search order, the equipment that can own a pump and
// the keyword naming the loop the pump then serves.
var pumpOwners = []struct {
	command string
	pump    string
	loop    string
}{
	{bdlenum.CmdBoiler, "HW-PUMP", "HW-LOOP"},
	{bdlenum.CmdChiller, "CHW-PUMP", "CHW-LOOP"},
	{bdlenum.CmdChiller, "CW-PUMP", "CW-LOOP"},
	{bdlenum.CmdHeatRejection, "CW-PUMP", "CW-LOOP"},
	{bdlenum.CmdDWHeater, "HW-PUMP", "DHW-LOOP"},
}

// Pump is a loop pump or a pump dedicated to one piece of equipment.
type Pump struct {
	model.Node

	loop     string
	speed    string
	method   string
	quantity *int
	flow     *float64
	power    *float64
}

func (p *Pump) Derive() error {
	p.loop = p.owner()
	if p.loop == "" {
		p.Warn("no loop or equipment uses this pump")
	}

	p.speed, _ = model.MapToken(pumpSpeeds, p.KeywordOr("CAP-CTRL", bdlenum.PumpOneSpeed))
	p.method = "SIMPLE"
	if p.Has("HEAD") && p.Has("MOTOR-EFF") && p.Has("MECH-EFF") {
		p.method = "DETAILED"
	}
	if n, ok := p.Int("NUMBER"); ok {
		p.quantity = &n
	}

	got := simValues(&p.Node, simoutput.PumpDesignFlow, simoutput.PumpDesignPower)
	p.flow = value(got, simoutput.PumpDesignFlow)
	p.power = scaled(value(got, simoutput.PumpDesignPower), 1000)
	return nil
}

// owner returns the loop the pump serves: a loop naming it as LOOP-PUMP,
// else the loop of the equipment it is attached to.
func (p *Pump) owner() string {
	for _, loop := range p.RMD.Instances(bdlenum.CmdLoop) {
		if loop.Base().Keyword("LOOP-PUMP") == p.Name {
			return loop.Base().Name
		}
	}
	for _, owner := range pumpOwners {
		for _, inst := range p.RMD.Instances(owner.command) {
			if n := inst.Base(); n.Keyword(owner.pump) == p.Name {
				return n.Keyword(owner.loop)
			}
		}
	}
	return ""
}

func (p *Pump) Shape() map[string]any {
	return model.Fields{"id": p.Name}.
		Put("loop_or_piping", p.loop).
		Put("speed_control", p.Enum(enumPumpSpeed, p.speed)).
		Put("specification_method", p.Enum(enumSpecMethod, p.method)).
		Put("design_electric_power", p.power).
		Put("design_flow", p.flow).
		Put("impeller_efficiency", p.Number("MECH-EFF")).
		Put("motor_efficiency", p.Number("MOTOR-EFF")).
		Put("quantity", p.quantity).
		Map()
}

func (p *Pump) Attach(doc *model.Document) {
	doc.Append("pumps", p.Data)
}

// maxEquipmentLists is the number of EQUIPMENT-n keywords per EQUIP-CTRL.
const maxEquipmentLists = 5

// EquipCtrl stages the equipment on one loop: up to five EQUIPMENT-n lists,
// one per load range.
type EquipCtrl struct {
	model.Node

	loop   string
	stages [][]string

	boilers struct {
		order    []string
		ok       bool
		resolved bool
	}
}

func (e *EquipCtrl) Derive() error {
	e.loop = e.Keyword("LOOP")
	for i := 1; i <= maxEquipmentLists; i++ {
		if list := e.List("EQUIPMENT-" + strconv.Itoa(i)); len(list) > 0 {
			e.stages = append(e.stages, list)
		}
	}
	return nil
}

func (e *EquipCtrl) Shape() map[string]any { return nil }

func (e *EquipCtrl) Attach(*model.Document) {}

// Stages returns the equipment lists in load-range order.
func (e *EquipCtrl) Stages() [][]string {
	out := make([][]string, len(e.stages))
	for i, s := range e.stages {
		out[i] = append([]string(nil), s...)
	}
	return out
}

// GroundLoopHX only matters as a loop consumer for flow inference.
type GroundLoopHX struct {
	model.Node
}

func (g *GroundLoopHX) Derive() error { return nil }

func (g *GroundLoopHX) Shape() map[string]any { return nil }

func (g *GroundLoopHX) Attach(*model.Document) {}
