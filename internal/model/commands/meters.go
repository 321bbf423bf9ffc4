package commands

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

const (
	energyElectricity = "ELECTRICITY"
	energyNaturalGas  = "NATURAL_GAS"
)

var fuelTypes = table(enumEnergySource, map[string]string{
	bdlenum.FuelNaturalGas: energyNaturalGas,
	bdlenum.FuelLPG:        "PROPANE",
	bdlenum.FuelOil:        "FUEL_OIL",
	bdlenum.FuelDieselOil:  "FUEL_OIL",
	bdlenum.FuelCoal:       "OTHER_FUEL",
	bdlenum.FuelMethanol:   "OTHER_FUEL",
	bdlenum.FuelOther:      "OTHER_FUEL",
})

func init() {
	needs(enumEnergySource, energyElectricity, "PURCHASED_STEAM", "PURCHASED_CHILLED_WATER")
	needs(enumExternalSource, "STEAM", "CHILLED_WATER")
}

// FuelMeter maps its fuel TYPE to an energy source.
type FuelMeter struct {
	model.Node

	energy string
}

func (m *FuelMeter) Derive() error {
	token := m.KeywordOr("TYPE", bdlenum.FuelNaturalGas)
	member, _ := model.MapToken(fuelTypes, token)
	if member == "" {
		m.Warn("unknown fuel TYPE %q", token)
		member = "OTHER_FUEL"
	}
	m.energy = member
	return nil
}

func (m *FuelMeter) Shape() map[string]any { return nil }

func (m *FuelMeter) Attach(*model.Document) {}

// Energy returns the schema energy source of the meter.
func (m *FuelMeter) Energy() string { return m.energy }

// ElecMeter is always an electricity meter.
type ElecMeter struct {
	model.Node
}

func (m *ElecMeter) Derive() error { return nil }

func (m *ElecMeter) Shape() map[string]any { return nil }

func (m *ElecMeter) Attach(*model.Document) {}

type utilityKind struct {
	source string
	energy string
}

var (
	steamMeter        = utilityKind{source: "STEAM", energy: "PURCHASED_STEAM"}
	chilledWaterMeter = utilityKind{source: "CHILLED_WATER", energy: "PURCHASED_CHILLED_WATER"}
)

// UtilityMeter is a purchased steam or chilled water meter. It becomes an
// external fluid source of the model.
type UtilityMeter struct {
	model.Node

	kind utilityKind
	loop string
}

func newUtilityMeter(n model.Node, kind utilityKind) *UtilityMeter {
	return &UtilityMeter{Node: n, kind: kind}
}

// Derive finds the loop the meter supplies: the first loop naming it as its
// steam or chilled water meter.
func (m *UtilityMeter) Derive() error {
	keyword := "STEAM-METER"
	if m.kind == chilledWaterMeter {
		keyword = "CHW-METER"
	}
	for _, loop := range m.RMD.Instances(bdlenum.CmdLoop) {
		if loop.Base().Keyword(keyword) == m.Name {
			m.loop = loop.Base().Name
			break
		}
	}
	return nil
}

func (m *UtilityMeter) Shape() map[string]any {
	return model.Fields{"id": m.Name}.
		Put("loop", m.loop).
		Put("type", m.Enum(enumExternalSource, m.kind.source)).
		Put("energy_source_type", m.Enum(enumEnergySource, m.kind.energy)).
		Map()
}

func (m *UtilityMeter) Attach(doc *model.Document) {
	doc.Append("external_fluid_sources", m.Data)
}

// MasterMeters names the default meters of the building.
type MasterMeters struct {
	model.Node

	fuel string
}

func (m *MasterMeters) Derive() error {
	if name := m.Keyword("MSTR-FUEL-METER"); name != "" {
		meter, ok := model.ResolveAs[*FuelMeter](m.RMD, name)
		if !ok {
			m.Warn("MSTR-FUEL-METER %q does not resolve", name)
			return nil
		}
		m.fuel = meter.energy
	}
	return nil
}

func (m *MasterMeters) Shape() map[string]any { return nil }

func (m *MasterMeters) Attach(*model.Document) {}

// fuelSource returns the energy source of a fuel-burning component: its own
// FUEL-METER, else the master fuel meter, else natural gas.
func fuelSource(n *model.Node) string {
	if name := n.Keyword("FUEL-METER"); name != "" {
		inst, ok := n.RMD.Resolve(name)
		meter, isFuel := inst.(*FuelMeter)
		switch {
		case !ok:
			n.Warn("FUEL-METER %q does not resolve", name)
		case !isFuel || meter.energy == "":
			n.Warn("FUEL-METER %q has no mapped energy source", name)
		default:
			return meter.energy
		}
	}
	for _, master := range model.InstancesOf[*MasterMeters](n.RMD) {
		if master.fuel != "" {
			return master.fuel
		}
	}
	return energyNaturalGas
}
