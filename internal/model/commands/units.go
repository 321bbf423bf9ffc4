package commands

import "maps"

const (
	unitMMBtuHour = "MMBtu/hr"
	unitWatt      = "W"
	unitGPM       = "gpm"
	unitDeltaF    = "delta_F"
	unitGallon    = "gal"
)

// internalUnits lists the shaped properties whose values are not in the
// default internal unit of their schema unit.
var internalUnits = map[string]map[string]string{
	"Boiler": {
		"rated_capacity":        unitMMBtuHour,
		"design_capacity":       unitMMBtuHour,
		"operation_lower_limit": unitMMBtuHour,
		"operation_upper_limit": unitMMBtuHour,
		"auxiliary_power":       unitWatt,
	},
	"Chiller": {
		"rated_capacity":         unitMMBtuHour,
		"design_capacity":        unitMMBtuHour,
		"design_flow_evaporator": unitGPM,
		"design_flow_condenser":  unitGPM,
	},
	"Pump": {
		"design_electric_power": unitWatt,
		"design_flow":           unitGPM,
	},
	"HeatRejection": {
		"range":                     unitDeltaF,
		"approach":                  unitDeltaF,
		"fan_shaft_power":           unitWatt,
		"fan_motor_nameplate_power": unitWatt,
		"rated_water_flowrate":      unitGPM,
	},
	"ServiceWaterHeatingEquipment": {
		"storage_capacity": unitGallon,
	},
	"MiscellaneousEquipment": {
		"power": unitWatt,
	},
	"Fan": {
		"design_electric_power": unitWatt,
	},
}

// InternalUnits returns the per-property internal unit overrides, keyed by
// schema definition name and property name.
func InternalUnits() map[string]map[string]string {
	out := make(map[string]map[string]string, len(internalUnits))
	for def, props := range internalUnits {
		out[def] = maps.Clone(props)
	}
	return out
}
