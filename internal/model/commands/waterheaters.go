package commands

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

var waterHeaterTypes = table(enumWaterHeater, map[string]string{
	bdlenum.DWHeaterGas:      "CONVENTIONAL",
	bdlenum.DWHeaterElec:     "CONVENTIONAL",
	bdlenum.DWHeaterHeatPump: "HEAT_PUMP_PACKAGED",
})

const metricThermalEfficiency = "THERMAL_EFFICIENCY"

func init() {
	needs(enumWaterHeaterMetric, metricThermalEfficiency)
}

// DWHeater is a domestic (service) water heater on a DHW loop.
type DWHeater struct {
	model.Node

	kind       string
	fuel       string
	efficiency *float64
	input      *float64
}

func (d *DWHeater) Derive() error {
	token := d.KeywordOr("TYPE", bdlenum.DWHeaterGas)
	d.kind, _ = model.MapToken(waterHeaterTypes, token)

	switch token {
	case bdlenum.DWHeaterGas:
		d.fuel = fuelSource(&d.Node)
		d.efficiency = inverse(d.Number("HEAT-INPUT-RATIO"))
	default:
		d.fuel = energyElectricity
		d.efficiency = inverse(d.Number("ELEC-INPUT-RATIO"))
	}

	got := simValues(&d.Node, simoutput.DWHeaterCapacity)
	d.input = value(got, simoutput.DWHeaterCapacity)
	return nil
}

func (d *DWHeater) Shape() map[string]any {
	f := model.Fields{"id": d.Name}.
		Put("distribution_system", d.Keyword("DHW-LOOP")).
		Put("heater_type", d.Enum(enumWaterHeater, d.kind)).
		Put("heater_fuel_type", d.Enum(enumEnergySource, d.fuel)).
		Put("storage_capacity", d.Number("TANK-VOLUME")).
		Put("input_power", d.input)
	if d.efficiency != nil {
		f.Put("efficiency_metric_types", []string{d.Enum(enumWaterHeaterMetric, metricThermalEfficiency)}).
			Put("efficiency_metric_values", []float64{*d.efficiency})
	}
	return f.Map()
}

func (d *DWHeater) Attach(doc *model.Document) {
	doc.Append("service_water_heating_equipment", d.Data)
}
