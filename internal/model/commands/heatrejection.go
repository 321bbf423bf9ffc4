package commands

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

var heatRejectionTypes = table(enumHeatRejection, map[string]string{
	bdlenum.TowerOpen:      "OPEN_CIRCUIT_COOLING_TOWER",
	bdlenum.TowerOpenHX:    "OPEN_CIRCUIT_COOLING_TOWER",
	bdlenum.TowerFluid:     "CLOSED_CIRCUIT_COOLING_TOWER",
	bdlenum.TowerDryCooler: "DRY_COOLER",
})

var fanSpeedControls = table(enumHeatRejectionSpeed, map[string]string{
	bdlenum.TowerOneSpeedFan: "CONSTANT",
	bdlenum.TowerFanCycling:  "CONSTANT",
	bdlenum.TowerTwoSpeedFan: "TWO_SPEED",
	bdlenum.TowerVarSpeedFan: "VARIABLE_SPEED",
	bdlenum.TowerFluidBypass: "OTHER",
})

// HeatRejection is a cooling tower, fluid cooler or dry cooler.
type HeatRejection struct {
	model.Node

	kind      string
	fanSpeed  string
	setpoint  *float64
	fanPower  *float64
	waterFlow *float64
	quantity  *int
}

func (h *HeatRejection) Derive() error {
	token := h.KeywordOr("TYPE", bdlenum.TowerOpen)
	h.kind, _ = model.MapToken(heatRejectionTypes, token)
	if h.kind == "" {
		h.Warn("unknown heat rejection TYPE %q", token)
	}
	h.fanSpeed, _ = model.MapToken(fanSpeedControls, h.KeywordOr("CAPACITY-CTRL", bdlenum.TowerOneSpeedFan))

	if loop, ok := model.ResolveAs[*Loop](h.RMD, h.Keyword("CW-LOOP")); ok {
		h.setpoint = loop.Number("DESIGN-COOL-T")
	}
	if n, ok := h.Int("NUMBER-OF-CELLS"); ok {
		h.quantity = &n
	}

	got := simValues(&h.Node, simoutput.HeatRejectionFanPower, simoutput.HeatRejectionWaterFlow)
	h.fanPower = scaled(value(got, simoutput.HeatRejectionFanPower), 1000)
	h.waterFlow = value(got, simoutput.HeatRejectionWaterFlow)
	return nil
}

func (h *HeatRejection) Shape() map[string]any {
	return model.Fields{"id": h.Name}.
		Put("loop", h.Keyword("CW-LOOP")).
		Put("type", h.Enum(enumHeatRejection, h.kind)).
		Put("fan_speed_control", h.Enum(enumHeatRejectionSpeed, h.fanSpeed)).
		Put("range", h.Number("RATED-RANGE")).
		Put("approach", h.Number("RATED-APPROACH")).
		Put("design_wetbulb_temperature", h.Number("DESIGN-WETBULB")).
		Put("leaving_water_setpoint_temperature", h.setpoint).
		Put("fan_motor_nameplate_power", h.fanPower).
		Put("fan_motor_efficiency", h.Number("FAN-MOTOR-EFF")).
		Put("rated_water_flowrate", h.waterFlow).
		Put("quantity", h.quantity).
		Map()
}

func (h *HeatRejection) Attach(doc *model.Document) {
	doc.Append("heat_rejections", h.Data)
}
