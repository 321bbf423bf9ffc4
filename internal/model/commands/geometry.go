package commands

import (
	"strconv"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

func init() {
	needs(enumEnergySource, energyElectricity)
}

// Floor positions the spaces declared under it.
type Floor struct {
	model.Node
	model.ParentNode

	elevation   *float64
	azimuth     float64
	height      *float64
	spaceHeight *float64
}

func (f *Floor) Derive() error {
	f.elevation = f.Number("Z")
	f.azimuth = f.FloatOr("AZIMUTH", 0)
	f.height = f.Number("FLOOR-HEIGHT")
	f.spaceHeight = f.Number("SPACE-HEIGHT")
	return nil
}

func (f *Floor) Shape() map[string]any { return nil }

func (f *Floor) Attach(*model.Document) {}

// Space is a room on a floor. Its shaped data is attached to the zone whose
// SPACE keyword names it.
type Space struct {
	model.Node
	model.ChildNode
	model.ParentNode

	zone      string
	floor     string
	azimuth   float64
	height    *float64
	area      *float64
	volume    *float64
	occupants *float64
}

func (s *Space) Derive() error {
	s.azimuth = buildingAzimuth(s.RMD) + s.FloatOr("AZIMUTH", 0)
	s.height = s.Number("HEIGHT")
	if floor, ok := model.ParentAs[*Floor](s); ok {
		s.floor = floor.Name
		s.azimuth += floor.azimuth
		if s.height == nil {
			s.height = floor.spaceHeight
		}
	}

	s.area = s.floorArea()
	s.volume = s.Number("VOLUME")
	if s.volume == nil && s.area != nil && s.height != nil {
		s.volume = model.Float(*s.area * *s.height)
	}

	s.occupants = s.Number("NUMBER-OF-PEOPLE")
	if perPerson, ok := s.Float("AREA/PERSON"); ok && s.occupants == nil && s.area != nil && perPerson > 0 {
		s.occupants = model.Float(*s.area / perPerson)
	}

	s.zone = zoneForSpace(s.RMD, s.Name)
	if s.zone == "" {
		s.Warn("no ZONE references this space")
	}
	return nil
}

// floorArea takes AREA, else the BOX footprint, else the polygon area.
func (s *Space) floorArea() *float64 {
	if area := s.Number("AREA"); area != nil {
		return area
	}
	shape := s.Keyword("SHAPE")
	if shape == "" && s.Has("POLYGON") {
		shape = bdlenum.ShapePolygon
	}
	switch shape {
	case bdlenum.ShapePolygon:
		poly, ok := model.ResolveAs[*Polygon](s.RMD, s.Keyword("POLYGON"))
		if !ok {
			s.Warn("POLYGON %q does not resolve", s.Keyword("POLYGON"))
			return nil
		}
		return model.Float(poly.Area())
	case bdlenum.ShapeNoShape:
		return nil
	}
	width, okW := s.Float("WIDTH")
	depth, okD := s.Float("DEPTH")
	if okW && okD {
		return model.Float(width * depth)
	}
	return nil
}

// zoneForSpace returns the zone whose SPACE keyword names space.
func zoneForSpace(rmd *model.RMD, space string) string {
	if space == "" {
		return ""
	}
	for _, zone := range rmd.Instances(bdlenum.CmdZone) {
		if zone.Base().Keyword("SPACE") == space {
			return zone.Base().Name
		}
	}
	return ""
}

func (s *Space) Shape() map[string]any {
	return model.Fields{"id": s.Name}.
		Put("floor_area", s.area).
		Put("number_of_occupants", s.occupants).
		Put("occupant_multiplier_schedule", s.Keyword("PEOPLE-SCHEDULE")).
		Put("interior_lighting", s.lighting()).
		Put("miscellaneous_equipment", s.equipment()).
		Map()
}

// lighting emits one entry per LIGHTING-W/AREA value, paired with the
// LIGHTING-SCHEDUL list.
func (s *Space) lighting() []map[string]any {
	powers := s.Floats("LIGHTING-W/AREA")
	schedules := s.List("LIGHTING-SCHEDUL")
	out := make([]map[string]any, 0, len(powers))
	for i, lpd := range powers {
		out = append(out, model.Fields{"id": s.Name + " Lighting" + suffix(i, len(powers))}.
			Put("power_per_area", lpd).
			Put("lighting_multiplier_schedule", at(schedules, i)).
			Map())
	}
	return out
}

// equipment emits one entry per EQUIPMENT-W/AREA value, as total power.
func (s *Space) equipment() []map[string]any {
	densities := s.Floats("EQUIPMENT-W/AREA")
	schedules := s.List("EQUIP-SCHEDULE")
	sensible := s.Floats("EQUIP-SENSIBLE")
	latent := s.Floats("EQUIP-LATENT")
	out := make([]map[string]any, 0, len(densities))
	for i, epd := range densities {
		var power *float64
		if s.area != nil {
			power = model.Float(epd * *s.area)
		}
		out = append(out, model.Fields{"id": s.Name + " MiscEquipment" + suffix(i, len(densities))}.
			Put("power", power).
			Put("multiplier_schedule", at(schedules, i)).
			Put("energy_type", s.Enum(enumEnergySource, energyElectricity)).
			Put("sensible_fraction", atFloat(sensible, i)).
			Put("latent_fraction", atFloat(latent, i)).
			Map())
	}
	return out
}

func suffix(i, n int) string {
	if n <= 1 {
		return ""
	}
	return " " + strconv.Itoa(i+1)
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

func atFloat(list []float64, i int) *float64 {
	if i < len(list) {
		return &list[i]
	}
	return nil
}

func (s *Space) Attach(*model.Document) {
	if zone, ok := model.ResolveAs[*Zone](s.RMD, s.zone); ok {
		model.AppendTo(zone, "spaces", s.Data)
	}
}
