package commands

import (
	"math"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

// Tilt limits, in degrees from the upward normal, separating ceilings,
// walls and floors.
const (
	ceilingTiltMax = 60.0
	floorTiltMin   = 120.0
)

const (
	surfaceCeiling = "CEILING"
	surfaceWall    = "WALL"
	surfaceFloor   = "FLOOR"

	adjacentExterior  = "EXTERIOR"
	adjacentGround    = "GROUND"
	adjacentInterior  = "INTERIOR"
	adjacentIdentical = "IDENTICAL"

	subsurfaceWindow   = "WINDOW"
	subsurfaceSkylight = "SKYLIGHT"
	subsurfaceDoor     = "DOOR"
)

// locationAzimuths are wall azimuths relative to the space, by LOCATION.
var locationAzimuths = map[string]float64{
	bdlenum.LocationFront: 180,
	bdlenum.LocationRight: 90,
	bdlenum.LocationBack:  0,
	bdlenum.LocationLeft:  270,
}

var interiorAdjacency = table(enumAdjacency, map[string]string{
	bdlenum.IntWallStandard:  adjacentInterior,
	bdlenum.IntWallAir:       adjacentInterior,
	bdlenum.IntWallAdiabatic: adjacentIdentical,
	bdlenum.IntWallInternal:  model.OmitSentinel,
})

func init() {
	needs(enumSurface, surfaceCeiling, surfaceWall, surfaceFloor)
	needs(enumAdjacency, adjacentExterior, adjacentGround)
	needs(enumSubsurface, subsurfaceWindow, subsurfaceSkylight, subsurfaceDoor)
}

type wallKind int

const (
	exteriorWall wallKind = iota
	interiorWall
	undergroundWall
)

// Wall is an exterior, interior or underground surface of a space. Its
// shaped data goes to the surfaces of the space's zone.
type Wall struct {
	model.Node
	model.ChildNode
	model.ParentNode

	kind           wallKind
	zone           string
	classification string
	adjacency      string
	adjacentZone   string
	tilt           float64
	azimuth        float64
	area           *float64
	construction   string
	absorptance    *float64
}

func newWall(n model.Node, kind wallKind) *Wall {
	return &Wall{Node: n, kind: kind}
}

func (w *Wall) Derive() error {
	space, ok := model.ParentAs[*Space](w)
	if !ok {
		w.Warn("surface is not declared under a SPACE")
		w.Omit = true
		return nil
	}
	w.zone = space.zone
	location := w.Keyword("LOCATION")

	w.tilt = w.surfaceTilt(location)
	w.classification = classify(w.tilt)
	relative := w.FloatOr("AZIMUTH", locationAzimuths[location])
	w.azimuth = math.Mod(space.azimuth+relative, 360)
	if w.azimuth < 0 {
		w.azimuth += 360
	}
	w.area = w.surfaceArea(space, location)

	switch w.kind {
	case exteriorWall:
		w.adjacency = adjacentExterior
	case undergroundWall:
		w.adjacency = adjacentGround
	case interiorWall:
		adjacency, omit := model.MapToken(interiorAdjacency, w.KeywordOr("INT-WALL-TYPE", bdlenum.IntWallStandard))
		if omit {
			w.Omit = true
			return nil
		}
		w.adjacency = adjacency
		if adjacency == adjacentInterior {
			w.adjacentZone = zoneForSpace(w.RMD, w.Keyword("NEXT-TO"))
			if w.adjacentZone == "" {
				w.Warn("NEXT-TO %q has no zone", w.Keyword("NEXT-TO"))
			}
		}
	}

	if name := w.Keyword("CONSTRUCTION"); name != "" {
		cons, ok := model.ResolveAs[*Construction](w.RMD, name)
		if !ok {
			w.Warn("CONSTRUCTION %q does not resolve", name)
		} else {
			w.construction = name
			w.absorptance = cons.absorptance
		}
	}
	return nil
}

// surfaceTilt takes TILT, else the LOCATION on a box space. Underground
// walls default to slabs.
func (w *Wall) surfaceTilt(location string) float64 {
	if tilt, ok := w.Float("TILT"); ok {
		return tilt
	}
	switch location {
	case bdlenum.LocationTop:
		return 0
	case bdlenum.LocationBottom:
		return 180
	}
	if w.kind == undergroundWall && location == "" {
		return 180
	}
	return 90
}

func classify(tilt float64) string {
	switch {
	case tilt <= ceilingTiltMax:
		return surfaceCeiling
	case tilt >= floorTiltMin:
		return surfaceFloor
	}
	return surfaceWall
}

// surfaceArea takes AREA, else WIDTH x HEIGHT, else the polygon, else the
// face of a box space named by LOCATION.
func (w *Wall) surfaceArea(space *Space, location string) *float64 {
	if area := w.Number("AREA"); area != nil {
		return area
	}
	width, okW := w.Float("WIDTH")
	height, okH := w.Float("HEIGHT")
	if okW && okH {
		return model.Float(width * height)
	}
	if name := w.Keyword("POLYGON"); name != "" {
		if poly, ok := model.ResolveAs[*Polygon](w.RMD, name); ok {
			return model.Float(poly.Area())
		}
		w.Warn("POLYGON %q does not resolve", name)
		return nil
	}

	var side *float64
	switch location {
	case bdlenum.LocationTop, bdlenum.LocationBottom:
		return space.area
	case bdlenum.LocationFront, bdlenum.LocationBack:
		side = space.Number("WIDTH")
	case bdlenum.LocationLeft, bdlenum.LocationRight:
		side = space.Number("DEPTH")
	}
	if side == nil || space.height == nil {
		w.Warn("surface area cannot be determined")
		return nil
	}
	return model.Float(*side * *space.height)
}

func (w *Wall) Shape() map[string]any {
	f := model.Fields{"id": w.Name}.
		Put("classification", w.Enum(enumSurface, w.classification)).
		Put("area", w.area).
		Put("tilt", w.tilt).
		Put("azimuth", w.azimuth).
		Put("adjacent_to", w.Enum(enumAdjacency, w.adjacency)).
		Put("adjacent_zone", w.adjacentZone).
		Put("construction", w.construction)
	if w.absorptance != nil {
		f.Put("optical_properties", model.Fields{"id": w.Name + " OpticalProps"}.
			Put("absorptance_solar_exterior", w.absorptance).
			Put("absorptance_thermal_exterior", w.Number("OUTSIDE-EMISS")))
	}
	return f.Map()
}

func (w *Wall) Attach(*model.Document) {
	zone, ok := model.ResolveAs[*Zone](w.RMD, w.zone)
	if !ok {
		return
	}
	model.AppendTo(zone, "surfaces", w.Data)
}

// Window is a glazed opening in a wall; a window in a ceiling is a
// skylight.
type Window struct {
	model.Node
	model.ChildNode

	classification string
	area           *float64
	shgc           *float64
	uFactor        *float64
	vt             *float64
}

func (w *Window) Derive() error {
	wall, ok := model.ParentAs[*Wall](w)
	if !ok {
		w.Warn("window is not declared under a wall")
		w.Omit = true
		return nil
	}
	w.classification = subsurfaceWindow
	if wall.classification == surfaceCeiling {
		w.classification = subsurfaceSkylight
	}
	w.area = openingArea(&w.Node)

	if name := w.Keyword("GLASS-TYPE"); name != "" {
		glass, ok := model.ResolveAs[*GlassType](w.RMD, name)
		if !ok {
			w.Warn("GLASS-TYPE %q does not resolve", name)
			return nil
		}
		w.shgc, w.uFactor, w.vt = glass.shgc, glass.uFactor, glass.vt
	}
	return nil
}

func openingArea(n *model.Node) *float64 {
	width, okW := n.Float("WIDTH")
	height, okH := n.Float("HEIGHT")
	if !okW || !okH {
		n.Warn("opening has no WIDTH and HEIGHT")
		return nil
	}
	return model.Float(width * height)
}

func (w *Window) Shape() map[string]any {
	return model.Fields{"id": w.Name}.
		Put("classification", w.Enum(enumSubsurface, w.classification)).
		Put("glazed_area", w.area).
		Put("u_factor", w.uFactor).
		Put("solar_heat_gain_coefficient", w.shgc).
		Put("visible_transmittance", w.vt).
		Put("has_shading_overhang", w.FloatOr("OVERHANG-D", 0) > 0).
		Put("has_shading_sidefins", w.FloatOr("LEFT-FIN-D", 0) > 0 || w.FloatOr("RIGHT-FIN-D", 0) > 0).
		Put("has_manual_interior_shades", w.Has("SHADING-SCHEDULE")).
		Map()
}

func (w *Window) Attach(*model.Document) {
	model.AppendTo(w.Parent(), "subsurfaces", w.Data)
}

// Door is an opaque opening in a wall.
type Door struct {
	model.Node
	model.ChildNode

	area    *float64
	uFactor *float64
}

func (d *Door) Derive() error {
	if _, ok := model.ParentAs[*Wall](d); !ok {
		d.Warn("door is not declared under a wall")
		d.Omit = true
		return nil
	}
	d.area = openingArea(&d.Node)
	if name := d.Keyword("CONSTRUCTION"); name != "" {
		cons, ok := model.ResolveAs[*Construction](d.RMD, name)
		if !ok {
			d.Warn("CONSTRUCTION %q does not resolve", name)
			return nil
		}
		d.uFactor = cons.uFactor
	}
	return nil
}

func (d *Door) Shape() map[string]any {
	return model.Fields{"id": d.Name}.
		Put("classification", d.Enum(enumSubsurface, subsurfaceDoor)).
		Put("opaque_area", d.area).
		Put("u_factor", d.uFactor).
		Map()
}

func (d *Door) Attach(*model.Document) {
	model.AppendTo(d.Parent(), "subsurfaces", d.Data)
}
