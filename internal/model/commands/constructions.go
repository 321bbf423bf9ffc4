package commands

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

const (
	// Film resistances in hr*ft2*F/Btu.
	defaultInsideFilm = 0.68
	outsideFilm       = 0.17

	// shgcPerShadingCoefficient converts a shading coefficient to SHGC.
	shgcPerShadingCoefficient = 0.87
)

func init() {
	needs(enumConstructionInput, "LAYERS", "SIMPLIFIED")
}

// Material is an opaque layer given by properties or by resistance alone.
type Material struct {
	model.Node

	thickness    *float64
	conductivity *float64
	density      *float64
	specificHeat *float64
	resistance   *float64
}

func (m *Material) Derive() error {
	if m.Keyword("TYPE") == "RESISTANCE" {
		m.resistance = m.Number("RESISTANCE")
		return nil
	}
	m.thickness = m.Number("THICKNESS")
	m.conductivity = m.Number("CONDUCTIVITY")
	m.density = m.Number("DENSITY")
	m.specificHeat = m.Number("SPECIFIC-HEAT")
	if m.thickness != nil && m.conductivity != nil && *m.conductivity > 0 {
		m.resistance = model.Float(*m.thickness / *m.conductivity)
	}
	return nil
}

func (m *Material) Shape() map[string]any {
	return model.Fields{"id": m.Name}.
		Put("thickness", m.thickness).
		Put("thermal_conductivity", m.conductivity).
		Put("density", m.density).
		Put("specific_heat", m.specificHeat).
		Put("r_value", m.resistance).
		Map()
}

func (m *Material) Attach(doc *model.Document) {
	doc.Append("materials", m.Data)
}

// Layers is an ordered material stack, outside first.
type Layers struct {
	model.Node

	materials  []string
	resistance float64
	complete   bool
}

func (l *Layers) Derive() error {
	l.resistance = l.FloatOr("INSIDE-FILM-RES", defaultInsideFilm)
	l.complete = true
	for _, name := range l.List("MATERIAL") {
		m, ok := model.ResolveAs[*Material](l.RMD, name)
		if !ok {
			l.Warn("MATERIAL %q does not resolve", name)
			l.complete = false
			continue
		}
		l.materials = append(l.materials, name)
		if m.resistance == nil {
			l.complete = false
			continue
		}
		l.resistance += *m.resistance
	}
	return nil
}

func (l *Layers) Shape() map[string]any { return nil }

func (l *Layers) Attach(*model.Document) {}

// Construction is an opaque assembly given by a U-value or a layer stack.
type Construction struct {
	model.Node

	input       string
	uFactor     *float64
	layers      []string
	absorptance *float64
}

func (c *Construction) Derive() error {
	c.absorptance = c.Number("ABSORPTANCE")

	switch c.KeywordOr("TYPE", bdlenum.ConsLayers) {
	case bdlenum.ConsUValue:
		c.input = "SIMPLIFIED"
		c.uFactor = c.Number("U-VALUE")
	default:
		c.input = "LAYERS"
		name := c.Keyword("LAYERS")
		layers, ok := model.ResolveAs[*Layers](c.RMD, name)
		if !ok {
			c.Warn("LAYERS %q does not resolve", name)
			return nil
		}
		c.layers = layers.materials
		if layers.complete {
			c.uFactor = model.Float(1 / (layers.resistance + outsideFilm))
		}
	}
	return nil
}

func (c *Construction) Shape() map[string]any {
	return model.Fields{"id": c.Name}.
		Put("surface_construction_input_option", c.Enum(enumConstructionInput, c.input)).
		Put("u_factor", c.uFactor).
		Put("primary_layers", c.layers).
		Map()
}

func (c *Construction) Attach(doc *model.Document) {
	doc.Append("constructions", c.Data)
}

// GlassType holds the glazing properties windows refer to.
type GlassType struct {
	model.Node

	shgc    *float64
	uFactor *float64
	vt      *float64
}

func (g *GlassType) Derive() error {
	if sc := g.Number("SHADING-COEF"); sc != nil {
		g.shgc = model.Float(*sc * shgcPerShadingCoefficient)
	}
	g.uFactor = g.Number("GLASS-CONDUCT")
	g.vt = g.Number("VIS-TRANS")
	return nil
}

func (g *GlassType) Shape() map[string]any { return nil }

func (g *GlassType) Attach(*model.Document) {}
