package commands

import (
	"math"
	"strconv"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/curve"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

// CurveFit is a performance curve, given by coefficients or fitted from data.
type CurveFit struct {
	model.Node

	curve *curve.Curve
}

func (c *CurveFit) Derive() error {
	form, ok := curve.ParseForm(c.Keyword("TYPE"))
	if !ok {
		c.Warn("unknown curve TYPE %q", c.Keyword("TYPE"))
		return nil
	}

	coefficients := c.Floats("COEFFICIENTS")
	if c.Keyword("INPUT-TYPE") == bdlenum.CurveInputData {
		fitted, err := curve.Fit(form, c.Floats("INDEPENDENT-1"), c.Floats("INDEPENDENT-2"), c.Floats("DEPENDENT"))
		if err != nil {
			c.Warn("cannot fit curve data: %v", err)
			return nil
		}
		coefficients = fitted
	}

	fit, err := curve.New(form, coefficients, c.FloatOr("OUTPUT-MIN", math.Inf(-1)), c.FloatOr("OUTPUT-MAX", math.Inf(1)))
	if err != nil {
		c.Warn("%v", err)
		return nil
	}
	c.curve = &fit
	return nil
}

func (c *CurveFit) Shape() map[string]any { return nil }

func (c *CurveFit) Attach(*model.Document) {}

// Curve returns the derived curve; ok is false when it could not be built.
func (c *CurveFit) Curve() (curve.Curve, bool) {
	if c.curve == nil {
		return curve.Curve{}, false
	}
	return *c.curve, true
}

// curveRef resolves the curve named by keyword.
func curveRef(n *model.Node, keyword string) (curve.Curve, bool) {
	name := n.Keyword(keyword)
	if name == "" {
		return curve.Curve{}, false
	}
	fit, ok := model.ResolveAs[*CurveFit](n.RMD, name)
	if !ok {
		n.Warn("%s %q does not resolve to a curve", keyword, name)
		return curve.Curve{}, false
	}
	return fit.Curve()
}

// Polygon is a closed outline of (x, y) vertices V1..Vn.
type Polygon struct {
	model.Node

	vertices  [][2]float64
	area      float64
	perimeter float64
}

func (p *Polygon) Derive() error {
	for i := 1; ; i++ {
		kw := "V" + strconv.Itoa(i)
		if !p.Has(kw) {
			break
		}
		xy := p.Floats(kw)
		if len(xy) < 2 {
			p.Warn("vertex %s is not an (x, y) pair", kw)
			continue
		}
		p.vertices = append(p.vertices, [2]float64{xy[0], xy[1]})
	}
	if len(p.vertices) < 3 {
		p.Warn("polygon has %d vertices", len(p.vertices))
		return nil
	}
	p.area, p.perimeter = outline(p.vertices)
	return nil
}

// outline returns the area (shoelace formula) and perimeter of a polygon.
func outline(vertices [][2]float64) (area, perimeter float64) {
	var twice float64
	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		twice += v[0]*next[1] - next[0]*v[1]
		perimeter += math.Hypot(next[0]-v[0], next[1]-v[1])
	}
	return math.Abs(twice) / 2, perimeter
}

func (p *Polygon) Shape() map[string]any { return nil }

func (p *Polygon) Attach(*model.Document) {}

// Area returns the enclosed area in ft2.
func (p *Polygon) Area() float64 { return p.area }

// Perimeter returns the outline length in ft.
func (p *Polygon) Perimeter() float64 { return p.perimeter }
