// Package curve evaluates DOE-2 performance curves.
//
// Coefficients follow the DOE-2 ordering:
//
//	linear        a + b*x
//	quadratic     a + b*x + c*x^2
//	cubic         a + b*x + c*x^2 + d*x^3
//	bi-linear     a + b*x + c*y
//	bi-quadratic  a + b*x + c*x^2 + d*y + e*y^2 + f*x*y
//
// Every evaluation is clamped to the curve's [Min, Max] output range.
package curve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Form identifies the polynomial shape.
type Form int

const (
	Linear Form = iota + 1
	Quadratic
	Cubic
	BiLinear
	BiQuadratic
)

var ErrCoefficients = errors.New("curve: wrong number of coefficients")

func (f Form) String() string {
	switch f {
	case Linear:
		return "LINEAR"
	case Quadratic:
		return "QUADRATIC"
	case Cubic:
		return "CUBIC"
	case BiLinear:
		return "BI-LINEAR"
	case BiQuadratic:
		return "BI-QUADRATIC"
	}
	return "UNKNOWN"
}

// ParseForm maps a CURVE-FIT TYPE token to a Form.
func ParseForm(token string) (Form, bool) {
	for f := Linear; f <= BiQuadratic; f++ {
		if f.String() == token {
			return f, true
		}
	}
	return 0, false
}

// Terms returns the number of coefficients the form takes.
func (f Form) Terms() int {
	switch f {
	case Linear:
		return 2
	case Quadratic, BiLinear:
		return 3
	case Cubic:
		return 4
	case BiQuadratic:
		return 6
	}
	return 0
}

// Bivariate reports whether the form takes two inputs.
func (f Form) Bivariate() bool {
	return f == BiLinear || f == BiQuadratic
}

// Curve is a polynomial with a clamped output range.
type Curve struct {
	Form         Form
	Coefficients []float64
	Min, Max     float64
}

// New validates the coefficient count. min > max is swapped.
func New(form Form, coefficients []float64, min, max float64) (Curve, error) {
	if len(coefficients) != form.Terms() {
		return Curve{}, fmt.Errorf("%w: %s takes %d, got %d", ErrCoefficients, form, form.Terms(), len(coefficients))
	}
	if min > max {
		min, max = max, min
	}
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return Curve{Form: form, Coefficients: c, Min: min, Max: max}, nil
}

// Eval evaluates the curve at x (and y for bivariate forms).
func (c Curve) Eval(x, y float64) float64 {
	return Clamp(floats.Dot(c.Coefficients, terms(c.Form, x, y)), c.Min, c.Max)
}

func terms(form Form, x, y float64) []float64 {
	switch form {
	case Linear:
		return []float64{1, x}
	case Quadratic:
		return []float64{1, x, x * x}
	case Cubic:
		return []float64{1, x, x * x, x * x * x}
	case BiLinear:
		return []float64{1, x, y}
	case BiQuadratic:
		return []float64{1, x, x * x, y, y * y, x * y}
	}
	return nil
}

// Clamp limits v to [min, max]. NaN maps to min.
func Clamp(v, min, max float64) float64 {
	switch {
	case math.IsNaN(v):
		return min
	case v < min:
		return min
	case v > max:
		return max
	}
	return v
}

// EvalQuadratic is the pure quadratic form.
func EvalQuadratic(c [3]float64, x, min, max float64) float64 {
	return Clamp(floats.Dot(c[:], terms(Quadratic, x, 0)), min, max)
}

// EvalCubic is the pure cubic form.
func EvalCubic(c [4]float64, x, min, max float64) float64 {
	return Clamp(floats.Dot(c[:], terms(Cubic, x, 0)), min, max)
}

// EvalBiQuadratic is the pure bi-quadratic form.
func EvalBiQuadratic(c [6]float64, x, y, min, max float64) float64 {
	return Clamp(floats.Dot(c[:], terms(BiQuadratic, x, y)), min, max)
}

// Fit derives coefficients from data points by least squares. ys is ignored
// for single-variable forms.
func Fit(form Form, xs, ys, out []float64) ([]float64, error) {
	n := form.Terms()
	if n == 0 {
		return nil, fmt.Errorf("curve: cannot fit form %d", form)
	}
	if len(xs) != len(out) || (form.Bivariate() && len(ys) != len(out)) {
		return nil, errors.New("curve: data columns differ in length")
	}
	if len(out) < n {
		return nil, fmt.Errorf("curve: %s needs at least %d points, got %d", form, n, len(out))
	}

	a := mat.NewDense(len(out), n, nil)
	for i := range out {
		y := 0.0
		if form.Bivariate() {
			y = ys[i]
		}
		a.SetRow(i, terms(form, xs[i], y))
	}
	b := mat.NewVecDense(len(out), append([]float64(nil), out...))

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("curve: fit failed: %w", err)
	}
	return mat.Col(nil, 0, &coef), nil
}
