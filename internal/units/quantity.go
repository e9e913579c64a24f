package units

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Quantity is a numeric magnitude tagged with a compound unit. The unit
// is a map from canonical unit name to exponent, so arithmetic preserves
// the spelling a quantity was defined with ("newton" stays "newton"
// until it is combined with other units).
type Quantity struct {
	Magnitude float64
	units     map[string]float64
}

// New builds a quantity from a magnitude and a unit expression such as
// "meter/second**2" or "joule/(mol*kelvin)".
func New(magnitude float64, unit string) (Quantity, error) {
	q, err := ParseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	q.Magnitude = magnitude
	return q, nil
}

// Scalar returns a dimensionless quantity.
func Scalar(v float64) Quantity {
	return Quantity{Magnitude: v}
}

// Dimension derives the quantity's dimension from its unit exponents.
func (q Quantity) Dimension() Dimension {
	var d Dimension
	for name, exp := range q.units {
		_, def, ok := resolve(name)
		if !ok {
			continue
		}
		d = d.mul(def.dim.pow(exp))
	}
	return d
}

// Check reports whether two quantities share the same dimension,
// irrespective of magnitude or unit scale.
func (q Quantity) Check(o Quantity) bool {
	return q.Dimension().Equal(o.Dimension())
}

// scale is the factor converting one of this quantity's units to
// coherent SI base units.
func (q Quantity) scale() float64 {
	s := 1.0
	for name, exp := range q.units {
		_, def, ok := resolve(name)
		if !ok {
			continue
		}
		s *= math.Pow(def.scale, exp)
	}
	return s
}

// Mul multiplies two quantities, adding unit exponents.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		Magnitude: q.Magnitude * o.Magnitude,
		units:     combine(q.units, o.units, 1),
	}
}

// Div divides two quantities, subtracting unit exponents.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{
		Magnitude: q.Magnitude / o.Magnitude,
		units:     combine(q.units, o.units, -1),
	}
}

// Pow raises the quantity to a dimensionless exponent.
func (q Quantity) Pow(exp Quantity) (Quantity, error) {
	if !exp.Dimension().IsZero() {
		return Quantity{}, fmt.Errorf("exponent must be dimensionless, got [%s]", exp.UnitString())
	}
	e := exp.Magnitude * exp.scale()
	out := Quantity{Magnitude: math.Pow(q.Magnitude, e)}
	if len(q.units) > 0 {
		out.units = make(map[string]float64, len(q.units))
		for name, u := range q.units {
			scaled := u * e
			if !negligible(scaled) {
				out.units[name] = scaled
			}
		}
	}
	return out, nil
}

// Add sums two quantities of the same dimension, converting the right
// operand to the left operand's units.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	return q.addScaled(o, 1)
}

// Sub subtracts a quantity of the same dimension.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	return q.addScaled(o, -1)
}

func (q Quantity) addScaled(o Quantity, sign float64) (Quantity, error) {
	if !q.Check(o) {
		op := "add"
		if sign < 0 {
			op = "subtract"
		}
		return Quantity{}, fmt.Errorf("cannot %s [%s] and [%s]: dimensions differ", op, q.UnitString(), o.UnitString())
	}
	lscale := q.scale()
	factor := 1.0
	if lscale != 0 {
		factor = o.scale() / lscale
	}
	return Quantity{
		Magnitude: q.Magnitude + sign*o.Magnitude*factor,
		units:     cloneUnits(q.units),
	}, nil
}

// Neg flips the quantity's sign.
func (q Quantity) Neg() Quantity {
	return Quantity{Magnitude: -q.Magnitude, units: cloneUnits(q.units)}
}

// BaseMagnitude converts the magnitude to coherent SI base units, used
// when comparing quantities regardless of unit scale.
func (q Quantity) BaseMagnitude() float64 {
	return q.Magnitude * q.scale()
}

// UnitString renders the compound unit in canonical form: alphabetical
// names, positive exponents joined by "*", negative exponents appended
// as "/name**n". A unitless quantity renders as "dimensionless".
func (q Quantity) UnitString() string {
	var num, den []string
	names := make([]string, 0, len(q.units))
	for name := range q.units {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		exp := q.units[name]
		switch {
		case exp > 0:
			num = append(num, name+expSuffix(exp))
		case exp < 0:
			den = append(den, name+expSuffix(-exp))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return "dimensionless"
	}
	head := strings.Join(num, "*")
	if head == "" {
		head = "1"
	}
	for _, part := range den {
		head += "/" + part
	}
	return head
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Magnitude, q.UnitString())
}

func combine(a, b map[string]float64, sign float64) map[string]float64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]float64, len(a)+len(b))
	for name, exp := range a {
		out[name] = exp
	}
	for name, exp := range b {
		out[name] += sign * exp
	}
	for name, exp := range out {
		if negligible(exp) {
			delete(out, name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneUnits(u map[string]float64) map[string]float64 {
	if len(u) == 0 {
		return nil
	}
	out := make(map[string]float64, len(u))
	for name, exp := range u {
		out[name] = exp
	}
	return out
}

func negligible(exp float64) bool {
	return exp < dimEpsilon && exp > -dimEpsilon
}
