// Package units implements the quantity algebra behind equation checking:
// named physical units, SI prefixes, and magnitude-carrying quantities
// whose arithmetic tracks dimensions over the seven base quantities.
package units

import (
	"fmt"
	"strings"
)

// Base quantity indices into a Dimension vector.
const (
	length = iota
	mass
	time
	current
	temperature
	substance
	luminosity
	baseCount
)

var baseNames = [baseCount]string{
	"[length]", "[mass]", "[time]", "[current]",
	"[temperature]", "[substance]", "[luminosity]",
}

// dimEpsilon tolerates float drift in exponents introduced by Pow.
const dimEpsilon = 1e-9

// Dimension is an exponent vector over the seven SI base quantities.
// Two units share a dimension when their vectors are equal.
type Dimension [baseCount]float64

func dim(l, m, t, i, th, n, j float64) Dimension {
	return Dimension{l, m, t, i, th, n, j}
}

// IsZero reports whether the dimension is dimensionless.
func (d Dimension) IsZero() bool {
	for _, e := range d {
		if e > dimEpsilon || e < -dimEpsilon {
			return false
		}
	}
	return true
}

// Equal reports whether two dimensions match within tolerance.
func (d Dimension) Equal(o Dimension) bool {
	for i := range d {
		diff := d[i] - o[i]
		if diff > dimEpsilon || diff < -dimEpsilon {
			return false
		}
	}
	return true
}

func (d Dimension) mul(o Dimension) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] + o[i]
	}
	return out
}

func (d Dimension) pow(exp float64) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] * exp
	}
	return out
}

// String renders the dimension in bracket notation, e.g.
// "[length]/[time]**2". Dimensionless renders as "dimensionless".
func (d Dimension) String() string {
	var num, den []string
	for i, e := range d {
		switch {
		case e > dimEpsilon:
			num = append(num, baseNames[i]+expSuffix(e))
		case e < -dimEpsilon:
			den = append(den, baseNames[i]+expSuffix(-e))
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

// expSuffix renders a "**n" suffix, omitted for exponent 1.
func expSuffix(e float64) string {
	if e == 1 {
		return ""
	}
	if e == float64(int64(e)) {
		return fmt.Sprintf("**%d", int64(e))
	}
	return fmt.Sprintf("**%g", e)
}
