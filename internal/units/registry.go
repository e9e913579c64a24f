package units

import "math"

// unitDef describes a named unit: its scale factor to coherent SI base
// units and its dimension.
type unitDef struct {
	scale float64
	dim   Dimension
}

// named holds the fixed unit registry. Scale factors are relative to the
// coherent SI unit of the same dimension (kilogram-based for mass).
var named = map[string]unitDef{
	// Base units.
	"meter":    {1, dim(1, 0, 0, 0, 0, 0, 0)},
	"second":   {1, dim(0, 0, 1, 0, 0, 0, 0)},
	"kilogram": {1, dim(0, 1, 0, 0, 0, 0, 0)},
	"gram":     {1e-3, dim(0, 1, 0, 0, 0, 0, 0)},
	"ampere":   {1, dim(0, 0, 0, 1, 0, 0, 0)},
	"kelvin":   {1, dim(0, 0, 0, 0, 1, 0, 0)},
	"mole":     {1, dim(0, 0, 0, 0, 0, 1, 0)},
	"mol":      {1, dim(0, 0, 0, 0, 0, 1, 0)},
	"candela":  {1, dim(0, 0, 0, 0, 0, 0, 1)},

	// Angles are dimensionless.
	"radian":    {1, Dimension{}},
	"steradian": {1, Dimension{}},
	"degree":    {math.Pi / 180, Dimension{}},

	// Derived SI units.
	"hertz":   {1, dim(0, 0, -1, 0, 0, 0, 0)},
	"newton":  {1, dim(1, 1, -2, 0, 0, 0, 0)},
	"pascal":  {1, dim(-1, 1, -2, 0, 0, 0, 0)},
	"joule":   {1, dim(2, 1, -2, 0, 0, 0, 0)},
	"watt":    {1, dim(2, 1, -3, 0, 0, 0, 0)},
	"coulomb": {1, dim(0, 0, 1, 1, 0, 0, 0)},
	"volt":    {1, dim(2, 1, -3, -1, 0, 0, 0)},
	"ohm":     {1, dim(2, 1, -3, -2, 0, 0, 0)},
	"farad":   {1, dim(-2, -1, 4, 2, 0, 0, 0)},
	"henry":   {1, dim(2, 1, -2, -2, 0, 0, 0)},
	"tesla":   {1, dim(0, 1, -2, -1, 0, 0, 0)},
	"weber":   {1, dim(2, 1, -2, -1, 0, 0, 0)},

	// Common non-coherent units.
	"liter":  {1e-3, dim(3, 0, 0, 0, 0, 0, 0)},
	"minute": {60, dim(0, 0, 1, 0, 0, 0, 0)},
	"hour":   {3600, dim(0, 0, 1, 0, 0, 0, 0)},
	"day":    {86400, dim(0, 0, 1, 0, 0, 0, 0)},
}

// prefixes holds SI prefixes accepted in front of any named unit.
var prefixes = map[string]float64{
	"tera":  1e12,
	"giga":  1e9,
	"mega":  1e6,
	"kilo":  1e3,
	"hecto": 1e2,
	"deca":  1e1,
	"deci":  1e-1,
	"centi": 1e-2,
	"milli": 1e-3,
	"micro": 1e-6,
	"nano":  1e-9,
	"pico":  1e-12,
	"femto": 1e-15,
}

// resolve maps a spelled unit name to its canonical singular form and
// definition. It accepts plural spellings ("meters") and SI-prefixed
// forms ("kilometer", "milliseconds").
func resolve(name string) (string, unitDef, bool) {
	if def, ok := named[name]; ok {
		return name, def, true
	}
	if singular, ok := stripPlural(name); ok {
		if def, ok := named[singular]; ok {
			return singular, def, true
		}
	}
	for prefix, factor := range prefixes {
		rest, ok := cutPrefix(name, prefix)
		if !ok {
			continue
		}
		base := rest
		def, found := named[base]
		if !found {
			if singular, ok := stripPlural(rest); ok {
				base = singular
				def, found = named[base]
			}
		}
		if found {
			return prefix + base, unitDef{scale: factor * def.scale, dim: def.dim}, true
		}
	}
	return "", unitDef{}, false
}

// Known reports whether a name resolves to a unit in the registry.
func Known(name string) bool {
	_, _, ok := resolve(name)
	return ok
}

// Lookup returns a reference quantity of magnitude 1 for a unit name.
// It backs the unit-name fallback namespace used during evaluation, so
// equations like "d = 1000*meter" resolve bare unit names.
func Lookup(name string) (Quantity, bool) {
	canonical, _, ok := resolve(name)
	if !ok {
		return Quantity{}, false
	}
	return Quantity{Magnitude: 1, units: map[string]float64{canonical: 1}}, true
}

func stripPlural(name string) (string, bool) {
	if len(name) > 1 && name[len(name)-1] == 's' {
		return name[:len(name)-1], true
	}
	return "", false
}

func cutPrefix(name, prefix string) (string, bool) {
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		return name[len(prefix):], true
	}
	return "", false
}
