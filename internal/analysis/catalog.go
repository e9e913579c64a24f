// Package analysis implements dimensional-consistency checking for
// physics equations: a fixed catalog of reference quantities, a symbol
// table builder that merges per-session custom variables, and the
// equation checker itself.
package analysis

import (
	"fmt"

	"github.com/dimlab/dimcheck/internal/units"
)

// Catalog categories in listing order.
const (
	categoryMechanics = "Mechanics"
	categoryEnergy    = "Energy & Work"
	categoryElectro   = "Electricity & Magnetism"
	categoryThermo    = "Thermodynamics"
	categoryWaves     = "Waves & Optics"
	categoryConstants = "Physical Constants"
)

var categoryOrder = []string{
	categoryMechanics,
	categoryEnergy,
	categoryElectro,
	categoryThermo,
	categoryWaves,
}

// catalogEntry is one built-in symbol: a reference quantity whose
// magnitude is 1 except for true physical constants, where the real
// value keeps the unit well-formed (the magnitude never affects the
// consistency check).
type catalogEntry struct {
	symbol      string
	magnitude   float64
	unit        string
	description string
	category    string
}

var catalog = []catalogEntry{
	// Mechanics
	{"F", 1, "newton", "Force (newton)", categoryMechanics},
	{"m", 1, "kilogram", "Mass (kilogram)", categoryMechanics},
	{"a", 1, "meter/second**2", "Acceleration (meter/second**2)", categoryMechanics},
	{"v", 1, "meter/second", "Velocity (meter/second)", categoryMechanics},
	{"u", 1, "meter/second", "Initial velocity (meter/second)", categoryMechanics},
	{"d", 1, "meter", "Distance/displacement (meter)", categoryMechanics},
	{"x", 1, "meter", "Position (meter)", categoryMechanics},
	{"t", 1, "second", "Time (second)", categoryMechanics},
	{"p", 1, "kilogram*meter/second", "Momentum (kilogram*meter/second)", categoryMechanics},

	// Energy & Work
	{"E", 1, "joule", "Energy (joule)", categoryEnergy},
	{"W", 1, "joule", "Work (joule)", categoryEnergy},
	{"KE", 1, "joule", "Kinetic energy (joule)", categoryEnergy},
	{"PE", 1, "joule", "Potential energy (joule)", categoryEnergy},
	{"P", 1, "watt", "Power (watt)", categoryEnergy},

	// Electricity & Magnetism
	{"q", 1, "coulomb", "Charge (coulomb)", categoryElectro},
	{"V", 1, "volt", "Voltage (volt)", categoryElectro},
	{"I", 1, "ampere", "Current (ampere)", categoryElectro},
	{"R", 1, "ohm", "Resistance (ohm)", categoryElectro},
	{"C", 1, "farad", "Capacitance (farad)", categoryElectro},
	{"L", 1, "henry", "Inductance (henry)", categoryElectro},
	{"B", 1, "tesla", "Magnetic field (tesla)", categoryElectro},
	{"phi", 1, "weber", "Magnetic flux (weber)", categoryElectro},

	// Thermodynamics
	{"T", 1, "kelvin", "Temperature (kelvin)", categoryThermo},
	{"k", 1, "joule/kelvin", "Boltzmann constant (joule/kelvin)", categoryThermo},
	{"R_gas", 1, "joule/(mol*kelvin)", "Gas constant (joule/(mol*kelvin))", categoryThermo},
	{"n", 1, "mole", "Amount of substance (mole)", categoryThermo},
	{"p_pressure", 1, "pascal", "Pressure (pascal)", categoryThermo},
	{"V_volume", 1, "meter**3", "Volume (meter**3)", categoryThermo},
	{"Q_heat", 1, "joule", "Heat (joule)", categoryThermo},

	// Waves & Optics
	{"f", 1, "hertz", "Frequency (hertz)", categoryWaves},
	{"lambda", 1, "meter", "Wavelength (meter)", categoryWaves},
	{"c", 299792458, "meter/second", "Speed of light (299792458 m/s)", categoryWaves},
	{"omega", 1, "radian/second", "Angular frequency (radian/second)", categoryWaves},
}

// constants are listed separately so the section can be toggled in
// listings; they always participate in the symbol table.
var constants = []catalogEntry{
	{"G", 6.674e-11, "meter**3/(kilogram*second**2)", "Gravitational constant (6.674e-11 m**3/(kg*s**2))", categoryConstants},
	{"h", 6.626e-34, "joule*second", "Planck constant (6.626e-34 J*s)", categoryConstants},
	{"e", 1.602e-19, "coulomb", "Elementary charge (1.602e-19 C)", categoryConstants},
}

// mustQuantity builds a quantity from a hand-curated catalog entry.
// Catalog unit strings are fixed at compile time, so a parse failure is
// a programming error.
func mustQuantity(magnitude float64, unit string) units.Quantity {
	q, err := units.New(magnitude, unit)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog unit %q: %v", unit, err))
	}
	return q
}
