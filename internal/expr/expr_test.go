package expr

import (
	"math"
	"strings"
	"testing"

	"github.com/dimlab/dimcheck/internal/units"
)

// testResolver exposes a few symbols plus bare unit names.
func testResolver(t *testing.T) Resolver {
	t.Helper()
	newQ := func(magnitude float64, unit string) units.Quantity {
		q, err := units.New(magnitude, unit)
		if err != nil {
			t.Fatalf("new quantity %q: %v", unit, err)
		}
		return q
	}
	symbols := map[string]units.Quantity{
		"F": newQ(1, "newton"),
		"m": newQ(1, "kilogram"),
		"a": newQ(1, "meter/second**2"),
		"v": newQ(3, "meter/second"),
		"t": newQ(2, "second"),
	}
	return func(name string) (units.Quantity, bool) {
		if q, ok := symbols[name]; ok {
			return q, true
		}
		return units.Lookup(name)
	}
}

func TestEvalArithmetic(t *testing.T) {
	resolve := testResolver(t)
	tests := []struct {
		src       string
		magnitude float64
		unit      string
	}{
		{"1 + 2 * 3", 7, "dimensionless"},
		{"(1 + 2) * 3", 9, "dimensionless"},
		{"2**3**2", 512, "dimensionless"},
		{"-3**2", -9, "dimensionless"},
		{"2**-2", 0.25, "dimensionless"},
		{"v * t", 6, "meter"},
		{"m * a", 1, "kilogram*meter/second**2"},
		{"0.5 * m * v**2", 4.5, "kilogram*meter**2/second**2"},
		{"1000*meter", 1000, "meter"},
		{"9.81*meter/second**2", 9.81, "meter/second**2"},
		{"F / a", 1, "newton*second**2/meter"},
		{"1e3 * 2", 2000, "dimensionless"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			q, err := Eval(tt.src, resolve)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if math.Abs(q.Magnitude-tt.magnitude) > 1e-9 {
				t.Errorf("magnitude = %g, want %g", q.Magnitude, tt.magnitude)
			}
			if got := q.UnitString(); got != tt.unit {
				t.Errorf("unit = %q, want %q", got, tt.unit)
			}
		})
	}
}

func TestEvalAddConvertsAcrossScales(t *testing.T) {
	resolve := testResolver(t)
	q, err := Eval("kilometer + 500*meter", resolve)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(q.Magnitude-1.5) > 1e-12 {
		t.Errorf("expected 1.5, got %g", q.Magnitude)
	}
	if got := q.UnitString(); got != "kilometer" {
		t.Errorf("expected kilometer, got %q", got)
	}
}

func TestEvalErrors(t *testing.T) {
	resolve := testResolver(t)
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown symbol", "F + zz", "undefined symbol"},
		{"function call", "sin(t)", "undefined symbol"},
		{"call on known symbol", "t(2)", "unexpected"},
		{"trailing operator", "1 +", "unexpected end"},
		{"empty", "", "unexpected end"},
		{"invalid character", "m @ a", "invalid character"},
		{"mismatched paren", "(1 + 2", "missing closing parenthesis"},
		{"dimension mismatch", "meter + second", "dimensions differ"},
		{"dimensioned exponent", "2**t", "exponent must be dimensionless"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.src, resolve)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}
