package analysis

import (
	"testing"

	"github.com/dimlab/dimcheck/internal/units"
)

func TestBuildSymbolTableCatalog(t *testing.T) {
	table := BuildSymbolTable("")

	symbols := []string{"F", "m", "a", "v", "t", "E", "V", "I", "R", "T", "f", "lambda", "c", "G", "h", "e"}
	for _, symbol := range symbols {
		if _, ok := table[symbol]; !ok {
			t.Errorf("expected catalog symbol %q", symbol)
		}
	}

	if got := table["F"].UnitString(); got != "newton" {
		t.Errorf("F unit = %q, want %q", got, "newton")
	}
	if got := table["a"].UnitString(); got != "meter/second**2" {
		t.Errorf("a unit = %q, want %q", got, "meter/second**2")
	}
	if got := table["c"].Magnitude; got != 299792458 {
		t.Errorf("c magnitude = %g, want 299792458", got)
	}
}

func TestBuildSymbolTableCustomVariables(t *testing.T) {
	table := BuildSymbolTable("g=9.81*meter/second**2,A=meter**2")

	g, ok := table["g"]
	if !ok {
		t.Fatal("expected custom symbol g")
	}
	accel, err := units.New(1, "meter/second**2")
	if err != nil {
		t.Fatalf("reference quantity: %v", err)
	}
	if !g.Check(accel) {
		t.Errorf("g dimension = %q, want acceleration", g.UnitString())
	}
	if g.Magnitude != 9.81 {
		t.Errorf("g magnitude = %g, want 9.81", g.Magnitude)
	}

	area, ok := table["A"]
	if !ok {
		t.Fatal("expected custom symbol A")
	}
	if got := area.UnitString(); got != "meter**2" {
		t.Errorf("A unit = %q, want %q", got, "meter**2")
	}
	if area.Magnitude != 1 {
		t.Errorf("A magnitude = %g, want 1", area.Magnitude)
	}
}

func TestBuildSymbolTableCustomOverridesCatalog(t *testing.T) {
	table := BuildSymbolTable("t=hour")

	hour, err := units.New(1, "hour")
	if err != nil {
		t.Fatalf("reference quantity: %v", err)
	}
	if got := table["t"].UnitString(); got != hour.UnitString() {
		t.Errorf("t unit = %q, want %q", got, hour.UnitString())
	}
}

func TestBuildSymbolTableFailSoft(t *testing.T) {
	// One bad term aborts the whole augmentation, not the build.
	table := BuildSymbolTable("g=9.81*meter/second**2,bad=notaunit+1")

	if _, ok := table["g"]; ok {
		t.Error("expected augmentation to be skipped entirely")
	}
	if _, ok := table["F"]; !ok {
		t.Error("expected catalog to survive a bad custom spec")
	}
}

func TestBuildSymbolTableSkipsTermsWithoutSeparator(t *testing.T) {
	table := BuildSymbolTable("noise,g=9.81*meter/second**2")

	if _, ok := table["noise"]; ok {
		t.Error("term without = should be skipped")
	}
	if _, ok := table["g"]; !ok {
		t.Error("expected g to be defined")
	}
}

func TestBuildSymbolTableIdempotent(t *testing.T) {
	spec := "g=9.81*meter/second**2,h=meter"
	first := BuildSymbolTable(spec)
	second := BuildSymbolTable(spec)

	if len(first) != len(second) {
		t.Fatalf("table sizes differ: %d vs %d", len(first), len(second))
	}
	equations := []string{"h = 0.5 * g * t**2", "F = m * a", "F = m * v", "not an equation"}
	for _, equation := range equations {
		a := CheckEquation(equation, first, true)
		b := CheckEquation(equation, second, true)
		if a.Consistent != b.Consistent || a.Message != b.Message {
			t.Errorf("tables disagree on %q: %q vs %q", equation, a.Message, b.Message)
		}
	}
}

func TestMergeCustomVariables(t *testing.T) {
	tests := []struct {
		name    string
		current string
		varName string
		unit    string
		want    string
	}{
		{"empty current", "", "g", "9.81*meter/second**2", "g=9.81*meter/second**2"},
		{"append new", "g=9.81*meter/second**2", "A", "meter**2", "g=9.81*meter/second**2,A=meter**2"},
		{"replace existing keeps order", "g=9.81*meter/second**2,A=meter**2", "g", "meter/second**2", "g=meter/second**2,A=meter**2"},
		{"skips malformed terms", "noise,g=meter", "A", "meter**2", "g=meter,A=meter**2"},
		{"trims whitespace", " g = 9.81*meter/second**2 ", "A", " meter**2 ", "g=9.81*meter/second**2,A=meter**2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeCustomVariables(tt.current, tt.varName, tt.unit)
			if got != tt.want {
				t.Errorf("MergeCustomVariables() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveUnitExpr(t *testing.T) {
	pure, err := ResolveUnitExpr("meter**2")
	if err != nil {
		t.Fatalf("pure unit: %v", err)
	}
	if pure.Magnitude != 1 {
		t.Errorf("pure unit magnitude = %g, want 1", pure.Magnitude)
	}

	scaled, err := ResolveUnitExpr("9.81*meter/second**2")
	if err != nil {
		t.Fatalf("scaled expression: %v", err)
	}
	if scaled.Magnitude != 9.81 {
		t.Errorf("scaled magnitude = %g, want 9.81", scaled.Magnitude)
	}

	if _, err := ResolveUnitExpr("plainly wrong"); err == nil {
		t.Error("expected error for unresolvable expression")
	}
}
