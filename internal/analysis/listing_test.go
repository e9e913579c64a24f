package analysis

import (
	"strings"
	"testing"
)

func TestListUnitsCategories(t *testing.T) {
	listing := ListUnits("", true)

	for _, category := range []string{"Mechanics", "Energy & Work", "Electricity & Magnetism", "Thermodynamics", "Waves & Optics"} {
		if !strings.Contains(listing, "## "+category) {
			t.Errorf("expected category %q", category)
		}
	}
	if !strings.Contains(listing, "- F: Force (newton)") {
		t.Error("expected force entry")
	}
	if !strings.Contains(listing, "- lambda: Wavelength (meter)") {
		t.Error("expected wavelength entry")
	}
}

func TestListUnitsConstantsToggle(t *testing.T) {
	withConstants := ListUnits("", true)
	if !strings.Contains(withConstants, "## Physical Constants") {
		t.Error("expected constants section")
	}
	if !strings.Contains(withConstants, "- G: Gravitational constant") {
		t.Error("expected gravitational constant entry")
	}

	withoutConstants := ListUnits("", false)
	if strings.Contains(withoutConstants, "## Physical Constants") {
		t.Error("expected constants section to be omitted")
	}
}

func TestListUnitsCustomVariables(t *testing.T) {
	listing := ListUnits("g=9.81*meter/second**2,A=meter**2", true)

	if !strings.Contains(listing, "## Custom Variables") {
		t.Fatal("expected custom variables section")
	}
	if !strings.Contains(listing, "- g: meter/second**2") {
		t.Errorf("expected canonical unit for g, got:\n%s", listing)
	}
	if !strings.Contains(listing, "- A: meter**2") {
		t.Errorf("expected canonical unit for A, got:\n%s", listing)
	}

	plain := ListUnits("", true)
	if strings.Contains(plain, "## Custom Variables") {
		t.Error("expected no custom variables section without a spec")
	}
}

func TestListUnitsMalformedCustomSpec(t *testing.T) {
	listing := ListUnits("bad=notaunit+1", true)

	if !strings.Contains(listing, "## Custom Variables") {
		t.Fatal("expected custom variables section")
	}
	if !strings.Contains(listing, "- error:") {
		t.Errorf("expected error line, got:\n%s", listing)
	}
}
