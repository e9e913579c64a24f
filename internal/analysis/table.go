package analysis

import (
	"fmt"
	"log"
	"strings"

	"github.com/dimlab/dimcheck/internal/expr"
	"github.com/dimlab/dimcheck/internal/units"
)

// SymbolTable maps variable names to reference quantities. It is
// rebuilt from the catalog and the session's custom-variable string on
// every tool invocation; nothing mutates it afterwards.
type SymbolTable map[string]units.Quantity

// BuildSymbolTable builds the evaluation namespace: the fixed catalog
// (including constants) merged with custom variable definitions from a
// comma-separated "name=unitExpr" specification. Custom definitions
// override catalog entries with the same name.
//
// A malformed specification never fails the build: the augmentation is
// skipped as a whole, a warning is logged, and the catalog-only table is
// returned.
func BuildSymbolTable(customSpec string) SymbolTable {
	table := make(SymbolTable, len(catalog)+len(constants))
	for _, entry := range catalog {
		table[entry.symbol] = mustQuantity(entry.magnitude, entry.unit)
	}
	for _, entry := range constants {
		table[entry.symbol] = mustQuantity(entry.magnitude, entry.unit)
	}

	if strings.TrimSpace(customSpec) == "" {
		return table
	}
	bindings, err := parseCustomVariables(customSpec)
	if err != nil {
		log.Printf("warning: failed to parse custom variables: %v", err)
		return table
	}
	for _, b := range bindings {
		table[b.Name] = b.Quantity
	}
	return table
}

// Binding is one resolved custom variable definition.
type Binding struct {
	Name     string
	Expr     string
	Quantity units.Quantity
}

// parseCustomVariables splits a "name=expr,name=expr" specification and
// resolves each expression to a quantity. Terms without "=" are skipped;
// a term whose expression fails to resolve aborts the augmentation.
func parseCustomVariables(spec string) ([]Binding, error) {
	var bindings []Binding
	for _, term := range strings.Split(spec, ",") {
		name, unitExpr, ok := strings.Cut(term, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		unitExpr = strings.TrimSpace(unitExpr)
		q, err := ResolveUnitExpr(unitExpr)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		bindings = append(bindings, Binding{Name: name, Expr: unitExpr, Quantity: q})
	}
	return bindings, nil
}

// ResolveUnitExpr resolves a custom-variable expression in two explicit
// attempts, in fixed order: first as a pure unit specifier with
// magnitude 1 ("meter**2"), then as a full arithmetic expression over
// unit names ("9.81*meter/second**2").
func ResolveUnitExpr(unitExpr string) (units.Quantity, error) {
	q, unitErr := units.ParseUnit(unitExpr)
	if unitErr == nil {
		return q, nil
	}
	q, evalErr := expr.Eval(unitExpr, units.Lookup)
	if evalErr == nil {
		return q, nil
	}
	return units.Quantity{}, fmt.Errorf("expression %q is neither a unit (%v) nor a quantity expression (%v)", unitExpr, unitErr, evalErr)
}

// CustomVariables parses a specification into its ordered bindings,
// skipping terms without "=". Errors are reported so callers can show
// them; the returned bindings cover the terms resolved so far.
func CustomVariables(spec string) ([]Binding, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	return parseCustomVariables(spec)
}

// MergeCustomVariables computes the specification string that would
// result from adding or replacing one variable. Merge is by name, last
// write wins, and existing definition order is preserved. It only
// computes the string; no stored configuration changes.
func MergeCustomVariables(current, name, unitExpr string) string {
	name = strings.TrimSpace(name)
	unitExpr = strings.TrimSpace(unitExpr)

	var terms []string
	replaced := false
	for _, term := range strings.Split(current, ",") {
		existing, value, ok := strings.Cut(term, "=")
		if !ok {
			continue
		}
		existing = strings.TrimSpace(existing)
		if existing == name {
			terms = append(terms, name+"="+unitExpr)
			replaced = true
			continue
		}
		terms = append(terms, existing+"="+strings.TrimSpace(value))
	}
	if !replaced {
		terms = append(terms, name+"="+unitExpr)
	}
	return strings.Join(terms, ",")
}
