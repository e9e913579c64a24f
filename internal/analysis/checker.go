package analysis

import (
	"fmt"
	"strings"

	"github.com/dimlab/dimcheck/internal/expr"
	"github.com/dimlab/dimcheck/internal/units"
)

// Result reports the outcome of a consistency check. Unit strings are
// empty when the check failed before both sides were evaluated.
type Result struct {
	Equation   string
	Consistent bool
	LHSUnits   string
	RHSUnits   string
	Message    string
	Detail     *Detail
}

// Detail carries the verbose per-side breakdown.
type Detail struct {
	LHSExpression string
	RHSExpression string
	LHSMagnitude  float64
	RHSMagnitude  float64
}

// CheckEquation checks whether an equation of the form "LHS = RHS" is
// dimensionally consistent against the symbol table. It never returns
// an error: every failure mode folds into a Result with Consistent
// false and a message embedding the failure, so nothing propagates
// across the tool-call boundary.
//
// Bare unit names ("d = 1000*meter") resolve through the unit registry
// when they are not shadowed by a symbol-table entry.
func CheckEquation(equation string, table SymbolTable, verbose bool) Result {
	fail := func(err error) Result {
		return Result{
			Equation:   equation,
			Consistent: false,
			Message:    fmt.Sprintf("error while checking equation: %v", err),
		}
	}

	parts := strings.Split(equation, "=")
	if len(parts) != 2 {
		return fail(fmt.Errorf("expected exactly one %q separating left and right sides, found %d", "=", len(parts)-1))
	}
	lhsExpr := strings.TrimSpace(parts[0])
	rhsExpr := strings.TrimSpace(parts[1])

	resolve := func(name string) (units.Quantity, bool) {
		if q, ok := table[name]; ok {
			return q, true
		}
		return units.Lookup(name)
	}

	lhs, err := expr.Eval(lhsExpr, resolve)
	if err != nil {
		return fail(fmt.Errorf("left side %q: %w", lhsExpr, err))
	}
	rhs, err := expr.Eval(rhsExpr, resolve)
	if err != nil {
		return fail(fmt.Errorf("right side %q: %w", rhsExpr, err))
	}

	result := Result{
		Equation:   equation,
		Consistent: lhs.Check(rhs),
		LHSUnits:   lhs.UnitString(),
		RHSUnits:   rhs.UnitString(),
	}
	switch {
	case result.Consistent && result.LHSUnits == result.RHSUnits:
		result.Message = fmt.Sprintf("equation is dimensionally consistent: both sides are [%s]", result.LHSUnits)
	case result.Consistent:
		// Compatible dimensions can still carry different spellings,
		// e.g. newton vs kilogram*meter/second**2. Report both.
		result.Message = fmt.Sprintf("equation is dimensionally consistent: LHS [%s] matches RHS [%s]", result.LHSUnits, result.RHSUnits)
	default:
		result.Message = fmt.Sprintf("equation is NOT consistent: LHS is [%s] but RHS is [%s]", result.LHSUnits, result.RHSUnits)
	}

	if verbose {
		result.Detail = &Detail{
			LHSExpression: lhsExpr,
			RHSExpression: rhsExpr,
			LHSMagnitude:  lhs.Magnitude,
			RHSMagnitude:  rhs.Magnitude,
		}
	}
	return result
}
