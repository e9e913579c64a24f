package domain

import (
	"context"
	"fmt"

	"github.com/dimlab/dimcheck/internal/analysis"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckEquationInput represents the MCP tool input for equation checking.
type CheckEquationInput struct {
	Equation string `json:"equation" jsonschema:"physics equation of the form 'LHS = RHS'"`
}

// CheckEquationResult represents the MCP tool output for equation checking.
type CheckEquationResult struct {
	Equation   string               `json:"equation" jsonschema:"equation as submitted"`
	Consistent bool                 `json:"consistent" jsonschema:"whether both sides share a dimension"`
	LHSUnits   string               `json:"lhs_units,omitempty" jsonschema:"canonical unit string of the left side"`
	RHSUnits   string               `json:"rhs_units,omitempty" jsonschema:"canonical unit string of the right side"`
	Message    string               `json:"message" jsonschema:"human-readable explanation"`
	Verbose    *CheckEquationDetail `json:"verbose,omitempty" jsonschema:"per-side breakdown when verbose output is enabled"`
}

// CheckEquationDetail carries the verbose per-side breakdown.
type CheckEquationDetail struct {
	LHSExpression string  `json:"lhs_expression"`
	RHSExpression string  `json:"rhs_expression"`
	LHSMagnitude  float64 `json:"lhs_magnitude"`
	RHSMagnitude  float64 `json:"rhs_magnitude"`
}

// CheckEquationTool defines the MCP tool schema for equation checking.
func CheckEquationTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "check_equation",
		Description: "Checks whether a physics equation is dimensionally consistent. " +
			"Examples: 'F = m * a' (Newton's second law), 'E = m * c**2' (mass-energy equivalence), " +
			"'V = I * R' (Ohm's law), 'd = v * t' (distance from velocity and time).",
	}
}

// CheckEquationHandler checks an equation against a symbol table rebuilt
// from the session settings. Malformed equations and unknown symbols are
// reported in the result, never as a tool error.
func CheckEquationHandler(settings Settings) mcp.ToolHandlerFor[CheckEquationInput, CheckEquationResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CheckEquationInput) (*mcp.CallToolResult, CheckEquationResult, error) {
		table := analysis.BuildSymbolTable(settings.CustomVariables)
		checked := analysis.CheckEquation(input.Equation, table, settings.VerboseOutput)

		result := CheckEquationResult{
			Equation:   checked.Equation,
			Consistent: checked.Consistent,
			LHSUnits:   checked.LHSUnits,
			RHSUnits:   checked.RHSUnits,
			Message:    checked.Message,
		}
		text := checked.Message
		if checked.Detail != nil {
			result.Verbose = &CheckEquationDetail{
				LHSExpression: checked.Detail.LHSExpression,
				RHSExpression: checked.Detail.RHSExpression,
				LHSMagnitude:  checked.Detail.LHSMagnitude,
				RHSMagnitude:  checked.Detail.RHSMagnitude,
			}
			text = fmt.Sprintf("%s\n\nDetailed Analysis:\n- LHS: %s = %g [%s]\n- RHS: %s = %g [%s]",
				checked.Message,
				checked.Detail.LHSExpression, checked.Detail.LHSMagnitude, checked.LHSUnits,
				checked.Detail.RHSExpression, checked.Detail.RHSMagnitude, checked.RHSUnits)
		}

		toolResult := &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}
		return toolResult, result, nil
	}
}
