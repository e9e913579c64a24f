package domain

import (
	"context"
	"fmt"

	"github.com/dimlab/dimcheck/internal/analysis"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddCustomVariableInput represents the MCP tool input for proposing a
// custom variable definition.
type AddCustomVariableInput struct {
	Name string `json:"name" jsonschema:"variable name, e.g. 'g', 'A', 'rho'"`
	Unit string `json:"unit" jsonschema:"unit expression, e.g. '9.81*meter/second**2', 'meter**2', 'kilogram/meter**3'"`
}

// AddCustomVariableResult represents the MCP tool output: the merged
// configuration string the caller should supply to persist the variable.
type AddCustomVariableResult struct {
	Name            string `json:"name" jsonschema:"variable name"`
	Unit            string `json:"unit" jsonschema:"unit expression"`
	CustomVariables string `json:"custom_variables" jsonschema:"updated custom_variables configuration string"`
	Message         string `json:"message" jsonschema:"instructions for applying the configuration"`
}

// AddCustomVariableTool defines the MCP tool schema for custom variables.
func AddCustomVariableTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "add_custom_variable",
		Description: "Proposes a custom variable for equation checking. The session configuration " +
			"is immutable, so this returns the updated custom_variables string to restart with " +
			"rather than mutating live state.",
	}
}

// AddCustomVariableHandler merges the proposed variable into the current
// custom_variables string (by name, last write wins) and returns it as
// instruction. The live session configuration is never changed.
func AddCustomVariableHandler(settings Settings) mcp.ToolHandlerFor[AddCustomVariableInput, AddCustomVariableResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AddCustomVariableInput) (*mcp.CallToolResult, AddCustomVariableResult, error) {
		merged := analysis.MergeCustomVariables(settings.CustomVariables, input.Name, input.Unit)

		message := fmt.Sprintf("custom variable %q with unit %q added.\n\n"+
			"To use this variable, restart the server with:\ncustom_variables='%s'\n\n"+
			"Example usage in equations:\n- 'h = 0.5 * g * t**2'\n- 'F = rho * A * v**2'",
			input.Name, input.Unit, merged)
		if _, err := analysis.ResolveUnitExpr(input.Unit); err != nil {
			// Advisory only: the merged string is still returned so the
			// caller can correct and retry.
			message = fmt.Sprintf("warning: unit expression for %q did not resolve (%v); "+
				"the variable will be ignored at build time.\n\n"+
				"Proposed configuration:\ncustom_variables='%s'", input.Name, err, merged)
		}

		result := AddCustomVariableResult{
			Name:            input.Name,
			Unit:            input.Unit,
			CustomVariables: merged,
			Message:         message,
		}
		toolResult := &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: message}},
		}
		return toolResult, result, nil
	}
}
